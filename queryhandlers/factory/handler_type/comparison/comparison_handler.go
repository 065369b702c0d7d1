package comparison

import (
	"bikeshare/aggregator"
	"bikeshare/domain/entities/trip"
	"bikeshare/filter"
	"bikeshare/queryhandlers"
)

const handlerType = "member-comparison-handler"

// ComparisonHandler compares members and casual riders
type ComparisonHandler struct {
	kind queryhandlers.Kind
}

func NewComparisonHandler(kind queryhandlers.Kind) (*ComparisonHandler, error) {
	switch kind {
	case queryhandlers.KindRideDuration, queryhandlers.KindBikeTypePreference, queryhandlers.KindUsageByTime,
		queryhandlers.KindDistanceAnalysis, queryhandlers.KindUserTypeDistribution:
		return &ComparisonHandler{kind: kind}, nil
	}
	return nil, queryhandlers.UnsupportedKindError(handlerType, kind)
}

func (ch *ComparisonHandler) GetType() queryhandlers.Kind {
	return ch.kind
}

func (ch *ComparisonHandler) GenerateResponse(trips []trip.Trip) (any, error) {
	userTypes := aggregator.UserTypes(trips)

	switch ch.kind {
	case queryhandlers.KindRideDuration:
		shortRides := filter.Where(trips, queryhandlers.ShortRides)
		return queryhandlers.BoxStatsByUserType(shortRides, userTypes, durationOf), nil
	case queryhandlers.KindBikeTypePreference:
		return aggregator.Crosstab(trips, "rideable_type", nil, userTypes, aggregator.BikeTypeOf, aggregator.UserTypeOf), nil
	case queryhandlers.KindUsageByTime:
		return aggregator.Crosstab(trips, "time_of_day", timeOfDayLabels(), userTypes, aggregator.TimeOfDayOf, aggregator.UserTypeOf), nil
	case queryhandlers.KindDistanceAnalysis:
		measured := filter.Where(trips, func(t trip.Trip) bool {
			return t.DistanceKm > 0 && t.DistanceKm <= queryhandlers.MaxChartDistanceKm
		})
		return queryhandlers.BoxStatsByUserType(measured, userTypes, distanceOf), nil
	case queryhandlers.KindUserTypeDistribution:
		return queryhandlers.CountBy(trips, aggregator.UserTypeOf), nil
	}
	return nil, queryhandlers.UnsupportedKindError(handlerType, ch.kind)
}

func timeOfDayLabels() []string {
	var labels []string
	for _, bucket := range trip.TimesOfDay() {
		labels = append(labels, bucket.String())
	}
	return labels
}

func durationOf(t trip.Trip) float64 { return t.DurationMinutes }

func distanceOf(t trip.Trip) float64 { return t.DistanceKm }
