package durationanalysis

import (
	"math"

	"bikeshare/aggregator"
	"bikeshare/domain/entities/trip"
	"bikeshare/filter"
	"bikeshare/queryhandlers"
)

const handlerType = "duration-handler"

// Histogram ride durations binned with equal width. Every series shares Edges.
// Bin i covers [Edges[i], Edges[i+1]); the last one also includes its upper edge
type Histogram struct {
	Edges  []float64         `json:"edges"`
	Series []HistogramSeries `json:"series"`
}

type HistogramSeries struct {
	UserType string `json:"user_type"`
	Counts   []int  `json:"counts"`
}

// ScatterPoint duration and distance of a ride
type ScatterPoint struct {
	RideID          string  `json:"ride_id"`
	UserType        string  `json:"user_type"`
	DistanceKm      float64 `json:"distance_km"`
	DurationMinutes float64 `json:"duration_minutes"`
}

// DurationHandler builds views about ride duration
type DurationHandler struct {
	kind    queryhandlers.Kind
	options queryhandlers.Options
}

func NewDurationHandler(kind queryhandlers.Kind, options queryhandlers.Options) (*DurationHandler, error) {
	switch kind {
	case queryhandlers.KindDurationDistribution, queryhandlers.KindDurationDistanceScatter:
		return &DurationHandler{kind: kind, options: options.WithDefaults()}, nil
	}
	return nil, queryhandlers.UnsupportedKindError(handlerType, kind)
}

func (dh *DurationHandler) GetType() queryhandlers.Kind {
	return dh.kind
}

func (dh *DurationHandler) GenerateResponse(trips []trip.Trip) (any, error) {
	switch dh.kind {
	case queryhandlers.KindDurationDistribution:
		shortRides := filter.Where(trips, queryhandlers.ShortRides)
		return BuildHistogram(shortRides, aggregator.UserTypes(shortRides), dh.options.HistogramBins), nil
	case queryhandlers.KindDurationDistanceScatter:
		return dh.scatter(trips), nil
	}
	return nil, queryhandlers.UnsupportedKindError(handlerType, dh.kind)
}

func (dh *DurationHandler) scatter(trips []trip.Trip) []ScatterPoint {
	candidates := filter.Where(trips, func(t trip.Trip) bool {
		return queryhandlers.ShortRides(t) && t.DistanceKm <= queryhandlers.MaxChartDistanceKm
	})
	sample := filter.Sample(candidates, dh.options.ScatterSampleSize, dh.options.Seed)

	points := make([]ScatterPoint, 0, len(sample))
	for idx := range sample {
		points = append(points, ScatterPoint{
			RideID:          sample[idx].RideID,
			UserType:        sample[idx].UserTypeKey(),
			DistanceKm:      sample[idx].DistanceKm,
			DurationMinutes: sample[idx].DurationMinutes,
		})
	}
	return points
}

// BuildHistogram splits the range of durations in bins of equal width. With no trips the
// histogram has no edges
func BuildHistogram(trips []trip.Trip, userTypes []string, bins int) Histogram {
	histogram := Histogram{Edges: []float64{}, Series: make([]HistogramSeries, 0, len(userTypes))}
	if len(trips) == 0 || bins <= 0 {
		for _, userType := range userTypes {
			histogram.Series = append(histogram.Series, HistogramSeries{UserType: userType, Counts: []int{}})
		}
		return histogram
	}

	minimum, maximum := math.Inf(1), math.Inf(-1)
	for idx := range trips {
		minimum = math.Min(minimum, trips[idx].DurationMinutes)
		maximum = math.Max(maximum, trips[idx].DurationMinutes)
	}
	if maximum == minimum {
		maximum = minimum + 1
	}

	width := (maximum - minimum) / float64(bins)
	histogram.Edges = make([]float64, bins+1)
	for idx := range histogram.Edges {
		histogram.Edges[idx] = minimum + float64(idx)*width
	}

	counts := make(map[string][]int, len(userTypes))
	for _, userType := range userTypes {
		counts[userType] = make([]int, bins)
	}
	for idx := range trips {
		bin := int((trips[idx].DurationMinutes - minimum) / width)
		if bin >= bins {
			bin = bins - 1
		}
		if userCounts, ok := counts[trips[idx].UserTypeKey()]; ok {
			userCounts[bin]++
		}
	}

	for _, userType := range userTypes {
		histogram.Series = append(histogram.Series, HistogramSeries{UserType: userType, Counts: counts[userType]})
	}
	return histogram
}
