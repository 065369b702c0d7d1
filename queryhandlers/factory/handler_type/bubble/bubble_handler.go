package bubble

import (
	"sort"
	"strconv"

	"bikeshare/aggregator"
	"bikeshare/domain/business/distanceaccumulator"
	"bikeshare/domain/business/tripcounter"
	"bikeshare/domain/entities/trip"
	"bikeshare/filter"
	"bikeshare/queryhandlers"
)

const (
	handlerType       = "bubble-handler"
	TopActiveStations = 30
)

// StationActivity rides that begin and end at a station
// + NetFlow: StartCount - EndCount
type StationActivity struct {
	Name          string `json:"station_name"`
	StartCount    int    `json:"start_count"`
	EndCount      int    `json:"end_count"`
	TotalActivity int    `json:"total_activity"`
	NetFlow       int    `json:"net_flow"`
}

// UserTypeBubble average ride of a user type
type UserTypeBubble struct {
	UserType    string  `json:"user_type"`
	AvgDuration float64 `json:"avg_duration"`
	AvgDistance float64 `json:"avg_distance"`
	Count       int     `json:"count"`
	AvgSpeedKmh float64 `json:"avg_speed_kmh"`
}

// UsagePattern most used bike type in an hour by a user type
type UsagePattern struct {
	Hour     int    `json:"hour"`
	UserType string `json:"user_type"`
	BikeType string `json:"rideable_type"`
	Count    int    `json:"count"`
}

// BubbleHandler builds the data of bubble charts
type BubbleHandler struct {
	kind    queryhandlers.Kind
	options queryhandlers.Options
}

func NewBubbleHandler(kind queryhandlers.Kind, options queryhandlers.Options) (*BubbleHandler, error) {
	switch kind {
	case queryhandlers.KindStationActivity, queryhandlers.KindDurationDistance, queryhandlers.KindTimeUsagePattern:
		return &BubbleHandler{kind: kind, options: options.WithDefaults()}, nil
	}
	return nil, queryhandlers.UnsupportedKindError(handlerType, kind)
}

func (bh *BubbleHandler) GetType() queryhandlers.Kind {
	return bh.kind
}

func (bh *BubbleHandler) GenerateResponse(trips []trip.Trip) (any, error) {
	switch bh.kind {
	case queryhandlers.KindStationActivity:
		return StationActivities(trips, TopActiveStations), nil
	case queryhandlers.KindDurationDistance:
		return bh.durationDistance(trips)
	case queryhandlers.KindTimeUsagePattern:
		return TimeUsagePatterns(trips), nil
	}
	return nil, queryhandlers.UnsupportedKindError(handlerType, bh.kind)
}

// StationActivities merges start and end counts of each station and returns the limit
// stations with more activity
func StationActivities(trips []trip.Trip, limit int) []StationActivity {
	counters := tripcounter.CountStations(trips)
	top := counters.TopBy(limit, tripcounter.ByTotal)

	activities := make([]StationActivity, 0, len(top))
	for _, counter := range top {
		activities = append(activities, StationActivity{
			Name:          counter.StationName,
			StartCount:    counter.StartCounter,
			EndCount:      counter.EndCounter,
			TotalActivity: counter.GetTotal(),
			NetFlow:       counter.GetNetFlow(),
		})
	}
	return activities
}

func (bh *BubbleHandler) durationDistance(trips []trip.Trip) ([]UserTypeBubble, error) {
	candidates := filter.Where(trips, func(t trip.Trip) bool {
		return queryhandlers.ShortRides(t) && t.DistanceKm <= queryhandlers.MaxChartDistanceKm
	})
	sample := filter.Sample(candidates, bh.options.ScatterSampleSize, bh.options.Seed)

	accumulators := make(map[string]*distanceaccumulator.DistanceAccumulator)
	for idx := range sample {
		userType := sample[idx].UserTypeKey()
		accumulator, ok := accumulators[userType]
		if !ok {
			accumulator = distanceaccumulator.NewDistanceAccumulator(userType)
			accumulators[userType] = accumulator
		}
		accumulator.UpdateAccumulator(sample[idx].DistanceKm, sample[idx].DurationMinutes)
	}

	bubbles := make([]UserTypeBubble, 0, len(accumulators))
	for _, userType := range aggregator.UserTypes(sample) {
		accumulator, ok := accumulators[userType]
		if !ok {
			continue
		}

		avgDistance, err := accumulator.GetAverageDistance()
		if err != nil {
			return nil, err
		}
		avgDuration, err := accumulator.GetAverageDuration()
		if err != nil {
			return nil, err
		}
		avgSpeed, err := accumulator.GetAverageSpeed()
		if err != nil {
			return nil, err
		}

		bubbles = append(bubbles, UserTypeBubble{
			UserType:    userType,
			AvgDuration: avgDuration,
			AvgDistance: avgDistance,
			Count:       accumulator.Counter,
			AvgSpeedKmh: avgSpeed,
		})
	}
	return bubbles, nil
}

// TimeUsagePatterns returns, for each observed hour and user type, the bike type with more
// rides. Ties go to the bike type that sorts first
func TimeUsagePatterns(trips []trip.Trip) []UsagePattern {
	counts := make(map[string]map[string]int)
	for idx := range trips {
		key := strconv.Itoa(trips[idx].Hour) + "|" + trips[idx].UserTypeKey()
		if counts[key] == nil {
			counts[key] = make(map[string]int)
		}
		counts[key][trips[idx].BikeTypeKey()]++
	}

	userTypes := aggregator.UserTypes(trips)
	patterns := make([]UsagePattern, 0, len(counts))
	for hour := 0; hour < 24; hour++ {
		for _, userType := range userTypes {
			bikeCounts, ok := counts[strconv.Itoa(hour)+"|"+userType]
			if !ok {
				continue
			}

			bikeTypes := make([]string, 0, len(bikeCounts))
			for bikeType := range bikeCounts {
				bikeTypes = append(bikeTypes, bikeType)
			}
			sort.Strings(bikeTypes)

			best := bikeTypes[0]
			for _, bikeType := range bikeTypes[1:] {
				if bikeCounts[bikeType] > bikeCounts[best] {
					best = bikeType
				}
			}
			patterns = append(patterns, UsagePattern{Hour: hour, UserType: userType, BikeType: best, Count: bikeCounts[best]})
		}
	}
	return patterns
}
