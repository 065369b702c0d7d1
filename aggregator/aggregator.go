package aggregator

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"bikeshare/domain/business/describe"
	"bikeshare/domain/business/tripcounter"
	"bikeshare/domain/entities/trip"
)

const (
	aggregatorStr      = "aggregator"
	DefaultTopStations = 20
)

// Options of Build
// + TopStations: length of each popular stations ranking. DefaultTopStations if zero
type Options struct {
	TopStations int `yaml:"top_stations"`
}

func getLogMessage(method string, message string, err error) string {
	if err != nil {
		return fmt.Sprintf("[component: %s][method: %s][status: ERROR] %s: %s", aggregatorStr, method, message, err.Error())
	}
	return fmt.Sprintf("[component: %s][method: %s][status: OK] %s", aggregatorStr, method, message)
}

// Build computes every table over the trips. It does not modify trips
func Build(trips []trip.Trip, opts Options) *Tables {
	if opts.TopStations <= 0 {
		opts.TopStations = DefaultTopStations
	}

	userTypes := UserTypes(trips)
	tables := &Tables{
		HourlyUsage:     Crosstab(trips, "hour", Hours(), userTypes, HourOf, UserTypeOf),
		DailyUsage:      Crosstab(trips, "date", nil, userTypes, DateOf, UserTypeOf),
		WeekdayUsage:    Crosstab(trips, "day_of_week", WeekdayNames(), userTypes, WeekdayOf, UserTypeOf),
		PopularStations: BuildPopularStations(trips, opts.TopStations),
		BikeTypeUsage:   Crosstab(trips, "rideable_type", nil, userTypes, BikeTypeOf, UserTypeOf),
		DurationStats:   BuildDurationStats(trips, userTypes),
	}

	log.Debug(getLogMessage("Build", fmt.Sprintf("tables built from %v trips", len(trips)), nil))
	return tables
}

// BuildPopularStations returns the top start and end stations. Trips without a station
// name are not counted for that endpoint
func BuildPopularStations(trips []trip.Trip, limit int) PopularStations {
	counters := tripcounter.CountStations(trips)
	return PopularStations{
		Start: toStationCounts(counters.TopBy(limit, tripcounter.ByStart), tripcounter.ByStart),
		End:   toStationCounts(counters.TopBy(limit, tripcounter.ByEnd), tripcounter.ByEnd),
	}
}

func toStationCounts(counters []*tripcounter.TripCounter, value func(*tripcounter.TripCounter) int) []StationCount {
	stationCounts := make([]StationCount, 0, len(counters))
	for _, counter := range counters {
		stationCounts = append(stationCounts, StationCount{Name: counter.StationName, Count: value(counter)})
	}
	return stationCounts
}

// BuildDurationStats describes the duration of the rides of each user type
func BuildDurationStats(trips []trip.Trip, userTypes []string) []DurationStats {
	durations := make(map[string][]float64)
	for idx := range trips {
		userType := trips[idx].UserTypeKey()
		durations[userType] = append(durations[userType], trips[idx].DurationMinutes)
	}

	stats := make([]DurationStats, 0, len(userTypes))
	for _, userType := range userTypes {
		stats = append(stats, DurationStats{
			UserType: userType,
			Summary:  describe.Describe(durations[userType]),
		})
	}
	return stats
}
