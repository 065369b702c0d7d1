package aggregator

import (
	"errors"
	"fmt"
	"strings"

	"bikeshare/domain/business/describe"
)

var ErrUnknownTable = errors.New("unknown table")

// TableName identifies one of the precomputed tables
type TableName int

const (
	TableHourlyUsage TableName = iota
	TableDailyUsage
	TableWeekdayUsage
	TablePopularStations
	TableBikeTypeUsage
	TableDurationStats
)

var tableNames = map[TableName]string{
	TableHourlyUsage:     "hourly_usage",
	TableDailyUsage:      "daily_usage",
	TableWeekdayUsage:    "weekday_usage",
	TablePopularStations: "popular_stations",
	TableBikeTypeUsage:   "bike_type_usage",
	TableDurationStats:   "duration_stats",
}

// TableNames returns every table name in a fixed order
func TableNames() []TableName {
	return []TableName{
		TableHourlyUsage,
		TableDailyUsage,
		TableWeekdayUsage,
		TablePopularStations,
		TableBikeTypeUsage,
		TableDurationStats,
	}
}

func ParseTableName(value string) (TableName, error) {
	value = strings.TrimSpace(strings.ToLower(value))
	for name, str := range tableNames {
		if str == value {
			return name, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownTable, value)
}

func (tn TableName) String() string {
	if str, ok := tableNames[tn]; ok {
		return str
	}
	return fmt.Sprintf("table(%d)", int(tn))
}

// StationCount amount of rides of a station
type StationCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// PopularStations two independent rankings: stations where more rides begin and
// stations where more rides end
type PopularStations struct {
	Start []StationCount `json:"start_stations"`
	End   []StationCount `json:"end_stations"`
}

// DurationStats descriptive statistics of the ride duration of a user type
type DurationStats struct {
	UserType string `json:"user_type"`
	describe.Summary
}

// Tables the precomputed tables of a cleaned trip set
type Tables struct {
	HourlyUsage     *CountTable     `json:"hourly_usage"`
	DailyUsage      *CountTable     `json:"daily_usage"`
	WeekdayUsage    *CountTable     `json:"weekday_usage"`
	PopularStations PopularStations `json:"popular_stations"`
	BikeTypeUsage   *CountTable     `json:"bike_type_usage"`
	DurationStats   []DurationStats `json:"duration_stats"`
}

// Get returns the table with the given name
func (t *Tables) Get(name TableName) (any, error) {
	switch name {
	case TableHourlyUsage:
		return t.HourlyUsage, nil
	case TableDailyUsage:
		return t.DailyUsage, nil
	case TableWeekdayUsage:
		return t.WeekdayUsage, nil
	case TablePopularStations:
		return t.PopularStations, nil
	case TableBikeTypeUsage:
		return t.BikeTypeUsage, nil
	case TableDurationStats:
		return t.DurationStats, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownTable, name)
}

// CountTables returns the tables that are crosstabs, by name
func (t *Tables) CountTables() map[TableName]*CountTable {
	return map[TableName]*CountTable{
		TableHourlyUsage:   t.HourlyUsage,
		TableDailyUsage:    t.DailyUsage,
		TableWeekdayUsage:  t.WeekdayUsage,
		TableBikeTypeUsage: t.BikeTypeUsage,
	}
}
