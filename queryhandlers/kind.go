package queryhandlers

import (
	"errors"
	"fmt"
	"strings"

	"bikeshare/domain/entities/trip"
)

var ErrUnknownView = errors.New("unknown view")

// Kind identifies a view built over a filtered trip set
type Kind int

const (
	KindHourly Kind = iota + 1
	KindDaily
	KindWeekday
	KindMonthly
	KindRollingAverage
	KindUserTypeTotals

	KindHourWeekday
	KindMemberCasualHourly
	KindStationPopularity
	KindMonthWeekday

	KindRideDuration
	KindBikeTypePreference
	KindUsageByTime
	KindDistanceAnalysis
	KindUserTypeDistribution

	KindDurationDistribution
	KindDurationDistanceScatter

	KindPopularStartStations
	KindPopularEndStations

	KindStationActivity
	KindDurationDistance
	KindTimeUsagePattern

	KindHourlyDensity
	KindBubbleMap
	KindHexbinMap

	KindKPIs
	KindDataQuality
	KindSummary
)

var kindNames = map[Kind]string{
	KindHourly:                  "hourly",
	KindDaily:                   "daily",
	KindWeekday:                 "weekday",
	KindMonthly:                 "monthly",
	KindRollingAverage:          "rolling_average",
	KindUserTypeTotals:          "user_type_totals",
	KindHourWeekday:             "hour_weekday",
	KindMemberCasualHourly:      "member_casual_hourly",
	KindStationPopularity:       "station_popularity",
	KindMonthWeekday:            "month_weekday",
	KindRideDuration:            "ride_duration",
	KindBikeTypePreference:      "bike_type_preference",
	KindUsageByTime:             "usage_by_time",
	KindDistanceAnalysis:        "distance_analysis",
	KindUserTypeDistribution:    "user_type_distribution",
	KindDurationDistribution:    "duration_distribution",
	KindDurationDistanceScatter: "duration_distance_scatter",
	KindPopularStartStations:    "popular_start_stations",
	KindPopularEndStations:      "popular_end_stations",
	KindStationActivity:         "station_activity",
	KindDurationDistance:        "duration_distance",
	KindTimeUsagePattern:        "time_usage_pattern",
	KindHourlyDensity:           "hourly_density",
	KindBubbleMap:               "bubble_map",
	KindHexbinMap:               "hexbin_map",
	KindKPIs:                    "kpis",
	KindDataQuality:             "data_quality",
	KindSummary:                 "summary",
}

// Kinds returns every view kind in declaration order
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(kindNames))
	for kind := KindHourly; kind <= KindSummary; kind++ {
		kinds = append(kinds, kind)
	}
	return kinds
}

func ParseKind(value string) (Kind, error) {
	value = strings.TrimSpace(strings.ToLower(value))
	for kind, name := range kindNames {
		if name == value {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownView, value)
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Handler builds the data of a view
type Handler interface {
	GetType() Kind
	GenerateResponse(trips []trip.Trip) (any, error)
}

// Options of the views
// + Seed: seed used to down-sample
// + DensitySampleSize: max amount of points of a density map
// + ScatterSampleSize: max amount of points of a scatter or correlation view
// + HistogramBins: amount of bins of the duration histogram
type Options struct {
	Seed              int64 `yaml:"seed"`
	DensitySampleSize int   `yaml:"density_sample_size"`
	ScatterSampleSize int   `yaml:"scatter_sample_size"`
	HistogramBins     int   `yaml:"histogram_bins"`
}

func DefaultOptions() Options {
	return Options{
		Seed:              42,
		DensitySampleSize: 5000,
		ScatterSampleSize: 1000,
		HistogramBins:     50,
	}
}

// WithDefaults replaces every non positive value with its default
func (o Options) WithDefaults() Options {
	defaults := DefaultOptions()
	if o.Seed == 0 {
		o.Seed = defaults.Seed
	}
	if o.DensitySampleSize <= 0 {
		o.DensitySampleSize = defaults.DensitySampleSize
	}
	if o.ScatterSampleSize <= 0 {
		o.ScatterSampleSize = defaults.ScatterSampleSize
	}
	if o.HistogramBins <= 0 {
		o.HistogramBins = defaults.HistogramBins
	}
	return o
}

// UnsupportedKindError returns the error of a handler that does not build kind
func UnsupportedKindError(handlerType string, kind Kind) error {
	return fmt.Errorf("%w: %s is not handled by %s", ErrUnknownView, kind, handlerType)
}
