package metrics

import (
	"time"

	"bikeshare/domain/business/describe"
	"bikeshare/domain/entities/trip"
	"bikeshare/queryhandlers"
)

const (
	handlerType      = "metrics-handler"
	ElectricBikeType = "electric_bike"
	dateTimeLayout   = "2006-01-02 15:04:05"
)

// KPIs key indicators of a trip set. NoData is true when the set is empty
type KPIs struct {
	TotalRides         int     `json:"total_rides"`
	MemberRides        int     `json:"member_rides"`
	MemberPercentage   float64 `json:"member_percentage"`
	AvgDurationMinutes float64 `json:"avg_duration_minutes"`
	ElectricRides      int     `json:"electric_rides"`
	ElectricPercentage float64 `json:"electric_percentage"`
	NoData             bool    `json:"no_data"`
}

// DataQuality amount of trips without station names
type DataQuality struct {
	TotalRecords           int     `json:"total_records"`
	MissingStartStations   int     `json:"missing_start_stations"`
	MissingStartPercentage float64 `json:"missing_start_percentage"`
	MissingEndStations     int     `json:"missing_end_stations"`
	MissingEndPercentage   float64 `json:"missing_end_percentage"`
	NoData                 bool    `json:"no_data"`
}

// DateRange first and last start of a trip set. Empty when there are no trips
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Summary overview of a trip set
// + UserTypeRatio: share of rides of each user type, from 0 to 1
// + BikeTypeDistribution: amount of rides of each bike type
type Summary struct {
	TotalRecords         int                `json:"total_records"`
	DateRange            DateRange          `json:"date_range"`
	UserTypeRatio        map[string]float64 `json:"member_casual_ratio"`
	BikeTypeDistribution map[string]int     `json:"bike_type_distribution"`
	NoData               bool               `json:"no_data"`
}

// MetricsHandler builds indicators of a trip set
type MetricsHandler struct {
	kind queryhandlers.Kind
}

func NewMetricsHandler(kind queryhandlers.Kind) (*MetricsHandler, error) {
	switch kind {
	case queryhandlers.KindKPIs, queryhandlers.KindDataQuality, queryhandlers.KindSummary:
		return &MetricsHandler{kind: kind}, nil
	}
	return nil, queryhandlers.UnsupportedKindError(handlerType, kind)
}

func (mh *MetricsHandler) GetType() queryhandlers.Kind {
	return mh.kind
}

func (mh *MetricsHandler) GenerateResponse(trips []trip.Trip) (any, error) {
	switch mh.kind {
	case queryhandlers.KindKPIs:
		return BuildKPIs(trips), nil
	case queryhandlers.KindDataQuality:
		return BuildDataQuality(trips), nil
	case queryhandlers.KindSummary:
		return BuildSummary(trips), nil
	}
	return nil, queryhandlers.UnsupportedKindError(handlerType, mh.kind)
}

func BuildKPIs(trips []trip.Trip) KPIs {
	kpis := KPIs{TotalRides: len(trips), NoData: len(trips) == 0}

	durations := make([]float64, 0, len(trips))
	for idx := range trips {
		if trips[idx].UserType == trip.UserTypeMember {
			kpis.MemberRides++
		}
		if trips[idx].BikeType == ElectricBikeType {
			kpis.ElectricRides++
		}
		durations = append(durations, trips[idx].DurationMinutes)
	}

	kpis.MemberPercentage = queryhandlers.Percentage(kpis.MemberRides, kpis.TotalRides)
	kpis.ElectricPercentage = queryhandlers.Percentage(kpis.ElectricRides, kpis.TotalRides)
	kpis.AvgDurationMinutes, _ = describe.Mean(durations)
	return kpis
}

func BuildDataQuality(trips []trip.Trip) DataQuality {
	quality := DataQuality{TotalRecords: len(trips), NoData: len(trips) == 0}
	for idx := range trips {
		if _, ok := trips[idx].StartStationName(); !ok {
			quality.MissingStartStations++
		}
		if _, ok := trips[idx].EndStationName(); !ok {
			quality.MissingEndStations++
		}
	}

	quality.MissingStartPercentage = queryhandlers.Percentage(quality.MissingStartStations, quality.TotalRecords)
	quality.MissingEndPercentage = queryhandlers.Percentage(quality.MissingEndStations, quality.TotalRecords)
	return quality
}

func BuildSummary(trips []trip.Trip) Summary {
	summary := Summary{
		TotalRecords:         len(trips),
		UserTypeRatio:        make(map[string]float64),
		BikeTypeDistribution: make(map[string]int),
		NoData:               len(trips) == 0,
	}
	if summary.NoData {
		return summary
	}

	userTypeCounts := make(map[string]int)
	first, last := trips[0].StartedAt, trips[0].StartedAt
	for idx := range trips {
		startedAt := trips[idx].StartedAt
		if startedAt.Before(first) {
			first = startedAt
		}
		if startedAt.After(last) {
			last = startedAt
		}
		userTypeCounts[trips[idx].UserTypeKey()]++
		summary.BikeTypeDistribution[trips[idx].BikeTypeKey()]++
	}

	for userType, count := range userTypeCounts {
		summary.UserTypeRatio[userType] = float64(count) / float64(len(trips))
	}
	summary.DateRange = DateRange{Start: formatDateTime(first), End: formatDateTime(last)}
	return summary
}

func formatDateTime(value time.Time) string {
	return value.Format(dateTimeLayout)
}
