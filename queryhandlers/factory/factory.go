package factory

import (
	"bikeshare/domain/entities/trip"
	"bikeshare/queryhandlers"
	"bikeshare/queryhandlers/factory/handler_type/bubble"
	"bikeshare/queryhandlers/factory/handler_type/comparison"
	"bikeshare/queryhandlers/factory/handler_type/durationanalysis"
	"bikeshare/queryhandlers/factory/handler_type/geographic"
	"bikeshare/queryhandlers/factory/handler_type/heatmap"
	"bikeshare/queryhandlers/factory/handler_type/metrics"
	"bikeshare/queryhandlers/factory/handler_type/stations"
	"bikeshare/queryhandlers/factory/handler_type/timeseries"
)

// NewQueryHandler returns the handler that builds the view of the given kind
func NewQueryHandler(kind queryhandlers.Kind, options queryhandlers.Options) (queryhandlers.Handler, error) {
	switch kind {
	case queryhandlers.KindHourly, queryhandlers.KindDaily, queryhandlers.KindWeekday,
		queryhandlers.KindMonthly, queryhandlers.KindRollingAverage, queryhandlers.KindUserTypeTotals:
		return timeseries.NewTimeSeriesHandler(kind)

	case queryhandlers.KindHourWeekday, queryhandlers.KindMemberCasualHourly,
		queryhandlers.KindStationPopularity, queryhandlers.KindMonthWeekday:
		return heatmap.NewHeatmapHandler(kind)

	case queryhandlers.KindRideDuration, queryhandlers.KindBikeTypePreference, queryhandlers.KindUsageByTime,
		queryhandlers.KindDistanceAnalysis, queryhandlers.KindUserTypeDistribution:
		return comparison.NewComparisonHandler(kind)

	case queryhandlers.KindDurationDistribution, queryhandlers.KindDurationDistanceScatter:
		return durationanalysis.NewDurationHandler(kind, options)

	case queryhandlers.KindPopularStartStations, queryhandlers.KindPopularEndStations:
		return stations.NewStationHandler(kind)

	case queryhandlers.KindStationActivity, queryhandlers.KindDurationDistance, queryhandlers.KindTimeUsagePattern:
		return bubble.NewBubbleHandler(kind, options)

	case queryhandlers.KindHourlyDensity, queryhandlers.KindBubbleMap, queryhandlers.KindHexbinMap:
		return geographic.NewGeographicHandler(kind, options)

	case queryhandlers.KindKPIs, queryhandlers.KindDataQuality, queryhandlers.KindSummary:
		return metrics.NewMetricsHandler(kind)
	}

	return nil, queryhandlers.UnsupportedKindError("factory", kind)
}

// GenerateView parses the view name and builds its data over trips
func GenerateView(name string, options queryhandlers.Options, trips []trip.Trip) (any, error) {
	kind, err := queryhandlers.ParseKind(name)
	if err != nil {
		return nil, err
	}

	handler, err := NewQueryHandler(kind, options)
	if err != nil {
		return nil, err
	}
	return handler.GenerateResponse(trips)
}
