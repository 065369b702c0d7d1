package heatmap

import (
	"sort"

	"bikeshare/aggregator"
	"bikeshare/domain/entities/station"
	"bikeshare/domain/entities/trip"
	"bikeshare/queryhandlers"
)

const (
	handlerType    = "heatmap-handler"
	TopHotStations = 50
)

// StationHeat amount of rides that begin at a station
type StationHeat struct {
	station.StationData
	Count int `json:"count"`
}

// HeatmapHandler builds two dimensional ride counts
type HeatmapHandler struct {
	kind queryhandlers.Kind
}

func NewHeatmapHandler(kind queryhandlers.Kind) (*HeatmapHandler, error) {
	switch kind {
	case queryhandlers.KindHourWeekday, queryhandlers.KindMemberCasualHourly,
		queryhandlers.KindStationPopularity, queryhandlers.KindMonthWeekday:
		return &HeatmapHandler{kind: kind}, nil
	}
	return nil, queryhandlers.UnsupportedKindError(handlerType, kind)
}

func (hh *HeatmapHandler) GetType() queryhandlers.Kind {
	return hh.kind
}

func (hh *HeatmapHandler) GenerateResponse(trips []trip.Trip) (any, error) {
	switch hh.kind {
	case queryhandlers.KindHourWeekday:
		return aggregator.Crosstab(trips, "hour", aggregator.Hours(), aggregator.WeekdayNames(), aggregator.HourOf, aggregator.WeekdayOf), nil
	case queryhandlers.KindMemberCasualHourly:
		return aggregator.Crosstab(trips, "user_type", aggregator.UserTypes(trips), aggregator.Hours(), aggregator.UserTypeOf, aggregator.HourOf), nil
	case queryhandlers.KindStationPopularity:
		return StationPopularity(trips, TopHotStations), nil
	case queryhandlers.KindMonthWeekday:
		return aggregator.Crosstab(trips, "month", aggregator.Months(trips), aggregator.WeekdayNames(), aggregator.MonthOf, aggregator.WeekdayOf), nil
	}
	return nil, queryhandlers.UnsupportedKindError(handlerType, hh.kind)
}

// StationPopularity counts rides by start station and start coordinates and returns the
// limit busiest ones. Trips without start station or coordinates are left out
func StationPopularity(trips []trip.Trip, limit int) []StationHeat {
	heats := make(map[string]*StationHeat)
	for idx := range trips {
		stationData := station.NewStationData(trips[idx])
		if stationData == nil {
			continue
		}

		key := stationData.GetKey()
		heat, ok := heats[key]
		if !ok {
			heat = &StationHeat{StationData: *stationData}
			heats[key] = heat
		}
		heat.Count++
	}

	ranked := make([]StationHeat, 0, len(heats))
	for _, heat := range heats {
		ranked = append(ranked, *heat)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].GetKey() < ranked[j].GetKey()
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
