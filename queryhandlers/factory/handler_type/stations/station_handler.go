package stations

import (
	"bikeshare/aggregator"
	"bikeshare/domain/entities/trip"
	"bikeshare/queryhandlers"
)

const (
	handlerType     = "station-handler"
	TopChartStation = 10
)

// StationHandler ranks stations by rides
type StationHandler struct {
	kind queryhandlers.Kind
}

func NewStationHandler(kind queryhandlers.Kind) (*StationHandler, error) {
	switch kind {
	case queryhandlers.KindPopularStartStations, queryhandlers.KindPopularEndStations:
		return &StationHandler{kind: kind}, nil
	}
	return nil, queryhandlers.UnsupportedKindError(handlerType, kind)
}

func (sh *StationHandler) GetType() queryhandlers.Kind {
	return sh.kind
}

func (sh *StationHandler) GenerateResponse(trips []trip.Trip) (any, error) {
	popular := aggregator.BuildPopularStations(trips, TopChartStation)

	switch sh.kind {
	case queryhandlers.KindPopularStartStations:
		return popular.Start, nil
	case queryhandlers.KindPopularEndStations:
		return popular.End, nil
	}
	return nil, queryhandlers.UnsupportedKindError(handlerType, sh.kind)
}
