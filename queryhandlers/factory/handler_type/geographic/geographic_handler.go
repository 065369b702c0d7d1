package geographic

import (
	"sort"

	"bikeshare/domain/business/durationaccumulator"
	"bikeshare/domain/entities/station"
	"bikeshare/domain/entities/trip"
	"bikeshare/filter"
	"bikeshare/queryhandlers"
)

const (
	handlerType    = "geographic-handler"
	TopMapStations = 100
)

// DensityPoint start point of a ride colored by hour
type DensityPoint struct {
	RideID       string  `json:"ride_id"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	Hour         int     `json:"hour"`
	StartStation *string `json:"start_station_name"`
	UserType     string  `json:"user_type"`
	BikeType     string  `json:"rideable_type"`
}

// Point a start coordinate
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// GeographicHandler builds map views. Only trips with coordinates in both endpoints are used
type GeographicHandler struct {
	kind    queryhandlers.Kind
	options queryhandlers.Options
}

func NewGeographicHandler(kind queryhandlers.Kind, options queryhandlers.Options) (*GeographicHandler, error) {
	switch kind {
	case queryhandlers.KindHourlyDensity, queryhandlers.KindBubbleMap, queryhandlers.KindHexbinMap:
		return &GeographicHandler{kind: kind, options: options.WithDefaults()}, nil
	}
	return nil, queryhandlers.UnsupportedKindError(handlerType, kind)
}

func (gh *GeographicHandler) GetType() queryhandlers.Kind {
	return gh.kind
}

func (gh *GeographicHandler) GenerateResponse(trips []trip.Trip) (any, error) {
	geoTrips := filter.GeoSubset(trips)

	switch gh.kind {
	case queryhandlers.KindHourlyDensity:
		return densityPoints(filter.Sample(geoTrips, gh.options.DensitySampleSize, gh.options.Seed)), nil
	case queryhandlers.KindBubbleMap:
		return StationUsages(trips, TopMapStations), nil
	case queryhandlers.KindHexbinMap:
		points := make([]Point, 0, len(geoTrips))
		for idx := range geoTrips {
			points = append(points, Point{Lat: geoTrips[idx].Start.Lat, Lng: geoTrips[idx].Start.Lng})
		}
		return points, nil
	}
	return nil, queryhandlers.UnsupportedKindError(handlerType, gh.kind)
}

func densityPoints(trips []trip.Trip) []DensityPoint {
	points := make([]DensityPoint, 0, len(trips))
	for idx := range trips {
		points = append(points, DensityPoint{
			RideID:       trips[idx].RideID,
			Lat:          trips[idx].Start.Lat,
			Lng:          trips[idx].Start.Lng,
			Hour:         trips[idx].Hour,
			StartStation: trips[idx].StartStation,
			UserType:     trips[idx].UserTypeKey(),
			BikeType:     trips[idx].BikeTypeKey(),
		})
	}
	return points
}

// StationUsages groups rides by start station and returns the limit stations with more rides
func StationUsages(trips []trip.Trip, limit int) []station.StationUsage {
	stations := make(map[string]*station.StationData)
	accumulators := make(map[string]*durationaccumulator.DurationAccumulator)
	for idx := range trips {
		stationData := station.NewStationData(trips[idx])
		if stationData == nil {
			continue
		}

		key := stationData.GetKey()
		accumulator, ok := accumulators[key]
		if !ok {
			accumulator = durationaccumulator.NewDurationAccumulator()
			accumulators[key] = accumulator
			stations[key] = stationData
		}
		accumulator.UpdateAccumulator(trips[idx].DurationMinutes, trips[idx].UserType == trip.UserTypeMember)
	}

	usages := make([]station.StationUsage, 0, len(accumulators))
	for key, accumulator := range accumulators {
		usages = append(usages, station.StationUsage{
			Station:     *stations[key],
			RideCount:   accumulator.Counter,
			AvgDuration: accumulator.GetAverageDuration(),
			MemberRatio: accumulator.GetMemberRatio(),
		})
	}

	sort.Slice(usages, func(i, j int) bool {
		if usages[i].RideCount != usages[j].RideCount {
			return usages[i].RideCount > usages[j].RideCount
		}
		return usages[i].Station.GetKey() < usages[j].Station.GetKey()
	})
	if len(usages) > limit {
		usages = usages[:limit]
	}
	return usages
}
