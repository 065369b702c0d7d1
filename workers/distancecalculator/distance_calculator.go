package distancecalculator

import (
	"github.com/umahmood/haversine"

	"bikeshare/domain/entities/trip"
)

// CoordinatePair start and end coordinates of a ride. Any of them can be nil
type CoordinatePair struct {
	Start *trip.Coordinates
	End   *trip.Coordinates
}

// CalculateDistance returns the distance in km between two points using haversine formula
// with an earth radius of 6371 km. If any point is missing the distance is 0
func CalculateDistance(start *trip.Coordinates, end *trip.Coordinates) float64 {
	if start == nil || end == nil {
		return 0
	}

	startPoint := haversine.Coord{Lat: start.Lat, Lon: start.Lng}
	endPoint := haversine.Coord{Lat: end.Lat, Lon: end.Lng}

	_, km := haversine.Distance(startPoint, endPoint)
	return km
}

// CalculateDistances applies CalculateDistance to each pair, keeping the order
func CalculateDistances(pairs []CoordinatePair) []float64 {
	distances := make([]float64, len(pairs))
	for idx := range pairs {
		distances[idx] = CalculateDistance(pairs[idx].Start, pairs[idx].End)
	}
	return distances
}
