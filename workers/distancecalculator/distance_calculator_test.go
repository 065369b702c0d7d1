package distancecalculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bikeshare/domain/entities/trip"
)

func TestCalculateDistance(t *testing.T) {
	start := &trip.Coordinates{Lat: 38.90, Lng: -77.04}
	end := &trip.Coordinates{Lat: 38.91, Lng: -77.03}

	distance := CalculateDistance(start, end)
	assert.InDelta(t, 1.41, distance, 0.02)
	assert.True(t, distance >= 1.3 && distance <= 1.5)
}

func TestCalculateDistanceProperties(t *testing.T) {
	points := []*trip.Coordinates{
		{Lat: 38.90, Lng: -77.04},
		{Lat: 41.88, Lng: -87.63},
		{Lat: -34.60, Lng: -58.38},
		{Lat: 0, Lng: 0},
	}

	for _, a := range points {
		assert.Equal(t, 0.0, CalculateDistance(a, a))
		for _, b := range points {
			assert.InDelta(t, CalculateDistance(a, b), CalculateDistance(b, a), 1e-9)
			assert.GreaterOrEqual(t, CalculateDistance(a, b), 0.0)
		}
	}
}

func TestCalculateDistanceMissingCoordinates(t *testing.T) {
	point := &trip.Coordinates{Lat: 38.90, Lng: -77.04}

	assert.Equal(t, 0.0, CalculateDistance(nil, point))
	assert.Equal(t, 0.0, CalculateDistance(point, nil))
	assert.Equal(t, 0.0, CalculateDistance(nil, nil))
}

func TestCalculateDistances(t *testing.T) {
	a := &trip.Coordinates{Lat: 38.90, Lng: -77.04}
	b := &trip.Coordinates{Lat: 38.91, Lng: -77.03}

	distances := CalculateDistances([]CoordinatePair{
		{Start: a, End: b},
		{Start: a, End: nil},
		{Start: b, End: a},
	})

	require.Len(t, distances, 3)
	assert.InDelta(t, 1.41, distances[0], 0.02)
	assert.Equal(t, 0.0, distances[1])
	assert.InDelta(t, distances[0], distances[2], 1e-9)

	assert.Empty(t, CalculateDistances(nil))
}
