package durationanalysis

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bikeshare/domain/entities/trip"
	"bikeshare/queryhandlers"
)

func durationTrip(id int, userType string, minutes float64, distance float64) trip.Trip {
	return trip.Trip{
		RawTrip:         trip.RawTrip{RideID: strconv.Itoa(id), UserType: userType, StartedAt: time.Date(2025, 10, 1, 8, 0, 0, 0, time.UTC)},
		DurationMinutes: minutes,
		DistanceKm:      distance,
	}
}

func TestBuildHistogram(t *testing.T) {
	trips := []trip.Trip{
		durationTrip(1, "member", 10, 1),
		durationTrip(2, "member", 20, 1),
		durationTrip(3, "casual", 30, 1),
		durationTrip(4, "casual", 50, 1),
	}

	histogram := BuildHistogram(trips, []string{"casual", "member"}, 4)

	assert.Equal(t, []float64{10, 20, 30, 40, 50}, histogram.Edges)
	require.Len(t, histogram.Series, 2)
	assert.Equal(t, []int{0, 0, 1, 1}, histogram.Series[0].Counts)
	assert.Equal(t, []int{1, 1, 0, 0}, histogram.Series[1].Counts)
}

func TestBuildHistogramSingleValue(t *testing.T) {
	histogram := BuildHistogram([]trip.Trip{durationTrip(1, "member", 5, 0)}, []string{"member"}, 2)
	assert.Equal(t, []float64{5, 5.5, 6}, histogram.Edges)
	assert.Equal(t, []int{1, 0}, histogram.Series[0].Counts)
}

func TestDurationDistributionSkipsLongRides(t *testing.T) {
	handler, err := NewDurationHandler(queryhandlers.KindDurationDistribution, queryhandlers.Options{HistogramBins: 2})
	require.NoError(t, err)

	response, err := handler.GenerateResponse([]trip.Trip{
		durationTrip(1, "member", 10, 1),
		durationTrip(2, "member", 20, 1),
		durationTrip(3, "member", 300, 1),
	})
	require.NoError(t, err)

	histogram := response.(Histogram)
	assert.Equal(t, 20.0, histogram.Edges[len(histogram.Edges)-1])
}

func TestDurationDistanceScatter(t *testing.T) {
	var trips []trip.Trip
	for i := 0; i < 50; i++ {
		trips = append(trips, durationTrip(i, "member", float64(i+1), 2))
	}
	trips = append(trips, durationTrip(100, "casual", 30, 25))

	handler, err := NewDurationHandler(queryhandlers.KindDurationDistanceScatter, queryhandlers.Options{ScatterSampleSize: 10})
	require.NoError(t, err)

	response, err := handler.GenerateResponse(trips)
	require.NoError(t, err)
	points := response.([]ScatterPoint)
	assert.Len(t, points, 10)
	for _, point := range points {
		assert.LessOrEqual(t, point.DistanceKm, queryhandlers.MaxChartDistanceKm)
	}

	again, err := handler.GenerateResponse(trips)
	require.NoError(t, err)
	assert.Equal(t, points, again)
}
