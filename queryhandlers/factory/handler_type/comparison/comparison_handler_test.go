package comparison

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bikeshare/domain/entities/trip"
	"bikeshare/queryhandlers"
)

func comparisonTrip(userType string, minutes float64, distance float64) trip.Trip {
	return trip.Trip{RawTrip: trip.RawTrip{UserType: userType}, DurationMinutes: minutes, DistanceKm: distance}
}

func TestRideDuration(t *testing.T) {
	handler, err := NewComparisonHandler(queryhandlers.KindRideDuration)
	require.NoError(t, err)

	response, err := handler.GenerateResponse([]trip.Trip{
		comparisonTrip("member", 10, 1),
		comparisonTrip("member", 20, 1),
		comparisonTrip("member", 500, 1),
	})
	require.NoError(t, err)

	stats := response.([]queryhandlers.BoxStats)
	require.Len(t, stats, 2)
	assert.Equal(t, 0, stats[0].Count)
	assert.Equal(t, 2, stats[1].Count)
	assert.Equal(t, 20.0, stats[1].Max)
}

func TestDistanceAnalysis(t *testing.T) {
	handler, err := NewComparisonHandler(queryhandlers.KindDistanceAnalysis)
	require.NoError(t, err)

	response, err := handler.GenerateResponse([]trip.Trip{
		comparisonTrip("casual", 10, 0),
		comparisonTrip("casual", 10, 2),
		comparisonTrip("casual", 10, 4),
		comparisonTrip("casual", 10, 12),
	})
	require.NoError(t, err)

	stats := response.([]queryhandlers.BoxStats)
	assert.Equal(t, "casual", stats[0].UserType)
	assert.Equal(t, 2, stats[0].Count)
	assert.Equal(t, 3.0, stats[0].Mean)
}

func TestUserTypeDistribution(t *testing.T) {
	handler, err := NewComparisonHandler(queryhandlers.KindUserTypeDistribution)
	require.NoError(t, err)

	response, err := handler.GenerateResponse([]trip.Trip{
		comparisonTrip("casual", 10, 0),
		comparisonTrip("member", 10, 0),
		comparisonTrip("member", 10, 0),
		comparisonTrip("", 10, 0),
	})
	require.NoError(t, err)

	assert.Equal(t, []queryhandlers.CategoryCount{
		{Name: "member", Count: 2, Percentage: 50},
		{Name: "casual", Count: 1, Percentage: 25},
		{Name: "unknown", Count: 1, Percentage: 25},
	}, response)
}
