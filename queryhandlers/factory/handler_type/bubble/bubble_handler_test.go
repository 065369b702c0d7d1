package bubble

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bikeshare/domain/entities/trip"
	"bikeshare/queryhandlers"
)

func bubbleTrip(start string, end string, hour int, userType string, bikeType string) trip.Trip {
	t := trip.Trip{RawTrip: trip.RawTrip{UserType: userType, BikeType: bikeType}, Hour: hour, DurationMinutes: 10, DistanceKm: 2}
	if start != "" {
		t.StartStation = &start
	}
	if end != "" {
		t.EndStation = &end
	}
	return t
}

func TestStationActivities(t *testing.T) {
	trips := []trip.Trip{
		bubbleTrip("A", "B", 8, "member", "classic_bike"),
		bubbleTrip("A", "C", 8, "member", "classic_bike"),
		bubbleTrip("A", "B", 9, "casual", "electric_bike"),
		bubbleTrip("", "B", 9, "casual", "electric_bike"),
		bubbleTrip("C", "", 9, "casual", "electric_bike"),
	}

	activities := StationActivities(trips, 2)
	require.Len(t, activities, 2)
	assert.Equal(t, StationActivity{Name: "A", StartCount: 3, EndCount: 0, TotalActivity: 3, NetFlow: 3}, activities[0])
	assert.Equal(t, StationActivity{Name: "B", StartCount: 0, EndCount: 3, TotalActivity: 3, NetFlow: -3}, activities[1])
}

func TestTimeUsagePatterns(t *testing.T) {
	trips := []trip.Trip{
		bubbleTrip("", "", 8, "member", "electric_bike"),
		bubbleTrip("", "", 8, "member", "classic_bike"),
		bubbleTrip("", "", 8, "member", "electric_bike"),
		bubbleTrip("", "", 8, "casual", "electric_bike"),
		bubbleTrip("", "", 8, "casual", "classic_bike"),
		bubbleTrip("", "", 17, "member", "docked_bike"),
	}

	assert.Equal(t, []UsagePattern{
		{Hour: 8, UserType: "casual", BikeType: "classic_bike", Count: 1},
		{Hour: 8, UserType: "member", BikeType: "electric_bike", Count: 2},
		{Hour: 17, UserType: "member", BikeType: "docked_bike", Count: 1},
	}, TimeUsagePatterns(trips))
}

func TestDurationDistance(t *testing.T) {
	handler, err := NewBubbleHandler(queryhandlers.KindDurationDistance, queryhandlers.DefaultOptions())
	require.NoError(t, err)

	long := bubbleTrip("", "", 8, "casual", "classic_bike")
	long.DurationMinutes = 200

	response, err := handler.GenerateResponse([]trip.Trip{
		bubbleTrip("", "", 8, "member", "classic_bike"),
		bubbleTrip("", "", 9, "member", "classic_bike"),
		long,
	})
	require.NoError(t, err)

	bubbles := response.([]UserTypeBubble)
	require.Len(t, bubbles, 1, "user types without rides are left out")
	assert.Equal(t, UserTypeBubble{UserType: "member", AvgDuration: 10, AvgDistance: 2, Count: 2, AvgSpeedKmh: 12}, bubbles[0])
}
