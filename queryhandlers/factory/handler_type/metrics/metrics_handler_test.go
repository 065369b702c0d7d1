package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bikeshare/domain/entities/trip"
	"bikeshare/queryhandlers"
)

func metricTrip(userType string, bikeType string, start time.Time, minutes float64, startStation string) trip.Trip {
	t := trip.Trip{
		RawTrip:         trip.RawTrip{UserType: userType, BikeType: bikeType, StartedAt: start},
		DurationMinutes: minutes,
	}
	if startStation != "" {
		t.StartStation = &startStation
	}
	return t
}

func fixture() []trip.Trip {
	base := time.Date(2025, 10, 1, 8, 0, 0, 0, time.UTC)
	return []trip.Trip{
		metricTrip("member", "electric_bike", base.Add(48*time.Hour), 10, "Union"),
		metricTrip("member", "classic_bike", base, 20, ""),
		metricTrip("casual", "electric_bike", base.Add(time.Hour), 30, "Dupont"),
		metricTrip("member", "classic_bike", base.Add(2*time.Hour), 40, ""),
	}
}

func TestBuildKPIs(t *testing.T) {
	kpis := BuildKPIs(fixture())

	assert.Equal(t, KPIs{
		TotalRides:         4,
		MemberRides:        3,
		MemberPercentage:   75,
		AvgDurationMinutes: 25,
		ElectricRides:      2,
		ElectricPercentage: 50,
	}, kpis)
}

func TestBuildDataQuality(t *testing.T) {
	quality := BuildDataQuality(fixture())

	assert.Equal(t, 4, quality.TotalRecords)
	assert.Equal(t, 2, quality.MissingStartStations)
	assert.Equal(t, 50.0, quality.MissingStartPercentage)
	assert.Equal(t, 4, quality.MissingEndStations)
	assert.Equal(t, 100.0, quality.MissingEndPercentage)
	assert.False(t, quality.NoData)
}

func TestBuildSummary(t *testing.T) {
	summary := BuildSummary(fixture())

	assert.Equal(t, 4, summary.TotalRecords)
	assert.Equal(t, DateRange{Start: "2025-10-01 08:00:00", End: "2025-10-03 08:00:00"}, summary.DateRange)
	assert.Equal(t, map[string]float64{"member": 0.75, "casual": 0.25}, summary.UserTypeRatio)
	assert.Equal(t, map[string]int{"electric_bike": 2, "classic_bike": 2}, summary.BikeTypeDistribution)
}

func TestMetricsEmptySet(t *testing.T) {
	for _, kind := range []queryhandlers.Kind{queryhandlers.KindKPIs, queryhandlers.KindDataQuality, queryhandlers.KindSummary} {
		handler, err := NewMetricsHandler(kind)
		require.NoError(t, err)

		response, err := handler.GenerateResponse([]trip.Trip{})
		require.NoError(t, err)

		switch value := response.(type) {
		case KPIs:
			assert.True(t, value.NoData)
			assert.Equal(t, 0.0, value.ElectricPercentage)
		case DataQuality:
			assert.True(t, value.NoData)
			assert.Equal(t, 0.0, value.MissingStartPercentage)
		case Summary:
			assert.True(t, value.NoData)
			assert.Empty(t, value.UserTypeRatio)
			assert.Equal(t, DateRange{}, value.DateRange)
		default:
			t.Fatalf("unexpected response %T", response)
		}
	}
}
