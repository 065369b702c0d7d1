package aggregator

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bikeshare/domain/entities/trip"
	"bikeshare/filter"
	tripWorker "bikeshare/workers/trip"
)

func station(name string) *string {
	return &name
}

func fixture() []trip.Trip {
	base := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC) // Monday
	raws := []trip.RawTrip{
		{RideID: "1", BikeType: "classic_bike", StartedAt: base.Add(8 * time.Hour), EndedAt: base.Add(8*time.Hour + 10*time.Minute), UserType: "member", StartStation: station("A"), EndStation: station("B")},
		{RideID: "2", BikeType: "electric_bike", StartedAt: base.Add(8 * time.Hour), EndedAt: base.Add(8*time.Hour + 20*time.Minute), UserType: "casual", StartStation: station("A"), EndStation: station("A")},
		{RideID: "3", BikeType: "electric_bike", StartedAt: base.Add(24*time.Hour + 17*time.Hour), EndedAt: base.Add(24*time.Hour + 17*time.Hour + 30*time.Minute), UserType: "member", StartStation: station("B")},
		{RideID: "4", BikeType: "", StartedAt: base.Add(6*24*time.Hour + 23*time.Hour), EndedAt: base.Add(6*24*time.Hour + 23*time.Hour + 40*time.Minute), UserType: "member", EndStation: station("B")},
	}
	trips, _ := tripWorker.FilterValid(tripWorker.DeriveAll(raws))
	return trips
}

func TestBuildHourlyUsage(t *testing.T) {
	tables := Build(fixture(), Options{})

	hourly := tables.HourlyUsage
	require.Len(t, hourly.Rows, 24)
	assert.Equal(t, []string{"casual", "member"}, hourly.Columns)
	assert.Equal(t, 1, hourly.Get("8", "casual"))
	assert.Equal(t, 1, hourly.Get("8", "member"))
	assert.Equal(t, 0, hourly.Get("3", "member"))
	assert.Equal(t, 4, hourly.Total())
}

func TestBuildDailyAndWeekdayUsage(t *testing.T) {
	tables := Build(fixture(), Options{})

	assert.Equal(t, []string{"2024-05-06", "2024-05-07", "2024-05-12"}, tables.DailyUsage.RowKeys())
	assert.Equal(t, 2, tables.DailyUsage.RowTotal("2024-05-06"))

	assert.Equal(t, []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}, tables.WeekdayUsage.RowKeys())
	assert.Equal(t, 2, tables.WeekdayUsage.RowTotal("Monday"))
	assert.Equal(t, 0, tables.WeekdayUsage.RowTotal("Friday"))
	assert.Equal(t, 1, tables.WeekdayUsage.Get("Sunday", "member"))
}

func TestBuildBikeTypeUsage(t *testing.T) {
	trips := fixture()
	tables := Build(trips, Options{})

	bikeTypes := tables.BikeTypeUsage
	assert.Equal(t, []string{"classic_bike", "electric_bike", "unknown"}, bikeTypes.RowKeys())
	assert.Equal(t, len(trips), bikeTypes.Total())
	assert.Equal(t, 1, bikeTypes.Get("electric_bike", "casual"))
}

func TestBuildPopularStations(t *testing.T) {
	tables := Build(fixture(), Options{TopStations: 1})

	assert.Equal(t, []StationCount{{Name: "A", Count: 2}}, tables.PopularStations.Start)
	assert.Equal(t, []StationCount{{Name: "B", Count: 2}}, tables.PopularStations.End)
}

func TestBuildDurationStats(t *testing.T) {
	tables := Build(fixture(), Options{})

	require.Len(t, tables.DurationStats, 2)
	casual := tables.DurationStats[0]
	member := tables.DurationStats[1]

	assert.Equal(t, "casual", casual.UserType)
	assert.Equal(t, 1, casual.Count)
	assert.Equal(t, 20.0, casual.Mean)
	assert.Equal(t, 0.0, casual.Std)

	assert.Equal(t, "member", member.UserType)
	assert.Equal(t, 3, member.Count)
	assert.InDelta(t, 26.666666, member.Mean, 1e-5)
	assert.Equal(t, 10.0, member.Min)
	assert.InDelta(t, 20.0, member.Q25, 1e-9)
	assert.InDelta(t, 30.0, member.Q50, 1e-9)
	assert.InDelta(t, 35.0, member.Q75, 1e-9)
	assert.Equal(t, 40.0, member.Max)
}

func TestBuildOtherUserTypes(t *testing.T) {
	trips := fixture()
	trips[0].UserType = "staff"
	trips[1].UserType = ""

	tables := Build(trips, Options{})
	assert.Equal(t, []string{"casual", "member", "staff", "unknown"}, tables.HourlyUsage.Columns)
	assert.Equal(t, len(trips), tables.BikeTypeUsage.Total())
}

func TestBuildEmpty(t *testing.T) {
	selection, err := filter.NewSelection(filter.SelectionParams{From: "2030-01-01"})
	require.NoError(t, err)
	empty := filter.Apply(fixture(), selection)

	tables := Build(empty, Options{})

	assert.Len(t, tables.HourlyUsage.Rows, 24)
	assert.Equal(t, 0, tables.HourlyUsage.Total())
	assert.Len(t, tables.WeekdayUsage.Rows, 7)
	assert.Empty(t, tables.DailyUsage.Rows)
	assert.Empty(t, tables.BikeTypeUsage.Rows)
	assert.Empty(t, tables.PopularStations.Start)
	require.Len(t, tables.DurationStats, 2)
	assert.Equal(t, 0, tables.DurationStats[0].Count)

	_, err = json.Marshal(tables)
	assert.NoError(t, err, "zero rows never produce NaN")
}

func TestBuildIsDeterministic(t *testing.T) {
	first, err := json.Marshal(Build(fixture(), Options{}))
	require.NoError(t, err)
	second, err := json.Marshal(Build(fixture(), Options{}))
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestTablesGet(t *testing.T) {
	tables := Build(fixture(), Options{})

	for _, name := range TableNames() {
		parsed, err := ParseTableName(name.String())
		require.NoError(t, err)
		assert.Equal(t, name, parsed)

		table, err := tables.Get(name)
		require.NoError(t, err)
		assert.NotNil(t, table)
	}

	_, err := ParseTableName("monthly_usage")
	assert.ErrorIs(t, err, ErrUnknownTable)

	_, err = tables.Get(TableName(99))
	assert.ErrorIs(t, err, ErrUnknownTable)
}
