package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"

	dataErrors "bikeshare/workers/errors"
)

const header = "ride_id,rideable_type,started_at,ended_at,start_station_name,end_station_name,start_lat,start_lng,end_lat,end_lng,member_casual"

func writeFile(t *testing.T, name string, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestLoader(t *testing.T, path string) *Loader {
	t.Helper()
	loader, err := NewLoader(DefaultConfig(path))
	require.NoError(t, err)
	return loader
}

func TestLoadCSV(t *testing.T) {
	content := strings.Join([]string{
		header,
		"A1,classic_bike,2024-05-03 08:15:00,2024-05-03 08:45:00,Union Station,Dupont Circle,38.90,-77.04,38.91,-77.03,member",
		"A2,electric_bike,2024-05-04T10:00:00,2024-05-04 10:20,,NA,38.90,-77.04,,,casual",
		"A3,,2024-05-05 11:00:00.000,2024-05-05 11:10:00,Union Station,Dupont Circle,NaN,-77.04,38.91,-77.03,",
	}, "\n")
	path := writeFile(t, "trips.csv", content)

	dataset, err := newTestLoader(t, path).Load()
	require.NoError(t, err)
	require.True(t, dataset.Available)
	require.Len(t, dataset.Records, 3)

	first := dataset.Records[0]
	assert.Equal(t, "A1", first.RideID)
	assert.Equal(t, time.Date(2024, 5, 3, 8, 15, 0, 0, time.UTC), first.StartedAt)
	assert.Equal(t, time.Date(2024, 5, 3, 8, 45, 0, 0, time.UTC), first.EndedAt)
	require.NotNil(t, first.StartStation)
	assert.Equal(t, "Union Station", *first.StartStation)
	require.NotNil(t, first.End)
	assert.Equal(t, 38.91, first.End.Lat)
	assert.Equal(t, "member", first.UserType)

	second := dataset.Records[1]
	assert.Nil(t, second.StartStation)
	assert.Nil(t, second.EndStation)
	assert.NotNil(t, second.Start)
	assert.Nil(t, second.End)

	third := dataset.Records[2]
	assert.Equal(t, "", third.BikeType)
	assert.Equal(t, "", third.UserType)
	assert.Nil(t, third.Start, "a missing latitude leaves the point missing")
}

func TestLoadUnavailableSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.csv")

	dataset, err := newTestLoader(t, path).Load()
	require.NoError(t, err)
	assert.False(t, dataset.Available)
	assert.NotNil(t, dataset.Records)
	assert.Empty(t, dataset.Records)
}

func TestLoadErrors(t *testing.T) {
	testCases := []struct {
		name        string
		content     string
		expectedErr error
	}{
		{
			name:        "missing column",
			content:     "ride_id,rideable_type\nA1,classic_bike",
			expectedErr: dataErrors.ErrMissingColumn,
		},
		{
			name:        "malformed timestamp",
			content:     header + "\nA1,classic_bike,03/05/2024 08:15,2024-05-03 08:45:00,,,,,,,member",
			expectedErr: dataErrors.ErrInvalidTimestamp,
		},
		{
			name:        "empty timestamp",
			content:     header + "\nA1,classic_bike,2024-05-03 08:15:00,,,,,,,,member",
			expectedErr: dataErrors.ErrInvalidTimestamp,
		},
		{
			name:        "non numeric coordinate",
			content:     header + "\nA1,classic_bike,2024-05-03 08:15:00,2024-05-03 08:45:00,,,north,-77.04,,,member",
			expectedErr: dataErrors.ErrInvalidCoordinate,
		},
		{
			name: "ragged row",
			content: header +
				"\nA1,classic_bike,2024-05-03 08:15:00,2024-05-03 08:45:00,,,,,,,member" +
				"\nA2,classic_bike,2024-05-03 08:15:00,2024-05-03 08:45:00,,,member",
			expectedErr: dataErrors.ErrMalformedDataset,
		},
		{
			name:        "unterminated quote",
			content:     header + "\n\"A1,classic_bike,2024-05-03 08:15:00,2024-05-03 08:45:00,,,,,,,member",
			expectedErr: dataErrors.ErrMalformedDataset,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, "trips.csv", tc.content)
			_, err := newTestLoader(t, path).Load()
			assert.ErrorIs(t, err, tc.expectedErr)
		})
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	path := writeFile(t, "trips.json", "[]")
	_, err := newTestLoader(t, path).Load()
	assert.ErrorIs(t, err, dataErrors.ErrUnsupportedFormat)
}

func TestLoadCustomColumns(t *testing.T) {
	content := "id,type,start,end,from,to,slat,slng,elat,elng,user\n" +
		"A1,classic_bike,2024-05-03 08:15:00,2024-05-03 08:45:00,,,,,,,member"
	config := Config{
		Path: writeFile(t, "custom.csv", content),
		Columns: ColumnNames{
			RideID: "id", BikeType: "type", StartedAt: "start", EndedAt: "end",
			StartStationName: "from", EndStationName: "to",
			StartLat: "slat", StartLng: "slng", EndLat: "elat", EndLng: "elng",
			UserType: "user",
		},
	}

	loader, err := NewLoader(config)
	require.NoError(t, err)
	dataset, err := loader.Load()
	require.NoError(t, err)
	require.Len(t, dataset.Records, 1)
	assert.Equal(t, "member", dataset.Records[0].UserType)
}

func TestNewLoaderInvalidTimezone(t *testing.T) {
	config := DefaultConfig("trips.csv")
	config.Timezone = "Mars/Olympus"
	_, err := NewLoader(config)
	assert.Error(t, err)
}

func TestLoadXLSX(t *testing.T) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("trips")
	require.NoError(t, err)

	addRow := func(values ...string) {
		row := sheet.AddRow()
		for _, value := range values {
			row.AddCell().Value = value
		}
	}
	addRow(strings.Split(header, ",")...)
	addRow("A1", "classic_bike", "2024-05-03 08:15:00", "45415.375", "Union Station", "", "38.90", "-77.04", "38.91", "-77.03", "member")

	path := filepath.Join(t.TempDir(), "trips.xlsx")
	require.NoError(t, file.Save(path))

	config := DefaultConfig(path)
	config.Sheet = "trips"
	loader, err := NewLoader(config)
	require.NoError(t, err)

	dataset, err := loader.Load()
	require.NoError(t, err)
	require.Len(t, dataset.Records, 1)
	assert.Equal(t, time.Date(2024, 5, 3, 9, 0, 0, 0, time.UTC), dataset.Records[0].EndedAt)
	assert.Nil(t, dataset.Records[0].EndStation)
}

func TestLoadXLSXMissingSheet(t *testing.T) {
	file := xlsx.NewFile()
	_, err := file.AddSheet("trips")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "trips.xlsx")
	require.NoError(t, file.Save(path))

	config := DefaultConfig(path)
	config.Sheet = "rides"
	loader, err := NewLoader(config)
	require.NoError(t, err)

	dataset, err := loader.Load()
	assert.ErrorIs(t, err, dataErrors.ErrMalformedDataset)
	assert.Nil(t, dataset)
}
