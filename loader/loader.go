package loader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	log "github.com/sirupsen/logrus"
	"github.com/tealeg/xlsx"

	"bikeshare/domain/entities/trip"
	dataErrors "bikeshare/workers/errors"
)

const (
	loaderStr  = "loader"
	csvFormat  = ".csv"
	xlsxFormat = ".xlsx"
)

var missingValues = []string{"", "NA", "NaN", "<nil>"}

// Dataset raw trips read from a source
// + Source: path of the source
// + Available: false if the source could not be read. Records is empty in that case
// + Records: raw trips in file order
type Dataset struct {
	Source    string         `json:"source"`
	Available bool           `json:"available"`
	Records   []trip.RawTrip `json:"-"`
}

// Loader reads trips from a CSV file or a workbook
type Loader struct {
	config   Config
	location *time.Location
}

func NewLoader(config Config) (*Loader, error) {
	config = config.WithDefaults()

	location := time.UTC
	if config.Timezone != "" {
		var err error
		location, err = time.LoadLocation(config.Timezone)
		if err != nil {
			return nil, fmt.Errorf("invalid timezone %s: %w", config.Timezone, err)
		}
	}

	return &Loader{
		config:   config,
		location: location,
	}, nil
}

func getLogMessage(method string, message string, err error) string {
	if err != nil {
		return fmt.Sprintf("[component: %s][method: %s][status: ERROR] %s: %s", loaderStr, method, message, err.Error())
	}
	return fmt.Sprintf("[component: %s][method: %s][status: OK] %s", loaderStr, method, message)
}

// Load reads the configured source. An unavailable source is not an error: it is logged
// and an empty Dataset is returned. Only a source that can not be opened is unavailable,
// a file that can not be parsed is a malformed dataset and returns an error
func (l *Loader) Load() (*Dataset, error) {
	path := l.config.Path
	format := strings.ToLower(filepath.Ext(path))
	if format != csvFormat && format != xlsxFormat {
		return nil, fmt.Errorf("%w: %s", dataErrors.ErrUnsupportedFormat, path)
	}

	df, err := l.readFrame(path, format)
	if err != nil {
		if errors.Is(err, dataErrors.ErrDatasetUnavailable) {
			log.Error(getLogMessage("Load", fmt.Sprintf("cannot read %s, using an empty dataset", path), err))
			return &Dataset{Source: path, Available: false, Records: []trip.RawTrip{}}, nil
		}
		log.Error(getLogMessage("Load", fmt.Sprintf("invalid dataset %s", path), err))
		return nil, err
	}

	records, err := l.ParseFrame(df, format == xlsxFormat)
	if err != nil {
		log.Error(getLogMessage("Load", fmt.Sprintf("invalid dataset %s", path), err))
		return nil, err
	}

	log.Info(getLogMessage("Load", fmt.Sprintf("%v trips read from %s", len(records), path), nil))
	return &Dataset{Source: path, Available: true, Records: records}, nil
}

func (l *Loader) readFrame(path string, format string) (dataframe.DataFrame, error) {
	if format == xlsxFormat {
		return ReadXLSX(path, l.config.Sheet)
	}

	file, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("%w: %s", dataErrors.ErrDatasetUnavailable, err.Error())
	}
	defer file.Close()

	return ReadCSV(file)
}

// ReadCSV reads every column as a string. Type detection is left to ParseFrame
func ReadCSV(reader io.Reader) (dataframe.DataFrame, error) {
	df := dataframe.ReadCSV(
		reader,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(missingValues[1:]),
	)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("%w: %s", dataErrors.ErrMalformedDataset, df.Err.Error())
	}
	return df, nil
}

// ReadXLSX reads a sheet into a frame. The first row is the header
func ReadXLSX(path string, sheetName string) (dataframe.DataFrame, error) {
	xlFile, err := xlsx.OpenFile(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("%w: %s", dataErrors.ErrDatasetUnavailable, err.Error())
	}

	if len(xlFile.Sheets) == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("%w: %s has no sheets", dataErrors.ErrMalformedDataset, path)
	}

	sheet := xlFile.Sheets[0]
	if sheetName != "" {
		var ok bool
		sheet, ok = xlFile.Sheet[sheetName]
		if !ok {
			return dataframe.DataFrame{}, fmt.Errorf("%w: sheet %s not found in %s", dataErrors.ErrMalformedDataset, sheetName, path)
		}
	}

	return convertSheetToDataFrame(sheet), nil
}

func convertSheetToDataFrame(sheet *xlsx.Sheet) dataframe.DataFrame {
	if len(sheet.Rows) == 0 {
		return dataframe.New()
	}

	var headers []string
	for _, cell := range sheet.Rows[0].Cells {
		headers = append(headers, strings.TrimSpace(cell.Value))
	}

	columns := make([][]string, len(headers))
	for i := range columns {
		columns[i] = make([]string, 0, len(sheet.Rows)-1)
	}

	for _, row := range sheet.Rows[1:] {
		for i := range headers {
			value := ""
			if row != nil && i < len(row.Cells) {
				value = row.Cells[i].Value
			}
			columns[i] = append(columns[i], value)
		}
	}

	seriesList := make([]series.Series, len(headers))
	for i, colName := range headers {
		seriesList[i] = series.New(columns[i], series.String, colName)
	}
	return dataframe.New(seriesList...)
}

// ParseFrame converts a frame into raw trips. spreadsheetDates allows timestamps stored as
// spreadsheet serial numbers
func (l *Loader) ParseFrame(df dataframe.DataFrame, spreadsheetDates bool) ([]trip.RawTrip, error) {
	columns := l.config.Columns
	names := make(map[string]bool)
	for _, name := range df.Names() {
		names[name] = true
	}
	for _, required := range columns.required() {
		if !names[required] {
			return nil, fmt.Errorf("%w: %s", dataErrors.ErrMissingColumn, required)
		}
	}

	get := func(name string) []string {
		return df.Col(name).Records()
	}
	rideIDs := get(columns.RideID)
	bikeTypes := get(columns.BikeType)
	startedAt := get(columns.StartedAt)
	endedAt := get(columns.EndedAt)
	startStations := get(columns.StartStationName)
	endStations := get(columns.EndStationName)
	startLats := get(columns.StartLat)
	startLngs := get(columns.StartLng)
	endLats := get(columns.EndLat)
	endLngs := get(columns.EndLng)
	userTypes := get(columns.UserType)

	records := make([]trip.RawTrip, df.Nrow())
	for idx := range records {
		line := idx + 2

		start, err := l.parseTimestamp(startedAt[idx], spreadsheetDates)
		if err != nil {
			return nil, fmt.Errorf("line %v, column %s: %w", line, columns.StartedAt, err)
		}
		end, err := l.parseTimestamp(endedAt[idx], spreadsheetDates)
		if err != nil {
			return nil, fmt.Errorf("line %v, column %s: %w", line, columns.EndedAt, err)
		}

		startCoordinates, err := parseCoordinates(startLats[idx], startLngs[idx])
		if err != nil {
			return nil, fmt.Errorf("line %v, start coordinates: %w", line, err)
		}
		endCoordinates, err := parseCoordinates(endLats[idx], endLngs[idx])
		if err != nil {
			return nil, fmt.Errorf("line %v, end coordinates: %w", line, err)
		}

		records[idx] = trip.RawTrip{
			RideID:       cleanValue(rideIDs[idx]),
			BikeType:     cleanValue(bikeTypes[idx]),
			StartedAt:    start,
			EndedAt:      end,
			StartStation: optionalValue(startStations[idx]),
			EndStation:   optionalValue(endStations[idx]),
			Start:        startCoordinates,
			End:          endCoordinates,
			UserType:     cleanValue(userTypes[idx]),
		}
	}

	return records, nil
}

func (l *Loader) parseTimestamp(value string, spreadsheetDates bool) (time.Time, error) {
	value = strings.TrimSpace(value)
	if isMissing(value) {
		return time.Time{}, fmt.Errorf("%w: empty value", dataErrors.ErrInvalidTimestamp)
	}

	for _, layout := range l.config.TimestampLayouts {
		timestamp, err := time.ParseInLocation(layout, value, l.location)
		if err == nil {
			return timestamp, nil
		}
	}

	if spreadsheetDates {
		if serial, err := strconv.ParseFloat(value, 64); err == nil && serial > 0 {
			return spreadsheetSerialToTime(serial, l.location), nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", dataErrors.ErrInvalidTimestamp, value)
}

// spreadsheetSerialToTime converts a serial date (days since 1899-12-30) to a time,
// rounded to the second
func spreadsheetSerialToTime(serial float64, location *time.Location) time.Time {
	base := time.Date(1899, 12, 30, 0, 0, 0, 0, location)
	days := int(serial)
	seconds := (serial - float64(days)) * 86400
	return base.AddDate(0, 0, days).Add(time.Duration(seconds*float64(time.Second))).Round(time.Second)
}

func parseCoordinates(latValue string, lngValue string) (*trip.Coordinates, error) {
	lat, latOk, err := parseFloat(latValue)
	if err != nil {
		return nil, err
	}
	lng, lngOk, err := parseFloat(lngValue)
	if err != nil {
		return nil, err
	}
	if !latOk || !lngOk {
		return nil, nil
	}
	return &trip.Coordinates{Lat: lat, Lng: lng}, nil
}

func parseFloat(value string) (float64, bool, error) {
	value = strings.TrimSpace(value)
	if isMissing(value) {
		return 0, false, nil
	}
	number, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %q", dataErrors.ErrInvalidCoordinate, value)
	}
	return number, true, nil
}

func isMissing(value string) bool {
	for _, missing := range missingValues {
		if value == missing {
			return true
		}
	}
	return false
}

func cleanValue(value string) string {
	value = strings.TrimSpace(value)
	if isMissing(value) {
		return ""
	}
	return value
}

func optionalValue(value string) *string {
	value = cleanValue(value)
	if value == "" {
		return nil
	}
	return &value
}
