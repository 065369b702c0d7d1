package loader

// ColumnNames name of each required column in the dataset
type ColumnNames struct {
	RideID           string `yaml:"ride_id"`
	BikeType         string `yaml:"rideable_type"`
	StartedAt        string `yaml:"started_at"`
	EndedAt          string `yaml:"ended_at"`
	StartStationName string `yaml:"start_station_name"`
	EndStationName   string `yaml:"end_station_name"`
	StartLat         string `yaml:"start_lat"`
	StartLng         string `yaml:"start_lng"`
	EndLat           string `yaml:"end_lat"`
	EndLng           string `yaml:"end_lng"`
	UserType         string `yaml:"member_casual"`
}

// Config loader configuration
// + Path: path of the dataset, .csv or .xlsx
// + Sheet: sheet to read from a workbook. The first one if empty
// + Timezone: IANA name of the location of the timestamps. UTC if empty
// + TimestampLayouts: layouts tried in order to parse started_at and ended_at
// + Columns: names of the required columns
type Config struct {
	Path             string      `yaml:"path"`
	Sheet            string      `yaml:"sheet"`
	Timezone         string      `yaml:"timezone"`
	TimestampLayouts []string    `yaml:"timestamp_layouts"`
	Columns          ColumnNames `yaml:"columns"`
}

func DefaultColumnNames() ColumnNames {
	return ColumnNames{
		RideID:           "ride_id",
		BikeType:         "rideable_type",
		StartedAt:        "started_at",
		EndedAt:          "ended_at",
		StartStationName: "start_station_name",
		EndStationName:   "end_station_name",
		StartLat:         "start_lat",
		StartLng:         "start_lng",
		EndLat:           "end_lat",
		EndLng:           "end_lng",
		UserType:         "member_casual",
	}
}

func DefaultTimestampLayouts() []string {
	return []string{
		"2006-01-02 15:04:05",
		"2006-01-02 15:04:05.000",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04:05Z07:00",
		"2006-01-02 15:04",
	}
}

// DefaultConfig returns a configuration for the given path with default columns and layouts
func DefaultConfig(path string) Config {
	return Config{
		Path:             path,
		TimestampLayouts: DefaultTimestampLayouts(),
		Columns:          DefaultColumnNames(),
	}
}

// WithDefaults fills every empty field with its default value
func (c Config) WithDefaults() Config {
	if len(c.TimestampLayouts) == 0 {
		c.TimestampLayouts = DefaultTimestampLayouts()
	}

	defaults := DefaultColumnNames()
	fill := func(value *string, defaultValue string) {
		if *value == "" {
			*value = defaultValue
		}
	}
	fill(&c.Columns.RideID, defaults.RideID)
	fill(&c.Columns.BikeType, defaults.BikeType)
	fill(&c.Columns.StartedAt, defaults.StartedAt)
	fill(&c.Columns.EndedAt, defaults.EndedAt)
	fill(&c.Columns.StartStationName, defaults.StartStationName)
	fill(&c.Columns.EndStationName, defaults.EndStationName)
	fill(&c.Columns.StartLat, defaults.StartLat)
	fill(&c.Columns.StartLng, defaults.StartLng)
	fill(&c.Columns.EndLat, defaults.EndLat)
	fill(&c.Columns.EndLng, defaults.EndLng)
	fill(&c.Columns.UserType, defaults.UserType)
	return c
}

func (cn ColumnNames) required() []string {
	return []string{
		cn.RideID, cn.BikeType, cn.StartedAt, cn.EndedAt,
		cn.StartStationName, cn.EndStationName,
		cn.StartLat, cn.StartLng, cn.EndLat, cn.EndLng,
		cn.UserType,
	}
}
