package export

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"bikeshare/aggregator"
)

// Frame returns the DataFrame form of a crosstab: the index column followed by one int
// column per column key
func Frame(table *aggregator.CountTable) dataframe.DataFrame {
	columns := make([]series.Series, 0, len(table.Columns)+1)
	columns = append(columns, series.New(table.RowKeys(), series.String, table.Index))

	for columnIdx, column := range table.Columns {
		counts := make([]int, len(table.Rows))
		for rowIdx := range table.Rows {
			counts[rowIdx] = table.Rows[rowIdx].Counts[columnIdx]
		}
		columns = append(columns, series.New(counts, series.Int, column))
	}

	return dataframe.New(columns...)
}

// PopularStationsFrame returns both rankings in long form: ranking, rank, station, count
func PopularStationsFrame(popular aggregator.PopularStations) dataframe.DataFrame {
	var (
		rankings []string
		ranks    []int
		names    []string
		counts   []int
	)
	appendRanking := func(ranking string, stations []aggregator.StationCount) {
		for idx, station := range stations {
			rankings = append(rankings, ranking)
			ranks = append(ranks, idx+1)
			names = append(names, station.Name)
			counts = append(counts, station.Count)
		}
	}
	appendRanking("start", popular.Start)
	appendRanking("end", popular.End)

	return dataframe.New(
		series.New(nonNilStrings(rankings), series.String, "ranking"),
		series.New(nonNilInts(ranks), series.Int, "rank"),
		series.New(nonNilStrings(names), series.String, "station"),
		series.New(nonNilInts(counts), series.Int, "count"),
	)
}

// DurationStatsFrame returns one row per user type with its duration summary
func DurationStatsFrame(stats []aggregator.DurationStats) dataframe.DataFrame {
	userTypes := make([]string, len(stats))
	counts := make([]int, len(stats))
	values := map[string][]float64{}
	statNames := []string{"mean", "std", "min", "25%", "50%", "75%", "max"}
	for _, name := range statNames {
		values[name] = make([]float64, len(stats))
	}

	for idx, stat := range stats {
		userTypes[idx] = stat.UserType
		counts[idx] = stat.Count
		values["mean"][idx] = stat.Mean
		values["std"][idx] = stat.Std
		values["min"][idx] = stat.Min
		values["25%"][idx] = stat.Q25
		values["50%"][idx] = stat.Q50
		values["75%"][idx] = stat.Q75
		values["max"][idx] = stat.Max
	}

	columns := []series.Series{
		series.New(userTypes, series.String, "user_type"),
		series.New(counts, series.Int, "count"),
	}
	for _, name := range statNames {
		columns = append(columns, series.New(values[name], series.Float, name))
	}
	return dataframe.New(columns...)
}

// TableFrame returns the DataFrame of the table with the given name
func TableFrame(tables *aggregator.Tables, name aggregator.TableName) (dataframe.DataFrame, error) {
	var df dataframe.DataFrame
	switch name {
	case aggregator.TablePopularStations:
		df = PopularStationsFrame(tables.PopularStations)
	case aggregator.TableDurationStats:
		df = DurationStatsFrame(tables.DurationStats)
	default:
		countTable, ok := tables.CountTables()[name]
		if !ok {
			return dataframe.DataFrame{}, fmt.Errorf("%w: %s", aggregator.ErrUnknownTable, name)
		}
		df = Frame(countTable)
	}

	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("error building frame of %s: %w", name, df.Err)
	}
	return df, nil
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func nonNilInts(values []int) []int {
	if values == nil {
		return []int{}
	}
	return values
}
