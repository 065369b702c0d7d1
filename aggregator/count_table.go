package aggregator

import (
	"sort"
	"strconv"

	"bikeshare/domain/entities/trip"
)

// CountTable is a crosstab of ride counts. Rows and columns keep the order they were
// declared with and missing combinations count 0
// + Index: name of the row key, e.g. hour
// + Columns: column keys, e.g. user types
// + Rows: one row per key, with one count per column
type CountTable struct {
	Index   string     `json:"index"`
	Columns []string   `json:"columns"`
	Rows    []CountRow `json:"rows"`

	rowIndex    map[string]int
	columnIndex map[string]int
}

// CountRow counts of a row key, aligned with CountTable.Columns
type CountRow struct {
	Key    string `json:"key"`
	Counts []int  `json:"counts"`
}

func NewCountTable(index string, rowKeys []string, columns []string) *CountTable {
	table := &CountTable{
		Index:       index,
		Columns:     append([]string{}, columns...),
		Rows:        make([]CountRow, 0, len(rowKeys)),
		rowIndex:    make(map[string]int, len(rowKeys)),
		columnIndex: make(map[string]int, len(columns)),
	}
	for idx, column := range columns {
		table.columnIndex[column] = idx
	}
	for _, key := range rowKeys {
		table.addRow(key)
	}
	return table
}

func (ct *CountTable) addRow(key string) int {
	ct.Rows = append(ct.Rows, CountRow{Key: key, Counts: make([]int, len(ct.Columns))})
	ct.rowIndex[key] = len(ct.Rows) - 1
	return len(ct.Rows) - 1
}

// Increment adds one to the (row, column) cell. Unknown keys are ignored
func (ct *CountTable) Increment(row string, column string) {
	rowIdx, ok := ct.rowIndex[row]
	if !ok {
		return
	}
	columnIdx, ok := ct.columnIndex[column]
	if !ok {
		return
	}
	ct.Rows[rowIdx].Counts[columnIdx]++
}

// Get returns the count of the (row, column) cell
func (ct *CountTable) Get(row string, column string) int {
	rowIdx, ok := ct.rowIndex[row]
	if !ok {
		return 0
	}
	columnIdx, ok := ct.columnIndex[column]
	if !ok {
		return 0
	}
	return ct.Rows[rowIdx].Counts[columnIdx]
}

// RowTotal returns the sum of the counts of a row
func (ct *CountTable) RowTotal(row string) int {
	rowIdx, ok := ct.rowIndex[row]
	if !ok {
		return 0
	}
	total := 0
	for _, count := range ct.Rows[rowIdx].Counts {
		total += count
	}
	return total
}

// ColumnTotal returns the sum of the counts of a column
func (ct *CountTable) ColumnTotal(column string) int {
	columnIdx, ok := ct.columnIndex[column]
	if !ok {
		return 0
	}
	total := 0
	for _, row := range ct.Rows {
		total += row.Counts[columnIdx]
	}
	return total
}

// Total returns the sum of every cell
func (ct *CountTable) Total() int {
	total := 0
	for _, row := range ct.Rows {
		for _, count := range row.Counts {
			total += count
		}
	}
	return total
}

// RowKeys returns the row keys in order
func (ct *CountTable) RowKeys() []string {
	keys := make([]string, len(ct.Rows))
	for idx := range ct.Rows {
		keys[idx] = ct.Rows[idx].Key
	}
	return keys
}

// Crosstab counts trips by row and column key. rowKeys fixes the rows when the key space
// is enumerable; when nil the rows are the observed keys sorted ascending
func Crosstab(trips []trip.Trip, index string, rowKeys []string, columns []string, rowKey func(trip.Trip) string, columnKey func(trip.Trip) string) *CountTable {
	if rowKeys == nil {
		observed := make(map[string]bool)
		for idx := range trips {
			observed[rowKey(trips[idx])] = true
		}
		rowKeys = make([]string, 0, len(observed))
		for key := range observed {
			rowKeys = append(rowKeys, key)
		}
		sort.Strings(rowKeys)
	}

	table := NewCountTable(index, rowKeys, columns)
	for idx := range trips {
		table.Increment(rowKey(trips[idx]), columnKey(trips[idx]))
	}
	return table
}

// UserTypes returns casual and member followed by any other observed user type, sorted
func UserTypes(trips []trip.Trip) []string {
	userTypes := []string{trip.UserTypeCasual, trip.UserTypeMember}
	others := make(map[string]bool)
	for idx := range trips {
		userType := trips[idx].UserTypeKey()
		if userType != trip.UserTypeCasual && userType != trip.UserTypeMember {
			others[userType] = true
		}
	}

	extra := make([]string, 0, len(others))
	for userType := range others {
		extra = append(extra, userType)
	}
	sort.Strings(extra)
	return append(userTypes, extra...)
}

// Hours returns "0".."23"
func Hours() []string {
	hours := make([]string, 24)
	for hour := range hours {
		hours[hour] = hourKey(hour)
	}
	return hours
}

// WeekdayNames returns the weekday names from Monday to Sunday
func WeekdayNames() []string {
	var names []string
	for _, weekday := range trip.Weekdays() {
		names = append(names, weekday.String())
	}
	return names
}

func hourKey(hour int) string {
	return strconv.Itoa(hour)
}

func HourOf(t trip.Trip) string { return hourKey(t.Hour) }

func WeekdayOf(t trip.Trip) string { return t.DayOfWeek.String() }

func DateOf(t trip.Trip) string { return t.DateKey() }

func MonthOf(t trip.Trip) string { return strconv.Itoa(t.Month) }

func UserTypeOf(t trip.Trip) string { return t.UserTypeKey() }

func BikeTypeOf(t trip.Trip) string { return t.BikeTypeKey() }

func TimeOfDayOf(t trip.Trip) string { return t.TimeOfDay.String() }

// Months returns the observed months in calendar order
func Months(trips []trip.Trip) []string {
	var observed [13]bool
	for idx := range trips {
		if month := trips[idx].Month; month >= 1 && month <= 12 {
			observed[month] = true
		}
	}

	months := make([]string, 0, 12)
	for month := 1; month <= 12; month++ {
		if observed[month] {
			months = append(months, strconv.Itoa(month))
		}
	}
	return months
}
