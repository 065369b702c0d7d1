package export

import (
	"fmt"
	"io"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"bikeshare/aggregator"
)

// RenderTable writes the table with the given name to w as a terminal table
func RenderTable(w io.Writer, tables *aggregator.Tables, name aggregator.TableName) error {
	df, err := TableFrame(tables, name)
	if err != nil {
		return err
	}
	return RenderFrame(w, name.String(), df)
}

// RenderFrame writes df to w with a title and a row count footer. Numbers are right
// aligned and formatted with thousands separators
func RenderFrame(w io.Writer, title string, df dataframe.DataFrame) error {
	colNames := df.Names()

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle(title)

	headerRow := make(table.Row, len(colNames))
	columnConfigs := make([]table.ColumnConfig, 0, len(colNames))
	for idx, name := range colNames {
		headerRow[idx] = name
		if df.Col(name).Type() != series.String {
			columnConfigs = append(columnConfigs, table.ColumnConfig{Name: name, Align: text.AlignRight})
		}
	}
	t.AppendHeader(headerRow)
	t.SetColumnConfigs(columnConfigs)

	for rowIdx := 0; rowIdx < df.Nrow(); rowIdx++ {
		row := make(table.Row, len(colNames))
		for colIdx, name := range colNames {
			row[colIdx] = formatElement(df.Col(name).Elem(rowIdx))
		}
		t.AppendRow(row)
	}

	t.Render()
	_, err := fmt.Fprintf(w, "(%s rows)\n", FormatCount(df.Nrow()))
	return err
}

func formatElement(element series.Element) string {
	switch element.Type() {
	case series.Int:
		if value, err := element.Int(); err == nil {
			return FormatCount(value)
		}
	case series.Float:
		return FormatFloat(element.Float())
	}
	return element.String()
}
