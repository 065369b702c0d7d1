package export

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"bikeshare/aggregator"
)

const (
	exportStr    = "export"
	defaultSheet = "Sheet1"
)

func getLogMessage(method string, message string, err error) string {
	if err != nil {
		return fmt.Sprintf("[component: %s][method: %s][status: ERROR] %s: %s", exportStr, method, message, err.Error())
	}
	return fmt.Sprintf("[component: %s][method: %s][status: OK] %s", exportStr, method, message)
}

// WriteWorkbook writes every table in its own sheet, named after the table, in TableNames order
func WriteWorkbook(path string, tables *aggregator.Tables) error {
	f := excelize.NewFile()
	defer f.Close()

	for idx, tableName := range aggregator.TableNames() {
		df, err := TableFrame(tables, tableName)
		if err != nil {
			return err
		}

		sheetName := tableName.String()
		if idx == 0 {
			err = f.SetSheetName(defaultSheet, sheetName)
		} else {
			_, err = f.NewSheet(sheetName)
		}
		if err != nil {
			return fmt.Errorf("error creating sheet %s: %w", sheetName, err)
		}

		if err := writeFrame(f, sheetName, df); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	if err := f.SaveAs(path); err != nil {
		log.Error(getLogMessage("WriteWorkbook", "error saving workbook "+path, err))
		return fmt.Errorf("error saving workbook %s: %w", path, err)
	}

	log.Info(getLogMessage("WriteWorkbook", "tables saved in "+path, nil))
	return nil
}

// writeFrame writes the column names in the first row and one row per record below
func writeFrame(f *excelize.File, sheetName string, df dataframe.DataFrame) error {
	colNames := df.Names()
	for colIdx, name := range colNames {
		cell, err := excelize.CoordinatesToCellName(colIdx+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, name); err != nil {
			return fmt.Errorf("error writing header of %s: %w", sheetName, err)
		}
	}

	for rowIdx := 0; rowIdx < df.Nrow(); rowIdx++ {
		for colIdx, colName := range colNames {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, cell, cellValue(df.Col(colName).Elem(rowIdx))); err != nil {
				return fmt.Errorf("error writing %s in %s: %w", cell, sheetName, err)
			}
		}
	}
	return nil
}

func cellValue(element series.Element) any {
	switch element.Type() {
	case series.Int:
		if value, err := element.Int(); err == nil {
			return value
		}
	case series.Float:
		return element.Float()
	}
	return element.String()
}
