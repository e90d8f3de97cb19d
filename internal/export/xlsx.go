package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet  = "Resumen"
	findingsSheet = "Hallazgos"
)

var findingColumns = []string{"Documento", "Regla", "Severidad", "Campo", "Esperado", "Obtenido", "Mensaje"}

// WriteXLSX writes records as a workbook with a summary sheet and a findings sheet.
func WriteXLSX(w io.Writer, records []Record) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}
	if err := writeRows(f, summarySheet, columns, summaryRows(records)); err != nil {
		return err
	}

	if _, err := f.NewSheet(findingsSheet); err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	if err := writeRows(f, findingsSheet, findingColumns, findingRows(records)); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func summaryRows(records []Record) [][]string {
	rows := make([][]string, 0, len(records))
	for i := range records {
		rows = append(rows, recordToRow(&records[i]))
	}
	return rows
}

func findingRows(records []Record) [][]string {
	var rows [][]string
	for i := range records {
		for _, f := range records[i].Findings {
			rows = append(rows, []string{
				records[i].Source, f.RuleKey, string(f.Severity), f.Field, f.ExpectedValue, f.ActualValue, f.Message,
			})
		}
	}
	return rows
}

func writeRows(f *excelize.File, sheet string, header []string, rows [][]string) error {
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}
	for i, row := range rows {
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("writing %s row %d: %w", sheet, rowNum, err)
	}
	return nil
}
