package table

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// readXLSX reads the first worksheet of a workbook. The first row is the
// header.
func readXLSX(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return New(), nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return New(), nil
	}

	t := New(cleanHeader(rows[0])...)
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		t.Append(row...)
	}
	return t, nil
}

// writeXLSX encodes t as a single-sheet workbook. Every cell is written as
// text so identifiers keep their exact digits.
func writeXLSX(w io.Writer, t *Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	write := func(rowNum int, values []string) error {
		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return err
		}
		cells := make([]interface{}, len(values))
		for i, v := range values {
			cells[i] = v
		}
		return f.SetSheetRow(sheet, cell, &cells)
	}

	if err := write(1, t.Columns); err != nil {
		return err
	}
	for i := range t.Rows {
		row := make([]string, len(t.Columns))
		for col := range t.Columns {
			row[col] = t.Cell(i, col)
		}
		if err := write(i+2, row); err != nil {
			return err
		}
	}
	return f.Write(w)
}
