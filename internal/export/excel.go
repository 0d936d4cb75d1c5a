// Package export serializes record sets to downloadable spreadsheet files.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/david/sam-finder/internal/transform"
)

// Sheet is one worksheet to write: a name, an ordered column list, and one
// row of cell values per record. Each sheet carries its own column set so
// sheets in the same workbook never cross-contaminate.
type Sheet struct {
	Name    string
	Columns []string
	Rows    [][]any
	// Filterable enables the header auto-filter and freezes the pane below
	// the header row so the file can be sorted without re-opening the tool.
	Filterable bool
}

// Workbook writes the sheets into a single xlsx binary.
func Workbook(sheets []Sheet) ([]byte, error) {
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets to write")
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			// excelize always creates "Sheet1"; rename it for the first sheet.
			if err := f.SetSheetName("Sheet1", s.Name); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(s.Name); err != nil {
				return nil, fmt.Errorf("add sheet %q: %w", s.Name, err)
			}
		}
		if err := writeSheet(f, s); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, s Sheet) error {
	header := make([]any, len(s.Columns))
	for i, c := range s.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(s.Name, "A1", &header); err != nil {
		return fmt.Errorf("sheet %q header: %w", s.Name, err)
	}
	for i, row := range s.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(s.Name, cell, &row); err != nil {
			return fmt.Errorf("sheet %q row %d: %w", s.Name, i+2, err)
		}
	}

	if !s.Filterable || len(s.Columns) == 0 {
		return nil
	}
	last, err := excelize.CoordinatesToCellName(len(s.Columns), 1)
	if err != nil {
		return err
	}
	if err := f.AutoFilter(s.Name, "A1:"+last, nil); err != nil {
		return fmt.Errorf("sheet %q auto-filter: %w", s.Name, err)
	}
	if err := f.SetPanes(s.Name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("sheet %q freeze panes: %w", s.Name, err)
	}
	return nil
}

// RecordSheet builds a Sheet from a record set with the given column order.
// Missing cells are left empty; values are written as-is so the full-export
// path preserves the upstream representation.
func RecordSheet(name string, rs transform.RecordSet, columns []string, filterable bool) Sheet {
	s := Sheet{Name: name, Columns: columns, Filterable: filterable}
	for _, r := range rs {
		row := make([]any, len(columns))
		for i, c := range columns {
			if v, ok := r[c]; ok {
				row[i] = cellValue(v)
			}
		}
		s.Rows = append(s.Rows, row)
	}
	return s
}

// TableSheet builds a Sheet from a formatted display table.
func TableSheet(name string, t transform.Table, filterable bool) Sheet {
	s := Sheet{Name: name, Columns: t.Columns, Filterable: filterable}
	for _, row := range t.Rows {
		cells := make([]any, len(row))
		for i, v := range row {
			cells[i] = v
		}
		s.Rows = append(s.Rows, cells)
	}
	return s
}

// cellValue maps decoded JSON values to something excelize can write.
// Composite leaves (lists, empty maps) render as their string form.
func cellValue(v any) any {
	switch v.(type) {
	case nil:
		return nil
	case string, float64, bool, int, int64:
		return v
	default:
		return fmt.Sprint(v)
	}
}
