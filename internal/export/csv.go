package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/david/sam-finder/internal/transform"
)

// CSV serializes the record set with the given column order. Missing cells
// are empty strings; scalar values keep their plain string form.
func CSV(rs transform.RecordSet, columns []string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(columns); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	row := make([]string, len(columns))
	for i, r := range rs {
		for j, c := range columns {
			row[j] = ""
			if v, ok := r[c]; ok && v != nil {
				row[j] = csvValue(v)
			}
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// csvValue renders a cell without scientific notation on large numbers.
func csvValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(cellValue(t))
	}
}
