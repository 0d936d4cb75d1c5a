package transform

// Project returns the subset of desired fields present in at least one
// record, preserving the caller's declared order. The order is a product
// requirement, not derived from the data.
func Project(rs RecordSet, desired []string) []string {
	var out []string
	for _, f := range desired {
		if rs.HasField(f) {
			out = append(out, f)
		}
	}
	return out
}

// Table is a display-ready tabular projection: column names in declared
// order and one formatted string row per record.
type Table struct {
	Columns []string
	Rows    [][]string
}

// BuildDisplay projects the record set onto the desired fields and formats
// every cell through the display registry. Missing cells render empty.
func BuildDisplay(rs RecordSet, desired []string, links LinkMode) Table {
	cols := Project(rs, desired)
	reg := Formatters(links)
	t := Table{Columns: cols}
	for _, r := range rs {
		row := make([]string, len(cols))
		for i, c := range cols {
			// Formatters are total: absent values go through them too so
			// registered fields render their own fallback (e.g. "N/A").
			row[i] = FormatField(c, r[c], reg)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}
