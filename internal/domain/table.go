package domain

// Table is a raw tabular load of a csv file. Cells are kept as strings until
// a normalizer decides which columns are numeric.
type Table struct {
	Columns []string
	Rows    [][]string

	// rows that were dropped while reading, like blank lines and
	// single-cell disclaimer footers
	SkippedRows int
}

func (t Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

func (t Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Cell returns the value at row for the given column name, or "" when the
// column does not exist or the row is short
func (t Table) Cell(row int, column string) string {
	idx := t.ColumnIndex(column)
	if idx < 0 || row < 0 || row >= len(t.Rows) {
		return ""
	}
	if idx >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][idx]
}

func (t Table) IsEmpty() bool {
	return len(t.Rows) == 0
}

func (t Table) DeepCopy() Table {
	out := Table{
		Columns:     append([]string{}, t.Columns...),
		Rows:        make([][]string, len(t.Rows)),
		SkippedRows: t.SkippedRows,
	}
	for i, row := range t.Rows {
		out.Rows[i] = append([]string{}, row...)
	}
	return out
}
