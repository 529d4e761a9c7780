package ir

import (
	"fmt"
	"strconv"
)

// Row is one record of a table resource. Row identity for targeting is the
// current position in Table.Rows, not anything stored on the row itself;
// labels need not be unique.
type Row struct {
	Label string
	Cells map[string]string
}

func (r *Row) Cell(column string) string {
	return r.Cells[column]
}

func (r *Row) SetCell(column, v string) {
	if r.Cells == nil {
		r.Cells = map[string]string{}
	}
	r.Cells[column] = v
}

// Table is a tabular resource: an ordered column list and an ordered row
// list of string cells.
type Table struct {
	Columns []string
	Rows    []*Row
}

func NewTable(columns ...string) *Table {
	return &Table{Columns: columns}
}

func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// AddColumn appends a column and seeds every existing row with def.
func (t *Table) AddColumn(name, def string) error {
	if t.HasColumn(name) {
		return fmt.Errorf("column %q already exists", name)
	}
	t.Columns = append(t.Columns, name)
	for _, r := range t.Rows {
		r.SetCell(name, def)
	}
	return nil
}

// NewRow appends a row with the given label, each cell seeded empty.
func (t *Table) NewRow(label string) *Row {
	r := &Row{Label: label, Cells: make(map[string]string, len(t.Columns))}
	for _, c := range t.Columns {
		r.Cells[c] = ""
	}
	t.Rows = append(t.Rows, r)
	return r
}

// RowAt returns the row at position i, or nil when out of range.
func (t *Table) RowAt(i int) *Row {
	if i < 0 || i >= len(t.Rows) {
		return nil
	}
	return t.Rows[i]
}

// RowByLabel returns the first row whose label equals label, with its
// position, or (-1, nil).
func (t *Table) RowByLabel(label string) (int, *Row) {
	for i, r := range t.Rows {
		if r.Label == label {
			return i, r
		}
	}
	return -1, nil
}

// RowByCell returns the first row whose cell in column equals v, with its
// position, or (-1, nil).
func (t *Table) RowByCell(column, v string) (int, *Row) {
	for i, r := range t.Rows {
		if r.Cell(column) == v {
			return i, r
		}
	}
	return -1, nil
}

// IndexOf returns r's current position in the table, or -1.
func (t *Table) IndexOf(r *Row) int {
	for i, row := range t.Rows {
		if row == r {
			return i
		}
	}
	return -1
}

// Highest scans the current state of the table and returns the largest
// integer found among row labels (column == "") or among the cells of the
// given column. Non-numeric entries are skipped. The second result reports
// whether any numeric entry was seen.
func (t *Table) Highest(column string) (int64, bool) {
	var max int64
	found := false
	for _, r := range t.Rows {
		cell := r.Label
		if column != "" {
			cell = r.Cell(column)
		}
		n, err := strconv.ParseInt(cell, 10, 64)
		if err != nil {
			continue
		}
		if !found || n > max {
			max = n
			found = true
		}
	}
	return max, found
}
