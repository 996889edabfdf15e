package models

import "strings"

// Table is an uninterpreted delimited dataset: a header row and string cells.
type Table struct {
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// Head returns a copy of the table limited to the first n rows.
func (t Table) Head(n int) Table {
	if n < 0 || n >= len(t.Rows) {
		n = len(t.Rows)
	}
	rows := make([][]string, n)
	copy(rows, t.Rows[:n])
	return Table{Header: t.Header, Rows: rows}
}

// ColumnIndex maps trimmed header names to their position. The first
// occurrence of a duplicated name wins.
func (t Table) ColumnIndex() map[string]int {
	index := make(map[string]int, len(t.Header))
	for i, name := range t.Header {
		key := normalizeHeader(name, i)
		if _, ok := index[key]; !ok {
			index[key] = i
		}
	}
	return index
}

func normalizeHeader(name string, pos int) string {
	if pos == 0 {
		name = strings.TrimPrefix(name, "\ufeff")
	}
	return strings.TrimSpace(name)
}
