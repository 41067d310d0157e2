// Package model defines shared data structures.
package model

import (
	"math"
	"sort"
	"time"
)

// TimeField is the header marker and the name of the time column.
const TimeField = "timestamp"

// Table is a parsed log: field names and numeric rows.
// Missing or non-numeric cells hold NaN.
type Table struct {
	Fields     []string
	Rows       [][]float64
	HeaderLine int

	index map[string]int
}

// NewTable builds a table and its field index.
func NewTable(fields []string, rows [][]float64, headerLine int) *Table {
	t := &Table{Fields: fields, Rows: rows, HeaderLine: headerLine}
	t.reindex()
	return t
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.Fields))
	for i, f := range t.Fields {
		t.index[f] = i
	}
}

// FieldIndex returns the column position of a field.
func (t *Table) FieldIndex(name string) (int, bool) {
	if t.index == nil {
		t.reindex()
	}
	i, ok := t.index[name]
	return i, ok
}

// HasField reports whether the table has the named field.
func (t *Table) HasField(name string) bool {
	_, ok := t.FieldIndex(name)
	return ok
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Column copies one column out of the table. Unknown fields return nil.
func (t *Table) Column(name string) []float64 {
	idx, ok := t.FieldIndex(name)
	if !ok {
		return nil
	}
	out := make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		if idx < len(row) {
			out[i] = row[idx]
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

// Times returns the time column.
func (t *Table) Times() []float64 {
	return t.Column(TimeField)
}

// SortByTime orders rows by ascending time, keeping ties in file order.
func (t *Table) SortByTime() {
	idx, ok := t.FieldIndex(TimeField)
	if !ok {
		return
	}
	sort.SliceStable(t.Rows, func(i, j int) bool {
		return t.Rows[i][idx] < t.Rows[j][idx]
	})
}

// Span returns the first and last time values.
func (t *Table) Span() (float64, float64) {
	times := t.Times()
	if len(times) == 0 {
		return 0, 0
	}
	return times[0], times[len(times)-1]
}

// OpenRecord is one successful log open kept in history.
type OpenRecord struct {
	ID         int64
	Path       string
	OpenedAt   time.Time
	SizeBytes  int64
	Rows       int
	HeaderLine int
	StartTime  float64
	EndTime    float64
	BoostCol   string
	SpeedCol   string
}
