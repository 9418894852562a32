package model

import "github.com/rotisserie/eris"

// Frame is a generic table with named, ordered columns. Acquisition
// sources that do not produce typed match rows (the stats API, imported
// CSV files) hand their data downstream in this shape.
type Frame struct {
	Columns []string
	Rows    [][]any
}

// NewFrame creates an empty frame with the given column order.
func NewFrame(columns ...string) *Frame {
	return &Frame{Columns: columns}
}

// Append adds one row. Row length must match the column count.
func (f *Frame) Append(row []any) error {
	if len(row) != len(f.Columns) {
		return eris.Errorf("model: frame row has %d values, want %d", len(row), len(f.Columns))
	}
	f.Rows = append(f.Rows, row)
	return nil
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	if f == nil {
		return 0
	}
	return len(f.Rows)
}

// MatchFrame converts typed match rows into a frame in canonical column
// order, preserving row order.
func MatchFrame(records []MatchRecord) *Frame {
	f := NewFrame(MatchColumns()...)
	for _, r := range records {
		f.Rows = append(f.Rows, r.Values())
	}
	return f
}
