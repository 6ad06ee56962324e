package sample

import (
	"fmt"
	"math"

	"gopaired/domain/core"
)

// Column names a series inside a Frame
type Column string

// Frame is a small column-oriented table of untyped cells. It exists so that
// callers can hand over loosely typed tabular data (the way a spreadsheet or
// CSV row set arrives) and have the numeric checks happen at PairedSample
// construction rather than at computation time.
type Frame struct {
	columns []Column
	cells   map[Column][]any
}

// NewFrame creates an empty frame with the given column order
func NewFrame(columns ...Column) (*Frame, error) {
	if len(columns) == 0 {
		return nil, core.NewValidationError("frame", "at least one column required")
	}
	cells := make(map[Column][]any, len(columns))
	for _, c := range columns {
		if _, dup := cells[c]; dup {
			return nil, core.NewValidationError("frame", fmt.Sprintf("duplicate column %q", c))
		}
		cells[c] = nil
	}
	return &Frame{columns: columns, cells: cells}, nil
}

// Append adds one row. The number of values must match the column count.
func (f *Frame) Append(values ...any) error {
	if len(values) != len(f.columns) {
		return core.NewValidationError("frame", fmt.Sprintf("row has %d values, frame has %d columns", len(values), len(f.columns)))
	}
	for i, c := range f.columns {
		f.cells[c] = append(f.cells[c], values[i])
	}
	return nil
}

// Columns returns the column order
func (f *Frame) Columns() []Column {
	out := make([]Column, len(f.columns))
	copy(out, f.columns)
	return out
}

// Column returns the raw cells of one column
func (f *Frame) Column(c Column) ([]any, bool) {
	cells, ok := f.cells[c]
	return cells, ok
}

// Len returns the row count
func (f *Frame) Len() int {
	if len(f.columns) == 0 {
		return 0
	}
	return len(f.cells[f.columns[0]])
}

// PairedSample holds the two measurement series of a paired design plus their
// pointwise difference. Invariants: equal lengths, every value finite.
type PairedSample struct {
	Before []float64
	After  []float64
	Diff   []float64
}

// FromFrame builds a PairedSample from three named frame columns. The frame is
// not mutated; the series are materialized as float64 slices. Missing or
// non-numeric columns fail with a validation error.
func FromFrame(f *Frame, before, after, diff Column) (*PairedSample, error) {
	if f == nil {
		return nil, core.NewValidationError("frame", "nil frame")
	}
	series := make(map[Column][]float64, 3)
	for _, c := range []Column{before, after, diff} {
		cells, ok := f.Column(c)
		if !ok {
			return nil, core.NewColumnError(string(c))
		}
		values := make([]float64, len(cells))
		for i, cell := range cells {
			v, ok := asNumeric(cell)
			if !ok {
				return nil, core.NewNonNumericError(string(c), i)
			}
			values[i] = v
		}
		series[c] = values
	}
	return newPairedSample(series[before], series[after], series[diff])
}

// FromSeries builds a PairedSample from raw measurement series, deriving the
// difference as after - before.
func FromSeries(before, after []float64) (*PairedSample, error) {
	if len(before) != len(after) {
		return nil, core.NewValidationError("series", fmt.Sprintf("before has %d values, after has %d", len(before), len(after)))
	}
	diff := make([]float64, len(before))
	for i := range before {
		diff[i] = after[i] - before[i]
	}
	return newPairedSample(before, after, diff)
}

func newPairedSample(before, after, diff []float64) (*PairedSample, error) {
	if len(before) == 0 {
		return nil, core.NewValidationError("sample", "at least one observation pair required")
	}
	for name, s := range map[string][]float64{"before": before, "after": after, "diff": diff} {
		for i, v := range s {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, core.NewValidationError(name, fmt.Sprintf("non-finite value at row %d", i))
			}
		}
	}
	return &PairedSample{Before: before, After: after, Diff: diff}, nil
}

// Len returns the number of observation pairs
func (s *PairedSample) Len() int {
	return len(s.Before)
}

// FilterByDiff returns a new sample containing only the rows whose difference
// satisfies keep. The receiver is left untouched.
func (s *PairedSample) FilterByDiff(keep func(float64) bool) *PairedSample {
	out := &PairedSample{}
	for i, d := range s.Diff {
		if keep(d) {
			out.Before = append(out.Before, s.Before[i])
			out.After = append(out.After, s.After[i])
			out.Diff = append(out.Diff, d)
		}
	}
	return out
}

// asNumeric accepts the numeric cell types a loosely typed row source produces
func asNumeric(cell any) (float64, bool) {
	var v float64
	switch x := cell.(type) {
	case float64:
		v = x
	case float32:
		v = float64(x)
	case int:
		v = float64(x)
	case int8:
		v = float64(x)
	case int16:
		v = float64(x)
	case int32:
		v = float64(x)
	case int64:
		v = float64(x)
	case uint:
		v = float64(x)
	case uint8:
		v = float64(x)
	case uint16:
		v = float64(x)
	case uint32:
		v = float64(x)
	case uint64:
		v = float64(x)
	default:
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
