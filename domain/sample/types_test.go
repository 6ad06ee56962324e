package sample

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gopaired/domain/core"
)

func buildFrame(t *testing.T, rows [][3]any) *Frame {
	t.Helper()
	f, err := NewFrame("before", "after", "diff")
	require.NoError(t, err)
	for _, row := range rows {
		require.NoError(t, f.Append(row[0], row[1], row[2]))
	}
	return f
}

func TestFromFrame_Valid(t *testing.T) {
	f := buildFrame(t, [][3]any{
		{10.0, 12.0, 2.0},
		{20, 19, -1},
		{float32(30), float32(33), float32(3)},
	})

	s, err := FromFrame(f, "before", "after", "diff")
	require.NoError(t, err)

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []float64{10, 20, 30}, s.Before)
	assert.Equal(t, []float64{12, 19, 33}, s.After)
	assert.Equal(t, []float64{2, -1, 3}, s.Diff)
}

func TestFromFrame_MissingColumn(t *testing.T) {
	f := buildFrame(t, [][3]any{{1.0, 2.0, 1.0}})

	_, err := FromFrame(f, "before", "after", "delta")
	assert.True(t, core.IsValidationError(err))
	assert.ErrorIs(t, err, core.ErrColumnNotFound)
}

func TestFromFrame_NonNumericColumn(t *testing.T) {
	f := buildFrame(t, [][3]any{
		{1.0, 2.0, 1.0},
		{"oops", 3.0, 2.0},
	})

	_, err := FromFrame(f, "before", "after", "diff")
	assert.True(t, core.IsValidationError(err))
	assert.ErrorIs(t, err, core.ErrNonNumericColumn)
}

func TestFromFrame_RejectsNonFiniteCells(t *testing.T) {
	f := buildFrame(t, [][3]any{{math.NaN(), 2.0, 1.0}})

	_, err := FromFrame(f, "before", "after", "diff")
	assert.True(t, core.IsValidationError(err))
}

func TestFromSeries(t *testing.T) {
	s, err := FromSeries([]float64{10, 20, 30}, []float64{12, 19, 33})
	require.NoError(t, err)
	assert.Equal(t, []float64{2, -1, 3}, s.Diff)

	_, err = FromSeries([]float64{1, 2}, []float64{1})
	assert.True(t, core.IsValidationError(err))

	_, err = FromSeries(nil, nil)
	assert.True(t, core.IsValidationError(err), "empty sample must be rejected")

	_, err = FromSeries([]float64{1}, []float64{math.Inf(1)})
	assert.True(t, core.IsValidationError(err))
}

func TestFilterByDiff_LeavesReceiverUntouched(t *testing.T) {
	s, err := FromSeries([]float64{10, 20, 30, 40}, []float64{11, 22, 33, 80})
	require.NoError(t, err)

	clean := s.FilterByDiff(func(d float64) bool { return d < 10 })

	assert.Equal(t, 3, clean.Len())
	assert.Equal(t, []float64{1, 2, 3}, clean.Diff)
	assert.Equal(t, 4, s.Len(), "original sample must not shrink")
}

func TestFrame_AppendArity(t *testing.T) {
	f, err := NewFrame("a", "b")
	require.NoError(t, err)

	assert.Error(t, f.Append(1.0))
	require.NoError(t, f.Append(1.0, 2.0))
	assert.Equal(t, 1, f.Len())
}

func TestNewFrame_RejectsDuplicates(t *testing.T) {
	_, err := NewFrame("a", "a")
	assert.True(t, core.IsValidationError(err))

	_, err = NewFrame()
	assert.True(t, core.IsValidationError(err))
}
