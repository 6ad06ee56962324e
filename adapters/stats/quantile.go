package stats

import (
	"fmt"
	"math"
	"sort"

	"gopaired/domain/core"
)

// LinearQuantile computes quantiles by linear interpolation between order
// statistics (the standard quartile definition). Neither montanaflynn's
// rank-based Percentile nor gonum's empirical CDF kinds reproduce it, so the
// interpolation is done here directly.
type LinearQuantile struct{}

// NewLinearQuantile creates the quantile adapter
func NewLinearQuantile() *LinearQuantile {
	return &LinearQuantile{}
}

// Quantile returns the q-th quantile of series, q in [0, 1]. The input is not
// modified; a copy is sorted internally.
func (lq *LinearQuantile) Quantile(series []float64, q float64) (float64, error) {
	if len(series) == 0 {
		return 0, core.ErrInsufficientData
	}
	if q < 0 || q > 1 || math.IsNaN(q) {
		return 0, core.NewValidationError("quantile", fmt.Sprintf("q must be in [0, 1], got %v", q))
	}

	sorted := make([]float64, len(series))
	copy(sorted, series)
	sort.Float64s(sorted)

	h := float64(len(sorted)-1) * q
	lo := int(math.Floor(h))
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1], nil
	}
	frac := h - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo]), nil
}
