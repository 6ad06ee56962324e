package stats

import (
	"context"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"gopaired/domain/core"
	"gopaired/domain/paired"
)

// PairedTTest compares the means of two dependent series via the t statistic
// of their pointwise differences.
type PairedTTest struct{}

// NewPairedTTest creates the paired t-test adapter
func NewPairedTTest() *PairedTTest {
	return &PairedTTest{}
}

// PairedTTest runs the test on before vs after. The statistic follows the
// sign of before - after; the p-value is two-sided from Student's t with
// n-1 degrees of freedom.
func (t *PairedTTest) PairedTTest(ctx context.Context, before, after []float64) (paired.TestOutcome, error) {
	if len(before) != len(after) {
		return paired.TestOutcome{}, core.ErrLengthMismatch
	}
	n := len(before)
	if n < 2 {
		return paired.TestOutcome{}, core.ErrInsufficientData
	}

	diffs := make([]float64, n)
	sum := 0.0
	for i := range before {
		diffs[i] = before[i] - after[i]
		sum += diffs[i]
	}
	fn := float64(n)
	mean := sum / fn

	ss := 0.0
	for _, d := range diffs {
		dev := d - mean
		ss += dev * dev
	}
	variance := ss / (fn - 1)
	se := math.Sqrt(variance / fn)
	if se == 0 {
		return paired.TestOutcome{}, core.ErrZeroVariance
	}

	statistic := mean / se
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: fn - 1}
	p := 2 * dist.CDF(-math.Abs(statistic))
	if p > 1 {
		p = 1
	}

	return paired.TestOutcome{
		Kind:       paired.TestPairedT,
		Statistic:  statistic,
		PValue:     p,
		SampleSize: n,
	}, nil
}
