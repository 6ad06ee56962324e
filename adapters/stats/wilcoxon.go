package stats

import (
	"context"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"

	"gopaired/domain/core"
	"gopaired/domain/paired"
)

// Wilcoxon runs the signed-rank test, the non-parametric fallback when the
// paired differences do not look normal. Zero differences are discarded
// before ranking; the two-sided p-value uses the tie-corrected normal
// approximation of the rank-sum distribution.
type Wilcoxon struct{}

// NewWilcoxon creates the signed-rank adapter
func NewWilcoxon() *Wilcoxon {
	return &Wilcoxon{}
}

// WilcoxonSignedRank runs the test on before vs after. The statistic is the
// smaller of the positive and negative rank sums.
func (w *Wilcoxon) WilcoxonSignedRank(ctx context.Context, before, after []float64) (paired.TestOutcome, error) {
	if len(before) != len(after) {
		return paired.TestOutcome{}, core.ErrLengthMismatch
	}
	if len(before) == 0 {
		return paired.TestOutcome{}, core.ErrInsufficientData
	}

	diffs := make([]float64, 0, len(before))
	for i := range before {
		if d := before[i] - after[i]; d != 0 {
			diffs = append(diffs, d)
		}
	}
	if len(diffs) == 0 {
		return paired.TestOutcome{}, core.ErrAllZeroDifferences
	}

	n := len(diffs)
	abs := make([]float64, n)
	for i, d := range diffs {
		abs[i] = math.Abs(d)
	}
	ranks, tieGroups := averageRanks(abs)

	positiveSum := 0.0
	for i, d := range diffs {
		if d > 0 {
			positiveSum += ranks[i]
		}
	}
	fn := float64(n)
	totalSum := fn * (fn + 1) / 2
	statistic := math.Min(positiveSum, totalSum-positiveSum)

	tieSum := 0.0
	for _, t := range tieGroups {
		ft := float64(t)
		tieSum += ft*ft*ft - ft
	}
	mean := fn * (fn + 1) / 4
	variance := fn*(fn+1)*(2*fn+1)/24 - tieSum/48
	if variance <= 0 {
		return paired.TestOutcome{}, core.ErrZeroVariance
	}

	z := (statistic - mean) / math.Sqrt(variance)
	p := 2 * distuv.UnitNormal.CDF(z)
	if p > 1 {
		p = 1
	}

	return paired.TestOutcome{
		Kind:       paired.TestWilcoxon,
		Statistic:  statistic,
		PValue:     p,
		SampleSize: n,
	}, nil
}

// averageRanks assigns 1-based ranks, giving tied values the mean of the
// ranks they span. It also returns the size of every tie group for the
// variance correction.
func averageRanks(values []float64) ([]float64, []int) {
	n := len(values)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return values[order[a]] < values[order[b]] })

	ranks := make([]float64, n)
	var tieGroups []int
	for i := 0; i < n; {
		j := i
		for j+1 < n && values[order[j+1]] == values[order[i]] {
			j++
		}
		avg := float64(i+j+2) / 2.0 // mean of ranks i+1 .. j+1
		for k := i; k <= j; k++ {
			ranks[order[k]] = avg
		}
		tieGroups = append(tieGroups, j-i+1)
		i = j + 1
	}
	return ranks, tieGroups
}
