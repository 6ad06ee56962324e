package ports

import (
	"context"

	"gopaired/domain/paired"
)

// NormalityPort tests a series against the normal distribution and returns
// the observed statistic with its per-level critical values.
type NormalityPort interface {
	TestNormality(ctx context.Context, series []float64) (paired.NormalityVerdict, error)
}

// PairedTTestPort runs a paired t-test over two equally long series
type PairedTTestPort interface {
	PairedTTest(ctx context.Context, before, after []float64) (paired.TestOutcome, error)
}

// WilcoxonPort runs a Wilcoxon signed-rank test over two equally long series.
// Implementations fail when every pointwise difference is zero.
type WilcoxonPort interface {
	WilcoxonSignedRank(ctx context.Context, before, after []float64) (paired.TestOutcome, error)
}

// QuantilePort computes the q-th quantile of a series, q in [0, 1],
// using linear interpolation between order statistics.
type QuantilePort interface {
	Quantile(series []float64, q float64) (float64, error)
}
