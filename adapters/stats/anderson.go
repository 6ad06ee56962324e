package stats

import (
	"context"
	"math"
	"sort"

	mstats "github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"gopaired/domain/core"
	"gopaired/domain/paired"
)

// Base critical values for the normal case (Stephens 1974), loosest level
// first, matching paired.Levels() order. The per-sample table divides these
// by the small-sample correction 1 + 4/n - 25/n^2.
var andersonBaseCritical = []float64{0.576, 0.656, 0.787, 0.918, 1.092}

// AndersonDarling tests a series for normality and reports the A^2 statistic
// together with critical values for the tabulated significance levels.
type AndersonDarling struct{}

// NewAndersonDarling creates the normality adapter
func NewAndersonDarling() *AndersonDarling {
	return &AndersonDarling{}
}

// TestNormality computes the Anderson-Darling statistic of series against the
// normal distribution with estimated mean and standard deviation.
func (a *AndersonDarling) TestNormality(ctx context.Context, series []float64) (paired.NormalityVerdict, error) {
	n := len(series)
	if n < 3 {
		return paired.NormalityVerdict{}, core.ErrInsufficientData
	}

	mean, err := mstats.Mean(series)
	if err != nil {
		return paired.NormalityVerdict{}, err
	}
	sd, err := mstats.StandardDeviationSample(series)
	if err != nil {
		return paired.NormalityVerdict{}, err
	}
	if sd == 0 {
		return paired.NormalityVerdict{}, core.ErrZeroVariance
	}

	sorted := make([]float64, n)
	copy(sorted, series)
	sort.Float64s(sorted)

	// A^2 = -n - (1/n) * sum (2i-1) * (ln F(w_i) + ln (1 - F(w_{n+1-i})))
	norm := distuv.UnitNormal
	sum := 0.0
	for i := 0; i < n; i++ {
		w := (sorted[i] - mean) / sd
		wRev := (sorted[n-1-i] - mean) / sd
		sum += float64(2*i+1) * (math.Log(norm.CDF(w)) + math.Log(norm.Survival(wRev)))
	}
	fn := float64(n)
	statistic := -fn - sum/fn

	correction := 1.0 + 4.0/fn - 25.0/(fn*fn)
	critical := make(map[paired.SignificanceLevel]float64, len(andersonBaseCritical))
	for i, level := range paired.Levels() {
		critical[level] = round3(andersonBaseCritical[i] / correction)
	}

	return paired.NewNormalityVerdict(statistic, critical)
}

// round3 matches the 3-decimal critical value tables the procedure was
// calibrated against
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
