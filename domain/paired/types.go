package paired

import (
	"fmt"

	"gopaired/domain/core"
)

// SignificanceLevel is an Anderson-Darling significance level in percent.
// Only the tabulated levels are valid.
type SignificanceLevel int

const (
	Level1  SignificanceLevel = 1
	Level2  SignificanceLevel = 2
	Level5  SignificanceLevel = 5
	Level10 SignificanceLevel = 10
	Level15 SignificanceLevel = 15
)

// Levels returns the tabulated levels in critical-value order (loosest first)
func Levels() []SignificanceLevel {
	return []SignificanceLevel{Level15, Level10, Level5, Level2, Level1}
}

// ParseSignificanceLevel validates a percent value against the tabulated set
func ParseSignificanceLevel(v int) (SignificanceLevel, error) {
	switch SignificanceLevel(v) {
	case Level1, Level2, Level5, Level10, Level15:
		return SignificanceLevel(v), nil
	}
	return 0, core.NewLevelError(v)
}

// Alpha returns the level as a proportion
func (l SignificanceLevel) Alpha() float64 {
	return float64(l) / 100.0
}

// Distribution is the verdict of a normality test at one level
type Distribution string

const (
	DistributionGaussian    Distribution = "gaussian"
	DistributionNotGaussian Distribution = "not_gaussian"
)

// NormalityVerdict is the output of the normality collaborator: an observed
// statistic and a fixed critical value per tabulated level.
type NormalityVerdict struct {
	Statistic float64                       `json:"statistic"`
	Critical  map[SignificanceLevel]float64 `json:"critical"`
}

// NewNormalityVerdict builds a verdict, rejecting critical tables that do not
// cover every tabulated level.
func NewNormalityVerdict(statistic float64, critical map[SignificanceLevel]float64) (NormalityVerdict, error) {
	for _, l := range Levels() {
		if _, ok := critical[l]; !ok {
			return NormalityVerdict{}, core.NewValidationError("critical values", fmt.Sprintf("missing level %d", l))
		}
	}
	table := make(map[SignificanceLevel]float64, len(critical))
	for l, cv := range critical {
		table[l] = cv
	}
	return NormalityVerdict{Statistic: statistic, Critical: table}, nil
}

// CriticalValueAt looks up the critical value for a level
func (v NormalityVerdict) CriticalValueAt(l SignificanceLevel) (float64, bool) {
	cv, ok := v.Critical[l]
	return cv, ok
}

// DecisionAt classifies the statistic at a level. Gaussian only when the
// statistic is strictly below the critical value; equality counts against
// normality.
func (v NormalityVerdict) DecisionAt(l SignificanceLevel) (Distribution, bool) {
	cv, ok := v.Critical[l]
	if !ok {
		return "", false
	}
	if v.Statistic < cv {
		return DistributionGaussian, true
	}
	return DistributionNotGaussian, true
}

// TestKind tags which test produced an outcome
type TestKind string

const (
	TestPairedT  TestKind = "paired_ttest"
	TestWilcoxon TestKind = "wilcoxon_signed_rank"
)

// TestOutcome is the result of one location test over a paired sample
type TestOutcome struct {
	Kind       TestKind `json:"kind"`
	Statistic  float64  `json:"statistic"`
	PValue     float64  `json:"p_value"`
	SampleSize int      `json:"sample_size"`
}

// OutlierBounds are the IQR fences computed from the difference series
type OutlierBounds struct {
	Q1    float64 `json:"q1"`
	Q3    float64 `json:"q3"`
	IQR   float64 `json:"iqr"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Contains reports whether d lies strictly inside the fences. Boundary-equal
// points count as outliers.
func (b OutlierBounds) Contains(d float64) bool {
	return d > b.Lower && d < b.Upper
}

// OutlierReport describes what outlier trimming did during one evaluation.
// It is only ever produced fully populated.
type OutlierReport struct {
	EvaluationID      core.EvaluationID `json:"evaluation_id"`
	Removed           bool              `json:"removed"`
	OriginalSize      int               `json:"original_size"`
	FinalSize         int               `json:"final_size"`
	RemovedCount      int               `json:"removed_count"`
	RemovedPercentage float64           `json:"removed_percentage"`
	Bounds            OutlierBounds     `json:"bounds"`
	ComputedAt        core.Timestamp    `json:"computed_at"`
}

// NewUntrimmedReport reports a run where the full sample was used
func NewUntrimmedReport(id core.EvaluationID, size int, bounds OutlierBounds) OutlierReport {
	return OutlierReport{
		EvaluationID: id,
		Removed:      false,
		OriginalSize: size,
		FinalSize:    size,
		Bounds:       bounds,
		ComputedAt:   core.Now(),
	}
}

// NewTrimmedReport reports a run where rows outside the fences were dropped
func NewTrimmedReport(id core.EvaluationID, originalSize, finalSize int, bounds OutlierBounds) OutlierReport {
	removed := originalSize - finalSize
	percentage := 0.0
	if originalSize > 0 {
		percentage = float64(removed) / float64(originalSize) * 100.0
	}
	return OutlierReport{
		EvaluationID:      id,
		Removed:           true,
		OriginalSize:      originalSize,
		FinalSize:         finalSize,
		RemovedCount:      removed,
		RemovedPercentage: percentage,
		Bounds:            bounds,
		ComputedAt:        core.Now(),
	}
}
