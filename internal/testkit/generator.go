package testkit

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"

	"gopaired/domain/sample"
)

// PairedConfig configures the paired-sample generator
type PairedConfig struct {
	Rows         int     `json:"rows"`
	BeforeMean   float64 `json:"before_mean"`
	BeforeStdDev float64 `json:"before_std_dev"`
	ShiftMean    float64 `json:"shift_mean"`
	ShiftStdDev  float64 `json:"shift_std_dev"`
	Seed         int64   `json:"seed"`
}

// DefaultPairedConfig returns sensible defaults: a before series around 50
// with a positive treatment shift around 5
func DefaultPairedConfig() PairedConfig {
	return PairedConfig{
		Rows:         30,
		BeforeMean:   50,
		BeforeStdDev: 10,
		ShiftMean:    5,
		ShiftStdDev:  2,
		Seed:         42,
	}
}

// PairedGenerator generates synthetic paired measurement data
type PairedGenerator struct {
	config PairedConfig
	rng    *rand.Rand
}

// NewPairedGenerator creates a seeded generator
func NewPairedGenerator(config PairedConfig) *PairedGenerator {
	return &PairedGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Generate draws a normally distributed paired sample
func (g *PairedGenerator) Generate() (*sample.PairedSample, error) {
	before := make([]float64, g.config.Rows)
	after := make([]float64, g.config.Rows)
	for i := 0; i < g.config.Rows; i++ {
		before[i] = g.config.BeforeMean + g.config.BeforeStdDev*g.rng.NormFloat64()
		after[i] = before[i] + g.config.ShiftMean + g.config.ShiftStdDev*g.rng.NormFloat64()
	}
	return sample.FromSeries(before, after)
}

// GenerateFrame draws a sample and lays it out as a three-column frame
// (before, after, diff)
func (g *PairedGenerator) GenerateFrame(before, after, diff sample.Column) (*sample.Frame, error) {
	s, err := g.Generate()
	if err != nil {
		return nil, err
	}
	return FrameFromSample(s, before, after, diff)
}

// FrameFromSample lays an existing sample out as a three-column frame
func FrameFromSample(s *sample.PairedSample, before, after, diff sample.Column) (*sample.Frame, error) {
	f, err := sample.NewFrame(before, after, diff)
	if err != nil {
		return nil, err
	}
	for i := 0; i < s.Len(); i++ {
		if err := f.Append(s.Before[i], s.After[i], s.Diff[i]); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// StratifiedNormalPaired builds a deterministic sample whose before series
// and differences sit exactly on normal quantile strata. Unlike a seeded
// draw, its normality is not at the mercy of sampling noise, which makes it
// the fixture of choice for asserting the gaussian branch.
func StratifiedNormalPaired(n int, beforeMean, beforeStdDev, shiftMean, shiftStdDev float64) (*sample.PairedSample, error) {
	before := make([]float64, n)
	after := make([]float64, n)
	for i := 0; i < n; i++ {
		z := distuv.UnitNormal.Quantile((float64(i) + 0.5) / float64(n))
		before[i] = beforeMean + beforeStdDev*z
		after[i] = before[i] + shiftMean + shiftStdDev*z
	}
	return sample.FromSeries(before, after)
}

// StratifiedSkewedPaired builds a deterministic sample whose differences sit
// on exponential quantile strata: strongly right-skewed, reliably failing a
// normality check at every tabulated level.
func StratifiedSkewedPaired(n int, beforeMean, beforeStdDev, shiftScale float64) (*sample.PairedSample, error) {
	before := make([]float64, n)
	after := make([]float64, n)
	for i := 0; i < n; i++ {
		p := (float64(i) + 0.5) / float64(n)
		z := distuv.UnitNormal.Quantile(p)
		before[i] = beforeMean + beforeStdDev*z
		after[i] = before[i] + shiftScale*(-math.Log(1-p))
	}
	return sample.FromSeries(before, after)
}

// InjectOutliers returns a copy of s whose last count rows have their after
// measurement (and hence their difference) shifted by magnitude
func InjectOutliers(s *sample.PairedSample, count int, magnitude float64) (*sample.PairedSample, error) {
	n := s.Len()
	before := make([]float64, n)
	after := make([]float64, n)
	copy(before, s.Before)
	copy(after, s.After)
	for i := n - count; i < n; i++ {
		after[i] += magnitude
	}
	return sample.FromSeries(before, after)
}
