package stats

import (
	"context"
	"errors"
	"testing"

	"gopaired/domain/core"
	"gopaired/domain/paired"
	"gopaired/internal/testkit"
)

func TestAndersonDarling_CriticalTableForN50(t *testing.T) {
	ad := NewAndersonDarling()

	s, err := testkit.StratifiedNormalPaired(50, 50, 10, 5, 2)
	if err != nil {
		t.Fatalf("fixture: %v", err)
	}
	verdict, err := ad.TestNormality(context.Background(), s.Diff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// reference table for n=50: base values divided by 1 + 4/50 - 25/2500
	expected := map[paired.SignificanceLevel]float64{
		paired.Level15: 0.538,
		paired.Level10: 0.613,
		paired.Level5:  0.736,
		paired.Level2:  0.858,
		paired.Level1:  1.021,
	}
	for level, want := range expected {
		got, ok := verdict.CriticalValueAt(level)
		if !ok {
			t.Fatalf("missing critical value for level %d", level)
		}
		if !aeq(got, want, 1e-9) {
			t.Errorf("level %d: expected critical value %v, got %v", level, want, got)
		}
	}
}

func TestAndersonDarling_StratifiedNormalIsGaussianEverywhere(t *testing.T) {
	ad := NewAndersonDarling()

	s, err := testkit.StratifiedNormalPaired(50, 50, 10, 5, 2)
	if err != nil {
		t.Fatalf("fixture: %v", err)
	}
	verdict, err := ad.TestNormality(context.Background(), s.Diff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if verdict.Statistic >= 0.3 {
		t.Errorf("stratified normal data should have a small statistic, got %v", verdict.Statistic)
	}
	for _, level := range paired.Levels() {
		decision, ok := verdict.DecisionAt(level)
		if !ok {
			t.Fatalf("missing decision at level %d", level)
		}
		if decision != paired.DistributionGaussian {
			t.Errorf("level %d: expected gaussian, got %s", level, decision)
		}
	}
}

func TestAndersonDarling_SkewedDataFailsEverywhere(t *testing.T) {
	ad := NewAndersonDarling()

	s, err := testkit.StratifiedSkewedPaired(50, 50, 10, 2)
	if err != nil {
		t.Fatalf("fixture: %v", err)
	}
	verdict, err := ad.TestNormality(context.Background(), s.Diff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, level := range paired.Levels() {
		decision, ok := verdict.DecisionAt(level)
		if !ok {
			t.Fatalf("missing decision at level %d", level)
		}
		if decision != paired.DistributionNotGaussian {
			t.Errorf("level %d: expected not_gaussian (statistic %v), got %s", level, verdict.Statistic, decision)
		}
	}
}

func TestAndersonDarling_DegenerateInputs(t *testing.T) {
	ad := NewAndersonDarling()
	ctx := context.Background()

	if _, err := ad.TestNormality(ctx, []float64{1, 2}); !errors.Is(err, core.ErrInsufficientData) {
		t.Errorf("expected insufficient data, got %v", err)
	}
	if _, err := ad.TestNormality(ctx, []float64{3, 3, 3, 3}); !errors.Is(err, core.ErrZeroVariance) {
		t.Errorf("expected zero variance, got %v", err)
	}
}
