package stats

import (
	"math"
	"testing"

	"gopaired/domain/core"
)

func aeq(a, b, eps float64) bool { return math.Abs(a-b) < eps }

func TestLinearQuantile_InterpolatesBetweenOrderStatistics(t *testing.T) {
	q := NewLinearQuantile()

	tests := []struct {
		name     string
		series   []float64
		quantile float64
		expected float64
	}{
		{"odd length q1", []float64{1, 2, 3, 4, 5}, 0.25, 2},
		{"odd length median", []float64{1, 2, 3, 4, 5}, 0.5, 3},
		{"odd length q3", []float64{1, 2, 3, 4, 5}, 0.75, 4},
		{"even length q1", []float64{1, 2, 3, 4}, 0.25, 1.75},
		{"even length median", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"even length q3", []float64{1, 2, 3, 4}, 0.75, 3.25},
		{"minimum", []float64{3, 1, 2}, 0, 1},
		{"maximum", []float64{3, 1, 2}, 1, 3},
		{"single value", []float64{7}, 0.75, 7},
	}

	for _, test := range tests {
		got, err := q.Quantile(test.series, test.quantile)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", test.name, err)
		}
		if !aeq(got, test.expected, 1e-12) {
			t.Errorf("%s: expected %v, got %v", test.name, test.expected, got)
		}
	}
}

func TestLinearQuantile_DoesNotModifyInput(t *testing.T) {
	q := NewLinearQuantile()
	series := []float64{5, 1, 4, 2, 3}

	if _, err := q.Quantile(series, 0.5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []float64{5, 1, 4, 2, 3}
	for i := range series {
		if series[i] != expected[i] {
			t.Fatalf("input was reordered: %v", series)
		}
	}
}

func TestLinearQuantile_RejectsBadInput(t *testing.T) {
	q := NewLinearQuantile()

	if _, err := q.Quantile(nil, 0.5); err != core.ErrInsufficientData {
		t.Errorf("expected ErrInsufficientData for empty series, got %v", err)
	}
	if _, err := q.Quantile([]float64{1, 2}, 1.5); !core.IsValidationError(err) {
		t.Errorf("expected validation error for q out of range, got %v", err)
	}
	if _, err := q.Quantile([]float64{1, 2}, -0.1); !core.IsValidationError(err) {
		t.Errorf("expected validation error for negative q, got %v", err)
	}
}
