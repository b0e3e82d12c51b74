package sizemodel

import (
	"math"
	"testing"
)

func TestFitRanksByRSquared(t *testing.T) {
	lengths := []float64{1, 2, 5, 10, 20, 50, 100, 200, 500}
	bpv := make([]float64, len(lengths))
	for i, l := range lengths {
		bpv[i] = 2.0 + 30.0/l
	}

	result, err := Fit(lengths, bpv)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	if result.BestFit == nil {
		t.Fatal("BestFit should not be nil")
	}

	if len(result.AllModels) != 3 {
		t.Fatalf("expected 3 candidate models, got %d", len(result.AllModels))
	}

	for i := 1; i < len(result.AllModels); i++ {
		if result.AllModels[i-1].RSquared < result.AllModels[i].RSquared {
			t.Errorf("models not sorted by R²: %d=%.4f then %d=%.4f",
				i-1, result.AllModels[i-1].RSquared, i, result.AllModels[i].RSquared)
		}
	}

	if result.BestFit.Type != ModelTypeHyperbolic {
		t.Errorf("expected hyperbolic data to fit best as hyperbolic, got %s", result.BestFit.Type)
	}

	if result.BestFit.RSquared < 0.99 {
		t.Errorf("expected near-perfect fit for synthetic hyperbolic data, got R²=%.4f", result.BestFit.RSquared)
	}
}

func TestFitRejectsMismatchedLengths(t *testing.T) {
	_, err := Fit([]float64{1, 2, 3}, []float64{1, 2})
	if err == nil {
		t.Fatal("expected error for mismatched sample lengths")
	}
}

func TestFitRejectsTooFewSamples(t *testing.T) {
	_, err := Fit([]float64{1}, []float64{1})
	if err == nil {
		t.Fatal("expected error for insufficient samples")
	}
}

func TestEstimatorRoundTrip(t *testing.T) {
	h := NewHyperbolicEstimator(2, 30)
	if got := h.Estimate(10); math.Abs(got-5) > 1e-9 {
		t.Errorf("hyperbolic estimate = %v, want 5", got)
	}

	if h.Type() != ModelTypeHyperbolic {
		t.Errorf("unexpected type %s", h.Type())
	}

	est, err := NewEstimator("power", []float64{1.5, 0.5})
	if err != nil {
		t.Fatalf("NewEstimator failed: %v", err)
	}
	if est.Type() != ModelTypePower {
		t.Errorf("unexpected type %s", est.Type())
	}

	if _, err := NewEstimator("bogus", []float64{1, 2}); err == nil {
		t.Fatal("expected error for unknown model name")
	}
}
