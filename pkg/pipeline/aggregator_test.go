package pipeline

import "testing"

func TestNewAggregator_RejectsBadScalars(t *testing.T) {
	if _, err := NewAggregator(0, 100); err == nil {
		t.Error("Expected error for zero edge count")
	}
	if _, err := NewAggregator(954, 2); err == nil {
		t.Error("Expected error for vertex count below 3")
	}
	if _, err := NewAggregator(954, 100); err != nil {
		t.Errorf("Unexpected error for valid scalars: %v", err)
	}
}

func TestContribute_ReferenceScenario(t *testing.T) {
	// edgeCount=954, vertexCount=100, sumDelta=5
	// floor((1/5)*5*954*98) = 93492
	agg, _ := NewAggregator(954, 100)

	var est Estimate
	var ok bool
	for i := 0; i < 5; i++ {
		est, ok = agg.Contribute(3, 1)
	}

	if !ok {
		t.Fatal("Expected an estimate for nonzero sum")
	}
	if agg.Sum(3) != 5 {
		t.Errorf("Expected sum 5, got %d", agg.Sum(3))
	}
	if est.Round != 3 {
		t.Errorf("Expected round 3, got %d", est.Round)
	}
	if est.Triangles != 93492 {
		t.Errorf("Expected estimate 93492, got %d", est.Triangles)
	}
}

func TestContribute_ZeroSumEmitsNothing(t *testing.T) {
	agg, _ := NewAggregator(954, 100)

	if _, ok := agg.Contribute(1, 1); !ok {
		t.Error("Expected estimate after +1")
	}
	if _, ok := agg.Contribute(1, -1); ok {
		t.Error("Expected no estimate when sum returns to zero")
	}

	// Retry on next nonzero contribution
	est, ok := agg.Contribute(1, 1)
	if !ok {
		t.Fatal("Expected estimate once sum is nonzero again")
	}
	if est.Triangles != 93492 {
		t.Errorf("Expected estimate 93492, got %d", est.Triangles)
	}
}

func TestContribute_NegativeSumStillEmits(t *testing.T) {
	// Only zero-ness suppresses emission; the formula's collapse means
	// a negative sum yields the same value as a positive one
	agg, _ := NewAggregator(954, 100)

	est, ok := agg.Contribute(2, -1)
	if !ok {
		t.Fatal("Expected estimate for sum -1")
	}
	if est.Triangles != 93492 {
		t.Errorf("Expected estimate 93492, got %d", est.Triangles)
	}
}

func TestContribute_RoundsAreIndependent(t *testing.T) {
	agg, _ := NewAggregator(10, 5)

	agg.Contribute(1, 1)
	agg.Contribute(1, 1)
	agg.Contribute(2, -1)

	if agg.Sum(1) != 2 {
		t.Errorf("Round 1: expected sum 2, got %d", agg.Sum(1))
	}
	if agg.Sum(2) != -1 {
		t.Errorf("Round 2: expected sum -1, got %d", agg.Sum(2))
	}
	if agg.Sum(3) != 0 {
		t.Errorf("Round 3: expected sum 0, got %d", agg.Sum(3))
	}
	if agg.Rounds() != 2 {
		t.Errorf("Expected 2 contributing rounds, got %d", agg.Rounds())
	}
}

func TestContribute_ExactAtLargeSums(t *testing.T) {
	// (1.0/s)*s dips below 1.0 in floating point for sums like 49, 98,
	// and 103; truncating that product would emit e*(v-2) - 1. The
	// integer formula must hold for any nonzero sum.
	for _, target := range []int{49, 98, 103} {
		agg, _ := NewAggregator(954, 100)

		var est Estimate
		var ok bool
		for i := 0; i < target; i++ {
			est, ok = agg.Contribute(1, 1)
		}

		if !ok {
			t.Fatalf("Sum %d: expected an estimate", target)
		}
		if agg.Sum(1) != int64(target) {
			t.Fatalf("Expected sum %d, got %d", target, agg.Sum(1))
		}
		if est.Triangles != 93492 {
			t.Errorf("Sum %d: expected estimate 93492, got %d", target, est.Triangles)
		}
	}
}

func TestContribute_FormulaCollapse(t *testing.T) {
	// For any nonzero sum the emitted value is edgeCount*(vertexCount-2)
	agg, _ := NewAggregator(10, 5)

	expected := int64(10 * (5 - 2))
	for _, delta := range []int{1, 1, 1, -1, 1} {
		est, ok := agg.Contribute(0, delta)
		if !ok {
			continue
		}
		if est.Triangles != expected {
			t.Errorf("Expected %d for any nonzero sum, got %d", expected, est.Triangles)
		}
	}
}
