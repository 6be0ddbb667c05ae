package pipeline

import (
	"testing"

	"github.com/dd0wney/cluso-streamcount/pkg/sampler"
)

func TestNewRouter_RejectsNonPositiveBudget(t *testing.T) {
	for _, maxRounds := range []int{0, -1, -5000} {
		if _, err := NewRouter(maxRounds); err == nil {
			t.Errorf("Expected error for MaxRounds=%d", maxRounds)
		}
	}
}

func TestRoute_RecirculationBoundary(t *testing.T) {
	router, err := NewRouter(5000)
	if err != nil {
		t.Fatalf("NewRouter failed: %v", err)
	}

	tests := []struct {
		name        string
		nextRound   int
		recirculate bool
	}{
		{"round 0 token", 1, true},
		{"nextRound at budget stops recirculating", 5000, false},
		{"token one below boundary", 4999, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := router.Route(sampler.Outcome{NextRound: tt.nextRound})
			if d.Recirculate != tt.recirculate {
				t.Errorf("NextRound %d: recirculate = %v, want %v",
					tt.nextRound, d.Recirculate, tt.recirculate)
			}
		})
	}
}

func TestRoute_ForwardOnNonzeroDelta(t *testing.T) {
	router, _ := NewRouter(10)

	tests := []struct {
		delta   int
		forward bool
	}{
		{0, false},
		{1, true},
		{-1, true},
	}

	for _, tt := range tests {
		d := router.Route(sampler.Outcome{NextRound: 5, Delta: tt.delta})
		if d.Forward != tt.forward {
			t.Errorf("Delta %d: forward = %v, want %v", tt.delta, d.Forward, tt.forward)
		}
	}
}

func TestRoute_BothFlagsSimultaneously(t *testing.T) {
	router, _ := NewRouter(10)

	d := router.Route(sampler.Outcome{NextRound: 5, Delta: 1})
	if !d.Recirculate || !d.Forward {
		t.Errorf("Expected both recirculate and forward, got %+v", d)
	}
}

func TestRoute_NeitherFlag(t *testing.T) {
	router, _ := NewRouter(10)

	d := router.Route(sampler.Outcome{NextRound: 10, Delta: 0})
	if d.Recirculate || d.Forward {
		t.Errorf("Expected neither flag, got %+v", d)
	}
}
