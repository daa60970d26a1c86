package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/gazesim/internal/heatmap"
	"github.com/san-kum/gazesim/internal/saccade"
	"github.com/san-kum/gazesim/internal/sim"
)

func TestGoalDistance(t *testing.T) {
	m := NewGoalDistance()
	m.Observe(sim.Tick{
		Points: []saccade.Point{{Row: 0, Col: 0}, {Row: 5, Col: 5}},
		Goals:  []saccade.Point{{Row: 3, Col: 1}, {Row: 5, Col: 5}},
	})

	if m.Value() != 1.5 {
		t.Errorf("expected 1.5, got %v", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestTravel(t *testing.T) {
	m := NewTravel()
	m.Observe(sim.Tick{Points: []saccade.Point{{Row: 0, Col: 0}}})
	if m.Value() != 0 {
		t.Error("first tick has no movement to measure")
	}
	m.Observe(sim.Tick{Points: []saccade.Point{{Row: 3, Col: 4}}})
	if m.Value() != 7 {
		t.Errorf("expected 7, got %v", m.Value())
	}
}

func TestSalience(t *testing.T) {
	f := heatmap.New(2, 2)
	f.Set(1, 1, 4)
	f.Set(0, 1, 2)

	m := NewSalience()
	m.Observe(sim.Tick{Field: f, Points: []saccade.Point{{Row: 1, Col: 1}, {Row: 0, Col: 1}}})

	if math.Abs(m.Value()-0.75) > 1e-12 {
		t.Errorf("expected 0.75, got %v", m.Value())
	}
}

func TestSettled(t *testing.T) {
	m := NewSettled(1)
	goals := []saccade.Point{{Row: 10, Col: 10}}
	m.Observe(sim.Tick{Points: []saccade.Point{{Row: 11, Col: 11}}, Goals: goals})
	m.Observe(sim.Tick{Points: []saccade.Point{{Row: 20, Col: 10}}, Goals: goals})

	if m.Value() != 0.5 {
		t.Errorf("expected 0.5, got %v", m.Value())
	}
}

func TestDefaultsAreFresh(t *testing.T) {
	a, b := Defaults(), Defaults()
	if len(a) == 0 || a[0] == b[0] {
		t.Error("Defaults must build new metric instances")
	}
}
