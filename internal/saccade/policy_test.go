package saccade

import (
	"bytes"
	"io"
	"log/slog"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/gazesim/internal/heatmap"
)

func TestNewPolicy(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		kind PolicyKind
		want PolicyKind
	}{
		{PolicyConstant, PolicyConstant},
		{PolicyRandom, PolicyRandom},
		{PolicySaliency, PolicySaliency},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.Policy = tt.kind
		if got := newPolicy(cfg, rng, logger).Kind(); got != tt.want {
			t.Errorf("newPolicy(%s) = %s", tt.kind, got)
		}
	}
}

func TestNewPolicy_UnknownFallsBackToConstant(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	cfg := DefaultConfig()
	cfg.Policy = PolicyKind(42)
	p := newPolicy(cfg, rand.New(rand.NewSource(1)), logger)

	if p.Kind() != PolicyConstant {
		t.Errorf("expected constant fallback, got %s", p.Kind())
	}
	if !strings.Contains(buf.String(), "unsupported gaze policy") {
		t.Errorf("expected a warning, log was %q", buf.String())
	}
}

func TestRandom_Interval(t *testing.T) {
	f := heatmap.New(100, 100)
	p := NewRandom(3*time.Second, rand.New(rand.NewSource(9)))
	states := []TrackedState{{Goal: Point{1, 1}}, {Goal: Point{2, 2}}}

	p.Start(0)
	p.Refresh(states, f, 2999*time.Millisecond)
	if states[0].Goal != (Point{1, 1}) || states[1].Goal != (Point{2, 2}) {
		t.Fatalf("goals moved before the interval: %v", states)
	}

	p.Refresh(states, f, 3*time.Second)
	if states[0].Goal == (Point{1, 1}) && states[1].Goal == (Point{2, 2}) {
		t.Fatal("goals did not move once the interval elapsed")
	}

	moved := states[0].Goal
	p.Refresh(states, f, 4*time.Second)
	if states[0].Goal != moved {
		t.Error("timer was not reset after refreshing")
	}
}

func TestSaliencyGradient_ClimbsFromGoal(t *testing.T) {
	f := heatmap.New(40, 40)
	for r := 0; r < 40; r++ {
		for c := 0; c < 40; c++ {
			f.Set(r, c, float64(r+c))
		}
	}

	p := NewSaliencyGradient(DefaultSearchOptions(), rand.New(rand.NewSource(2)))
	states := []TrackedState{{Goal: Point{Row: 10, Col: 10}, Current: Point{Row: 30, Col: 30}}}
	p.Refresh(states, f, 0)

	g := states[0].Goal
	if g.Row+g.Col <= 20 {
		t.Errorf("expected goal to climb from (10,10), got %v", g)
	}
	if states[0].Current != (Point{Row: 30, Col: 30}) {
		t.Error("refresh must not touch current positions")
	}
}

func TestParsePolicyKind(t *testing.T) {
	for _, name := range PolicyNames() {
		k, err := ParsePolicyKind(name)
		if err != nil {
			t.Fatalf("ParsePolicyKind(%q): %v", name, err)
		}
		if k.String() != name {
			t.Errorf("round trip %q -> %q", name, k.String())
		}
	}

	if _, err := ParsePolicyKind("blink"); err == nil {
		t.Error("expected error for unknown policy")
	}
}
