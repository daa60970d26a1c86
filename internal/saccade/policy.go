package saccade

import (
	"log/slog"
	"math/rand"
	"time"
)

// Policy refreshes the goals of every tracked point once per frame.
type Policy interface {
	Kind() PolicyKind
	// Start is called once, right after the engine seeds its points.
	Start(now time.Duration)
	Refresh(states []TrackedState, field Field, now time.Duration)
}

// Constant leaves goals where the first frame put them.
type Constant struct{}

func (Constant) Kind() PolicyKind                             { return PolicyConstant }
func (Constant) Start(time.Duration)                          {}
func (Constant) Refresh([]TrackedState, Field, time.Duration) {}

// Random redraws every goal uniformly once Interval has elapsed since the
// previous draw. The boundary is inclusive: with the default 3s interval goals
// hold at 2999ms and are redrawn on the first frame at or after 3000ms.
type Random struct {
	Interval time.Duration
	rng      *rand.Rand
	last     time.Duration
}

func NewRandom(interval time.Duration, rng *rand.Rand) *Random {
	return &Random{Interval: interval, rng: rng}
}

func (p *Random) Kind() PolicyKind { return PolicyRandom }

func (p *Random) Start(now time.Duration) { p.last = now }

func (p *Random) Refresh(states []TrackedState, field Field, now time.Duration) {
	if now-p.last < p.Interval {
		return
	}
	rows, cols := field.Rows(), field.Cols()
	for i := range states {
		states[i].Goal.Col = p.rng.Intn(cols)
		states[i].Goal.Row = p.rng.Intn(rows)
	}
	p.last = now
}

// SaliencyGradient moves every goal to the best cell LocalSearch finds
// around it, every frame.
type SaliencyGradient struct {
	Search SearchOptions
	rng    *rand.Rand
}

func NewSaliencyGradient(opts SearchOptions, rng *rand.Rand) *SaliencyGradient {
	return &SaliencyGradient{Search: opts, rng: rng}
}

func (p *SaliencyGradient) Kind() PolicyKind { return PolicySaliency }

func (p *SaliencyGradient) Start(time.Duration) {}

func (p *SaliencyGradient) Refresh(states []TrackedState, field Field, _ time.Duration) {
	for i := range states {
		states[i].Goal = LocalSearch(states[i].Goal, field, p.rng, p.Search)
	}
}

// newPolicy never fails: kinds it does not know fall back to Constant.
func newPolicy(cfg Config, rng *rand.Rand, logger *slog.Logger) Policy {
	switch cfg.Policy {
	case PolicyConstant:
		return Constant{}
	case PolicyRandom:
		return NewRandom(cfg.RandomInterval, rng)
	case PolicySaliency:
		return NewSaliencyGradient(SearchOptions{Samples: cfg.SearchSamples, Radius: cfg.SearchRadius}, rng)
	default:
		logger.Warn("unsupported gaze policy, defaulting to constant", "policy", cfg.Policy.String())
		return Constant{}
	}
}
