package metrics

import "github.com/san-kum/gazesim/internal/sim"

// Salience averages the field value under every point, rescaled per frame
// so 1 means the point sits on that frame's maximum.
type Salience struct {
	name    string
	samples int
	total   float64
}

func NewSalience() *Salience {
	return &Salience{name: "salience"}
}

func (s *Salience) Name() string { return s.name }

func (s *Salience) Observe(t sim.Tick) {
	if t.Field == nil {
		return
	}
	lo, hi := t.Field.Range()
	span := hi - lo
	for _, p := range t.Points {
		s.samples++
		if span == 0 {
			continue
		}
		s.total += (t.Field.At(p.Row, p.Col) - lo) / span
	}
}

func (s *Salience) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return s.total / float64(s.samples)
}

func (s *Salience) Reset() {
	s.samples = 0
	s.total = 0
}

// Settled is the fraction of point-ticks spent within threshold cells of
// the goal on both axes.
type Settled struct {
	name      string
	threshold int
	settled   int
	samples   int
}

func NewSettled(threshold int) *Settled {
	return &Settled{
		name:      "settled",
		threshold: threshold,
	}
}

func (s *Settled) Name() string { return s.name }

func (s *Settled) Observe(t sim.Tick) {
	for i, p := range t.Points {
		if i >= len(t.Goals) {
			break
		}
		s.samples++
		if abs(p.Row-t.Goals[i].Row) <= s.threshold && abs(p.Col-t.Goals[i].Col) <= s.threshold {
			s.settled++
		}
	}
}

func (s *Settled) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return float64(s.settled) / float64(s.samples)
}

func (s *Settled) Reset() {
	s.settled = 0
	s.samples = 0
}

// Defaults returns a fresh set of the standard run metrics.
func Defaults() []sim.Metric {
	return []sim.Metric{
		NewGoalDistance(),
		NewTravel(),
		NewSalience(),
		NewSettled(1),
	}
}
