package metrics

import "github.com/san-kum/gazesim/internal/sim"

// GoalDistance is the mean Chebyshev distance between each point and its
// goal over all observed ticks.
type GoalDistance struct {
	name    string
	samples int
	total   float64
}

func NewGoalDistance() *GoalDistance {
	return &GoalDistance{name: "goal_distance"}
}

func (g *GoalDistance) Name() string { return g.name }

func (g *GoalDistance) Observe(t sim.Tick) {
	for i, p := range t.Points {
		if i >= len(t.Goals) {
			break
		}
		g.total += float64(max(abs(p.Row-t.Goals[i].Row), abs(p.Col-t.Goals[i].Col)))
		g.samples++
	}
}

func (g *GoalDistance) Value() float64 {
	if g.samples == 0 {
		return 0
	}
	return g.total / float64(g.samples)
}

func (g *GoalDistance) Reset() {
	g.samples = 0
	g.total = 0
}

// Travel is the mean per-tick movement of a point, in cells.
type Travel struct {
	name    string
	prev    []struct{ row, col int }
	samples int
	total   float64
}

func NewTravel() *Travel {
	return &Travel{name: "travel"}
}

func (m *Travel) Name() string { return m.name }

func (m *Travel) Observe(t sim.Tick) {
	if len(m.prev) == len(t.Points) {
		for i, p := range t.Points {
			m.total += float64(abs(p.Row-m.prev[i].row) + abs(p.Col-m.prev[i].col))
			m.samples++
		}
	}
	m.prev = m.prev[:0]
	for _, p := range t.Points {
		m.prev = append(m.prev, struct{ row, col int }{p.Row, p.Col})
	}
}

func (m *Travel) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *Travel) Reset() {
	m.prev = m.prev[:0]
	m.samples = 0
	m.total = 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
