package saccade

import "math"

const (
	minStep = 1.0
	maxStep = 13.0
)

// SmoothAxis moves c toward g by half the remaining distance, clamped to
// [1, 13] cells. A zero delta counts as positive, so a point sitting on its
// goal steps one cell forward and then back again.
func SmoothAxis(c, g int) int {
	delta := g - c
	magnitude := math.Abs(float64(delta)) / 2
	magnitude = math.Max(math.Min(magnitude, maxStep), minStep)
	sign := 1.0
	if delta < 0 {
		sign = -1.0
	}
	return c + int(math.Floor(magnitude*sign))
}

// Smooth applies SmoothAxis to both axes independently.
func Smooth(current, goal Point) Point {
	return Point{
		Row: SmoothAxis(current.Row, goal.Row),
		Col: SmoothAxis(current.Col, goal.Col),
	}
}

func clampPoint(p Point, rows, cols int) Point {
	return Point{Row: clampInt(p.Row, 0, rows-1), Col: clampInt(p.Col, 0, cols-1)}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
