package saccade

import "testing"

func TestSmoothAxis(t *testing.T) {
	tests := []struct {
		name string
		c, g int
		want int
	}{
		{"far positive", 0, 100, 13},
		{"far negative", 100, 0, 87},
		{"half step", 0, 20, 10},
		{"half step negative", 20, 0, 10},
		{"floor positive", 0, 3, 1},
		{"floor negative", 0, -3, -2},
		{"minimum step", 0, 1, 1},
		{"minimum step negative", 1, 0, 0},
		{"on goal steps forward", 5, 5, 6},
		{"one past goal steps back", 6, 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SmoothAxis(tt.c, tt.g); got != tt.want {
				t.Errorf("SmoothAxis(%d, %d) = %d, want %d", tt.c, tt.g, got, tt.want)
			}
		})
	}
}

func TestSmooth_Converges(t *testing.T) {
	for _, goal := range []Point{{100, 100}, {-100, 40}, {7, -63}} {
		cur := Point{}
		first := Smooth(cur, goal)
		for _, step := range []int{abs(first.Row - cur.Row), abs(first.Col - cur.Col)} {
			if step < 1 || step > 13 {
				t.Errorf("goal %v: first step %d outside [1,13]", goal, step)
			}
		}

		prevRow, prevCol := abs(goal.Row-cur.Row), abs(goal.Col-cur.Col)
		for i := 0; i < 100 && (prevRow > 2 || prevCol > 2); i++ {
			cur = Smooth(cur, goal)
			dRow, dCol := abs(goal.Row-cur.Row), abs(goal.Col-cur.Col)
			if prevRow > 2 && dRow >= prevRow {
				t.Fatalf("goal %v: row distance did not shrink (%d -> %d)", goal, prevRow, dRow)
			}
			if prevCol > 2 && dCol >= prevCol {
				t.Fatalf("goal %v: col distance did not shrink (%d -> %d)", goal, prevCol, dCol)
			}
			prevRow, prevCol = dRow, dCol
		}
		if prevRow > 2 || prevCol > 2 {
			t.Errorf("goal %v: never settled, last distance (%d,%d)", goal, prevRow, prevCol)
		}
	}
}

func TestSmooth_SettlesIntoOscillation(t *testing.T) {
	goal := Point{Row: 10, Col: 10}
	cur := goal
	seen := map[Point]bool{}
	for i := 0; i < 10; i++ {
		cur = Smooth(cur, goal)
		seen[cur] = true
	}
	if len(seen) != 2 || !seen[Point{10, 10}] || !seen[Point{11, 11}] {
		t.Errorf("expected oscillation between goal and goal+1, visited %v", seen)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
