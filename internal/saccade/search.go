package saccade

import (
	"math"
	"math/rand"
)

// SearchOptions bounds one LocalSearch call.
type SearchOptions struct {
	Samples int
	Radius  int
}

// DefaultSearchOptions returns 30 samples within 30 cells per axis.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{Samples: DefaultSearchSamples, Radius: DefaultSearchRadius}
}

// LocalSearch samples random offsets around seed and returns the sampled cell
// with the highest value, or seed if none beats it.
//
// Offsets are drawn per axis as a magnitude in [0, Radius] with a random sign.
// Radius is clamped to [0, MaxSearchRadius].
// Candidates on row 0 or column 0 are never accepted, while the last row and
// column are; the asymmetry is part of the observable simulation output.
func LocalSearch(seed Point, field Field, rng *rand.Rand, opts SearchOptions) Point {
	rows, cols := field.Rows(), field.Cols()
	radius := clampInt(opts.Radius, 0, MaxSearchRadius)

	best := seed
	bestVal := math.Inf(-1)
	if seed.Row >= 0 && seed.Row < rows && seed.Col >= 0 && seed.Col < cols {
		bestVal = field.At(seed.Row, seed.Col)
	}

	for i := 0; i < opts.Samples; i++ {
		dx := signedOffset(rng, radius)
		dy := signedOffset(rng, radius)

		x := seed.Col + dx
		y := seed.Row + dy
		if y <= 0 || y >= rows || x <= 0 || x >= cols {
			continue
		}

		if v := field.At(y, x); v > bestVal {
			bestVal = v
			best = Point{Row: y, Col: x}
		}
	}

	return best
}

func signedOffset(rng *rand.Rand, radius int) int {
	d := rng.Intn(radius + 1)
	if rng.Intn(2) == 1 {
		d = -d
	}
	return d
}
