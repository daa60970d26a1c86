package sim

import (
	"errors"
	"fmt"

	"github.com/san-kum/gazesim/internal/heatmap"
	"github.com/san-kum/gazesim/internal/saccade"
)

// Tick is what metrics and observers see after every engine update.
type Tick struct {
	Index  int
	Time   float64
	Points []saccade.Point
	Goals  []saccade.Point
	Field  *heatmap.Field
}

type Metric interface {
	Name() string
	Observe(t Tick)
	Value() float64
	Reset()
}

type Observer interface {
	OnTick(t Tick)
}

type Config struct {
	Engine saccade.Config
	Ticks  int
	FPS    int
	Seed   int64
}

func DefaultConfig() Config {
	return Config{
		Engine: saccade.DefaultConfig(),
		Ticks:  300,
		FPS:    30,
		Seed:   1,
	}
}

type Result struct {
	Frames     [][]saccade.Point
	Goals      [][]saccade.Point
	Times      []float64
	Metrics    map[string]float64
	Rows       int
	Cols       int
	TicksTaken int
}

// Track returns the positions of one tracked point across all frames.
func (r *Result) Track(idx int) []saccade.Point {
	out := make([]saccade.Point, 0, len(r.Frames))
	for _, frame := range r.Frames {
		if idx < len(frame) {
			out = append(out, frame[idx])
		}
	}
	return out
}

var ErrNoProvider = errors.New("sim: runner has no heatmap provider")

type SimError struct {
	Tick    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("tick %d: %s", e.Tick, e.Message)
}
