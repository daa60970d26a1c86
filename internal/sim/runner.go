package sim

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"time"

	"github.com/san-kum/gazesim/internal/heatmap"
	"github.com/san-kum/gazesim/internal/saccade"
)

// Runner drives one gaze engine over a heatmap provider, one frame per tick.
type Runner struct {
	provider  heatmap.Provider
	logger    *slog.Logger
	metrics   []Metric
	observers []Observer
}

func New(provider heatmap.Provider, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{
		provider:  provider,
		logger:    logger,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Run simulates cfg.Ticks frames. Time advances by 1/FPS per frame on a
// manual clock, so runs with the same seed and provider are reproducible.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	if r.provider == nil {
		return nil, ErrNoProvider
	}

	clock := &saccade.ManualClock{}
	engine, err := saccade.New(cfg.Engine,
		saccade.WithRand(rand.New(rand.NewSource(cfg.Seed))),
		saccade.WithClock(clock),
		saccade.WithLogger(r.logger),
	)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Frames:  make([][]saccade.Point, 0, cfg.Ticks),
		Goals:   make([][]saccade.Point, 0, cfg.Ticks),
		Times:   make([]float64, 0, cfg.Ticks),
		Metrics: make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	frame := time.Second / time.Duration(cfg.FPS)

	for i := 0; i < cfg.Ticks; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		field := r.provider.Next(i)
		if field == nil {
			return result, SimError{Tick: i, Message: "provider returned no field"}
		}

		points, err := engine.Update(field)
		if err != nil {
			return result, err
		}

		tick := Tick{
			Index:  i,
			Time:   clock.Now().Seconds(),
			Points: points,
			Goals:  engine.Goals(),
			Field:  field,
		}
		for _, m := range r.metrics {
			m.Observe(tick)
		}
		for _, obs := range r.observers {
			obs.OnTick(tick)
		}

		result.Rows, result.Cols = field.Rows(), field.Cols()
		result.Frames = append(result.Frames, points)
		result.Goals = append(result.Goals, tick.Goals)
		result.Times = append(result.Times, tick.Time)
		result.TicksTaken++

		clock.Advance(frame)
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	r.logger.Debug("run finished",
		"ticks", result.TicksTaken,
		"policy", cfg.Engine.Policy.String(),
		"points", cfg.Engine.PointCount,
	)

	return result, nil
}

func validateConfig(cfg Config) error {
	if cfg.Ticks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d", cfg.Ticks)
	}
	if cfg.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", cfg.FPS)
	}
	return nil
}
