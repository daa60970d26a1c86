package saccade

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"time"
)

// Engine drives a fixed set of tracked points, one frame per Update.
type Engine struct {
	cfg    Config
	policy Policy
	rng    *rand.Rand
	clock  Clock
	logger *slog.Logger

	states      []TrackedState
	initialized bool
	rows, cols  int
	ticks       int
}

// Option customizes an Engine at construction.
type Option func(*Engine)

// WithRand injects the random source used for seeding, random goals and
// local search. Without it the engine seeds from the current time.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithClock injects the time source for the random policy's interval.
func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithPolicy overrides the policy built from Config.Policy.
func WithPolicy(p Policy) Option {
	return func(e *Engine) { e.policy = p }
}

// New validates cfg and returns an uninitialized engine. Points are seeded
// on the first Update, once the field dimensions are known.
func New(cfg Config, opts ...Option) (*Engine, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:    cfg,
		states: make([]TrackedState, cfg.PointCount),
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if e.clock == nil {
		e.clock = NewMonotonicClock()
	}
	if e.logger == nil {
		e.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if e.policy == nil {
		e.policy = newPolicy(cfg, e.rng, e.logger)
	}

	return e, nil
}

// Update advances every tracked point by one frame over field and returns
// their positions in construction order. The returned slice is owned by the
// caller.
//
// The first call fixes the field dimensions; later calls with a different
// shape fail with ErrShapeMismatch and leave the engine untouched. A nil field
// or one with no cells fails with ErrEmptyField.
func (e *Engine) Update(field Field) ([]Point, error) {
	if field == nil {
		return nil, &TickError{Tick: e.ticks, Wrapped: ErrEmptyField}
	}
	rows, cols := field.Rows(), field.Cols()
	if rows <= 0 || cols <= 0 {
		return nil, &TickError{Tick: e.ticks, Rows: rows, Cols: cols, Wrapped: ErrEmptyField}
	}

	if !e.initialized {
		e.seed(rows, cols)
	} else if rows != e.rows || cols != e.cols {
		return nil, &TickError{
			Tick:    e.ticks,
			Rows:    rows,
			Cols:    cols,
			Wrapped: fmt.Errorf("%w: expected %dx%d", ErrShapeMismatch, e.rows, e.cols),
		}
	}

	e.policy.Refresh(e.states, field, e.clock.Now())

	out := make([]Point, len(e.states))
	for i := range e.states {
		s := &e.states[i]
		s.Current = clampPoint(Smooth(s.Current, s.Goal), rows, cols)
		out[i] = s.Current
	}
	e.ticks++

	return out, nil
}

func (e *Engine) seed(rows, cols int) {
	for i := range e.states {
		s := &e.states[i]
		s.Goal.Col = e.rng.Intn(cols)
		s.Goal.Row = e.rng.Intn(rows)
		s.Current.Col = e.rng.Intn(cols)
		s.Current.Row = e.rng.Intn(rows)
	}
	e.rows, e.cols = rows, cols
	e.policy.Start(e.clock.Now())
	e.initialized = true
	e.logger.Debug("gaze engine seeded",
		"points", len(e.states),
		"policy", e.policy.Kind().String(),
		"rows", rows,
		"cols", cols,
	)
}

func (e *Engine) PointCount() int    { return e.cfg.PointCount }
func (e *Engine) Policy() PolicyKind { return e.policy.Kind() }
func (e *Engine) Initialized() bool  { return e.initialized }
func (e *Engine) Ticks() int         { return e.ticks }

// Goals returns a copy of the current goal of every tracked point.
func (e *Engine) Goals() []Point {
	out := make([]Point, len(e.states))
	for i, s := range e.states {
		out[i] = s.Goal
	}
	return out
}

// States returns a copy of every tracked state.
func (e *Engine) States() []TrackedState {
	out := make([]TrackedState, len(e.states))
	copy(out, e.states)
	return out
}
