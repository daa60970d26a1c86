package saccade

import (
	"fmt"
	"strings"
	"time"
)

// Point is an integer cell coordinate. Row is vertical, Col horizontal.
type Point struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Normalize maps p to [0,1) fractions of a rows x cols field.
func Normalize(p Point, rows, cols int) (y, x float64) {
	if rows <= 0 || cols <= 0 {
		return 0, 0
	}
	return float64(p.Row) / float64(rows), float64(p.Col) / float64(cols)
}

// TrackedState is the goal and current position of one tracked point.
type TrackedState struct {
	Goal    Point
	Current Point
}

// Field is a read-only 2D scalar field. Values are only compared with each
// other; no range is assumed.
type Field interface {
	Rows() int
	Cols() int
	At(row, col int) float64
}

// PolicyKind selects how goals are refreshed each frame.
type PolicyKind int

const (
	PolicyConstant PolicyKind = iota
	PolicyRandom
	PolicySaliency
)

var policyNames = map[PolicyKind]string{
	PolicyConstant: "constant",
	PolicyRandom:   "random",
	PolicySaliency: "saliency",
}

func (k PolicyKind) String() string {
	if name, ok := policyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("policy(%d)", int(k))
}

// Valid reports whether k names a known policy.
func (k PolicyKind) Valid() bool {
	_, ok := policyNames[k]
	return ok
}

// ParsePolicyKind accepts the policy names used in configs and flags.
func ParsePolicyKind(s string) (PolicyKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "constant", "fixed":
		return PolicyConstant, nil
	case "random":
		return PolicyRandom, nil
	case "saliency", "gradient", "saliency_gradient":
		return PolicySaliency, nil
	}
	return 0, fmt.Errorf("%w: unknown policy %q", ErrInvalidConfig, s)
}

// PolicyNames lists the canonical policy names.
func PolicyNames() []string {
	return []string{"constant", "random", "saliency"}
}

const (
	DefaultRandomInterval = 3000 * time.Millisecond
	DefaultSearchSamples  = 30
	DefaultSearchRadius   = 30

	MaxSearchRadius = 1 << 20
)

// Config is fixed at construction.
type Config struct {
	PointCount     int
	Policy         PolicyKind
	RandomInterval time.Duration
	SearchSamples  int
	SearchRadius   int
}

// DefaultConfig returns a single-point constant engine with the standard
// search and refresh parameters.
func DefaultConfig() Config {
	return Config{
		PointCount:     1,
		Policy:         PolicyConstant,
		RandomInterval: DefaultRandomInterval,
		SearchSamples:  DefaultSearchSamples,
		SearchRadius:   DefaultSearchRadius,
	}
}

func (c Config) withDefaults() Config {
	if c.RandomInterval == 0 {
		c.RandomInterval = DefaultRandomInterval
	}
	if c.SearchSamples == 0 {
		c.SearchSamples = DefaultSearchSamples
	}
	if c.SearchRadius == 0 {
		c.SearchRadius = DefaultSearchRadius
	}
	return c
}

func (c Config) validate() error {
	if c.PointCount < 1 {
		return fmt.Errorf("%w: point count must be at least 1, got %d", ErrInvalidConfig, c.PointCount)
	}
	if !c.Policy.Valid() {
		return fmt.Errorf("%w: unknown policy %s", ErrInvalidConfig, c.Policy)
	}
	if c.RandomInterval < 0 {
		return fmt.Errorf("%w: random interval must be positive, got %v", ErrInvalidConfig, c.RandomInterval)
	}
	if c.SearchSamples < 0 {
		return fmt.Errorf("%w: search samples must be positive, got %d", ErrInvalidConfig, c.SearchSamples)
	}
	if c.SearchRadius < 0 || c.SearchRadius > MaxSearchRadius {
		return fmt.Errorf("%w: search radius must be in [0, %d], got %d", ErrInvalidConfig, MaxSearchRadius, c.SearchRadius)
	}
	return nil
}
