package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/gazesim/internal/heatmap"
	"github.com/san-kum/gazesim/internal/saccade"
	"github.com/san-kum/gazesim/internal/sim"
)

const (
	DefaultPoints           = 2
	DefaultPolicy           = "saliency"
	DefaultTicks            = 300
	DefaultFPS              = 30
	DefaultRandomIntervalMs = 3000
	DefaultRows             = 48
	DefaultCols             = 64
	DefaultBlobs            = 3
	DefaultDrift            = 0.4
)

type Config struct {
	Points           int         `yaml:"points"`
	Policy           string      `yaml:"policy"`
	Seed             int64       `yaml:"seed"`
	Ticks            int         `yaml:"ticks"`
	FPS              int         `yaml:"fps"`
	RandomIntervalMs int         `yaml:"random_interval_ms"`
	SearchSamples    int         `yaml:"search_samples"`
	SearchRadius     int         `yaml:"search_radius"`
	Field            FieldConfig `yaml:"field"`
	Log              LogConfig   `yaml:"log"`
}

type FieldConfig struct {
	Kind  string  `yaml:"kind"`
	Rows  int     `yaml:"rows"`
	Cols  int     `yaml:"cols"`
	Blobs int     `yaml:"blobs"`
	Drift float64 `yaml:"drift"`
	Path  string  `yaml:"path,omitempty"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func DefaultConfig() *Config {
	return &Config{
		Points:           DefaultPoints,
		Policy:           DefaultPolicy,
		Seed:             1,
		Ticks:            DefaultTicks,
		FPS:              DefaultFPS,
		RandomIntervalMs: DefaultRandomIntervalMs,
		SearchSamples:    saccade.DefaultSearchSamples,
		SearchRadius:     saccade.DefaultSearchRadius,
		Field: FieldConfig{
			Kind:  "blobs",
			Rows:  DefaultRows,
			Cols:  DefaultCols,
			Blobs: DefaultBlobs,
			Drift: DefaultDrift,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if _, err := c.EngineConfig(); err != nil {
		return err
	}
	if c.Ticks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d", c.Ticks)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	switch c.Field.Kind {
	case "blobs", "uniform":
		if c.Field.Rows <= 0 || c.Field.Cols <= 0 {
			return fmt.Errorf("field must have positive size, got %dx%d", c.Field.Rows, c.Field.Cols)
		}
		if c.Field.Blobs < 0 {
			return fmt.Errorf("blob count must not be negative, got %d", c.Field.Blobs)
		}
	case "csv":
		if c.Field.Path == "" {
			return fmt.Errorf("csv field needs a path")
		}
	default:
		return fmt.Errorf("unknown field kind %q", c.Field.Kind)
	}
	return nil
}

func (c *Config) EngineConfig() (saccade.Config, error) {
	kind, err := saccade.ParsePolicyKind(c.Policy)
	if err != nil {
		return saccade.Config{}, err
	}
	cfg := saccade.Config{
		PointCount:     c.Points,
		Policy:         kind,
		RandomInterval: time.Duration(c.RandomIntervalMs) * time.Millisecond,
		SearchSamples:  c.SearchSamples,
		SearchRadius:   c.SearchRadius,
	}
	if cfg.PointCount < 1 {
		return saccade.Config{}, fmt.Errorf("%w: point count must be at least 1, got %d", saccade.ErrInvalidConfig, cfg.PointCount)
	}
	return cfg, nil
}

func (c *Config) RunConfig() (sim.Config, error) {
	engine, err := c.EngineConfig()
	if err != nil {
		return sim.Config{}, err
	}
	return sim.Config{
		Engine: engine,
		Ticks:  c.Ticks,
		FPS:    c.FPS,
		Seed:   c.Seed,
	}, nil
}

// NewProvider builds the heatmap source described by the field section.
// Blob fields use seed so a run is reproducible end to end.
func (c *Config) NewProvider(seed int64) (heatmap.Provider, error) {
	switch c.Field.Kind {
	case "blobs":
		return heatmap.NewBlobs(c.Field.Rows, c.Field.Cols, c.Field.Blobs, c.Field.Drift, seed), nil
	case "uniform":
		return heatmap.NewUniform(c.Field.Rows, c.Field.Cols, 0), nil
	case "csv":
		f, err := heatmap.LoadCSV(c.Field.Path)
		if err != nil {
			return nil, err
		}
		if err := f.Validate(); err != nil {
			return nil, err
		}
		return heatmap.NewStatic(f), nil
	}
	return nil, fmt.Errorf("unknown field kind %q", c.Field.Kind)
}
