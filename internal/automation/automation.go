package automation

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/gazesim/internal/config"
	"github.com/san-kum/gazesim/internal/metrics"
	"github.com/san-kum/gazesim/internal/sim"
)

// Scenario is a scripted sequence of gaze runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep starts from a preset (or the defaults) and overrides any
// field that is set.
type ScenarioStep struct {
	Preset        string              `yaml:"preset"`
	Policy        string              `yaml:"policy"`
	Points        int                 `yaml:"points"`
	Seed          int64               `yaml:"seed"`
	Ticks         int                 `yaml:"ticks"`
	FPS           int                 `yaml:"fps"`
	SearchSamples int                 `yaml:"search_samples"`
	SearchRadius  int                 `yaml:"search_radius"`
	Field         *config.FieldConfig `yaml:"field"`
	SaveAs        string              `yaml:"save_as"`
}

// StepResult pairs a finished run with the configuration that produced it.
type StepResult struct {
	Step   ScenarioStep
	Config *config.Config
	Result *sim.Result
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

// Resolve builds the full configuration for a step.
func (s ScenarioStep) Resolve() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		cfg = config.GetPreset(s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q (available: %v)", s.Preset, config.ListPresets())
		}
	}

	if s.Policy != "" {
		cfg.Policy = s.Policy
	}
	if s.Points != 0 {
		cfg.Points = s.Points
	}
	if s.Seed != 0 {
		cfg.Seed = s.Seed
	}
	if s.Ticks != 0 {
		cfg.Ticks = s.Ticks
	}
	if s.FPS != 0 {
		cfg.FPS = s.FPS
	}
	if s.SearchSamples != 0 {
		cfg.SearchSamples = s.SearchSamples
	}
	if s.SearchRadius != 0 {
		cfg.SearchRadius = s.SearchRadius
	}
	if s.Field != nil {
		cfg.Field = *s.Field
	}

	return cfg, cfg.Validate()
}

// RunScenario executes all steps in a scenario
func RunScenario(ctx context.Context, scenario *Scenario, logger *slog.Logger) ([]StepResult, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		cfg, err := step.Resolve()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		logger.Info("running scenario step",
			"scenario", scenario.Name,
			"step", i+1,
			"of", len(scenario.Steps),
			"policy", cfg.Policy,
		)

		result, err := runConfig(ctx, cfg, logger)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		results = append(results, StepResult{Step: step, Config: cfg, Result: result})
	}

	return results, nil
}

// ParameterSweep runs one simulation per value of an integer parameter.
type ParameterSweep struct {
	Base      *config.Config
	ParamName string
	Values    []int
}

// SweepResult holds the metrics of one sweep point.
type SweepResult struct {
	ParamValue int
	Metrics    map[string]float64
}

// RunSweep executes a parameter sweep
func RunSweep(ctx context.Context, sweep *ParameterSweep, logger *slog.Logger) ([]SweepResult, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	results := make([]SweepResult, 0, len(sweep.Values))

	for i, v := range sweep.Values {
		cfg := *sweep.Base
		if err := setParam(&cfg, sweep.ParamName, v); err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("sweep %s=%d: %w", sweep.ParamName, v, err)
		}

		result, err := runConfig(ctx, &cfg, logger)
		if err != nil {
			return nil, err
		}

		results = append(results, SweepResult{ParamValue: v, Metrics: result.Metrics})
		logger.Info("sweep step done", "step", i+1, "of", len(sweep.Values), "param", sweep.ParamName, "value", v)
	}

	return results, nil
}

func setParam(cfg *config.Config, name string, v int) error {
	switch name {
	case "points":
		cfg.Points = v
	case "search_samples":
		cfg.SearchSamples = v
	case "search_radius":
		cfg.SearchRadius = v
	case "random_interval_ms":
		cfg.RandomIntervalMs = v
	default:
		return fmt.Errorf("parameter %q cannot be swept", name)
	}
	return nil
}

func runConfig(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sim.Result, error) {
	runCfg, err := cfg.RunConfig()
	if err != nil {
		return nil, err
	}
	provider, err := cfg.NewProvider(cfg.Seed)
	if err != nil {
		return nil, err
	}

	r := sim.New(provider, logger)
	for _, m := range metrics.Defaults() {
		r.AddMetric(m)
	}
	return r.Run(ctx, runCfg)
}
