package config

import "sort"

var Presets = map[string]*Config{
	"fixate": {
		Points: 1, Policy: "constant", Seed: 1, Ticks: 120, FPS: 30,
		Field: FieldConfig{Kind: "uniform", Rows: 48, Cols: 64},
	},
	"wander": {
		Points: 3, Policy: "random", Seed: 7, Ticks: 600, FPS: 30, RandomIntervalMs: 3000,
		Field: FieldConfig{Kind: "uniform", Rows: 48, Cols: 64},
	},
	"follow": {
		Points: 2, Policy: "saliency", Seed: 3, Ticks: 600, FPS: 30, SearchSamples: 30, SearchRadius: 30,
		Field: FieldConfig{Kind: "blobs", Rows: 48, Cols: 64, Blobs: 3, Drift: 0.4},
	},
	"crowd": {
		Points: 8, Policy: "saliency", Seed: 11, Ticks: 900, FPS: 30, SearchSamples: 30, SearchRadius: 30,
		Field: FieldConfig{Kind: "blobs", Rows: 72, Cols: 128, Blobs: 6, Drift: 0.8},
	},
}

// GetPreset returns a copy of the named preset with defaults filled in, or
// nil when there is no such preset.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	d := DefaultConfig()
	if cfg.RandomIntervalMs == 0 {
		cfg.RandomIntervalMs = d.RandomIntervalMs
	}
	if cfg.SearchSamples == 0 {
		cfg.SearchSamples = d.SearchSamples
	}
	if cfg.SearchRadius == 0 {
		cfg.SearchRadius = d.SearchRadius
	}
	if cfg.Log == (LogConfig{}) {
		cfg.Log = d.Log
	}
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
