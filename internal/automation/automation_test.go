package automation

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/gazesim/internal/config"
)

const scenarioYAML = `
name: smoke
description: one step per policy
steps:
  - preset: fixate
    ticks: 20
  - policy: random
    points: 2
    ticks: 20
  - preset: follow
    ticks: 20
    field:
      kind: blobs
      rows: 20
      cols: 30
      blobs: 2
      drift: 0.1
`

func TestLoadAndRunScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "smoke.yaml")
	if err := os.WriteFile(path, []byte(scenarioYAML), 0644); err != nil {
		t.Fatal(err)
	}

	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if sc.Name != "smoke" || len(sc.Steps) != 3 {
		t.Fatalf("unexpected scenario %+v", sc)
	}

	results, err := RunScenario(context.Background(), sc, nil)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	if results[1].Config.Policy != "random" || len(results[1].Result.Frames[0]) != 2 {
		t.Errorf("step 2 overrides not applied: %+v", results[1].Config)
	}
	if results[2].Result.Rows != 20 || results[2].Result.Cols != 30 {
		t.Errorf("step 3 field override not applied: %dx%d", results[2].Result.Rows, results[2].Result.Cols)
	}
	for i, r := range results {
		if r.Result.TicksTaken != 20 {
			t.Errorf("step %d: expected 20 ticks, got %d", i+1, r.Result.TicksTaken)
		}
	}
}

func TestResolve_UnknownPreset(t *testing.T) {
	if _, err := (ScenarioStep{Preset: "nope"}).Resolve(); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestRunSweep(t *testing.T) {
	base := config.GetPreset("follow")
	base.Ticks = 30

	results, err := RunSweep(context.Background(), &ParameterSweep{
		Base:      base,
		ParamName: "search_radius",
		Values:    []int{1, 10, 30},
	}, nil)
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if _, ok := results[0].Metrics["salience"]; !ok {
		t.Error("expected salience metric in sweep results")
	}
	if base.SearchRadius != 30 {
		t.Error("sweep modified the base config")
	}
}

func TestRunSweep_UnknownParam(t *testing.T) {
	_, err := RunSweep(context.Background(), &ParameterSweep{
		Base:      config.DefaultConfig(),
		ParamName: "gravity",
		Values:    []int{1},
	}, nil)
	if err == nil {
		t.Error("expected error for unknown parameter")
	}
}
