package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/san-kum/gazesim/internal/saccade"
	"github.com/san-kum/gazesim/internal/sim"
)

func testResult() *sim.Result {
	return &sim.Result{
		Frames: [][]saccade.Point{
			{{Row: 1, Col: 2}, {Row: 3, Col: 4}},
			{{Row: 5, Col: 6}, {Row: 7, Col: 8}},
		},
		Times:   []float64{0, 1.0 / 30},
		Metrics: map[string]float64{"salience": 0.5},
		Rows:    48,
		Cols:    64,
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(RunMetadata{Policy: "saliency", Seed: 42, Ticks: 2, FPS: 30}, testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(runID, "saliency_") {
		t.Errorf("unexpected run id %q", runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Seed != 42 || meta.Points != 2 || meta.Rows != 48 {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if meta.Metrics["salience"] != 0.5 {
		t.Errorf("expected salience 0.5, got %f", meta.Metrics["salience"])
	}

	frames, times, err := st.LoadFrames(runID)
	if err != nil {
		t.Fatalf("load frames failed: %v", err)
	}
	if len(frames) != 2 || len(times) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(frames))
	}
	if frames[1][1] != (saccade.Point{Row: 7, Col: 8}) {
		t.Errorf("expected (7,8), got %v", frames[1][1])
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	st.Init()

	for _, policy := range []string{"constant", "random"} {
		if _, err := st.Save(RunMetadata{Policy: policy}, testResult()); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Policy != "constant" {
		t.Errorf("expected oldest run first, got %s", runs[0].Policy)
	}
}

func TestStoreList_MissingDir(t *testing.T) {
	runs, err := New("/nonexistent/gazesim").List()
	if err != nil || len(runs) != 0 {
		t.Errorf("expected empty list, got %v, %v", runs, err)
	}
}

func TestStoreLoad_NotFound(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
	if _, _, err := st.LoadFrames("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
}

func TestExportJSON(t *testing.T) {
	var buf bytes.Buffer
	res := testResult()
	meta := &RunMetadata{ID: "x", Policy: "random", Rows: 48, Cols: 64}

	if err := ExportJSON(&buf, meta, res.Frames, res.Times); err != nil {
		t.Fatal(err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if data.Ticks != 2 || data.Frames[0][1].Col != 4 {
		t.Errorf("unexpected export %+v", data)
	}
}

func TestWriteCSV_Header(t *testing.T) {
	var buf bytes.Buffer
	res := testResult()
	if err := WriteCSV(&buf, res.Frames, res.Times); err != nil {
		t.Fatal(err)
	}
	first := strings.SplitN(buf.String(), "\n", 2)[0]
	if first != "tick,time,p0_row,p0_col,p1_row,p1_col" {
		t.Errorf("unexpected header %q", first)
	}
}
