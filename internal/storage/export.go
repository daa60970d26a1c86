package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/gazesim/internal/saccade"
)

type ExportData struct {
	ID      string             `json:"id"`
	Policy  string             `json:"policy"`
	Seed    int64              `json:"seed"`
	FPS     int                `json:"fps"`
	Rows    int                `json:"rows"`
	Cols    int                `json:"cols"`
	Ticks   int                `json:"ticks"`
	Times   []float64          `json:"times"`
	Frames  [][]saccade.Point  `json:"frames"`
	Metrics map[string]float64 `json:"metrics"`
}

func ExportJSON(w io.Writer, meta *RunMetadata, frames [][]saccade.Point, times []float64) error {
	data := ExportData{
		ID:      meta.ID,
		Policy:  meta.Policy,
		Seed:    meta.Seed,
		FPS:     meta.FPS,
		Rows:    meta.Rows,
		Cols:    meta.Cols,
		Ticks:   len(frames),
		Times:   times,
		Frames:  frames,
		Metrics: meta.Metrics,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// WriteCSV writes one row per tick: tick, time, then row/col per point.
func WriteCSV(w io.Writer, frames [][]saccade.Point, times []float64) error {
	cw := csv.NewWriter(w)

	header := []string{"tick", "time"}
	if len(frames) > 0 {
		for i := range frames[0] {
			header = append(header, fmt.Sprintf("p%d_row", i), fmt.Sprintf("p%d_col", i))
		}
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i, frame := range frames {
		t := 0.0
		if i < len(times) {
			t = times[i]
		}
		row := []string{strconv.Itoa(i), strconv.FormatFloat(t, 'f', 6, 64)}
		for _, p := range frame {
			row = append(row, strconv.Itoa(p.Row), strconv.Itoa(p.Col))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
