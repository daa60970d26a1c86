package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/gazesim/internal/saccade"
)

// PlotTracks draws the row and column of each tracked point over time, one
// graph per point, up to maxPoints graphs.
func PlotTracks(frames [][]saccade.Point, maxPoints, width, height int) []string {
	if len(frames) == 0 || len(frames[0]) == 0 {
		return nil
	}

	n := min(len(frames[0]), maxPoints)
	graphs := make([]string, 0, n)
	for idx := 0; idx < n; idx++ {
		rows := make([]float64, 0, len(frames))
		cols := make([]float64, 0, len(frames))
		for _, frame := range frames {
			if idx >= len(frame) {
				continue
			}
			rows = append(rows, float64(frame[idx].Row))
			cols = append(cols, float64(frame[idx].Col))
		}

		graph := asciigraph.PlotMany([][]float64{rows, cols},
			asciigraph.Height(height),
			asciigraph.Width(width),
			asciigraph.SeriesColors(asciigraph.Cyan, asciigraph.Magenta),
			asciigraph.Caption(fmt.Sprintf("point %d: row (cyan), col (magenta)", idx)),
		)
		graphs = append(graphs, graph)
	}
	return graphs
}

// PlotSeries draws a single captioned series.
func PlotSeries(data []float64, caption string, width, height int) string {
	if len(data) == 0 {
		return ""
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}
