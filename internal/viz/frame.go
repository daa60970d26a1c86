package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/gazesim/internal/heatmap"
	"github.com/san-kum/gazesim/internal/saccade"
)

const (
	shadeRamp = " .:-=+*#%@"
	pointRune = '●'
	goalRune  = '+'
)

// Frame is one rendered view of the field with points on top.
type Frame struct {
	Field  *heatmap.Field
	Points []saccade.Point
	Goals  []saccade.Point
	Width  int
	Height int
}

type cell struct {
	r     rune
	point int
	goal  bool
	heat  float64
}

// grid downsamples the field to Width x Height cells. Points win over goals,
// goals over shading.
func (f Frame) grid() [][]cell {
	rows, cols := f.Field.Rows(), f.Field.Cols()
	w, h := min(f.Width, cols), min(f.Height, rows)
	if w <= 0 || h <= 0 {
		return nil
	}
	norm := f.Field.Normalized()

	out := make([][]cell, h)
	for y := range out {
		out[y] = make([]cell, w)
		for x := range out[y] {
			v := norm.At(y*rows/h, x*cols/w)
			idx := int(v * float64(len(shadeRamp)-1))
			out[y][x] = cell{r: rune(shadeRamp[idx]), point: -1, heat: v}
		}
	}

	place := func(p saccade.Point) (int, int, bool) {
		y, x := p.Row*h/rows, p.Col*w/cols
		return y, x, y >= 0 && y < h && x >= 0 && x < w
	}
	for _, g := range f.Goals {
		if y, x, ok := place(g); ok {
			out[y][x].r = goalRune
			out[y][x].goal = true
		}
	}
	for i, p := range f.Points {
		if y, x, ok := place(p); ok {
			out[y][x].r = pointRune
			out[y][x].point = i
		}
	}
	return out
}

// Plain renders the frame without colors.
func (f Frame) Plain() string {
	var b strings.Builder
	for _, row := range f.grid() {
		for _, c := range row {
			b.WriteRune(c.r)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Render renders the frame with the current theme.
func (f Frame) Render() string {
	theme := CurrentTheme
	cold := lipgloss.NewStyle().Foreground(theme.Cold)
	hot := lipgloss.NewStyle().Foreground(theme.Heat)
	goal := lipgloss.NewStyle().Foreground(theme.Goal).Bold(true)

	var b strings.Builder
	for _, row := range f.grid() {
		for _, c := range row {
			s := string(c.r)
			switch {
			case c.point >= 0:
				b.WriteString(lipgloss.NewStyle().Foreground(theme.PointColor(c.point)).Bold(true).Render(s))
			case c.goal:
				b.WriteString(goal.Render(s))
			case c.heat > 0.5:
				b.WriteString(hot.Render(s))
			default:
				b.WriteString(cold.Render(s))
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
