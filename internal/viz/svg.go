package viz

import (
	"fmt"
	"strings"

	"github.com/san-kum/gazesim/internal/saccade"
)

// TracksToSVG draws every tracked point's path over a rows x cols canvas,
// scaled by scale pixels per cell.
func TracksToSVG(frames [][]saccade.Point, rows, cols int, scale float64) string {
	if len(frames) < 2 || rows <= 0 || cols <= 0 {
		return ""
	}

	width := float64(cols) * scale
	height := float64(rows) * scale

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for idx := range frames[0] {
		color := string(CurrentTheme.PointColor(idx))
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, color))

		for i, frame := range frames {
			if idx >= len(frame) {
				continue
			}
			x := (float64(frame[idx].Col) + 0.5) * scale
			y := (float64(frame[idx].Row) + 0.5) * scale
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")

		last := frames[len(frames)-1]
		if idx < len(last) {
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, (float64(last[idx].Col)+0.5)*scale, (float64(last[idx].Row)+0.5)*scale, scale, color))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}
