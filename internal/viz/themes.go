package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name   string
	Points []lipgloss.Color
	Goal   lipgloss.Color
	Heat   lipgloss.Color
	Cold   lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Error  lipgloss.Color
}

// Available themes
var (
	ThemeCyberpunk = Theme{
		Name:   "cyberpunk",
		Points: []lipgloss.Color{"#ff00ff", "#00ffff", "#ffff00", "#00ff88"},
		Goal:   lipgloss.Color("#ffffff"),
		Heat:   lipgloss.Color("#ff8800"),
		Cold:   lipgloss.Color("#333344"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#666666"),
		Error:  lipgloss.Color("#ff0000"),
	}

	ThemeRetroGreen = Theme{
		Name:   "retro",
		Points: []lipgloss.Color{"#88ff88", "#ffff00", "#00ffcc"},
		Goal:   lipgloss.Color("#ccffcc"),
		Heat:   lipgloss.Color("#00cc00"),
		Cold:   lipgloss.Color("#003300"),
		Text:   lipgloss.Color("#00ff00"),
		Muted:  lipgloss.Color("#005500"),
		Error:  lipgloss.Color("#ff0000"),
	}

	ThemeOcean = Theme{
		Name:   "ocean",
		Points: []lipgloss.Color{"#ffd700", "#ff6b6b", "#e0f0ff"},
		Goal:   lipgloss.Color("#ffffff"),
		Heat:   lipgloss.Color("#00a8cc"),
		Cold:   lipgloss.Color("#002244"),
		Text:   lipgloss.Color("#e0f0ff"),
		Muted:  lipgloss.Color("#4488aa"),
		Error:  lipgloss.Color("#ff4444"),
	}

	// Default theme
	CurrentTheme = ThemeCyberpunk

	// All available themes
	Themes = []Theme{
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeOcean,
	}
)

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCyberpunk
}

// SetTheme changes the current theme
func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme switches to the theme after the current one.
func NextTheme() {
	for i, t := range Themes {
		if t.Name == CurrentTheme.Name {
			CurrentTheme = Themes[(i+1)%len(Themes)]
			return
		}
	}
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// PointColor returns the color for tracked point i.
func (t Theme) PointColor(i int) lipgloss.Color {
	if len(t.Points) == 0 {
		return t.Text
	}
	return t.Points[i%len(t.Points)]
}
