package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the colour scheme of the panels around the canvas. The
// fractal itself is always drawn in its own colours.
type Theme struct {
	Name   string
	Title  lipgloss.Color
	Accent lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Border lipgloss.Color
	Error  lipgloss.Color
}

var (
	ThemeDark = Theme{
		Name:   "dark",
		Title:  lipgloss.Color("#00cccc"),
		Accent: lipgloss.Color("#ff88ff"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#666688"),
		Border: lipgloss.Color("#444466"),
		Error:  lipgloss.Color("#ff4444"),
	}

	ThemePhosphor = Theme{
		Name:   "phosphor",
		Title:  lipgloss.Color("#00ff00"),
		Accent: lipgloss.Color("#88ff88"),
		Text:   lipgloss.Color("#00dd00"),
		Muted:  lipgloss.Color("#005500"),
		Border: lipgloss.Color("#003300"),
		Error:  lipgloss.Color("#ffff00"),
	}

	ThemeSpectrum = Theme{
		Name:   "spectrum",
		Title:  lipgloss.Color("#ff8000"),
		Accent: lipgloss.Color("#4b0082"),
		Text:   lipgloss.Color("#f0f0ff"),
		Muted:  lipgloss.Color("#8080a0"),
		Border: lipgloss.Color("#ee82ee"),
		Error:  lipgloss.Color("#ff0000"),
	}

	ThemePaper = Theme{
		Name:   "paper",
		Title:  lipgloss.Color("#202020"),
		Accent: lipgloss.Color("#0055aa"),
		Text:   lipgloss.Color("#303030"),
		Muted:  lipgloss.Color("#909090"),
		Border: lipgloss.Color("#c0c0c0"),
		Error:  lipgloss.Color("#aa0000"),
	}

	Themes = []Theme{
		ThemeDark,
		ThemePhosphor,
		ThemeSpectrum,
		ThemePaper,
	}
)

// GetTheme returns a theme by name, falling back to dark.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeDark
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

func themeIndex(name string) int {
	for i, t := range Themes {
		if t.Name == name {
			return i
		}
	}
	return 0
}
