package theme

import "github.com/charmbracelet/lipgloss"

// Theme holds all colors for the application.
type Theme struct {
	Name string

	Base    lipgloss.Color
	Surface lipgloss.Color
	Overlay lipgloss.Color

	Text    lipgloss.Color
	Subtext lipgloss.Color
	Muted   lipgloss.Color

	Accent lipgloss.Color
	Red    lipgloss.Color
	Peach  lipgloss.Color
	Yellow lipgloss.Color
	Green  lipgloss.Color
	Teal   lipgloss.Color
	Blue   lipgloss.Color

	BorderFocused   lipgloss.Color
	BorderUnfocused lipgloss.Color
}

// StatusColor returns the color for a delivery status.
func (t Theme) StatusColor(ok bool) lipgloss.Color {
	if ok {
		return t.Green
	}
	return t.Red
}

// Default returns the default theme.
func Default() Theme {
	return CatppuccinMocha
}

// CatppuccinMocha is the default dark theme.
var CatppuccinMocha = Theme{
	Name:            "Catppuccin Mocha",
	Base:            "#1e1e2e",
	Surface:         "#313244",
	Overlay:         "#45475a",
	Text:            "#cdd6f4",
	Subtext:         "#a6adc8",
	Muted:           "#585b70",
	Accent:          "#cba6f7",
	Red:             "#f38ba8",
	Peach:           "#fab387",
	Yellow:          "#f9e2af",
	Green:           "#a6e3a1",
	Teal:            "#94e2d5",
	Blue:            "#89b4fa",
	BorderFocused:   "#cba6f7",
	BorderUnfocused: "#585b70",
}

var CatppuccinLatte = Theme{
	Name:            "Catppuccin Latte",
	Base:            "#eff1f5",
	Surface:         "#ccd0da",
	Overlay:         "#9ca0b0",
	Text:            "#4c4f69",
	Subtext:         "#6c6f85",
	Muted:           "#8c8fa1",
	Accent:          "#8839ef",
	Red:             "#d20f39",
	Peach:           "#fe640b",
	Yellow:          "#df8e1d",
	Green:           "#40a02b",
	Teal:            "#179299",
	Blue:            "#1e66f5",
	BorderFocused:   "#8839ef",
	BorderUnfocused: "#8c8fa1",
}

var Nord = Theme{
	Name:            "Nord",
	Base:            "#2e3440",
	Surface:         "#3b4252",
	Overlay:         "#434c5e",
	Text:            "#eceff4",
	Subtext:         "#d8dee9",
	Muted:           "#4c566a",
	Accent:          "#b48ead",
	Red:             "#bf616a",
	Peach:           "#d08770",
	Yellow:          "#ebcb8b",
	Green:           "#a3be8c",
	Teal:            "#8fbcbb",
	Blue:            "#5e81ac",
	BorderFocused:   "#88c0d0",
	BorderUnfocused: "#4c566a",
}

var Dracula = Theme{
	Name:            "Dracula",
	Base:            "#282a36",
	Surface:         "#44475a",
	Overlay:         "#6272a4",
	Text:            "#f8f8f2",
	Subtext:         "#d0d0d0",
	Muted:           "#6272a4",
	Accent:          "#bd93f9",
	Red:             "#ff5555",
	Peach:           "#ffb86c",
	Yellow:          "#f1fa8c",
	Green:           "#50fa7b",
	Teal:            "#8be9fd",
	Blue:            "#6272a4",
	BorderFocused:   "#bd93f9",
	BorderUnfocused: "#6272a4",
}

var GruvboxDark = Theme{
	Name:            "Gruvbox Dark",
	Base:            "#282828",
	Surface:         "#3c3836",
	Overlay:         "#504945",
	Text:            "#ebdbb2",
	Subtext:         "#d5c4a1",
	Muted:           "#665c54",
	Accent:          "#b16286",
	Red:             "#cc241d",
	Peach:           "#d65d0e",
	Yellow:          "#d79921",
	Green:           "#98971a",
	Teal:            "#689d6a",
	Blue:            "#458588",
	BorderFocused:   "#d79921",
	BorderUnfocused: "#665c54",
}
