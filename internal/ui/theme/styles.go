package theme

import "github.com/charmbracelet/lipgloss"

// Styles holds pre-computed Lip Gloss styles for the current theme.
type Styles struct {
	FocusedBorder   lipgloss.Style
	UnfocusedBorder lipgloss.Style

	Title   lipgloss.Style
	Normal  lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Key     lipgloss.Style
	Value   lipgloss.Style
	Hint    lipgloss.Style

	StatusBar  lipgloss.Style
	StatusText lipgloss.Style
	Selected   lipgloss.Style
	Cursor     lipgloss.Style

	// History table
	TableHeader   lipgloss.Style
	TableCell     lipgloss.Style
	TableSelected lipgloss.Style

	// Detail panel and filter form
	DetailLabel lipgloss.Style
	FilterLabel lipgloss.Style
	FilterFocus lipgloss.Style
}

// NewStyles creates a Styles set from a Theme.
func NewStyles(t Theme) Styles {
	return Styles{
		FocusedBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocused),
		UnfocusedBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderUnfocused),

		Title:   lipgloss.NewStyle().Foreground(t.Text).Bold(true),
		Normal:  lipgloss.NewStyle().Foreground(t.Text),
		Muted:   lipgloss.NewStyle().Foreground(t.Muted),
		Bold:    lipgloss.NewStyle().Foreground(t.Text).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(t.Red),
		Success: lipgloss.NewStyle().Foreground(t.Green),
		Warning: lipgloss.NewStyle().Foreground(t.Yellow),
		Key:     lipgloss.NewStyle().Foreground(t.Accent),
		Value:   lipgloss.NewStyle().Foreground(t.Text),
		Hint:    lipgloss.NewStyle().Foreground(t.Muted).Italic(true),

		StatusBar: lipgloss.NewStyle().
			Background(t.Surface).
			Foreground(t.Text).
			Padding(0, 1),
		StatusText: lipgloss.NewStyle().
			Foreground(t.Text).
			Background(t.Surface).
			Padding(0, 1),
		Selected: lipgloss.NewStyle().
			Background(t.Surface).
			Foreground(t.Text),
		Cursor: lipgloss.NewStyle().
			Background(t.Overlay).
			Foreground(t.Text),

		TableHeader: lipgloss.NewStyle().
			Foreground(t.Accent).
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.BorderUnfocused).
			Padding(0, 1),
		TableCell: lipgloss.NewStyle().
			Foreground(t.Text).
			Padding(0, 1),
		TableSelected: lipgloss.NewStyle().
			Background(t.Overlay).
			Foreground(t.Text).
			Bold(true),

		DetailLabel: lipgloss.NewStyle().
			Foreground(t.Accent).
			Bold(true),
		FilterLabel: lipgloss.NewStyle().
			Foreground(t.Subtext).
			Width(10),
		FilterFocus: lipgloss.NewStyle().
			Foreground(t.Accent).
			Bold(true).
			Width(10),
	}
}

// StatusStyle returns the style for a delivery status label.
func (s Styles) StatusStyle(ok bool) lipgloss.Style {
	if ok {
		return s.Success
	}
	return s.Error
}
