package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/msghist/internal/ui/msgs"
	"github.com/sadopc/msghist/internal/ui/theme"
)

type helpSection struct {
	Title    string
	Bindings []helpBinding
}

type helpBinding struct {
	Key  string
	Desc string
}

var helpSections = []helpSection{
	{
		Title: "General",
		Bindings: []helpBinding{
			{"q / Ctrl+C", "Quit"},
			{"Ctrl+K", "Open command palette"},
			{"?", "Toggle this help"},
			{"Tab", "Switch focus between table and detail"},
			{"r", "Refresh current page"},
		},
	},
	{
		Title: "Table",
		Bindings: []helpBinding{
			{"j / k", "Move cursor down / up"},
			{"Enter", "Expand / collapse record detail"},
			{"n / p", "Next / previous page"},
			{"g / G", "First / last page"},
			{"+ / -", "Larger / smaller page size"},
			{"s", "Cycle sort on created time"},
			{"/", "Open filter form"},
			{"c", "Clear filters"},
			{"Y", "Copy record as JSON"},
		},
	},
	{
		Title: "Detail",
		Bindings: []helpBinding{
			{"j / k", "Select detail row"},
			{"y", "Copy selected value"},
			{"Esc", "Close detail"},
		},
	},
	{
		Title: "Filter form",
		Bindings: []helpBinding{
			{"Tab / Shift+Tab", "Next / previous field"},
			{"Enter", "Apply filters"},
			{"Esc", "Cancel"},
			{"status", "true, false or both (comma separated)"},
			{"start / end", "YYYY-MM-DD HH:MM, both or neither"},
		},
	},
}

// Help is a help overlay showing keybindings.
type Help struct {
	Visible  bool
	viewport viewport.Model
	theme    theme.Theme
	width    int
	height   int
	ready    bool
}

// NewHelp creates a new help overlay.
func NewHelp(t theme.Theme) Help {
	return Help{theme: t}
}

// SetTheme changes the overlay colors.
func (m *Help) SetTheme(t theme.Theme) {
	m.theme = t
	m.ready = false
}

// SetSize sets the terminal dimensions for centering.
func (m *Help) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Toggle toggles help visibility.
func (m *Help) Toggle() {
	m.Visible = !m.Visible
	if m.Visible {
		m.buildViewport()
	}
}

func (m *Help) buildViewport() {
	boxWidth := 70
	contentWidth := boxWidth - 6

	keyStyle := lipgloss.NewStyle().
		Foreground(m.theme.Accent).
		Bold(true).
		Width(18).
		Align(lipgloss.Right)
	descStyle := lipgloss.NewStyle().Foreground(m.theme.Text)
	sectionStyle := lipgloss.NewStyle().
		Foreground(m.theme.Blue).
		Bold(true).
		MarginTop(1)
	sepStyle := lipgloss.NewStyle().Foreground(m.theme.Muted)

	var lines []string
	for _, section := range helpSections {
		lines = append(lines, sectionStyle.Render(section.Title))
		lines = append(lines, sepStyle.Render(strings.Repeat("─", contentWidth)))
		for _, b := range section.Bindings {
			lines = append(lines, keyStyle.Render(b.Key)+sepStyle.Render(" │ ")+descStyle.Render(b.Desc))
		}
	}

	vpHeight := m.height - 8
	if vpHeight < 10 {
		vpHeight = 10
	}

	m.viewport = viewport.New(contentWidth, vpHeight)
	m.viewport.SetContent(strings.Join(lines, "\n"))
	m.ready = true
}

// Update implements tea.Model.
func (m Help) Update(msg tea.Msg) (Help, tea.Cmd) {
	if !m.Visible {
		return m, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "?", "q":
			m.Visible = false
			return m, func() tea.Msg { return msgs.SetModeMsg{Mode: msgs.ModeNormal} }
		}
	}

	if m.ready {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the help overlay.
func (m Help) View() string {
	if !m.Visible {
		return ""
	}
	if !m.ready {
		m.buildViewport()
	}

	title := lipgloss.NewStyle().
		Foreground(m.theme.Text).
		Bold(true).
		Width(64).
		Align(lipgloss.Center).
		Render("Keyboard Shortcuts")

	return lipgloss.NewStyle().
		Width(70).
		Background(m.theme.Surface).
		Foreground(m.theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.BorderFocused).
		Padding(1, 2).
		Render(title + "\n\n" + m.viewport.View())
}
