package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/sahilm/fuzzy"

	"github.com/sadopc/msghist/internal/core/history"
	"github.com/sadopc/msghist/internal/ui/msgs"
	"github.com/sadopc/msghist/internal/ui/theme"
)

// paletteCommand is a command entry in the palette.
type paletteCommand struct {
	Name     string
	Shortcut string
	Msg      tea.Msg
}

var defaultCommands = []paletteCommand{
	{Name: "Refresh", Shortcut: "r", Msg: msgs.RefreshMsg{}},
	{Name: "Next Page", Shortcut: "n", Msg: msgs.NextPageMsg{}},
	{Name: "Previous Page", Shortcut: "p", Msg: msgs.PrevPageMsg{}},
	{Name: "First Page", Shortcut: "g", Msg: msgs.GotoPageMsg{Page: 1}},
	{Name: "Increase Page Size", Shortcut: "+", Msg: msgs.PageSizeMsg{Delta: 1}},
	{Name: "Decrease Page Size", Shortcut: "-", Msg: msgs.PageSizeMsg{Delta: -1}},
	{Name: "Filter", Shortcut: "/", Msg: msgs.OpenFilterMsg{}},
	{Name: "Clear Filters", Shortcut: "c", Msg: msgs.ClearFiltersMsg{}},
	{Name: "Sort by Created Time", Shortcut: "s", Msg: msgs.ToggleSortMsg{Field: history.FieldCreatedAt}},
	{Name: "Sort by Received Time", Shortcut: "", Msg: msgs.ToggleSortMsg{Field: history.FieldReceivedAt}},
	{Name: "Sort by Id", Shortcut: "", Msg: msgs.ToggleSortMsg{Field: history.FieldID}},
	{Name: "Toggle Detail", Shortcut: "Enter", Msg: msgs.ToggleDetailMsg{}},
	{Name: "Copy Detail Value", Shortcut: "y", Msg: msgs.CopyDetailMsg{}},
	{Name: "Copy Record as JSON", Shortcut: "Y", Msg: msgs.CopyRecordMsg{}},
	{Name: "Switch Theme", Shortcut: "", Msg: msgs.SwitchThemeMsg{}},
	{Name: "Language: 中文", Shortcut: "", Msg: msgs.SwitchLocaleMsg{Locale: "zh"}},
	{Name: "Language: English", Shortcut: "", Msg: msgs.SwitchLocaleMsg{Locale: "en"}},
	{Name: "Help", Shortcut: "?", Msg: msgs.ShowHelpMsg{}},
	{Name: "Quit", Shortcut: "Ctrl+C", Msg: tea.Quit()},
}

// CommandPalette is a fuzzy command palette overlay.
type CommandPalette struct {
	Visible  bool
	input    textinput.Model
	commands []paletteCommand
	filtered []paletteCommand
	cursor   int
	theme    theme.Theme
}

// NewCommandPalette creates a new command palette.
func NewCommandPalette(t theme.Theme) CommandPalette {
	ti := textinput.New()
	ti.Placeholder = "Type a command..."
	ti.CharLimit = 64
	ti.Width = 54

	return CommandPalette{
		input:    ti,
		commands: defaultCommands,
		filtered: defaultCommands,
		theme:    t,
	}
}

// SetTheme changes the palette colors.
func (m *CommandPalette) SetTheme(t theme.Theme) {
	m.theme = t
}

// Open shows the command palette.
func (m *CommandPalette) Open() {
	m.open(defaultCommands, "Type a command...")
}

// OpenThemePicker opens the palette in theme selection mode.
func (m *CommandPalette) OpenThemePicker(themeNames []string) {
	cmds := make([]paletteCommand, len(themeNames))
	for i, name := range themeNames {
		cmds[i] = paletteCommand{Name: name, Msg: msgs.SwitchThemeMsg{Name: name}}
	}
	m.open(cmds, "Select theme...")
}

func (m *CommandPalette) open(cmds []paletteCommand, placeholder string) {
	m.Visible = true
	m.input.SetValue("")
	m.input.Placeholder = placeholder
	m.input.Focus()
	m.commands = cmds
	m.filtered = cmds
	m.cursor = 0
}

// Close hides the command palette and restores the default commands.
func (m *CommandPalette) Close() {
	m.Visible = false
	m.input.Blur()
	m.commands = defaultCommands
	m.filtered = defaultCommands
	m.input.Placeholder = "Type a command..."
}

// Update implements tea.Model.
func (m CommandPalette) Update(msg tea.Msg) (CommandPalette, tea.Cmd) {
	if !m.Visible {
		return m, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			m.Close()
			return m, func() tea.Msg { return msgs.SetModeMsg{Mode: msgs.ModeNormal} }
		case "enter":
			if len(m.filtered) > 0 && m.cursor < len(m.filtered) {
				selected := m.filtered[m.cursor]
				m.Close()
				return m, tea.Sequence(
					func() tea.Msg { return msgs.SetModeMsg{Mode: msgs.ModeNormal} },
					func() tea.Msg { return selected.Msg },
				)
			}
			return m, nil
		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "ctrl+n":
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.filter(m.input.Value())
	return m, cmd
}

func (m *CommandPalette) filter(query string) {
	if query == "" {
		m.filtered = m.commands
	} else {
		names := make([]string, len(m.commands))
		for i, c := range m.commands {
			names[i] = c.Name
		}
		matches := fuzzy.Find(query, names)
		m.filtered = make([]paletteCommand, len(matches))
		for i, match := range matches {
			m.filtered[i] = m.commands[match.Index]
		}
	}

	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// View renders the command palette overlay.
func (m CommandPalette) View() string {
	if !m.Visible {
		return ""
	}

	boxWidth := 60
	inner := boxWidth - 6

	title := lipgloss.NewStyle().
		Foreground(m.theme.Text).
		Bold(true).
		Width(boxWidth - 4).
		Align(lipgloss.Center).
		Render("Command Palette")

	maxItems := min(15, len(m.filtered))

	var items []string
	for i := 0; i < maxItems; i++ {
		cmd := m.filtered[i]
		shortcut := cmd.Shortcut
		name := runewidth.Truncate(cmd.Name, inner-runewidth.StringWidth(shortcut)-1, "…")
		gap := max(1, inner-runewidth.StringWidth(name)-runewidth.StringWidth(shortcut))

		if i == m.cursor {
			items = append(items, lipgloss.NewStyle().
				Background(m.theme.Overlay).
				Foreground(m.theme.Text).
				Width(boxWidth-4).
				Render(name+strings.Repeat(" ", gap)+shortcut))
			continue
		}
		items = append(items,
			lipgloss.NewStyle().Foreground(m.theme.Text).Render(name)+
				strings.Repeat(" ", gap)+
				lipgloss.NewStyle().Foreground(m.theme.Muted).Render(shortcut))
	}
	if len(m.filtered) == 0 {
		items = append(items, lipgloss.NewStyle().Foreground(m.theme.Muted).Render("No matching commands"))
	}

	content := title + "\n\n" + m.input.View() + "\n\n" + strings.Join(items, "\n")

	return lipgloss.NewStyle().
		Width(boxWidth).
		Background(m.theme.Surface).
		Foreground(m.theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.BorderFocused).
		Padding(1, 2).
		Render(content)
}
