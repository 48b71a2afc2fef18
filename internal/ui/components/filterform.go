package components

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/msghist/internal/core/history"
	"github.com/sadopc/msghist/internal/core/state"
	"github.com/sadopc/msghist/internal/ui/msgs"
	"github.com/sadopc/msghist/internal/ui/theme"
)

const (
	fieldSender = iota
	fieldContent
	fieldStatus
	fieldStart
	fieldEnd
	fieldCount
)

var filterFieldNames = [fieldCount]string{"Sender", "Content", "Status", "Start", "End"}

// FilterForm edits the sender, content, status and time range filters.
type FilterForm struct {
	Visible  bool
	inputs   [fieldCount]textinput.Model
	focus    int
	err      string
	location *time.Location
	theme    theme.Theme
	styles   theme.Styles
}

// NewFilterForm creates a filter form. Range inputs are read in loc.
func NewFilterForm(t theme.Theme, s theme.Styles, loc *time.Location) FilterForm {
	if loc == nil {
		loc = time.Local
	}
	f := FilterForm{theme: t, styles: s, location: loc}
	placeholders := [fieldCount]string{
		"substring of sender",
		"substring of content",
		"true,false",
		history.DateTimeLayout,
		history.DateTimeLayout,
	}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 128
		ti.Width = 40
		ti.Prompt = ""
		f.inputs[i] = ti
	}
	return f
}

// SetTheme changes the form colors.
func (m *FilterForm) SetTheme(t theme.Theme, s theme.Styles) {
	m.theme = t
	m.styles = s
}

// Open shows the form prefilled with the active filters.
func (m *FilterForm) Open(f state.Filters) {
	m.Visible = true
	m.err = ""
	m.inputs[fieldSender].SetValue(f.Sender)
	m.inputs[fieldContent].SetValue(f.Content)
	m.inputs[fieldStatus].SetValue(formatStatuses(f.Statuses))
	if f.Range != nil {
		m.inputs[fieldStart].SetValue(f.Range.Start.In(m.location).Format(history.DateTimeLayout))
		m.inputs[fieldEnd].SetValue(f.Range.End.In(m.location).Format(history.DateTimeLayout))
	} else {
		m.inputs[fieldStart].SetValue("")
		m.inputs[fieldEnd].SetValue("")
	}
	m.setFocus(fieldSender)
}

// Close hides the form.
func (m *FilterForm) Close() {
	m.Visible = false
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
}

// Err returns the last validation error.
func (m FilterForm) Err() string { return m.err }

// Filters parses the form into filters.
func (m FilterForm) Filters() (state.Filters, error) {
	statuses, err := history.ParseStatuses(m.inputs[fieldStatus].Value())
	if err != nil {
		return state.Filters{}, err
	}
	rng, err := history.ParseRange(m.inputs[fieldStart].Value(), m.inputs[fieldEnd].Value(), m.location)
	if err != nil {
		return state.Filters{}, err
	}
	return state.Filters{
		Sender:   m.inputs[fieldSender].Value(),
		Content:  m.inputs[fieldContent].Value(),
		Statuses: statuses,
		Range:    rng,
	}, nil
}

func (m *FilterForm) setFocus(i int) {
	m.focus = (i + fieldCount) % fieldCount
	for j := range m.inputs {
		if j == m.focus {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
}

// Update implements tea.Model.
func (m FilterForm) Update(msg tea.Msg) (FilterForm, tea.Cmd) {
	if !m.Visible {
		return m, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			m.Close()
			return m, func() tea.Msg { return msgs.SetModeMsg{Mode: msgs.ModeNormal} }
		case "tab", "down":
			m.setFocus(m.focus + 1)
			return m, nil
		case "shift+tab", "up":
			m.setFocus(m.focus - 1)
			return m, nil
		case "enter":
			filters, err := m.Filters()
			if err != nil {
				m.err = err.Error()
				return m, nil
			}
			m.Close()
			return m, tea.Sequence(
				func() tea.Msg { return msgs.SetModeMsg{Mode: msgs.ModeNormal} },
				func() tea.Msg { return msgs.ApplyFiltersMsg{Filters: filters} },
			)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// View renders the form overlay.
func (m FilterForm) View() string {
	if !m.Visible {
		return ""
	}

	title := lipgloss.NewStyle().
		Foreground(m.theme.Text).
		Bold(true).
		Render("Filter")

	var rows []string
	for i, in := range m.inputs {
		label := m.styles.FilterLabel.Render(filterFieldNames[i])
		if i == m.focus {
			label = m.styles.FilterFocus.Render(filterFieldNames[i])
		}
		rows = append(rows, label+" "+in.View())
	}

	content := title + "\n\n" + strings.Join(rows, "\n")
	if m.err != "" {
		content += "\n\n" + m.styles.Error.Render(m.err)
	}
	content += "\n\n" + m.styles.Hint.Render("tab: next field  enter: apply  esc: cancel")

	return lipgloss.NewStyle().
		Width(60).
		Background(m.theme.Surface).
		Foreground(m.theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.BorderFocused).
		Padding(1, 2).
		Render(content)
}

func formatStatuses(s []bool) string {
	parts := make([]string, len(s))
	for i, b := range s {
		parts[i] = strconv.FormatBool(b)
	}
	return strings.Join(parts, ",")
}
