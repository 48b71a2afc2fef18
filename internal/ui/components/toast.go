package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/msghist/internal/ui/theme"
)

// toastDismissMsg dismisses the toast shown with the same id.
type toastDismissMsg struct {
	id int
}

// Toast is an auto-dismiss notification.
type Toast struct {
	Visible  bool
	text     string
	isError  bool
	id       int
	duration time.Duration
	theme    theme.Theme
}

// NewToast creates a new toast component.
func NewToast(t theme.Theme) Toast {
	return Toast{
		theme:    t,
		duration: 3 * time.Second,
	}
}

// SetTheme changes the toast colors.
func (m *Toast) SetTheme(t theme.Theme) {
	m.theme = t
}

// Text returns the current toast text.
func (m Toast) Text() string { return m.text }

// IsError reports whether the current toast is an error.
func (m Toast) IsError() bool { return m.isError }

// Show displays a toast message and returns a Cmd for auto-dismiss. A
// newer toast is not dismissed by an older toast's timer.
func (m *Toast) Show(text string, isError bool, duration time.Duration) tea.Cmd {
	m.Visible = true
	m.text = text
	m.isError = isError
	m.id++
	if duration > 0 {
		m.duration = duration
	} else {
		m.duration = 3 * time.Second
	}
	id := m.id
	return tea.Tick(m.duration, func(time.Time) tea.Msg {
		return toastDismissMsg{id: id}
	})
}

// Update implements tea.Model.
func (m Toast) Update(msg tea.Msg) (Toast, tea.Cmd) {
	if msg, ok := msg.(toastDismissMsg); ok && msg.id == m.id {
		m.Visible = false
		m.text = ""
	}
	return m, nil
}

// View renders the toast notification.
func (m Toast) View() string {
	if !m.Visible || m.text == "" {
		return ""
	}

	fg := m.theme.Green
	if m.isError {
		fg = m.theme.Red
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Background(m.theme.Surface).
		Bold(true).
		Padding(0, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(fg).
		Render(m.text)
}
