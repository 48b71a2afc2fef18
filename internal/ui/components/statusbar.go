package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/sadopc/msghist/internal/ui/msgs"
	"github.com/sadopc/msghist/internal/ui/theme"
)

// clearStatusMsg clears the status message set with the same id.
type clearStatusMsg struct {
	id int
}

// StatusBar is a full-width bottom status bar.
type StatusBar struct {
	loading   bool
	spinner   spinner.Model
	page      int
	pages     int
	pageSize  int
	total     int
	duration  time.Duration
	size      int64
	filtered  bool
	sortLabel string
	mode      msgs.AppMode
	message   string
	isError   bool
	msgID     int
	width     int
	theme     theme.Theme
}

// NewStatusBar creates a new status bar.
func NewStatusBar(t theme.Theme) StatusBar {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(t.Accent)
	return StatusBar{
		theme:   t,
		spinner: sp,
		mode:    msgs.ModeNormal,
		page:    1,
		pages:   1,
	}
}

// SetTheme changes the bar colors.
func (m *StatusBar) SetTheme(t theme.Theme) {
	m.theme = t
	m.spinner.Style = lipgloss.NewStyle().Foreground(t.Accent)
}

// SetLoading toggles the spinner. It returns the spinner tick when
// loading starts.
func (m *StatusBar) SetLoading(loading bool) tea.Cmd {
	start := loading && !m.loading
	m.loading = loading
	if start {
		return m.spinner.Tick
	}
	return nil
}

// Loading reports whether the spinner is shown.
func (m StatusBar) Loading() bool { return m.loading }

// SetPagination sets the page position and total record count.
func (m *StatusBar) SetPagination(page, pages, pageSize, total int) {
	m.page, m.pages, m.pageSize, m.total = page, pages, pageSize, total
}

// SetTransfer sets the last response timing and size.
func (m *StatusBar) SetTransfer(d time.Duration, size int64) {
	m.duration = d
	m.size = size
}

// SetQueryInfo sets the filter indicator and sort label.
func (m *StatusBar) SetQueryInfo(filtered bool, sortLabel string) {
	m.filtered = filtered
	m.sortLabel = sortLabel
}

// SetMode sets the current app mode.
func (m *StatusBar) SetMode(mode msgs.AppMode) {
	m.mode = mode
}

// SetWidth sets the available width.
func (m *StatusBar) SetWidth(w int) {
	m.width = w
}

// SetMessage sets a status message. A positive duration clears it
// afterwards.
func (m *StatusBar) SetMessage(text string, isError bool, d time.Duration) tea.Cmd {
	m.message = text
	m.isError = isError
	m.msgID++
	if d <= 0 {
		return nil
	}
	id := m.msgID
	return tea.Tick(d, func(time.Time) tea.Msg { return clearStatusMsg{id: id} })
}

// Message returns the current status message.
func (m StatusBar) Message() string { return m.message }

// Update implements tea.Model.
func (m StatusBar) Update(msg tea.Msg) (StatusBar, tea.Cmd) {
	switch msg := msg.(type) {
	case clearStatusMsg:
		if msg.id == m.msgID {
			m.message = ""
			m.isError = false
		}
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the status bar.
func (m StatusBar) View() string {
	bg := m.theme.Surface
	seg := func(fg lipgloss.Color, bold bool, s string) string {
		return lipgloss.NewStyle().Foreground(fg).Background(bg).Bold(bold).Render(s)
	}

	var leftParts []string
	if m.loading {
		leftParts = append(leftParts, m.spinner.View()+seg(m.theme.Subtext, false, " loading"))
	}
	leftParts = append(leftParts,
		seg(m.theme.Text, true, fmt.Sprintf("%d/%d", m.page, m.pages)),
		seg(m.theme.Subtext, false, humanize.Comma(int64(m.total))+" records"),
	)
	if m.pageSize > 0 {
		leftParts = append(leftParts, seg(m.theme.Muted, false, fmt.Sprintf("%d/page", m.pageSize)))
	}
	if m.duration > 0 {
		leftParts = append(leftParts, seg(m.theme.Subtext, false, formatDuration(m.duration)))
	}
	if m.size > 0 {
		leftParts = append(leftParts, seg(m.theme.Subtext, false, humanize.IBytes(uint64(m.size))))
	}
	if m.filtered {
		leftParts = append(leftParts, seg(m.theme.Teal, true, "filtered"))
	}
	if m.sortLabel != "" {
		leftParts = append(leftParts, seg(m.theme.Blue, false, m.sortLabel))
	}
	if m.message != "" {
		fg := m.theme.Text
		if m.isError {
			fg = m.theme.Red
		}
		leftParts = append(leftParts, seg(fg, false, m.message))
	}
	left := strings.Join(leftParts, seg(m.theme.Muted, false, " │ "))

	modeStr := seg(m.theme.Accent, true, "["+m.mode.String()+"]")
	hint := seg(m.theme.Muted, false, "?:help  Ctrl+K:command")

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(modeStr) - lipgloss.Width(hint) - 3
	if gap < 1 {
		gap = 1
	}
	line := " " + left + strings.Repeat(" ", gap) + modeStr + " " + hint

	return lipgloss.NewStyle().
		Background(bg).
		Foreground(m.theme.Text).
		Width(m.width).
		MaxHeight(1).
		Render(line)
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
}
