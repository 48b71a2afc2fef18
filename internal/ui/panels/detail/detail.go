package detail

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromastyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/msghist/internal/core/history"
	"github.com/sadopc/msghist/internal/ui/theme"
)

// Model shows the expanded detail rows of one record.
type Model struct {
	viewport viewport.Model
	rows     []history.DetailRow
	offsets  []int
	cursor   int
	id       int64
	statusOK bool
	hasRec   bool

	width   int
	height  int
	focused bool

	theme  theme.Theme
	styles theme.Styles
}

// New creates an empty detail panel.
func New(t theme.Theme, s theme.Styles) Model {
	return Model{
		viewport: viewport.New(0, 0),
		theme:    t,
		styles:   s,
	}
}

// SetTheme changes the panel colors.
func (m *Model) SetTheme(t theme.Theme, s theme.Styles) {
	m.theme = t
	m.styles = s
	m.render()
}

// SetRecord shows the detail rows of d.
func (m *Model) SetRecord(d history.DisplayRecord, labels history.Labels) {
	same := m.hasRec && m.id == d.ID
	m.rows = history.Expand(d, labels)
	m.id = d.ID
	m.statusOK = d.StatusOK
	m.hasRec = true
	if !same {
		m.cursor = 0
		m.viewport.GotoTop()
	}
	m.render()
}

// Clear removes the shown record.
func (m *Model) Clear() {
	m.rows = nil
	m.offsets = nil
	m.hasRec = false
	m.cursor = 0
	m.viewport.SetContent("")
}

// HasRecord reports whether a record is shown.
func (m Model) HasRecord() bool { return m.hasRec }

// RecordID returns the id of the shown record.
func (m Model) RecordID() int64 { return m.id }

// Selected returns the detail row under the cursor.
func (m Model) Selected() (history.DetailRow, bool) {
	if !m.hasRec || m.cursor >= len(m.rows) {
		return history.DetailRow{}, false
	}
	return m.rows[m.cursor], true
}

// SetSize sets the panel dimensions including the border.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.viewport.Width = max(0, w-2)
	m.viewport.Height = max(0, h-3)
	m.render()
}

// SetFocused sets whether this panel has focus.
func (m *Model) SetFocused(f bool) {
	m.focused = f
	m.render()
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && m.hasRec {
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
				m.render()
				m.scrollToCursor()
			}
			return m, nil
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
				m.render()
				m.scrollToCursor()
			}
			return m, nil
		case "home":
			m.viewport.GotoTop()
			return m, nil
		case "end":
			m.viewport.GotoBottom()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the panel.
func (m Model) View() string {
	border := m.styles.UnfocusedBorder
	if m.focused {
		border = m.styles.FocusedBorder
	}
	innerW := max(0, m.width-2)
	innerH := max(0, m.height-2)

	if !m.hasRec {
		msg := m.styles.Muted.Render("Press enter on a record to see its detail")
		return border.Width(innerW).Height(innerH).
			Render(lipgloss.Place(innerW, innerH, lipgloss.Center, lipgloss.Center, msg))
	}

	title := m.styles.Title.Render(fmt.Sprintf("#%d ", m.id)) +
		m.styles.StatusStyle(m.statusOK).Render(statusGlyph(m.statusOK))
	content := lipgloss.JoinVertical(lipgloss.Left, title, m.viewport.View())
	return border.Width(innerW).Height(innerH).Render(content)
}

func (m *Model) render() {
	if !m.hasRec {
		return
	}
	width := max(1, m.viewport.Width)

	var lines []string
	m.offsets = make([]int, len(m.rows))
	for i, row := range m.rows {
		m.offsets[i] = len(lines)

		label := m.styles.DetailLabel.Render(row.Label)
		if i == m.cursor {
			label = m.styles.Cursor.Render("▸ ") + label
		} else {
			label = "  " + label
		}
		lines = append(lines, label)

		for _, l := range strings.Split(m.formatValue(row.Value, width-2), "\n") {
			lines = append(lines, "  "+l)
		}
		lines = append(lines, "")
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
}

func (m Model) formatValue(v string, width int) string {
	if strings.TrimSpace(v) == "" {
		return m.styles.Muted.Render("-")
	}
	if history.IsJSONValue(v) {
		return highlight(history.FormatValue(v), "json")
	}
	return lipgloss.NewStyle().Width(max(1, width)).Render(v)
}

func (m *Model) scrollToCursor() {
	if m.cursor >= len(m.offsets) {
		return
	}
	line := m.offsets[m.cursor]
	if line < m.viewport.YOffset || line >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(line)
	}
}

func statusGlyph(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}

// highlight applies chroma syntax highlighting to source code.
func highlight(source, lexerName string) string {
	lexer := lexers.Get(lexerName)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromastyles.Get("monokai")
	if style == nil {
		style = chromastyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return source
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return source
	}
	return buf.String()
}
