package histories

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/msghist/internal/core/history"
	"github.com/sadopc/msghist/internal/ui/theme"
)

const (
	idWidth     = 6
	senderWidth = 12
	statusWidth = 10
	minContent  = 10
	cellPadding = 2
	columnCount = 6
)

// Model is the history table panel.
type Model struct {
	table   table.Model
	records []history.DisplayRecord
	labels  history.Labels
	timeW   int

	width   int
	height  int
	focused bool

	theme  theme.Theme
	styles theme.Styles
}

// New creates a history table. timeWidth is the rendered width of the
// time columns.
func New(t theme.Theme, s theme.Styles, labels history.Labels, timeWidth int) Model {
	if timeWidth <= 0 {
		timeWidth = 19
	}
	km := table.DefaultKeyMap()
	// g/G page through results in the app; the table keeps home/end.
	km.GotoTop = key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "go to start"))
	km.GotoBottom = key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "go to end"))

	m := Model{
		table: table.New(
			table.WithFocused(true),
			table.WithKeyMap(km),
		),
		labels: labels,
		timeW:  timeWidth,
		theme:  t,
		styles: s,
	}
	m.applyStyles()
	m.table.SetColumns(m.columns())
	return m
}

// SetTheme changes the panel colors.
func (m *Model) SetTheme(t theme.Theme, s theme.Styles) {
	m.theme = t
	m.styles = s
	m.applyStyles()
}

// SetLabels switches column titles and status labels to a new locale.
func (m *Model) SetLabels(l history.Labels) {
	m.labels = l
	m.table.SetColumns(m.columns())
	m.table.SetRows(m.rows())
}

// SetRecords replaces the displayed page and moves the cursor to the
// first row.
func (m *Model) SetRecords(records []history.DisplayRecord) {
	m.records = records
	m.table.SetRows(m.rows())
	m.table.SetCursor(0)
}

// Records returns the displayed page.
func (m Model) Records() []history.DisplayRecord { return m.records }

// Selected returns the record under the cursor.
func (m Model) Selected() (history.DisplayRecord, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.records) {
		return history.DisplayRecord{}, false
	}
	return m.records[i], true
}

// Cursor returns the selected row index.
func (m Model) Cursor() int { return m.table.Cursor() }

// SetCursor selects row i.
func (m *Model) SetCursor(i int) {
	if i >= 0 && i < len(m.records) {
		m.table.SetCursor(i)
	}
}

// SetSize sets the panel dimensions including the border.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.table.SetColumns(m.columns())
	m.table.SetRows(m.rows())
	m.table.SetWidth(max(0, w-2))
	m.table.SetHeight(max(1, h-2))
}

// SetFocused sets whether this panel has focus.
func (m *Model) SetFocused(f bool) {
	m.focused = f
	if f {
		m.table.Focus()
	} else {
		m.table.Blur()
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
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

	content := m.table.View()
	if len(m.records) == 0 {
		content = lipgloss.Place(innerW, innerH, lipgloss.Center, lipgloss.Center,
			m.styles.Muted.Render("No records"))
	}
	return border.Width(innerW).Height(innerH).Render(content)
}

func (m Model) columns() []table.Column {
	content := max(0, m.width-2) - idWidth - senderWidth - statusWidth - 2*m.timeW - columnCount*cellPadding
	if content < minContent {
		content = minContent
	}
	l := m.labels
	return []table.Column{
		{Title: l.ColumnID, Width: idWidth},
		{Title: l.ColumnSender, Width: senderWidth},
		{Title: l.ColumnContent, Width: content},
		{Title: l.ColumnStatus, Width: statusWidth},
		{Title: l.ColumnReceivedAt, Width: m.timeW},
		{Title: l.ColumnCreatedAt, Width: m.timeW},
	}
}

func (m Model) rows() []table.Row {
	rows := make([]table.Row, len(m.records))
	for i, r := range m.records {
		rows[i] = table.Row{
			strconv.FormatInt(r.ID, 10),
			r.Sender,
			r.Content,
			statusMark(r.StatusOK) + m.labels.StatusLabel(r.StatusOK),
			r.ReceivedAt,
			r.CreatedAt,
		}
	}
	return rows
}

func (m *Model) applyStyles() {
	st := table.DefaultStyles()
	st.Header = m.styles.TableHeader
	st.Cell = m.styles.TableCell
	st.Selected = m.styles.TableSelected
	m.table.SetStyles(st)
}

// Cells are truncated by width, so status is marked with a glyph rather
// than colored.
func statusMark(ok bool) string {
	if ok {
		return "✓ "
	}
	return "✗ "
}
