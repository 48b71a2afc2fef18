package app

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/msghist/internal/config"
	"github.com/sadopc/msghist/internal/core/history"
	"github.com/sadopc/msghist/internal/core/state"
	"github.com/sadopc/msghist/internal/logging"
	"github.com/sadopc/msghist/internal/runner"
	"github.com/sadopc/msghist/internal/ui/components"
	"github.com/sadopc/msghist/internal/ui/layout"
	"github.com/sadopc/msghist/internal/ui/msgs"
	"github.com/sadopc/msghist/internal/ui/panels/detail"
	"github.com/sadopc/msghist/internal/ui/panels/histories"
	"github.com/sadopc/msghist/internal/ui/theme"
)

// pageSizes are the page size steps offered by +/-.
var pageSizes = []int{10, 20, 50, 100}

// App is the root Bubble Tea model.
type App struct {
	table  histories.Model
	detail detail.Model

	statusBar      components.StatusBar
	commandPalette components.CommandPalette
	help           components.Help
	toast          components.Toast
	filterForm     components.FilterForm

	state      state.State
	lister     runner.Lister
	normalizer history.Normalizer
	labels     history.Labels
	cfg        config.Config
	logger     *slog.Logger
	cancel     context.CancelFunc
	copyText   func(string) error

	mode          msgs.AppMode
	focus         msgs.PanelFocus
	detailVisible bool
	layout        layout.PanelLayout
	keys          KeyMap

	theme  theme.Theme
	styles theme.Styles

	width  int
	height int
	ready  bool
}

// New creates a new App model listing histories through l. A nil
// logger discards log output.
func New(cfg config.Config, l runner.Lister, logger *slog.Logger) App {
	if logger == nil {
		logger = logging.Discard()
	}
	t := theme.Resolve(cfg.Theme)
	s := theme.NewStyles(t)
	labels := history.LabelsFor(cfg.Locale)
	loc := cfg.Location()
	layoutStr := cfg.TimeLayout
	if layoutStr == "" {
		layoutStr = history.DefaultTimeLayout
	}

	a := App{
		table:  histories.New(t, s, labels, len(time.Unix(0, 0).In(loc).Format(layoutStr))),
		detail: detail.New(t, s),

		statusBar:      components.NewStatusBar(t),
		commandPalette: components.NewCommandPalette(t),
		help:           components.NewHelp(t),
		toast:          components.NewToast(t),
		filterForm:     components.NewFilterForm(t, s, loc),

		state:      state.New(cfg.PageSize),
		lister:     l,
		normalizer: history.NewNormalizer(labels, loc, layoutStr),
		labels:     labels,
		cfg:        cfg,
		logger:     logger,
		copyText:   clipboard.WriteAll,

		mode:  msgs.ModeNormal,
		focus: msgs.FocusTable,
		keys:  DefaultKeyMap(),

		theme:  t,
		styles: s,
	}
	a.syncStatus()
	a.updateFocus()
	return a
}

// Init loads the first page.
func (a App) Init() tea.Cmd {
	return func() tea.Msg { return msgs.RefreshMsg{} }
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layout = layout.HandleResize(msg, a.detailVisible)
		a.resizePanels()
		a.ready = true
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			a.cancelFetch()
			return a, tea.Quit
		}
		if a.filterForm.Visible {
			var cmd tea.Cmd
			a.filterForm, cmd = a.filterForm.Update(msg)
			return a, cmd
		}
		if a.commandPalette.Visible {
			var cmd tea.Cmd
			a.commandPalette, cmd = a.commandPalette.Update(msg)
			return a, cmd
		}
		if a.help.Visible {
			var cmd tea.Cmd
			a.help, cmd = a.help.Update(msg)
			return a, cmd
		}

		if cmd := a.handleGlobalKey(msg); cmd != nil {
			return a, cmd
		}
		return a.handlePanelKey(msg)

	case msgs.FetchResultMsg:
		return a.handleFetchResult(msg)

	case msgs.RefreshMsg:
		return a, a.dispatch(state.Refresh{})

	case msgs.NextPageMsg:
		return a, a.dispatch(state.PageChanged{Page: a.state.Pagination.Current + 1})

	case msgs.PrevPageMsg:
		return a, a.dispatch(state.PageChanged{Page: a.state.Pagination.Current - 1})

	case msgs.GotoPageMsg:
		return a, a.dispatch(state.PageChanged{Page: msg.Page})

	case msgs.PageSizeMsg:
		size := stepPageSize(a.state.Pagination.PageSize, msg.Delta)
		if size == a.state.Pagination.PageSize {
			return a, nil
		}
		return a, a.dispatch(state.PageSizeChanged{Size: size})

	case msgs.ToggleSortMsg:
		return a, a.dispatch(state.SortToggled{Field: msg.Field})

	case msgs.OpenFilterMsg:
		a.mode = msgs.ModeFilter
		a.statusBar.SetMode(msgs.ModeFilter)
		a.filterForm.Open(a.state.Filters)
		return a, nil

	case msgs.ApplyFiltersMsg:
		return a, a.dispatch(state.FiltersApplied{Filters: msg.Filters})

	case msgs.ClearFiltersMsg:
		if !a.state.Filters.Active() {
			return a, nil
		}
		return a, a.dispatch(state.FiltersCleared{})

	case msgs.ToggleDetailMsg:
		a.toggleDetail()
		return a, nil

	case msgs.CopyDetailMsg:
		return a.copyDetail()

	case msgs.CopyRecordMsg:
		return a.copyRecord()

	case msgs.FocusPanelMsg:
		if msg.Panel == msgs.FocusDetail && !a.detailVisible {
			return a, nil
		}
		a.focus = msg.Panel
		a.updateFocus()
		return a, nil

	case msgs.OpenCommandPaletteMsg:
		a.mode = msgs.ModeCommandPalette
		a.statusBar.SetMode(msgs.ModeCommandPalette)
		a.commandPalette.Open()
		return a, nil

	case msgs.ShowHelpMsg:
		a.mode = msgs.ModeHelp
		a.statusBar.SetMode(msgs.ModeHelp)
		a.help.SetSize(a.width, a.height)
		a.help.Toggle()
		return a, nil

	case msgs.SetModeMsg:
		a.mode = msg.Mode
		a.statusBar.SetMode(msg.Mode)
		return a, nil

	case msgs.StatusMsg:
		return a, a.statusBar.SetMessage(msg.Text, false, msg.Duration)

	case msgs.ToastMsg:
		return a, a.toast.Show(msg.Text, msg.IsError, msg.Duration)

	case msgs.SwitchThemeMsg:
		return a.handleSwitchTheme(msg)

	case msgs.SwitchLocaleMsg:
		return a.handleSwitchLocale(msg)
	}

	var cmd tea.Cmd
	a.toast, cmd = a.toast.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	a.statusBar, cmd = a.statusBar.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	if a.help.Visible {
		a.help, cmd = a.help.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	return a, tea.Batch(cmds...)
}

// toggleDetail expands the selected record or collapses the detail
// panel when it already shows that record.
func (a *App) toggleDetail() {
	rec, ok := a.table.Selected()
	if !ok {
		return
	}
	if a.detailVisible && a.detail.RecordID() == rec.ID {
		a.closeDetail()
		return
	}
	a.detail.SetRecord(rec, a.labels)
	a.detailVisible = true
	a.layout = layout.Calculate(a.width, a.height, true)
	if a.layout.SinglePanel {
		a.focus = msgs.FocusDetail
	}
	a.resizePanels()
}

func (a *App) closeDetail() {
	a.detailVisible = false
	a.detail.Clear()
	a.focus = msgs.FocusTable
	a.layout = layout.Calculate(a.width, a.height, false)
	a.resizePanels()
}

// followSelection keeps an open detail panel on the selected row.
func (a *App) followSelection() {
	if !a.detailVisible {
		return
	}
	if rec, ok := a.table.Selected(); ok && rec.ID != a.detail.RecordID() {
		a.detail.SetRecord(rec, a.labels)
	}
}

func (a *App) resizePanels() {
	l := a.layout
	a.table.SetSize(l.TableWidth, l.TableHeight)
	a.detail.SetSize(l.DetailWidth, l.DetailHeight)
	a.statusBar.SetWidth(a.width)
	a.help.SetSize(a.width, a.height)
	a.updateFocus()
}

func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}

	header := a.renderHeader()

	var panels string
	switch {
	case !a.detailVisible:
		panels = a.table.View()
	case a.layout.SinglePanel:
		panels = a.table.View()
		if a.focus == msgs.FocusDetail {
			panels = a.detail.View()
		}
	case a.layout.SideBySide:
		panels = lipgloss.JoinHorizontal(lipgloss.Top, a.table.View(), a.detail.View())
	default:
		panels = lipgloss.JoinVertical(lipgloss.Left, a.table.View(), a.detail.View())
	}

	statusBar := a.statusBar.View()
	main := lipgloss.JoinVertical(lipgloss.Left, header, panels, statusBar)

	if a.filterForm.Visible {
		main = overlayCenter(main, a.filterForm.View(), a.width, a.height)
	}
	if a.commandPalette.Visible {
		main = overlayCenter(main, a.commandPalette.View(), a.width, a.height)
	}
	if a.help.Visible {
		main = overlayCenter(main, a.help.View(), a.width, a.height)
	}
	if a.toast.Visible {
		main = overlayTopRight(main, a.toast.View(), a.width)
	}

	return main
}

func (a App) renderHeader() string {
	parts := []string{a.styles.Title.Render("msghist"), a.styles.Muted.Render(a.cfg.BaseURL)}
	if desc := describeFilters(a.state.Filters, a.cfg.Location()); desc != "" {
		parts = append(parts, a.styles.Key.Render(desc))
	}
	return lipgloss.NewStyle().Width(a.width).MaxHeight(1).Render(" " + strings.Join(parts, "  "))
}

// describeFilters summarizes the active filters on one line.
func describeFilters(f state.Filters, loc *time.Location) string {
	var parts []string
	if f.Sender != "" {
		parts = append(parts, "sender~"+f.Sender)
	}
	if f.Content != "" {
		parts = append(parts, "content~"+f.Content)
	}
	if len(f.Statuses) > 0 {
		s := make([]string, len(f.Statuses))
		for i, ok := range f.Statuses {
			if ok {
				s[i] = "true"
			} else {
				s[i] = "false"
			}
		}
		parts = append(parts, "status="+strings.Join(s, ","))
	}
	if f.Range != nil {
		parts = append(parts, f.Range.Start.In(loc).Format(history.DateTimeLayout)+" → "+
			f.Range.End.In(loc).Format(history.DateTimeLayout))
	}
	return strings.Join(parts, "  ")
}

// stepPageSize moves delta steps through pageSizes. An off-step current
// size counts as sitting between its neighbours, so a negative delta never
// grows the page and a positive one never shrinks it.
func stepPageSize(current, delta int) int {
	if delta == 0 {
		return current
	}
	idx := -1
	if delta < 0 {
		for i, s := range pageSizes {
			if s < current {
				idx = i
			}
		}
		if idx < 0 {
			return current
		}
		delta++
	} else {
		idx = len(pageSizes)
		for i := len(pageSizes) - 1; i >= 0; i-- {
			if pageSizes[i] > current {
				idx = i
			}
		}
		if idx == len(pageSizes) {
			return current
		}
		delta--
	}
	idx += delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(pageSizes) {
		idx = len(pageSizes) - 1
	}
	return pageSizes[idx]
}

func overlayCenter(_, overlay string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, overlay,
		lipgloss.WithWhitespaceChars(" "),
	)
}

func overlayTopRight(bg, overlay string, width int) string {
	overlayWidth := lipgloss.Width(overlay)
	gap := width - overlayWidth - 2
	if gap < 0 {
		gap = 0
	}
	positioned := lipgloss.NewStyle().MarginLeft(gap).Render(overlay)
	return positioned + "\n" + bg
}
