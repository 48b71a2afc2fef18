package app

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/msghist/internal/core/history"
	"github.com/sadopc/msghist/internal/ui/msgs"
)

func (a App) handleGlobalKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Quit):
		a.cancelFetch()
		return tea.Quit
	case key.Matches(msg, a.keys.CommandPalette):
		return func() tea.Msg { return msgs.OpenCommandPaletteMsg{} }
	case key.Matches(msg, a.keys.Help):
		return func() tea.Msg { return msgs.ShowHelpMsg{} }
	case key.Matches(msg, a.keys.Refresh):
		return func() tea.Msg { return msgs.RefreshMsg{} }
	case key.Matches(msg, a.keys.NextPage):
		return func() tea.Msg { return msgs.NextPageMsg{} }
	case key.Matches(msg, a.keys.PrevPage):
		return func() tea.Msg { return msgs.PrevPageMsg{} }
	case key.Matches(msg, a.keys.FirstPage):
		return func() tea.Msg { return msgs.GotoPageMsg{Page: 1} }
	case key.Matches(msg, a.keys.LastPage):
		last := a.state.Pagination.Pages()
		return func() tea.Msg { return msgs.GotoPageMsg{Page: last} }
	case key.Matches(msg, a.keys.PageSizeUp):
		return func() tea.Msg { return msgs.PageSizeMsg{Delta: 1} }
	case key.Matches(msg, a.keys.PageSizeDown):
		return func() tea.Msg { return msgs.PageSizeMsg{Delta: -1} }
	case key.Matches(msg, a.keys.Filter):
		return func() tea.Msg { return msgs.OpenFilterMsg{} }
	case key.Matches(msg, a.keys.ClearFilters):
		return func() tea.Msg { return msgs.ClearFiltersMsg{} }
	case key.Matches(msg, a.keys.ToggleSort):
		return func() tea.Msg { return msgs.ToggleSortMsg{Field: history.FieldCreatedAt} }
	case key.Matches(msg, a.keys.CopyValue):
		return func() tea.Msg { return msgs.CopyDetailMsg{} }
	case key.Matches(msg, a.keys.CopyRecord):
		return func() tea.Msg { return msgs.CopyRecordMsg{} }
	}
	return nil
}

func (a App) handlePanelKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.CycleFocus):
		a.cycleFocus()
		return a, nil
	case key.Matches(msg, a.keys.CloseDetail):
		if a.detailVisible {
			a.closeDetail()
		}
		return a, nil
	case key.Matches(msg, a.keys.ToggleDetail) && a.focus == msgs.FocusTable:
		a.toggleDetail()
		return a, nil
	}

	var cmd tea.Cmd
	switch a.focus {
	case msgs.FocusTable:
		a.table, cmd = a.table.Update(msg)
		a.followSelection()
	case msgs.FocusDetail:
		a.detail, cmd = a.detail.Update(msg)
	}
	return a, cmd
}

func (a *App) cycleFocus() {
	if !a.detailVisible {
		a.focus = msgs.FocusTable
	} else if a.focus == msgs.FocusTable {
		a.focus = msgs.FocusDetail
	} else {
		a.focus = msgs.FocusTable
	}
	a.updateFocus()
}

func (a *App) updateFocus() {
	a.table.SetFocused(a.focus == msgs.FocusTable)
	a.detail.SetFocused(a.focus == msgs.FocusDetail)
}
