package app

import (
	"encoding/json"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tidwall/pretty"

	"github.com/sadopc/msghist/internal/core/history"
	"github.com/sadopc/msghist/internal/core/state"
	"github.com/sadopc/msghist/internal/ui/msgs"
	"github.com/sadopc/msghist/internal/ui/theme"
)

func (a App) handleSwitchTheme(msg msgs.SwitchThemeMsg) (tea.Model, tea.Cmd) {
	if msg.Name == "" {
		a.commandPalette.OpenThemePicker(theme.Names())
		a.mode = msgs.ModeCommandPalette
		a.statusBar.SetMode(msgs.ModeCommandPalette)
		return a, nil
	}

	t := theme.Resolve(msg.Name)
	s := theme.NewStyles(t)
	a.theme = t
	a.styles = s

	a.table.SetTheme(t, s)
	a.detail.SetTheme(t, s)
	a.statusBar.SetTheme(t)
	a.commandPalette.SetTheme(t)
	a.help.SetTheme(t)
	a.toast.SetTheme(t)
	a.filterForm.SetTheme(t, s)
	a.resizePanels()

	cmd := a.toast.Show("Theme: "+t.Name, false, 2*time.Second)
	return a, cmd
}

func (a App) handleSwitchLocale(msg msgs.SwitchLocaleMsg) (tea.Model, tea.Cmd) {
	labels := history.LabelsFor(msg.Locale)
	a.cfg.Locale = msg.Locale
	a.labels = labels
	a.normalizer.Labels = labels
	a.table.SetLabels(labels)
	if rec, ok := a.table.Selected(); ok && a.detailVisible {
		a.detail.SetRecord(rec, labels)
	}
	// Reload so stored status labels follow the new locale.
	return a, a.dispatch(state.Refresh{})
}

func (a App) copyDetail() (tea.Model, tea.Cmd) {
	row, ok := a.detail.Selected()
	if !a.detailVisible || !ok {
		cmd := a.toast.Show("Open a record to copy a value", true, 2*time.Second)
		return a, cmd
	}
	if err := a.copyText(row.Value); err != nil {
		a.logger.Warn("clipboard write failed", "err", err)
		cmd := a.toast.Show("Clipboard error: "+err.Error(), true, 3*time.Second)
		return a, cmd
	}
	cmd := a.toast.Show("Copied "+row.Label, false, 2*time.Second)
	return a, cmd
}

func (a App) copyRecord() (tea.Model, tea.Cmd) {
	rec, ok := a.table.Selected()
	if !ok {
		cmd := a.toast.Show("No record selected", true, 2*time.Second)
		return a, cmd
	}
	data, err := json.Marshal(struct {
		history.DisplayRecord
		Detail []history.DetailRow `json:"detail"`
	}{rec, history.Expand(rec, a.labels)})
	if err != nil {
		cmd := a.toast.Show("Encoding error: "+err.Error(), true, 3*time.Second)
		return a, cmd
	}
	if err := a.copyText(string(pretty.Pretty(data))); err != nil {
		a.logger.Warn("clipboard write failed", "err", err)
		cmd := a.toast.Show("Clipboard error: "+err.Error(), true, 3*time.Second)
		return a, cmd
	}
	cmd := a.toast.Show(fmt.Sprintf("Copied record #%d", rec.ID), false, 2*time.Second)
	return a, cmd
}
