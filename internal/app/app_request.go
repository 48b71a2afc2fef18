package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/msghist/internal/core/state"
	"github.com/sadopc/msghist/internal/runner"
	"github.com/sadopc/msghist/internal/ui/msgs"
)

// dispatch runs a display event through the reducer and starts the
// fetch it asks for.
func (a *App) dispatch(ev state.Event) tea.Cmd {
	var eff state.Effect
	a.state, eff = state.Reduce(a.state, ev)

	var cmds []tea.Cmd
	if eff.Fetch {
		cmds = append(cmds, a.fetch(eff))
	}
	cmds = append(cmds, a.syncStatus())
	return tea.Batch(cmds...)
}

// fetch cancels the inflight request and lists eff.Query in a command.
func (a *App) fetch(eff state.Effect) tea.Cmd {
	a.cancelFetch()

	timeout := a.cfg.DefaultTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	a.cancel = cancel

	a.logger.Debug("list histories",
		"seq", eff.Seq,
		"page", eff.Query.PageIndex,
		"size", eff.Query.PageSize,
	)

	lister, normalizer, seq, q := a.lister, a.normalizer, eff.Seq, eff.Query
	return func() tea.Msg {
		defer cancel()
		res, err := runner.Run(ctx, lister, normalizer, q)
		if err != nil {
			return msgs.FetchResultMsg{Seq: seq, Err: err}
		}
		return msgs.FetchResultMsg{
			Seq:       seq,
			Page:      res.Page,
			RequestID: res.RequestID,
			Duration:  res.Duration,
			Size:      res.Size,
		}
	}
}

func (a *App) cancelFetch() {
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
}

func (a App) handleFetchResult(msg msgs.FetchResultMsg) (tea.Model, tea.Cmd) {
	var ev state.Event = state.FetchSucceeded{Seq: msg.Seq, Page: msg.Page}
	if msg.Err != nil {
		ev = state.FetchFailed{Seq: msg.Seq, Err: msg.Err}
	}

	inflight := a.state.Inflight
	var eff state.Effect
	a.state, eff = state.Reduce(a.state, ev)

	if eff.Stale {
		a.logger.Debug("dropped stale response", "seq", msg.Seq, "inflight", inflight, "err", msg.Err)
		return a, nil
	}

	var cmds []tea.Cmd
	if eff.Failed {
		a.logger.Error("list histories failed", "seq", msg.Seq, "err", eff.Err)
		cmds = append(cmds,
			a.toast.Show(a.labels.RequestFailed, true, 5*time.Second),
			a.statusBar.SetMessage(eff.Err.Error(), true, 10*time.Second),
		)
	} else {
		a.logger.Debug("listed histories",
			"seq", msg.Seq,
			"request_id", msg.RequestID,
			"count", len(msg.Page.Records),
			"total", msg.Page.Total,
			"duration", msg.Duration,
		)
		a.statusBar.SetTransfer(msg.Duration, msg.Size)
		a.applyRecords()
	}
	cmds = append(cmds, a.syncStatus())
	return a, tea.Batch(cmds...)
}

// applyRecords shows the committed page. An open detail panel stays on
// its record when the record is still listed and closes otherwise.
func (a *App) applyRecords() {
	a.table.SetRecords(a.state.Records)
	if !a.detailVisible {
		return
	}
	for i, r := range a.state.Records {
		if r.ID == a.detail.RecordID() {
			a.table.SetCursor(i)
			a.detail.SetRecord(r, a.labels)
			return
		}
	}
	a.closeDetail()
}

// syncStatus mirrors the display state into the status bar.
func (a *App) syncStatus() tea.Cmd {
	p := a.state.Pagination
	a.statusBar.SetPagination(p.Current, p.Pages(), p.PageSize, p.Total)
	a.statusBar.SetQueryInfo(a.state.Filters.Active(), a.state.Sort.Param())
	return a.statusBar.SetLoading(a.state.Loading)
}
