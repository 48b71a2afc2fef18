package state

import (
	"github.com/sadopc/msghist/internal/core/history"
)

// Event is an input to Reduce.
type Event interface{ isEvent() }

// Refresh reloads the current page.
type Refresh struct{}

// PageChanged moves to a page.
type PageChanged struct{ Page int }

// PageSizeChanged changes the page size and returns to the first page.
type PageSizeChanged struct{ Size int }

// FiltersApplied replaces all filters and returns to the first page.
type FiltersApplied struct{ Filters Filters }

// FiltersCleared drops all filters.
type FiltersCleared struct{}

// SortToggled cycles the sort direction of a field.
type SortToggled struct{ Field string }

// FetchSucceeded carries a normalized page for request Seq.
type FetchSucceeded struct {
	Seq  uint64
	Page history.Page
}

// FetchFailed reports a failed request Seq.
type FetchFailed struct {
	Seq uint64
	Err error
}

func (Refresh) isEvent()         {}
func (PageChanged) isEvent()     {}
func (PageSizeChanged) isEvent() {}
func (FiltersApplied) isEvent()  {}
func (FiltersCleared) isEvent()  {}
func (SortToggled) isEvent()     {}
func (FetchSucceeded) isEvent()  {}
func (FetchFailed) isEvent()     {}

// Effect is the work the caller must perform after a transition.
type Effect struct {
	// Fetch is set when a list request must be dispatched with Seq and
	// Query. Any earlier inflight request is superseded.
	Fetch bool
	Seq   uint64
	Query history.Query

	// Failed is set when a current request failed and the user must be
	// notified.
	Failed bool
	Err    error

	// Stale is set when a response was dropped because a newer request
	// was issued after it.
	Stale bool
}

// Reduce returns the next state for an event and the effect to run.
func Reduce(s State, ev Event) (State, Effect) {
	switch ev := ev.(type) {
	case Refresh:
		return s.dispatch(s.Pagination.Current, s.Pagination.PageSize)

	case PageChanged:
		page := ev.Page
		if page < 1 {
			page = 1
		}
		if last := s.Pagination.Pages(); page > last {
			page = last
		}
		return s.dispatch(page, s.Pagination.PageSize)

	case PageSizeChanged:
		size := ev.Size
		if size < 1 {
			size = history.DefaultPageSize
		}
		return s.dispatch(1, size)

	case FiltersApplied:
		s.Filters = ev.Filters
		return s.dispatch(1, s.Pagination.PageSize)

	case FiltersCleared:
		s.Filters = Filters{}
		return s.dispatch(1, s.Pagination.PageSize)

	case SortToggled:
		if s.Sort.Field == ev.Field {
			s.Sort.Direction = s.Sort.Direction.Next()
		} else {
			s.Sort = history.Sort{Field: ev.Field, Direction: history.Ascend}
		}
		if s.Sort.Direction == history.Unsorted {
			s.Sort = history.Sort{}
		}
		return s.dispatch(1, s.Pagination.PageSize)

	case FetchSucceeded:
		if ev.Seq == 0 || ev.Seq != s.Inflight {
			return s, Effect{Stale: true}
		}
		s.Records = ev.Page.Records
		s.Pagination = Pagination{
			Current:  s.pending.Current,
			PageSize: s.pending.PageSize,
			Total:    ev.Page.Total,
		}
		s.Loading = false
		s.Inflight = 0
		return s, Effect{}

	case FetchFailed:
		if ev.Seq == 0 || ev.Seq != s.Inflight {
			return s, Effect{Stale: true}
		}
		s.Loading = false
		s.Inflight = 0
		return s, Effect{Failed: true, Err: ev.Err}
	}
	return s, Effect{}
}

func (s State) dispatch(page, size int) (State, Effect) {
	s.Seq++
	s.Inflight = s.Seq
	s.Loading = true
	s.pending = Pagination{Current: page, PageSize: size}
	return s, Effect{Fetch: true, Seq: s.Seq, Query: s.Query(page, size)}
}
