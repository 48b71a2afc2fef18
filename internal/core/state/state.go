// Package state holds the history table's display state and the pure
// reducer that advances it.
package state

import (
	"github.com/sadopc/msghist/internal/core/history"
)

// Pagination mirrors what the table footer shows.
type Pagination struct {
	Current  int
	PageSize int
	Total    int
}

// Pages returns the number of pages for the current total.
func (p Pagination) Pages() int {
	if p.PageSize <= 0 || p.Total <= 0 {
		return 1
	}
	return (p.Total + p.PageSize - 1) / p.PageSize
}

// Filters are the user-set filter dimensions.
type Filters struct {
	Sender   string
	Content  string
	Statuses []bool
	Range    *history.TimeRange
}

// Active reports whether any filter is set.
func (f Filters) Active() bool {
	return f.Sender != "" || f.Content != "" || len(f.Statuses) > 0 || f.Range != nil
}

// State is the display state of the history table.
type State struct {
	Loading    bool
	Records    []history.DisplayRecord
	Pagination Pagination

	Filters Filters
	Sort    history.Sort

	// Seq is the last issued request number; Inflight is the request
	// whose response may still be applied, 0 when none.
	Seq      uint64
	Inflight uint64

	// pending is the page/size of the inflight request, committed to
	// Pagination only when its response arrives.
	pending Pagination
}

// New returns the initial state for a page size.
func New(pageSize int) State {
	if pageSize < 1 {
		pageSize = history.DefaultPageSize
	}
	return State{Pagination: Pagination{Current: 1, PageSize: pageSize}}
}

// Query builds the list request for a page and size under the current
// filters and sort.
func (s State) Query(page, size int) history.Query {
	q := history.Query{
		PageIndex: page,
		PageSize:  size,
		Sender:    s.Filters.Sender,
		Content:   s.Filters.Content,
		Statuses:  s.Filters.Statuses,
		Range:     s.Filters.Range,
	}
	if s.Sort.Field != "" && s.Sort.Direction != history.Unsorted {
		sort := s.Sort
		q.Sort = &sort
	}
	return q
}
