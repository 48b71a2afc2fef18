// Package runner executes a single history listing outside the TUI and
// renders the result for scripts.
package runner

import (
	"context"
	"time"

	"github.com/sadopc/msghist/internal/core/history"
	httpclient "github.com/sadopc/msghist/internal/protocol/http"
)

// Lister fetches one page of raw records.
type Lister interface {
	ListHistories(ctx context.Context, q history.Query) (*httpclient.ListResult, error)
}

// Result is a normalized page with transfer details.
type Result struct {
	Query     history.Query
	Page      history.Page
	URL       string
	RequestID string
	Duration  time.Duration
	Size      int64
}

// Pages returns the page count for the result's total and page size.
func (r *Result) Pages() int {
	if r.Page.Total <= 0 {
		return 1
	}
	size := pageSize(r.Query)
	return (r.Page.Total + size - 1) / size
}

// Run fetches and normalizes one page.
func Run(ctx context.Context, l Lister, n history.Normalizer, q history.Query) (*Result, error) {
	res, err := l.ListHistories(ctx, q)
	if err != nil {
		return nil, err
	}
	page, err := n.Normalize(res.Response)
	if err != nil {
		return nil, err
	}
	return &Result{
		Query:     q,
		Page:      page,
		URL:       res.URL,
		RequestID: res.RequestID,
		Duration:  res.Duration,
		Size:      res.Size,
	}, nil
}
