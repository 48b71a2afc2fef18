package state

import (
	"errors"
	"testing"

	"github.com/sadopc/msghist/internal/core/history"
)

func page(total int, ids ...int64) history.Page {
	p := history.Page{Total: total}
	for _, id := range ids {
		p.Records = append(p.Records, history.DisplayRecord{ID: id, Key: id})
	}
	return p
}

// loaded returns a state that has applied one successful fetch.
func loaded(t *testing.T) State {
	t.Helper()
	s, eff := Reduce(New(10), Refresh{})
	s, _ = Reduce(s, FetchSucceeded{Seq: eff.Seq, Page: page(35, 1, 2, 3)})
	return s
}

func TestNew_Defaults(t *testing.T) {
	s := New(0)
	if s.Pagination.PageSize != history.DefaultPageSize {
		t.Errorf("PageSize = %d, want %d", s.Pagination.PageSize, history.DefaultPageSize)
	}
	if s.Pagination.Current != 1 {
		t.Errorf("Current = %d, want 1", s.Pagination.Current)
	}
	if s.Loading {
		t.Error("initial state should not be loading")
	}
}

func TestRefresh_DispatchesFetch(t *testing.T) {
	s, eff := Reduce(New(10), Refresh{})
	if !eff.Fetch {
		t.Fatal("expected fetch effect")
	}
	if !s.Loading {
		t.Error("expected loading after dispatch")
	}
	if eff.Seq != 1 || s.Inflight != 1 {
		t.Errorf("seq = %d, inflight = %d, want 1/1", eff.Seq, s.Inflight)
	}
	if eff.Query.PageIndex != 1 || eff.Query.PageSize != 10 {
		t.Errorf("query page = %d/%d", eff.Query.PageIndex, eff.Query.PageSize)
	}
}

func TestFetchSucceeded_AppliesPage(t *testing.T) {
	s := loaded(t)
	if s.Loading {
		t.Error("loading should clear on response")
	}
	if len(s.Records) != 3 {
		t.Errorf("expected 3 records, got %d", len(s.Records))
	}
	if s.Pagination.Total != 35 {
		t.Errorf("Total = %d, want 35", s.Pagination.Total)
	}
	if s.Pagination.Pages() != 4 {
		t.Errorf("Pages() = %d, want 4", s.Pagination.Pages())
	}
	if s.Inflight != 0 {
		t.Errorf("Inflight = %d, want 0", s.Inflight)
	}
}

func TestPageChanged_CommitsOnResponse(t *testing.T) {
	s := loaded(t)

	s, eff := Reduce(s, PageChanged{Page: 3})
	if eff.Query.PageIndex != 3 {
		t.Fatalf("query page = %d, want 3", eff.Query.PageIndex)
	}
	if s.Pagination.Current != 1 {
		t.Errorf("pagination should not move before the response, got %d", s.Pagination.Current)
	}

	s, _ = Reduce(s, FetchSucceeded{Seq: eff.Seq, Page: page(35, 21, 22)})
	if s.Pagination.Current != 3 {
		t.Errorf("Current = %d, want 3", s.Pagination.Current)
	}
}

func TestPageChanged_Clamps(t *testing.T) {
	s := loaded(t)

	_, eff := Reduce(s, PageChanged{Page: 99})
	if eff.Query.PageIndex != 4 {
		t.Errorf("page beyond last: got %d, want 4", eff.Query.PageIndex)
	}
	_, eff = Reduce(s, PageChanged{Page: 0})
	if eff.Query.PageIndex != 1 {
		t.Errorf("page below first: got %d, want 1", eff.Query.PageIndex)
	}
}

func TestPageSizeChanged_ResetsCurrent(t *testing.T) {
	s := loaded(t)
	s, eff := Reduce(s, PageChanged{Page: 2})
	s, _ = Reduce(s, FetchSucceeded{Seq: eff.Seq, Page: page(35)})

	s, eff = Reduce(s, PageSizeChanged{Size: 20})
	if eff.Query.PageIndex != 1 || eff.Query.PageSize != 20 {
		t.Fatalf("query = %d/%d, want 1/20", eff.Query.PageIndex, eff.Query.PageSize)
	}
	s, _ = Reduce(s, FetchSucceeded{Seq: eff.Seq, Page: page(35)})
	if s.Pagination.Current != 1 || s.Pagination.PageSize != 20 {
		t.Errorf("pagination = %+v", s.Pagination)
	}
}

func TestFiltersApplied_BuildsQuery(t *testing.T) {
	s := loaded(t)
	s, _ = Reduce(s, PageChanged{Page: 2})

	f := Filters{Sender: "sms", Statuses: []bool{false}}
	s, eff := Reduce(s, FiltersApplied{Filters: f})
	if eff.Query.PageIndex != 1 {
		t.Errorf("filters should reset to page 1, got %d", eff.Query.PageIndex)
	}
	params := eff.Query.Params()
	if params.Get("sender") != "sms" || params.Get("status") != "false" {
		t.Errorf("params = %v", params)
	}
	if _, ok := params["content"]; ok {
		t.Error("unset content should be omitted")
	}

	_, eff = Reduce(s, FiltersCleared{})
	if eff.Query.HasFilters() {
		t.Errorf("expected no filters after clear, got %+v", eff.Query)
	}
}

func TestSortToggled_Cycles(t *testing.T) {
	s := New(10)
	want := []string{"+created_at", "-created_at", ""}
	for i, w := range want {
		var eff Effect
		s, eff = Reduce(s, SortToggled{Field: history.FieldCreatedAt})
		got := eff.Query.Params().Get("sort")
		if got != w {
			t.Errorf("toggle %d: sort = %q, want %q", i, got, w)
		}
	}
	if s.Sort != (history.Sort{}) {
		t.Errorf("expected cleared sort, got %+v", s.Sort)
	}
}

func TestSortToggled_OtherFieldStartsAscending(t *testing.T) {
	s := New(10)
	s, _ = Reduce(s, SortToggled{Field: history.FieldCreatedAt})
	s, _ = Reduce(s, SortToggled{Field: history.FieldCreatedAt})
	_, eff := Reduce(s, SortToggled{Field: history.FieldID})
	if got := eff.Query.Params().Get("sort"); got != "+id" {
		t.Errorf("sort = %q, want +id", got)
	}
}

func TestStaleResponseIgnored(t *testing.T) {
	s := loaded(t)

	s, first := Reduce(s, PageChanged{Page: 2})
	s, second := Reduce(s, PageChanged{Page: 3})

	// the newer request completes first
	s, _ = Reduce(s, FetchSucceeded{Seq: second.Seq, Page: page(35, 31)})
	s, eff := Reduce(s, FetchSucceeded{Seq: first.Seq, Page: page(35, 11)})

	if !eff.Stale {
		t.Error("expected stale effect for old response")
	}
	if s.Pagination.Current != 3 {
		t.Errorf("Current = %d, want 3", s.Pagination.Current)
	}
	if len(s.Records) != 1 || s.Records[0].ID != 31 {
		t.Errorf("records overwritten by stale response: %+v", s.Records)
	}
}

func TestStaleResponse_KeepsLoadingForNewest(t *testing.T) {
	s := loaded(t)
	s, first := Reduce(s, Refresh{})
	s, _ = Reduce(s, Refresh{})

	s, _ = Reduce(s, FetchSucceeded{Seq: first.Seq, Page: page(1, 99)})
	if !s.Loading {
		t.Error("loading should stay set while the newest request is in flight")
	}
}

func TestFetchFailed_LeavesStateUnchanged(t *testing.T) {
	s := loaded(t)
	before := s

	s, eff := Reduce(s, PageChanged{Page: 2})
	boom := errors.New("boom")
	s, eff = Reduce(s, FetchFailed{Seq: eff.Seq, Err: boom})

	if !eff.Failed || !errors.Is(eff.Err, boom) {
		t.Errorf("expected failed effect carrying error, got %+v", eff)
	}
	if s.Loading {
		t.Error("loading should clear on failure")
	}
	if s.Pagination != before.Pagination {
		t.Errorf("pagination changed on failure: %+v -> %+v", before.Pagination, s.Pagination)
	}
	if len(s.Records) != len(before.Records) {
		t.Errorf("records changed on failure")
	}
}

func TestFetchFailed_StaleIsSilent(t *testing.T) {
	s := loaded(t)
	s, first := Reduce(s, Refresh{})
	s, _ = Reduce(s, Refresh{})

	_, eff := Reduce(s, FetchFailed{Seq: first.Seq, Err: errors.New("late")})
	if eff.Failed {
		t.Error("stale failure should not notify")
	}
	if !eff.Stale {
		t.Error("expected stale effect")
	}
}

func TestFilters_Active(t *testing.T) {
	tests := []struct {
		name string
		f    Filters
		want bool
	}{
		{"empty", Filters{}, false},
		{"sender", Filters{Sender: "a"}, true},
		{"content", Filters{Content: "a"}, true},
		{"status", Filters{Statuses: []bool{false}}, true},
		{"range", Filters{Range: &history.TimeRange{}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.f.Active(); got != tt.want {
				t.Errorf("Active() = %v, want %v", got, tt.want)
			}
		})
	}
}
