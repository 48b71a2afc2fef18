package mock

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/sadopc/msghist/internal/core/history"
	httpclient "github.com/sadopc/msghist/internal/protocol/http"
)

func testStore(t *testing.T) *history.Store {
	t.Helper()
	store, err := history.NewStore(":memory:")
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	records := []history.Record{
		{Message: `{"sender":"alice","content":"hello world"}`, Status: true, ReceivedAt: 100, CreatedAt: 300},
		{Message: `{"sender":"bob","content":"disk full"}`, Status: false, ReceivedAt: 200, CreatedAt: 100, Err: "timeout"},
		{Message: `{"sender":"alice","content":"bye"}`, Status: false, ReceivedAt: 300, CreatedAt: 200},
	}
	for _, r := range records {
		if _, err := store.Add(context.Background(), r); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	return store
}

func get(t *testing.T, h http.Handler, target string) (*httptest.ResponseRecorder, history.ListResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp history.ListResponse
	if rec.Code == http.StatusOK {
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decoding %s: %v", target, err)
		}
	}
	return rec, resp
}

func ids(resp history.ListResponse) []int64 {
	out := make([]int64, len(resp.List))
	for i, r := range resp.List {
		out[i] = r.ID
	}
	return out
}

func TestListHistories(t *testing.T) {
	h := New(testStore(t)).Handler()

	tests := []struct {
		name      string
		query     string
		wantIDs   []int64
		wantCount int
	}{
		{"defaults newest first", "", []int64{3, 2, 1}, 3},
		{"page size", "page_index=1&page_size=2", []int64{3, 2}, 3},
		{"second page", "page_index=2&page_size=2", []int64{1}, 3},
		{"sender substring", "sender=ali", []int64{3, 1}, 2},
		{"content substring", "content=disk", []int64{2}, 1},
		{"status false", "status=false", []int64{3, 2}, 2},
		{"status set", "status=true,false", []int64{3, 2, 1}, 3},
		{"received range", "start=150&end=300", []int64{3, 2}, 2},
		{"start only", "start=250", []int64{3}, 1},
		{"sort created ascending", "sort=%2Bcreated_at", []int64{2, 3, 1}, 3},
		{"sort created descending", "sort=-created_at", []int64{1, 3, 2}, 3},
		{"combined", "sender=alice&status=false&page_size=5", []int64{3}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := get(t, h, "/v1/histories?"+tt.query)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
			}
			if resp.Count != tt.wantCount {
				t.Errorf("count = %d, want %d", resp.Count, tt.wantCount)
			}
			got := ids(resp)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("ids = %v, want %v", got, tt.wantIDs)
			}
			for i := range got {
				if got[i] != tt.wantIDs[i] {
					t.Fatalf("ids = %v, want %v", got, tt.wantIDs)
				}
			}
		})
	}
}

func TestListHistoriesBadParams(t *testing.T) {
	h := New(testStore(t)).Handler()

	for _, q := range []string{
		"page_index=x",
		"page_size=ten",
		"start=yesterday",
		"status=maybe",
		"sort=-name",
	} {
		rec, _ := get(t, h, "/v1/histories?"+q)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", q, rec.Code)
		}
	}
}

func TestParseFilter(t *testing.T) {
	v := url.Values{}
	v.Set("page_index", "3")
	v.Set("page_size", "10000")
	f, err := ParseFilter(v)
	if err != nil {
		t.Fatalf("ParseFilter: %v", err)
	}
	if f.Limit != MaxPageSize || f.Offset != 2*MaxPageSize {
		t.Errorf("limit/offset = %d/%d", f.Limit, f.Offset)
	}
	if f.OrderBy != history.FieldID || !f.Desc {
		t.Errorf("default order = %s desc=%v", f.OrderBy, f.Desc)
	}

	f, err = ParseFilter(url.Values{"page_index": {"0"}, "page_size": {"-1"}})
	if err != nil {
		t.Fatalf("ParseFilter: %v", err)
	}
	if f.Offset != 0 || f.Limit != history.DefaultPageSize {
		t.Errorf("limit/offset = %d/%d", f.Limit, f.Offset)
	}
}

func TestNotFound(t *testing.T) {
	h := New(testStore(t)).Handler()
	rec, _ := get(t, h, "/v2/histories")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "/v2/histories") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestCORSHeaders(t *testing.T) {
	h := New(testStore(t)).Handler()

	req := httptest.NewRequest(http.MethodGet, "/v1/histories", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if origin := rec.Header().Get("Access-Control-Allow-Origin"); origin != "*" {
		t.Errorf("got ACAO %q, want *", origin)
	}

	req = httptest.NewRequest(http.MethodOptions, "/v1/histories", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code < 200 || rec.Code > 299 {
		t.Errorf("preflight status = %d", rec.Code)
	}
	if methods := rec.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(methods, http.MethodGet) {
		t.Errorf("Access-Control-Allow-Methods = %q", methods)
	}
}

func TestCustomCORSOrigin(t *testing.T) {
	h := New(testStore(t), WithCORSOrigin("https://myapp.example.com")).Handler()

	req := httptest.NewRequest(http.MethodGet, "/v1/histories", nil)
	req.Header.Set("Origin", "https://myapp.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if origin := rec.Header().Get("Access-Control-Allow-Origin"); origin != "https://myapp.example.com" {
		t.Errorf("got ACAO %q", origin)
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/histories", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if origin := rec.Header().Get("Access-Control-Allow-Origin"); origin != "" {
		t.Errorf("unexpected ACAO %q for other origin", origin)
	}
}

func TestLatencySimulation(t *testing.T) {
	latency := 50 * time.Millisecond
	h := New(testStore(t), WithLatency(latency)).Handler()

	start := time.Now()
	get(t, h, "/v1/histories")
	if elapsed := time.Since(start); elapsed < latency {
		t.Errorf("request took %v, expected at least %v", elapsed, latency)
	}
}

func TestErrorRateSimulation(t *testing.T) {
	h := New(testStore(t), WithErrorRate(1.0)).Handler()

	rec, _ := get(t, h, "/v1/histories")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("got status %d, want 500 with error rate 1.0", rec.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if resp["error"] != "Simulated server error" {
		t.Errorf("got error %q", resp["error"])
	}
}

func TestErrorRateZero(t *testing.T) {
	h := New(testStore(t), WithErrorRate(0.0)).Handler()
	for i := 0; i < 20; i++ {
		if rec, _ := get(t, h, "/v1/histories"); rec.Code != http.StatusOK {
			t.Fatalf("got %d with error rate 0.0", rec.Code)
		}
	}
}

func TestOptions(t *testing.T) {
	srv := New(nil, WithPort(9090), WithErrorRate(2.0))
	if srv.Port() != 9090 {
		t.Errorf("got port %d, want 9090", srv.Port())
	}
	if srv.errorRate != 1.0 {
		t.Errorf("got error rate %f, want 1.0 (clamped)", srv.errorRate)
	}
	if srv = New(nil, WithErrorRate(-0.5)); srv.errorRate != 0.0 {
		t.Errorf("got error rate %f, want 0.0 (clamped)", srv.errorRate)
	}
}

func TestSeed(t *testing.T) {
	store, err := history.NewStore(":memory:")
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	defer store.Close()

	now := time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC)
	if err := Seed(context.Background(), store, 25, now); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	records, count, err := store.List(context.Background(), history.Filter{Limit: 100})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if count != 25 || len(records) != 25 {
		t.Fatalf("count = %d, len = %d", count, len(records))
	}

	n := history.NewNormalizer(history.LabelsFor("en"), time.UTC, "")
	page, err := n.Normalize(history.ListResponse{List: records, Count: count})
	if err != nil {
		t.Fatalf("seeded messages should normalize: %v", err)
	}
	for _, r := range page.Records {
		if r.Sender == "" || r.Content == "" {
			t.Fatalf("record %d missing sender/content", r.ID)
		}
		if r.StatusOK == (r.Err != "") {
			t.Fatalf("record %d: status %v with err %q", r.ID, r.StatusOK, r.Err)
		}
	}
	for _, r := range records {
		if r.ReceivedAt > now.Unix() || r.ReceivedAt < now.Add(-30*24*time.Hour).Unix() {
			t.Fatalf("received_at %d outside seed window", r.ReceivedAt)
		}
	}
}

func TestClientAgainstMockServer(t *testing.T) {
	ts := httptest.NewServer(New(testStore(t)).Handler())
	defer ts.Close()

	client := httpclient.New(ts.URL)
	q := history.Query{
		PageIndex: 1,
		PageSize:  10,
		Sender:    "alice",
		Statuses:  []bool{true},
		Sort:      &history.Sort{Field: history.FieldCreatedAt, Direction: history.Descend},
	}
	res, err := client.ListHistories(context.Background(), q)
	if err != nil {
		t.Fatalf("ListHistories: %v", err)
	}

	n := history.NewNormalizer(history.LabelsFor("zh"), time.UTC, "")
	page, err := n.Normalize(res.Response)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if page.Total != 1 || len(page.Records) != 1 {
		t.Fatalf("page = %+v", page)
	}
	got := page.Records[0]
	if got.Sender != "alice" || got.Content != "hello world" || got.Status != "成功" {
		t.Errorf("record = %+v", got)
	}
	if got.ReceivedAt != "1970-01-01 00:01:40" {
		t.Errorf("ReceivedAt = %q", got.ReceivedAt)
	}
}

func TestServeShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- New(testStore(t)).Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("healthz status = %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
