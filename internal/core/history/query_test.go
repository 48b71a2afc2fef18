package history

import (
	"strconv"
	"testing"
	"time"
)

func TestQueryParams_OmitsUnsetDimensions(t *testing.T) {
	v := Query{PageIndex: 2, PageSize: 20}.Params()

	if got := v.Get("page_index"); got != "2" {
		t.Errorf("page_index = %q, want 2", got)
	}
	if got := v.Get("page_size"); got != "20" {
		t.Errorf("page_size = %q, want 20", got)
	}
	for _, k := range []string{"sender", "content", "status", "start", "end", "sort"} {
		if _, ok := v[k]; ok {
			t.Errorf("expected %q to be omitted, got %q", k, v.Get(k))
		}
	}
	if len(v) != 2 {
		t.Errorf("expected exactly 2 params, got %d: %v", len(v), v)
	}
}

func TestQueryParams_EachDimension(t *testing.T) {
	cst := time.FixedZone("CST", 8*3600)
	rng := &TimeRange{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, cst),
		End:   time.Date(2024, 1, 2, 0, 0, 0, 0, cst),
	}

	tests := []struct {
		name  string
		query Query
		key   string
		want  string
	}{
		{"sender", Query{Sender: "sms"}, "sender", "sms"},
		{"content", Query{Content: "hi there"}, "content", "hi there"},
		{"single status", Query{Statuses: []bool{false}}, "status", "false"},
		{"both statuses", Query{Statuses: []bool{true, false}}, "status", "true,false"},
		{"start", Query{Range: rng}, "start", "1704038400"},
		{"end", Query{Range: rng}, "end", "1704124800"},
		{"sort ascend", Query{Sort: &Sort{Field: FieldCreatedAt, Direction: Ascend}}, "sort", "+created_at"},
		{"sort descend", Query{Sort: &Sort{Field: FieldCreatedAt, Direction: Descend}}, "sort", "-created_at"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := tt.query.Params()
			if got := v.Get(tt.key); got != tt.want {
				t.Errorf("%s = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestQueryParams_EmptyValuesOmitted(t *testing.T) {
	q := Query{
		Sender:   "",
		Content:  "",
		Statuses: []bool{},
		Sort:     &Sort{Field: FieldCreatedAt, Direction: Unsorted},
	}
	v := q.Params()
	for _, k := range []string{"sender", "content", "status", "sort"} {
		if _, ok := v[k]; ok {
			t.Errorf("expected %q omitted for empty value", k)
		}
	}
}

func TestQueryParams_PaginationDefaults(t *testing.T) {
	v := Query{}.Params()
	if v.Get("page_index") != "1" {
		t.Errorf("page_index = %q, want 1", v.Get("page_index"))
	}
	if v.Get("page_size") != "10" {
		t.Errorf("page_size = %q, want 10", v.Get("page_size"))
	}
}

func TestQueryParams_LocalDateRange(t *testing.T) {
	rng, err := ParseRange("2024-01-01 00:00", "2024-01-02 00:00", time.Local)
	if err != nil {
		t.Fatal(err)
	}
	v := Query{Range: rng}.Params()

	wantStart := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local).Unix()
	wantEnd := time.Date(2024, 1, 2, 0, 0, 0, 0, time.Local).Unix()
	if rng.Start.Unix() != wantStart || rng.End.Unix() != wantEnd {
		t.Fatalf("range = %d..%d, want %d..%d", rng.Start.Unix(), rng.End.Unix(), wantStart, wantEnd)
	}
	start, _ := strconv.ParseInt(v.Get("start"), 10, 64)
	end, _ := strconv.ParseInt(v.Get("end"), 10, 64)
	if start != wantStart || end != wantEnd {
		t.Errorf("params start=%d end=%d, want %d..%d", start, end, wantStart, wantEnd)
	}
	if end <= start {
		t.Errorf("expected end > start, got start=%d end=%d", start, end)
	}
}

func TestDirectionNext(t *testing.T) {
	d := Unsorted
	want := []Direction{Ascend, Descend, Unsorted, Ascend}
	for i, w := range want {
		d = d.Next()
		if d != w {
			t.Fatalf("step %d: got %v, want %v", i, d, w)
		}
	}
}

func TestParseStatuses(t *testing.T) {
	got, err := ParseStatuses("true, false")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != true || got[1] != false {
		t.Errorf("ParseStatuses = %v", got)
	}

	if got, err := ParseStatuses(""); err != nil || got != nil {
		t.Errorf("empty input: got %v, %v", got, err)
	}
	if _, err := ParseStatuses("yes"); err == nil {
		t.Error("expected error for invalid status")
	}
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"+created_at", "+created_at", false},
		{"-created_at", "-created_at", false},
		{"received_at", "+received_at", false},
		{"-id", "-id", false},
		{"-message", "", true},
	}
	for _, tt := range tests {
		s, err := ParseSort(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseSort(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseSort(%q): %v", tt.in, err)
			continue
		}
		if s.Param() != tt.want {
			t.Errorf("ParseSort(%q).Param() = %q, want %q", tt.in, s.Param(), tt.want)
		}
	}

	if s, err := ParseSort(""); s != nil || err != nil {
		t.Errorf("ParseSort(\"\") = %v, %v", s, err)
	}
}

func TestParseRange_Errors(t *testing.T) {
	if _, err := ParseRange("2024-01-01 00:00", "", time.UTC); err == nil {
		t.Error("expected error for missing end")
	}
	if _, err := ParseRange("2024-01-02 00:00", "2024-01-01 00:00", time.UTC); err == nil {
		t.Error("expected error for end before start")
	}
	if _, err := ParseRange("yesterday", "2024-01-01 00:00", time.UTC); err == nil {
		t.Error("expected error for bad start")
	}
	if r, err := ParseRange(" ", "", time.UTC); r != nil || err != nil {
		t.Errorf("blank range = %v, %v", r, err)
	}
}
