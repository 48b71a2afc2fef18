package history

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultPageSize is used when a query carries no usable page size.
const DefaultPageSize = 10

// Sortable fields.
const (
	FieldID         = "id"
	FieldCreatedAt  = "created_at"
	FieldReceivedAt = "received_at"
)

// Direction is a sort direction.
type Direction int

const (
	Unsorted Direction = iota
	Ascend
	Descend
)

func (d Direction) String() string {
	switch d {
	case Ascend:
		return "ascend"
	case Descend:
		return "descend"
	default:
		return ""
	}
}

// Next cycles unsorted -> ascend -> descend -> unsorted.
func (d Direction) Next() Direction {
	switch d {
	case Unsorted:
		return Ascend
	case Ascend:
		return Descend
	default:
		return Unsorted
	}
}

// Sort describes the ordering requested from the server.
type Sort struct {
	Field     string
	Direction Direction
}

// Param renders the sort as "+field" or "-field". It returns "" when
// the sort carries no field or no direction.
func (s Sort) Param() string {
	if s.Field == "" {
		return ""
	}
	switch s.Direction {
	case Ascend:
		return "+" + s.Field
	case Descend:
		return "-" + s.Field
	default:
		return ""
	}
}

// TimeRange is an inclusive range on the creation time.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Query is the full list request: pagination plus the optional filter
// and sort dimensions. The zero value of each optional field means
// "not set".
type Query struct {
	PageIndex int
	PageSize  int

	Sender   string
	Content  string
	Statuses []bool
	Range    *TimeRange
	Sort     *Sort
}

// Params builds the flat query parameter mapping. Unset dimensions are
// omitted rather than sent empty.
func (q Query) Params() url.Values {
	v := url.Values{}

	page := q.PageIndex
	if page < 1 {
		page = 1
	}
	size := q.PageSize
	if size < 1 {
		size = DefaultPageSize
	}
	v.Set("page_index", strconv.Itoa(page))
	v.Set("page_size", strconv.Itoa(size))

	if q.Sender != "" {
		v.Set("sender", q.Sender)
	}
	if q.Content != "" {
		v.Set("content", q.Content)
	}
	if len(q.Statuses) > 0 {
		parts := make([]string, len(q.Statuses))
		for i, s := range q.Statuses {
			parts[i] = strconv.FormatBool(s)
		}
		v.Set("status", strings.Join(parts, ","))
	}
	if q.Range != nil {
		v.Set("start", strconv.FormatInt(q.Range.Start.Unix(), 10))
		v.Set("end", strconv.FormatInt(q.Range.End.Unix(), 10))
	}
	if q.Sort != nil {
		if p := q.Sort.Param(); p != "" {
			v.Set("sort", p)
		}
	}
	return v
}

// HasFilters reports whether any filter dimension is set.
func (q Query) HasFilters() bool {
	return q.Sender != "" || q.Content != "" || len(q.Statuses) > 0 || q.Range != nil
}

// ParseStatuses parses a comma-separated list of booleans such as
// "true,false". Empty input yields nil.
func ParseStatuses(s string) ([]bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var out []bool
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		b, err := strconv.ParseBool(part)
		if err != nil {
			return nil, fmt.Errorf("invalid status %q: %w", part, err)
		}
		out = append(out, b)
	}
	return out, nil
}

// ParseSort parses "+field" / "-field". A bare field sorts ascending.
func ParseSort(s string) (*Sort, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	dir := Ascend
	switch s[0] {
	case '+':
		s = s[1:]
	case '-':
		dir = Descend
		s = s[1:]
	}
	switch s {
	case FieldID, FieldCreatedAt, FieldReceivedAt:
		return &Sort{Field: s, Direction: dir}, nil
	default:
		return nil, fmt.Errorf("unsupported sort field %q", s)
	}
}

// DateTimeLayout is the input format of range filters, minute precision.
const DateTimeLayout = "2006-01-02 15:04"

// ParseRange parses a start/end pair in DateTimeLayout in loc. Both
// empty yields nil; one side alone or end before start is an error.
func ParseRange(start, end string, loc *time.Location) (*TimeRange, error) {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	if start == "" && end == "" {
		return nil, nil
	}
	if start == "" || end == "" {
		return nil, fmt.Errorf("time range needs both start and end")
	}
	if loc == nil {
		loc = time.Local
	}
	s, err := time.ParseInLocation(DateTimeLayout, start, loc)
	if err != nil {
		return nil, fmt.Errorf("parsing start: %w", err)
	}
	e, err := time.ParseInLocation(DateTimeLayout, end, loc)
	if err != nil {
		return nil, fmt.Errorf("parsing end: %w", err)
	}
	if e.Before(s) {
		return nil, fmt.Errorf("end %s is before start %s", end, start)
	}
	return &TimeRange{Start: s, End: e}, nil
}
