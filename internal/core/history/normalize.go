package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// DefaultTimeLayout formats received/created timestamps.
const DefaultTimeLayout = "2006-01-02 15:04:05"

// ErrMalformedMessage is returned when a record's message field is not
// valid JSON or is JSON null.
var ErrMalformedMessage = errors.New("malformed message")

// Normalizer reshapes raw records for display.
type Normalizer struct {
	Labels   Labels
	Location *time.Location
	Layout   string
}

// NewNormalizer creates a normalizer. A nil location means local time
// and an empty layout means DefaultTimeLayout.
func NewNormalizer(labels Labels, loc *time.Location, layout string) Normalizer {
	if loc == nil {
		loc = time.Local
	}
	if layout == "" {
		layout = DefaultTimeLayout
	}
	return Normalizer{Labels: labels, Location: loc, Layout: layout}
}

// Normalize converts a list response into a page. Any record with a
// malformed message fails the whole page.
func (n Normalizer) Normalize(resp ListResponse) (Page, error) {
	records := make([]DisplayRecord, 0, len(resp.List))
	for _, r := range resp.List {
		d, err := n.NormalizeRecord(r)
		if err != nil {
			return Page{}, err
		}
		records = append(records, d)
	}
	return Page{Records: records, Total: resp.Count}, nil
}

// NormalizeRecord converts one record.
func (n Normalizer) NormalizeRecord(r Record) (DisplayRecord, error) {
	msg, err := DecodeMessage(r.Message)
	if err != nil {
		return DisplayRecord{}, fmt.Errorf("record %d: %w", r.ID, err)
	}
	return DisplayRecord{
		Key:        r.ID,
		ID:         r.ID,
		Sender:     msg.Sender,
		Content:    msg.Content,
		Status:     n.Labels.StatusLabel(r.Status),
		StatusOK:   r.Status,
		ReceivedAt: n.formatTime(r.ReceivedAt),
		CreatedAt:  n.formatTime(r.CreatedAt),
		Message:    r.Message,
		Req:        r.Req,
		Resp:       r.Resp,
		Err:        r.Err,
	}, nil
}

// Renormalize re-derives sender and content from the raw message of an
// already normalized record. The raw message is never rewritten, so
// repeated passes decode it exactly once each.
func (n Normalizer) Renormalize(d DisplayRecord) (DisplayRecord, error) {
	msg, err := DecodeMessage(d.Message)
	if err != nil {
		return DisplayRecord{}, fmt.Errorf("record %d: %w", d.ID, err)
	}
	d.Sender = msg.Sender
	d.Content = msg.Content
	d.Key = d.ID
	return d, nil
}

// DecodeMessage parses the embedded message JSON. Valid JSON that is not
// an object yields an empty message; non-string sender and content
// values are rendered with fmt.Sprint.
func DecodeMessage(raw string) (Message, error) {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return Message{}, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	if v == nil {
		return Message{}, fmt.Errorf("%w: null", ErrMalformedMessage)
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return Message{}, nil
	}
	return Message{
		Sender:  messageField(obj["sender"]),
		Content: messageField(obj["content"]),
	}, nil
}

func messageField(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func (n Normalizer) formatTime(sec int64) string {
	return time.Unix(sec, 0).In(n.Location).Format(n.Layout)
}
