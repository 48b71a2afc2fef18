package history

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/pretty"
)

// DetailRow is one label/value line of the expanded record view.
type DetailRow struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Expand returns the fixed detail rows of a record: message, request,
// response, error, in that order.
func Expand(d DisplayRecord, l Labels) []DetailRow {
	return []DetailRow{
		{Label: l.DetailMessage, Value: d.Message},
		{Label: l.DetailRequest, Value: d.Req},
		{Label: l.DetailResponse, Value: d.Resp},
		{Label: l.DetailError, Value: d.Err},
	}
}

// FormatValue pretty-prints JSON objects and arrays and returns anything
// else unchanged.
func FormatValue(s string) string {
	if !IsJSONValue(s) {
		return s
	}
	return strings.TrimRight(string(pretty.Pretty([]byte(strings.TrimSpace(s)))), "\n")
}

// IsJSONValue reports whether FormatValue would reformat s.
func IsJSONValue(s string) bool {
	trimmed := strings.TrimSpace(s)
	return trimmed != "" && (trimmed[0] == '{' || trimmed[0] == '[') && json.Valid([]byte(trimmed))
}
