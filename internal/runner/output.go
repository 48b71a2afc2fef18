package runner

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
	"github.com/tidwall/pretty"

	"github.com/sadopc/msghist/internal/core/history"
)

var columnWidths = []int{6, 16, 36, 8, 19, 19}

// PrintText outputs the page as an aligned table. With detail set, the
// four detail rows follow each record.
func PrintText(w io.Writer, r *Result, labels history.Labels, detail bool) {
	printRow(w, []string{
		labels.ColumnID, labels.ColumnSender, labels.ColumnContent,
		labels.ColumnStatus, labels.ColumnReceivedAt, labels.ColumnCreatedAt,
	})

	for _, rec := range r.Page.Records {
		printRow(w, []string{
			fmt.Sprintf("%d", rec.ID), rec.Sender, rec.Content,
			rec.Status, rec.ReceivedAt, rec.CreatedAt,
		})
		if !detail {
			continue
		}
		for _, row := range history.Expand(rec, labels) {
			value := history.FormatValue(row.Value)
			if value == "" {
				value = "-"
			}
			lines := strings.Split(value, "\n")
			fmt.Fprintf(w, "  %s: %s\n", row.Label, lines[0])
			for _, line := range lines[1:] {
				fmt.Fprintf(w, "    %s\n", line)
			}
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Page %d/%d  %s records  %s  %s\n",
		pageIndex(r.Query), r.Pages(), humanize.Comma(int64(r.Page.Total)),
		formatDuration(r.Duration), humanize.IBytes(uint64(r.Size)))
}

type jsonRecord struct {
	history.DisplayRecord
	Detail []history.DetailRow `json:"detail,omitempty"`
}

type jsonOutput struct {
	Page     int          `json:"page_index"`
	PageSize int          `json:"page_size"`
	Pages    int          `json:"pages"`
	Total    int          `json:"count"`
	List     []jsonRecord `json:"list"`
	URL      string       `json:"url"`
	Elapsed  string       `json:"elapsed"`
}

// PrintJSON outputs the page as indented JSON.
func PrintJSON(w io.Writer, r *Result, labels history.Labels, detail bool) error {
	out := jsonOutput{
		Page:     pageIndex(r.Query),
		PageSize: pageSize(r.Query),
		Pages:    r.Pages(),
		Total:    r.Page.Total,
		List:     make([]jsonRecord, 0, len(r.Page.Records)),
		URL:      r.URL,
		Elapsed:  formatDuration(r.Duration),
	}
	for _, rec := range r.Page.Records {
		jr := jsonRecord{DisplayRecord: rec}
		if detail {
			jr.Detail = history.Expand(rec, labels)
		}
		out.List = append(out.List, jr)
	}

	data, err := json.Marshal(out)
	if err != nil {
		return err
	}
	_, err = w.Write(pretty.PrettyOptions(data, &pretty.Options{Width: 80, Indent: "  "}))
	return err
}

func printRow(w io.Writer, cols []string) {
	var b strings.Builder
	for i, c := range cols {
		c = runewidth.Truncate(strings.ReplaceAll(c, "\n", " "), columnWidths[i], "...")
		if i < len(cols)-1 {
			c = runewidth.FillRight(c, columnWidths[i]) + "  "
		}
		b.WriteString(c)
	}
	fmt.Fprintln(w, strings.TrimRight(b.String(), " "))
}

func pageIndex(q history.Query) int {
	if q.PageIndex < 1 {
		return 1
	}
	return q.PageIndex
}

func pageSize(q history.Query) int {
	if q.PageSize < 1 {
		return history.DefaultPageSize
	}
	return q.PageSize
}

func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}
