package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sadopc/msghist/internal/core/history"
	httpclient "github.com/sadopc/msghist/internal/protocol/http"
)

type fakeLister struct {
	resp history.ListResponse
	err  error
	got  history.Query
}

func (f *fakeLister) ListHistories(_ context.Context, q history.Query) (*httpclient.ListResult, error) {
	f.got = q
	if f.err != nil {
		return nil, f.err
	}
	return &httpclient.ListResult{
		Response:  f.resp,
		RequestID: "req-1",
		URL:       "http://127.0.0.1:8888/v1/histories?page_index=2&page_size=2",
		Duration:  42 * time.Millisecond,
		Size:      2048,
	}, nil
}

func sampleResponse() history.ListResponse {
	return history.ListResponse{
		Count: 5,
		List: []history.Record{
			{ID: 3, Message: `{"sender":"alice","content":"hello"}`, Status: true, ReceivedAt: 0, CreatedAt: 60,
				Req: `{"url":"https://notify.example.com"}`, Resp: `{"errcode":0}`},
			{ID: 4, Message: `{"sender":"bob","content":"disk full"}`, Status: false, Err: "timeout"},
		},
	}
}

func runSample(t *testing.T) *Result {
	t.Helper()
	l := &fakeLister{resp: sampleResponse()}
	n := history.NewNormalizer(history.LabelsFor("en"), time.UTC, "")
	res, err := Run(context.Background(), l, n, history.Query{PageIndex: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if l.got.PageIndex != 2 {
		t.Fatalf("query not forwarded: %+v", l.got)
	}
	return res
}

func TestRun(t *testing.T) {
	res := runSample(t)
	if res.Page.Total != 5 || len(res.Page.Records) != 2 {
		t.Fatalf("page = %+v", res.Page)
	}
	if res.Pages() != 3 {
		t.Errorf("Pages() = %d, want 3", res.Pages())
	}
	if res.RequestID != "req-1" || res.Size != 2048 {
		t.Errorf("transfer details not copied: %+v", res)
	}
}

func TestRunErrors(t *testing.T) {
	n := history.NewNormalizer(history.LabelsFor("en"), time.UTC, "")

	boom := errors.New("boom")
	if _, err := Run(context.Background(), &fakeLister{err: boom}, n, history.Query{}); !errors.Is(err, boom) {
		t.Fatalf("expected transport error, got %v", err)
	}

	bad := history.ListResponse{List: []history.Record{{ID: 9, Message: "not json"}}, Count: 1}
	if _, err := Run(context.Background(), &fakeLister{resp: bad}, n, history.Query{}); !errors.Is(err, history.ErrMalformedMessage) {
		t.Fatalf("expected ErrMalformedMessage, got %v", err)
	}
}

func TestPagesEmpty(t *testing.T) {
	r := &Result{}
	if r.Pages() != 1 {
		t.Fatalf("Pages() = %d, want 1", r.Pages())
	}
}

func TestPrintText(t *testing.T) {
	res := runSample(t)

	var buf bytes.Buffer
	PrintText(&buf, res, history.LabelsFor("en"), false)
	out := buf.String()

	for _, want := range []string{"Sender", "alice", "bob", "Success", "Failed", "1970-01-01 00:01:00", "Page 2/3", "5 records", "42ms", "2.0 KiB"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Response:") {
		t.Errorf("detail rows printed without detail flag:\n%s", out)
	}
}

func TestPrintTextDetail(t *testing.T) {
	res := runSample(t)

	var buf bytes.Buffer
	PrintText(&buf, res, history.LabelsFor("zh"), true)
	out := buf.String()

	for _, want := range []string{"消息:", "发送请求:", "请求响应:", "错误详情: timeout", `"errcode": 0`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintTextTruncatesWideCells(t *testing.T) {
	res := &Result{Page: history.Page{Total: 1, Records: []history.DisplayRecord{
		{ID: 1, Sender: "s", Content: strings.Repeat("长", 40)},
	}}}

	var buf bytes.Buffer
	PrintText(&buf, res, history.LabelsFor("zh"), false)
	if !strings.Contains(buf.String(), "...") {
		t.Fatalf("expected truncated content:\n%s", buf.String())
	}
}

func TestPrintJSON(t *testing.T) {
	res := runSample(t)

	var buf bytes.Buffer
	if err := PrintJSON(&buf, res, history.LabelsFor("en"), true); err != nil {
		t.Fatalf("PrintJSON: %v", err)
	}

	var out struct {
		Page  int `json:"page_index"`
		Pages int `json:"pages"`
		Count int `json:"count"`
		List  []struct {
			ID     int64  `json:"id"`
			Sender string `json:"sender"`
			Status string `json:"status"`
			Detail []struct {
				Label string `json:"label"`
				Value string `json:"value"`
			} `json:"detail"`
		} `json:"list"`
	}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if out.Page != 2 || out.Pages != 3 || out.Count != 5 || len(out.List) != 2 {
		t.Fatalf("unexpected output %+v", out)
	}
	if out.List[1].Sender != "bob" || out.List[1].Status != "Failed" {
		t.Errorf("record = %+v", out.List[1])
	}
	if len(out.List[0].Detail) != 4 || out.List[0].Detail[3].Label != "Error" {
		t.Errorf("detail = %+v", out.List[0].Detail)
	}
}
