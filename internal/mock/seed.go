package mock

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/sadopc/msghist/internal/core/history"
)

var (
	seedSenders  = []string{"alertmanager", "grafana", "gitlab", "jenkins", "cron", "billing"}
	seedContents = []string{
		"disk usage above 90%",
		"deployment finished",
		"pipeline failed on main",
		"daily report ready",
		"certificate expires in 7 days",
		"invoice paid",
	}
	seedChannels = []string{"wechat", "dingtalk", "feishu", "email"}
)

// Seed inserts n synthetic records spread over the 30 days before now.
func Seed(ctx context.Context, store *history.Store, n int, now time.Time) error {
	for i := 0; i < n; i++ {
		if _, err := store.Add(ctx, syntheticRecord(now)); err != nil {
			return fmt.Errorf("seeding record %d: %w", i+1, err)
		}
	}
	return nil
}

func syntheticRecord(now time.Time) history.Record {
	sender := seedSenders[rand.IntN(len(seedSenders))]
	channel := seedChannels[rand.IntN(len(seedChannels))]
	traceID := uuid.NewString()

	msg, _ := json.Marshal(map[string]string{
		"sender":   sender,
		"content":  seedContents[rand.IntN(len(seedContents))],
		"channel":  channel,
		"trace_id": traceID,
	})
	req, _ := json.Marshal(map[string]any{
		"url":    "https://notify.example.com/" + channel + "/send",
		"method": "POST",
		"body":   json.RawMessage(msg),
	})

	received := now.Add(-time.Duration(rand.Int64N(int64(30 * 24 * time.Hour))))
	ok := rand.Float64() < 0.8

	r := history.Record{
		Message:    string(msg),
		Status:     ok,
		ReceivedAt: received.Unix(),
		CreatedAt:  received.Add(time.Duration(rand.IntN(5000)) * time.Millisecond).Unix(),
		Req:        string(req),
	}
	if ok {
		r.Resp = fmt.Sprintf(`{"errcode":0,"errmsg":"ok","msgid":%q}`, traceID)
	} else {
		r.Resp = `{"errcode":45009,"errmsg":"api freq out of limit"}`
		r.Err = "upstream rejected message: api freq out of limit"
	}
	return r
}
