// Mood Post - Image Mood Music Recommendation Bot
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodpost

package line

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/goccy/go-json"

	"github.com/tomtom215/moodpost/internal/bot"
	"github.com/tomtom215/moodpost/internal/httpclient"
)

type captured struct {
	method string
	path   string
	auth   string
	body   []byte
}

func newTestClient(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*Client, *captured) {
	t.Helper()
	got := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.method = r.Method
		got.path = r.URL.Path
		got.auth = r.Header.Get("Authorization")
		got.body, _ = io.ReadAll(r.Body)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{AccessToken: "token-123", APIURL: srv.URL, DataAPIURL: srv.URL + "/data"})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return c, got
}

func ok(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{}`))
}

func TestReply(t *testing.T) {
	c, got := newTestClient(t, ok)
	msg := bot.Message{
		Text: "Detected mood: HAPPY 😊",
		QuickReplies: []bot.QuickReply{
			{Label: "🎤 My artists", Data: bot.PostbackArtistMode, DisplayText: "My artists"},
			{Label: "✨ Surprise me", Data: bot.PostbackSurpriseMode},
		},
	}
	if err := c.Reply(context.Background(), "reply-token", msg); err != nil {
		t.Fatalf("Reply() error = %v", err)
	}

	if got.method != http.MethodPost || got.path != "/v2/bot/message/reply" {
		t.Errorf("request = %s %s", got.method, got.path)
	}
	if got.auth != "Bearer token-123" {
		t.Errorf("Authorization = %q", got.auth)
	}

	var req replyRequest
	if err := json.Unmarshal(got.body, &req); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if req.ReplyToken != "reply-token" || len(req.Messages) != 1 {
		t.Fatalf("body = %s", got.body)
	}
	m := req.Messages[0]
	if m.Type != "text" || m.Text != msg.Text || m.QuickReply == nil || len(m.QuickReply.Items) != 2 {
		t.Fatalf("message = %+v", m)
	}
	first := m.QuickReply.Items[0]
	if first.Type != "action" || first.Action.Type != "postback" || first.Action.Data != bot.PostbackArtistMode || first.Action.DisplayText != "My artists" {
		t.Errorf("quick reply = %+v", first)
	}
	if strings.Contains(string(got.body), `"displayText":""`) {
		t.Error("empty displayText should be omitted")
	}
}

func TestPush(t *testing.T) {
	c, got := newTestClient(t, ok)
	if err := c.Push(context.Background(), testUser, bot.Message{Text: "hello"}); err != nil {
		t.Fatalf("Push() error = %v", err)
	}
	if got.path != "/v2/bot/message/push" {
		t.Errorf("path = %s", got.path)
	}
	want := `{"to":"` + testUser + `","messages":[{"type":"text","text":"hello"}]}`
	if string(got.body) != want {
		t.Errorf("body = %s, want %s", got.body, want)
	}
}

func TestContent(t *testing.T) {
	image := []byte{0xff, 0xd8, 0xff, 0xe0}
	c, got := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write(image)
	})
	data, err := c.Content(context.Background(), "444573844083572737")
	if err != nil {
		t.Fatalf("Content() error = %v", err)
	}
	if string(data) != string(image) {
		t.Errorf("content = %x", data)
	}
	if got.method != http.MethodGet || got.path != "/data/v2/bot/message/444573844083572737/content" {
		t.Errorf("request = %s %s", got.method, got.path)
	}
}

func TestStatusErrors(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"Invalid reply token"}`, http.StatusBadRequest)
	})
	err := c.Reply(context.Background(), "expired", bot.Message{Text: "x"})
	var se *httpclient.StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusBadRequest {
		t.Fatalf("error = %v, want 400 StatusError", err)
	}
	if !strings.Contains(se.Body, "Invalid reply token") {
		t.Errorf("body = %q", se.Body)
	}

	// Client errors never open the breaker.
	for i := 0; i < 10; i++ {
		_ = c.Reply(context.Background(), "expired", bot.Message{Text: "x"})
	}
	if c.messaging.State() != "closed" {
		t.Errorf("breaker state = %s, want closed", c.messaging.State())
	}
}

func TestInputValidation(t *testing.T) {
	c, got := newTestClient(t, ok)
	ctx := context.Background()
	if err := c.Reply(ctx, "", bot.Message{Text: "x"}); err == nil {
		t.Error("empty reply token accepted")
	}
	if err := c.Push(ctx, "", bot.Message{Text: "x"}); err == nil {
		t.Error("empty push target accepted")
	}
	if _, err := c.Content(ctx, ""); err == nil {
		t.Error("empty message id accepted")
	}
	if got.method != "" {
		t.Error("no request should have been sent")
	}
	if _, err := NewClient(Config{}); err == nil {
		t.Error("NewClient without token should fail")
	}
}

func TestToTextMessageLimits(t *testing.T) {
	long := strings.Repeat("音", MaxTextLength+10)
	qrs := make([]bot.QuickReply, 20)
	for i := range qrs {
		qrs[i] = bot.QuickReply{Label: "a label that is far too long", Data: "d"}
	}
	m := toTextMessage(bot.Message{Text: long, QuickReplies: qrs})
	if n := utf8.RuneCountInString(m.Text); n != MaxTextLength {
		t.Errorf("text runes = %d, want %d", n, MaxTextLength)
	}
	if len(m.QuickReply.Items) != maxQuickReplyItems {
		t.Errorf("items = %d, want %d", len(m.QuickReply.Items), maxQuickReplyItems)
	}
	if l := utf8.RuneCountInString(m.QuickReply.Items[0].Action.Label); l != maxLabelLength {
		t.Errorf("label runes = %d", l)
	}
}
