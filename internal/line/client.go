// Mood Post - Image Mood Music Recommendation Bot
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodpost

package line

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/goccy/go-json"

	"github.com/tomtom215/moodpost/internal/bot"
	"github.com/tomtom215/moodpost/internal/breaker"
	"github.com/tomtom215/moodpost/internal/httpclient"
	"github.com/tomtom215/moodpost/internal/metrics"
)

// Messaging API endpoints and limits.
const (
	DefaultAPIURL     = "https://api.line.me"
	DefaultDataAPIURL = "https://api-data.line.me"

	MaxTextLength      = 5000
	maxQuickReplyItems = 13
	maxLabelLength     = 20

	// MaxContentSize caps image downloads.
	MaxContentSize = 10 << 20
)

// ErrContentTooLarge is returned when message content exceeds MaxContentSize.
var ErrContentTooLarge = errors.New("line: content too large")

// Config configures a Client.
type Config struct {
	AccessToken string
	APIURL      string
	DataAPIURL  string
	Timeout     time.Duration
	HTTPClient  *http.Client
}

// Client talks to the LINE Messaging API. It implements bot.Channel and
// bot.ContentFetcher.
type Client struct {
	token      string
	apiURL     string
	dataURL    string
	httpClient *http.Client

	messaging *breaker.Breaker
	content   *breaker.Breaker
}

// NewClient creates a Client. The access token is required.
func NewClient(cfg Config) (*Client, error) {
	if cfg.AccessToken == "" {
		return nil, errors.New("line: channel access token is required")
	}
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if cfg.DataAPIURL == "" {
		cfg.DataAPIURL = DefaultDataAPIURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = httpclient.New(cfg.Timeout)
	}

	settings := breaker.Settings{IsSuccessful: httpclient.ClientErrorsSucceed}
	return &Client{
		token:      cfg.AccessToken,
		apiURL:     strings.TrimRight(cfg.APIURL, "/"),
		dataURL:    strings.TrimRight(cfg.DataAPIURL, "/"),
		httpClient: cfg.HTTPClient,
		messaging:  breaker.New(bot.CollaboratorLine, settings),
		content:    breaker.New(bot.CollaboratorLineContent, settings),
	}, nil
}

type postbackAction struct {
	Type        string `json:"type"`
	Label       string `json:"label"`
	Data        string `json:"data"`
	DisplayText string `json:"displayText,omitempty"`
}

type quickReplyItem struct {
	Type   string         `json:"type"`
	Action postbackAction `json:"action"`
}

type quickReply struct {
	Items []quickReplyItem `json:"items"`
}

type textMessage struct {
	Type       string      `json:"type"`
	Text       string      `json:"text"`
	QuickReply *quickReply `json:"quickReply,omitempty"`
}

type replyRequest struct {
	ReplyToken string        `json:"replyToken"`
	Messages   []textMessage `json:"messages"`
}

type pushRequest struct {
	To       string        `json:"to"`
	Messages []textMessage `json:"messages"`
}

// Reply answers an event with its one-time reply token.
func (c *Client) Reply(ctx context.Context, replyToken string, msg bot.Message) error {
	if replyToken == "" {
		return errors.New("line: empty reply token")
	}
	return c.send(ctx, "/v2/bot/message/reply", replyRequest{
		ReplyToken: replyToken,
		Messages:   []textMessage{toTextMessage(msg)},
	})
}

// Push sends a message to a user outside the reply window.
func (c *Client) Push(ctx context.Context, userID string, msg bot.Message) error {
	if userID == "" {
		return errors.New("line: empty push target")
	}
	return c.send(ctx, "/v2/bot/message/push", pushRequest{
		To:       userID,
		Messages: []textMessage{toTextMessage(msg)},
	})
}

// Content downloads the binary content of a message.
func (c *Client) Content(ctx context.Context, messageID string) ([]byte, error) {
	if messageID == "" {
		return nil, errors.New("line: empty message id")
	}
	return breaker.Do(c.content, func() ([]byte, error) {
		return c.doRequest(ctx, bot.CollaboratorLineContent, requestConfig{
			method:  http.MethodGet,
			baseURL: c.dataURL,
			path:    "/v2/bot/message/" + url.PathEscape(messageID) + "/content",
			limit:   MaxContentSize,
		})
	})
}

func (c *Client) send(ctx context.Context, path string, payload any) error {
	return breaker.Run(c.messaging, func() error {
		_, err := c.doRequest(ctx, bot.CollaboratorLine, requestConfig{
			method:  http.MethodPost,
			baseURL: c.apiURL,
			path:    path,
			body:    payload,
		})
		return err
	})
}

// requestConfig describes one Messaging API call.
type requestConfig struct {
	method  string
	baseURL string
	path    string
	body    any   // JSON-encoded when set
	limit   int64 // response body limit; 0 discards the body
}

// doRequest executes a request and returns the response body when
// cfg.limit is set.
func (c *Client) doRequest(ctx context.Context, collaborator string, cfg requestConfig) (_ []byte, err error) {
	start := time.Now()
	defer func() { metrics.RecordCollaboratorRequest(collaborator, time.Since(start), err) }()

	var body io.Reader = http.NoBody
	if cfg.body != nil {
		data, err := json.Marshal(cfg.body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, cfg.method, cfg.baseURL+cfg.path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if cfg.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", cfg.method, cfg.path, err)
	}
	defer resp.Body.Close()

	if err := httpclient.CheckStatus(collaborator, resp); err != nil {
		return nil, err
	}
	if cfg.limit <= 0 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, nil
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, cfg.limit+1))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if int64(len(data)) > cfg.limit {
		return nil, ErrContentTooLarge
	}
	return data, nil
}

func toTextMessage(msg bot.Message) textMessage {
	out := textMessage{Type: "text", Text: truncate(msg.Text, MaxTextLength)}
	if len(msg.QuickReplies) == 0 {
		return out
	}

	items := make([]quickReplyItem, 0, min(len(msg.QuickReplies), maxQuickReplyItems))
	for _, qr := range msg.QuickReplies {
		if len(items) == maxQuickReplyItems {
			break
		}
		items = append(items, quickReplyItem{
			Type: "action",
			Action: postbackAction{
				Type:        "postback",
				Label:       truncate(qr.Label, maxLabelLength),
				Data:        qr.Data,
				DisplayText: qr.DisplayText,
			},
		})
	}
	out.QuickReply = &quickReply{Items: items}
	return out
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
