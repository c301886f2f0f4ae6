// Mood Post - Image Mood Music Recommendation Bot
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodpost

package line

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/tomtom215/moodpost/internal/bot"
	"github.com/tomtom215/moodpost/internal/validation"
)

// Payload is one webhook delivery. A delivery may carry zero events when
// LINE verifies the endpoint.
type Payload struct {
	Destination string  `json:"destination"`
	Events      []Event `json:"events" validate:"dive"`
}

// Source identifies who triggered an event.
type Source struct {
	Type    string `json:"type" validate:"required,oneof=user group room"`
	UserID  string `json:"userId,omitempty" validate:"omitempty,line_user_id"`
	GroupID string `json:"groupId,omitempty" validate:"omitempty,line_id"`
	RoomID  string `json:"roomId,omitempty" validate:"omitempty,line_id"`
}

// EventMessage is the message object of a message event.
type EventMessage struct {
	ID   string `json:"id" validate:"required"`
	Type string `json:"type" validate:"required"`
	Text string `json:"text,omitempty"`
}

// Postback is the postback object of a postback event.
type Postback struct {
	Data string `json:"data"`
}

// DeliveryContext tells whether the event is a redelivery.
type DeliveryContext struct {
	IsRedelivery bool `json:"isRedelivery"`
}

// Event is a webhook event. Only the fields the bot reads are decoded.
type Event struct {
	Type            string          `json:"type" validate:"required"`
	Mode            string          `json:"mode,omitempty" validate:"omitempty,oneof=active standby"`
	Timestamp       int64           `json:"timestamp"`
	Source          *Source         `json:"source,omitempty" validate:"omitempty"`
	WebhookEventID  string          `json:"webhookEventId,omitempty"`
	DeliveryContext DeliveryContext `json:"deliveryContext"`
	ReplyToken      string          `json:"replyToken,omitempty"`
	Message         *EventMessage   `json:"message,omitempty" validate:"omitempty"`
	Postback        *Postback       `json:"postback,omitempty"`
}

// Event and message types the bot distinguishes.
const (
	EventTypeMessage  = "message"
	EventTypeFollow   = "follow"
	EventTypePostback = "postback"

	MessageTypeImage = "image"
	MessageTypeText  = "text"

	ModeStandby = "standby"
)

// ParseWebhook verifies the signature, decodes body and validates it.
func ParseWebhook(channelSecret string, body []byte, signature string) (Payload, error) {
	if err := VerifySignature(channelSecret, body, signature); err != nil {
		return Payload{}, err
	}

	var p Payload
	if err := json.Unmarshal(body, &p); err != nil {
		return Payload{}, fmt.Errorf("decode webhook: %w", err)
	}
	if verr := validation.ValidateStruct(&p); verr != nil {
		return Payload{}, fmt.Errorf("invalid webhook: %w", verr)
	}
	return p, nil
}

// UserID returns the id of the user who triggered the event, or "".
func (e Event) UserID() string {
	if e.Source == nil {
		return ""
	}
	return e.Source.UserID
}

// BotEvent converts e to the transport-neutral event the bot handles.
// Events received while the channel is in standby mode are not ours to
// answer and come back as KindUnknown.
func (e Event) BotEvent() bot.Event {
	ev := bot.Event{
		Kind:       bot.KindUnknown,
		UserID:     e.UserID(),
		ReplyToken: e.ReplyToken,
	}
	if e.Mode == ModeStandby {
		return ev
	}

	switch e.Type {
	case EventTypeFollow:
		ev.Kind = bot.KindFollow
	case EventTypePostback:
		if e.Postback != nil {
			ev.Kind = bot.KindPostback
			ev.PostbackData = e.Postback.Data
		}
	case EventTypeMessage:
		if e.Message == nil {
			break
		}
		switch e.Message.Type {
		case MessageTypeImage:
			ev.Kind = bot.KindImage
			ev.MessageID = e.Message.ID
		case MessageTypeText:
			ev.Kind = bot.KindText
			ev.Text = e.Message.Text
		default:
			ev.Kind = bot.KindUnsupported
		}
	}
	return ev
}
