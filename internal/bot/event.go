// Mood Post - Image Mood Music Recommendation Bot
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodpost

package bot

// EventKind classifies an inbound chat event.
type EventKind string

const (
	KindFollow      EventKind = "follow"
	KindImage       EventKind = "image"
	KindText        EventKind = "text"
	KindPostback    EventKind = "postback"
	KindUnsupported EventKind = "unsupported" // sticker, video, audio, location, file
	KindUnknown     EventKind = "unknown"
)

// Event is a chat event, already stripped of transport detail.
type Event struct {
	Kind         EventKind
	UserID       string
	ReplyToken   string
	MessageID    string // image events
	Text         string // text events
	PostbackData string // postback events
}

// QuickReply is a button shown under a message that sends a postback.
type QuickReply struct {
	Label       string
	Data        string
	DisplayText string
}

// Message is one outbound text message.
type Message struct {
	Text         string
	QuickReplies []QuickReply
}

// Postback payloads.
const (
	PostbackArtistMode   = "action=artist_mode"
	PostbackSurpriseMode = "action=surprise_mode"
)
