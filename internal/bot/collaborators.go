// Mood Post - Image Mood Music Recommendation Bot
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodpost

package bot

import (
	"context"

	"github.com/tomtom215/moodpost/internal/mood"
	"github.com/tomtom215/moodpost/internal/recommend"
)

// Vision analyzes image bytes.
type Vision interface {
	Analyze(ctx context.Context, image []byte) (mood.VisionResult, error)
}

// Channel delivers messages to users. A reply token can be used once; any
// further message for the same event must be pushed.
type Channel interface {
	Reply(ctx context.Context, replyToken string, msg Message) error
	Push(ctx context.Context, userID string, msg Message) error
}

// ContentFetcher downloads the binary content of a message.
type ContentFetcher interface {
	Content(ctx context.Context, messageID string) ([]byte, error)
}

// Planner produces recommendations. *recommend.Planner implements it.
type Planner interface {
	ArtistPlan(ctx context.Context, artists []string) ([]recommend.Item, error)
	SurprisePlan(ctx context.Context, m mood.Type) ([]recommend.Item, error)
}
