// Mood Post - Image Mood Music Recommendation Bot
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodpost

// Package session stores per-user conversation state and language choice.
//
// A user with no stored entry is in StepAwaitingImage; stores never return
// "not found" for a session, they return that explicit empty state instead.
// Writing a StepAwaitingImage session therefore deletes the entry.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/moodpost/internal/i18n"
	"github.com/tomtom215/moodpost/internal/mood"
)

// Step is the position of a user in the two-step conversation.
type Step string

const (
	StepAwaitingImage   Step = "awaiting_image"
	StepMoodDetected    Step = "mood_detected"
	StepAwaitingArtists Step = "awaiting_artists"
)

var (
	// ErrInvalidSession is returned by Set for a session that breaks an invariant.
	ErrInvalidSession = errors.New("invalid session")
	// ErrInvalidLocale is returned by SetLocale for a locale outside the supported set.
	ErrInvalidLocale = errors.New("invalid locale")
)

// Session is the conversation state of one user.
type Session struct {
	UserID    string       `json:"user_id"`
	Step      Step         `json:"step"`
	Mood      *mood.Result `json:"mood,omitempty"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// Empty returns the state of a user who has not sent an image yet.
func Empty(userID string) Session {
	return Session{UserID: userID, Step: StepAwaitingImage}
}

// HasMood reports whether a mood has been detected for the session.
func (s Session) HasMood() bool {
	return s.Mood != nil
}

// Validate checks the session invariants.
func (s Session) Validate() error {
	if s.UserID == "" {
		return fmt.Errorf("%w: empty user id", ErrInvalidSession)
	}
	switch s.Step {
	case StepAwaitingImage:
	case StepMoodDetected, StepAwaitingArtists:
		if s.Mood == nil {
			return fmt.Errorf("%w: step %s without a mood", ErrInvalidSession, s.Step)
		}
	default:
		return fmt.Errorf("%w: unknown step %q", ErrInvalidSession, s.Step)
	}
	return nil
}

// Store holds sessions keyed by user id. Implementations are safe for
// concurrent use; each call is atomic on its own.
type Store interface {
	// Get returns the user's session, or Empty(userID) if there is none.
	Get(ctx context.Context, userID string) (Session, error)
	// Set validates and stores s. A StepAwaitingImage session deletes the entry.
	Set(ctx context.Context, s Session) error
	// Delete removes the user's session. Deleting a missing entry is not an error.
	Delete(ctx context.Context, userID string) error
}

// LocaleStore holds the language preference of each user.
type LocaleStore interface {
	// Locale returns the user's locale, English if none was chosen.
	Locale(ctx context.Context, userID string) (i18n.Locale, error)
	SetLocale(ctx context.Context, userID string, l i18n.Locale) error
}

// Sweeper is implemented by stores that need a periodic purge of idle entries.
type Sweeper interface {
	CleanupExpired(ctx context.Context) (int, error)
}

func copySession(s Session) Session {
	if s.Mood == nil {
		return s
	}
	m := *s.Mood
	if s.Mood.Scores != nil {
		m.Scores = make(mood.Scores, len(s.Mood.Scores))
		for k, v := range s.Mood.Scores {
			m.Scores[k] = v
		}
	}
	s.Mood = &m
	return s
}
