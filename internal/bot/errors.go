// Mood Post - Image Mood Music Recommendation Bot
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodpost

package bot

import (
	"errors"
	"fmt"

	"github.com/tomtom215/moodpost/internal/recommend"
)

var (
	// ErrCollaboratorUnavailable matches every *CollaboratorError.
	ErrCollaboratorUnavailable = errors.New("collaborator unavailable")

	// ErrNoSession marks an action that needs a detected mood when there is none.
	ErrNoSession = errors.New("no active session")

	// ErrInvalidUserInput marks unusable user text, such as an empty artist list.
	ErrInvalidUserInput = recommend.ErrInvalidUserInput
)

// Collaborator names used in errors, logs and metrics.
const (
	CollaboratorLine        = "line"
	CollaboratorLineContent = "line-content"
	CollaboratorVision      = "vision"
	CollaboratorSpotify     = "spotify"
)

// CollaboratorError records which external service failed.
type CollaboratorError struct {
	Collaborator string
	Err          error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s: %v", e.Collaborator, e.Err)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrCollaboratorUnavailable) true for any collaborator failure.
func (e *CollaboratorError) Is(target error) bool {
	return target == ErrCollaboratorUnavailable
}

func collaboratorErr(name string, err error) error {
	if err == nil {
		return nil
	}
	return &CollaboratorError{Collaborator: name, Err: err}
}
