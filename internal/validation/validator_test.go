// Mood Post - Image Mood Music Recommendation Bot
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodpost

package validation

import (
	"strings"
	"sync"
	"testing"
)

type source struct {
	Type   string `validate:"required,oneof=user group room"`
	UserID string `validate:"omitempty,line_user_id"`
	RoomID string `validate:"omitempty,line_id"`
}

type event struct {
	Type   string `validate:"required"`
	Source source
	Text   string `validate:"max=10"`
}

const validUser = "U4af4980629f0a1b2c3d4e5f6a7b8c9d0"

func TestValidateStructValid(t *testing.T) {
	ev := event{Type: "message", Source: source{Type: "user", UserID: validUser}}
	if err := ValidateStruct(&ev); err != nil {
		t.Fatalf("ValidateStruct() = %v", err)
	}
}

func TestValidateStructErrors(t *testing.T) {
	tests := []struct {
		name string
		ev   event
		tag  string
		msg  string
	}{
		{"missing type", event{Source: source{Type: "user"}}, "required", "event.Type is required"},
		{"bad source type", event{Type: "message", Source: source{Type: "space"}}, "oneof", "must be one of: user group room"},
		{"bad user id", event{Type: "message", Source: source{Type: "user", UserID: "C4af4980629f0a1b2c3d4e5f6a7b8c9d0"}}, "line_user_id", "must be a LINE user id"},
		{"short room id", event{Type: "message", Source: source{Type: "room", RoomID: "R123"}}, "line_id", "must be a LINE user, group or room id"},
		{"long text", event{Type: "message", Source: source{Type: "user"}, Text: "far too long text"}, "max", "at most 10 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.ev)
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if len(err.Errors()) != 1 {
				t.Fatalf("errors = %v, want exactly one", err.Errors())
			}
			if got := err.Errors()[0]; got.Tag != tt.tag || !strings.Contains(got.Message, tt.msg) {
				t.Errorf("got tag %q message %q, want %q containing %q", got.Tag, got.Message, tt.tag, tt.msg)
			}
		})
	}
}

func TestRequestValidationErrorJoinsMessages(t *testing.T) {
	err := ValidateStruct(&event{})
	if err == nil || len(err.Errors()) != 2 {
		t.Fatalf("want two errors, got %v", err)
	}
	if !strings.Contains(err.Error(), "; ") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestGetValidatorConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if GetValidator() == nil {
				t.Error("GetValidator() returned nil")
			}
		}()
	}
	wg.Wait()
}
