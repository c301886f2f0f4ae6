// Mood Post - Image Mood Music Recommendation Bot
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodpost

package httpclient

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
)

func response(code int, body string) *http.Response {
	return &http.Response{StatusCode: code, Body: io.NopCloser(strings.NewReader(body))}
}

func TestCheckStatus(t *testing.T) {
	if err := CheckStatus("line", response(http.StatusNoContent, "")); err != nil {
		t.Errorf("204: %v", err)
	}

	err := CheckStatus("line", response(http.StatusBadRequest, ` {"message":"Invalid reply token"} `))
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("error = %v, want *StatusError", err)
	}
	if se.HTTPStatus() != http.StatusBadRequest || se.Body != `{"message":"Invalid reply token"}` {
		t.Errorf("got %+v", se)
	}
	want := `line: unexpected status: 400 Bad Request: {"message":"Invalid reply token"}`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestCheckStatusTruncatesBody(t *testing.T) {
	err := CheckStatus("vision", response(http.StatusInternalServerError, strings.Repeat("x", 5000)))
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("error = %v, want *StatusError", err)
	}
	if len(se.Body) != maxErrorBody {
		t.Errorf("body length = %d, want %d", len(se.Body), maxErrorBody)
	}
}

func TestClientErrorsSucceed(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, true},
		{"not found", &StatusError{StatusCode: 404}, true},
		{"wrapped bad request", fmt.Errorf("search: %w", &StatusError{StatusCode: 400}), true},
		{"rate limited", &StatusError{StatusCode: 429}, false},
		{"server error", &StatusError{StatusCode: 503}, false},
		{"transport", errors.New("connection refused"), false},
	}
	for _, tt := range tests {
		if got := ClientErrorsSucceed(tt.err); got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestNewDefaultsTimeout(t *testing.T) {
	if c := New(0); c.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v", c.Timeout)
	}
}
