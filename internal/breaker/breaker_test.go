// Mood Post - Image Mood Music Recommendation Bot
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodpost

package breaker

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/moodpost/internal/metrics"
)

var errBoom = errors.New("boom")

func TestDoReturnsTypedResult(t *testing.T) {
	b := New("test-typed", Settings{})
	got, err := Do(b, func() ([]string, error) { return []string{"a", "b"}, nil })
	if err != nil || len(got) != 2 {
		t.Fatalf("Do() = %v, %v", got, err)
	}

	var nilBody []byte
	body, err := Do(b, func() ([]byte, error) { return nilBody, nil })
	if err != nil || body != nil {
		t.Errorf("Do(nil slice) = %v, %v", body, err)
	}
}

func TestBreakerOpensAndFailsFast(t *testing.T) {
	b := New("test-trip", Settings{MinRequests: 3, FailureRatio: 0.5, Timeout: time.Hour})

	for i := 0; i < 3; i++ {
		if err := Run(b, func() error { return errBoom }); !errors.Is(err, errBoom) {
			t.Fatalf("call %d error = %v, want errBoom", i, err)
		}
	}
	if b.State() != "open" {
		t.Fatalf("State() = %s, want open", b.State())
	}

	called := false
	err := Run(b, func() error { called = true; return nil })
	if !errors.Is(err, ErrOpen) {
		t.Errorf("error = %v, want ErrOpen", err)
	}
	if called {
		t.Error("open breaker must not call through")
	}
	if got := testutil.ToFloat64(metrics.CircuitBreakerState.WithLabelValues("test-trip")); got != 2 {
		t.Errorf("state gauge = %v, want 2", got)
	}
}

func TestIsSuccessfulKeepsBreakerClosed(t *testing.T) {
	errNotFound := errors.New("404")
	b := New("test-ignore", Settings{
		MinRequests:  2,
		IsSuccessful: func(err error) bool { return err == nil || errors.Is(err, errNotFound) },
	})
	for i := 0; i < 10; i++ {
		if err := Run(b, func() error { return errNotFound }); !errors.Is(err, errNotFound) {
			t.Fatalf("error = %v", err)
		}
	}
	if b.State() != "closed" {
		t.Errorf("State() = %s, want closed", b.State())
	}
}

func TestSuccessResetsConsecutiveFailures(t *testing.T) {
	b := New("test-reset", Settings{MinRequests: 100})
	_ = Run(b, func() error { return errBoom })
	_ = Run(b, func() error { return errBoom })
	if got := testutil.ToFloat64(metrics.CircuitBreakerConsecutiveFailures.WithLabelValues("test-reset")); got != 2 {
		t.Errorf("consecutive failures = %v, want 2", got)
	}
	_ = Run(b, func() error { return nil })
	if got := testutil.ToFloat64(metrics.CircuitBreakerConsecutiveFailures.WithLabelValues("test-reset")); got != 0 {
		t.Errorf("consecutive failures = %v, want 0", got)
	}
}

func TestStatesReportsRegisteredBreakers(t *testing.T) {
	New("test-states", Settings{})
	if got := States()["test-states"]; got != "closed" {
		t.Errorf("States()[test-states] = %q, want closed", got)
	}
}
