// Mood Post - Image Mood Music Recommendation Bot
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodpost

package services

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/moodpost/internal/logging"
	"github.com/tomtom215/moodpost/internal/metrics"
	"github.com/tomtom215/moodpost/internal/session"
)

// SweepFunc removes stale entries and returns how many it removed.
type SweepFunc func(ctx context.Context) (int, error)

// IntervalService calls a SweepFunc on a fixed interval. A failing sweep is
// logged and retried on the next tick; it does not restart the service.
type IntervalService struct {
	name     string
	interval time.Duration
	sweep    SweepFunc
	onSwept  func(n int)
}

// NewIntervalService creates the service. onSwept, if non-nil, receives the
// count of every successful sweep.
func NewIntervalService(name string, interval time.Duration, sweep SweepFunc, onSwept func(int)) *IntervalService {
	if interval <= 0 {
		interval = time.Minute
	}
	return &IntervalService{name: name, interval: interval, sweep: sweep, onSwept: onSwept}
}

// NewSessionSweeper purges idle sessions and counts them in
// sessions_expired_total.
func NewSessionSweeper(sw session.Sweeper, interval time.Duration) *IntervalService {
	return NewIntervalService("session-sweeper", interval, sw.CleanupExpired, func(n int) {
		metrics.SessionsExpired.Add(float64(n))
	})
}

// Cleaner is a cache with a bulk expiry pass.
type Cleaner interface {
	Cleanup() int
}

// NewCacheCleaner drops expired entries from c on every tick.
func NewCacheCleaner(name string, c Cleaner, interval time.Duration) *IntervalService {
	return NewIntervalService(name, interval, func(context.Context) (int, error) {
		return c.Cleanup(), nil
	}, nil)
}

// Serve implements suture.Service.
func (s *IntervalService) Serve(ctx context.Context) error {
	log := logging.WithComponent(s.name)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			n, err := s.sweep(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return ctx.Err()
				}
				log.Warn().Err(err).Msg("Sweep failed")
				continue
			}
			if n > 0 {
				log.Debug().Int("removed", n).Msg("Sweep complete")
			}
			if s.onSwept != nil {
				s.onSwept(n)
			}
		}
	}
}

// String implements fmt.Stringer.
func (s *IntervalService) String() string {
	return s.name
}
