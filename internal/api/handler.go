// Mood Post - Image Mood Music Recommendation Bot
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodpost

// Package api is the HTTP surface of the bot: the LINE webhook receiver,
// health probes and the Prometheus endpoint, routed with chi.
package api

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/tomtom215/moodpost/internal/bot"
	"github.com/tomtom215/moodpost/internal/cache"
)

// Defaults for Config.
const (
	DefaultConcurrency  = 8
	DefaultDedupTTL     = 10 * time.Minute
	DefaultMaxBodyBytes = 1 << 20
)

// EventHandler handles one chat event. *bot.Machine implements it.
type EventHandler interface {
	Handle(ctx context.Context, ev bot.Event) error
}

// ReadinessCheck is one named dependency probe for /health/ready.
type ReadinessCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// Config configures a Handler.
type Config struct {
	// ChannelSecret verifies webhook signatures. Required.
	ChannelSecret string
	// Concurrency bounds the events of one delivery handled at once.
	Concurrency int
	// DedupTTL is how long a webhookEventId is remembered.
	DedupTTL time.Duration
	// MaxBodyBytes caps the webhook request body.
	MaxBodyBytes int64
}

// Handler serves the HTTP endpoints.
type Handler struct {
	events    EventHandler
	cfg       Config
	seen      *cache.Cache[struct{}]
	checks    []ReadinessCheck
	startTime time.Time
	draining  atomic.Bool
}

// NewHandler creates a Handler.
func NewHandler(events EventHandler, cfg Config, checks ...ReadinessCheck) (*Handler, error) {
	if events == nil {
		return nil, errors.New("api: event handler is required")
	}
	if cfg.ChannelSecret == "" {
		return nil, errors.New("api: channel secret is required")
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	if cfg.DedupTTL <= 0 {
		cfg.DedupTTL = DefaultDedupTTL
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return &Handler{
		events:    events,
		cfg:       cfg,
		seen:      cache.New[struct{}](cfg.DedupTTL),
		checks:    checks,
		startTime: time.Now(),
	}, nil
}

// DedupCache exposes the redelivery cache so its expired entries can be
// swept periodically.
func (h *Handler) DedupCache() *cache.Cache[struct{}] {
	return h.seen
}

// SetDraining makes /health/ready fail while the server shuts down.
func (h *Handler) SetDraining(draining bool) {
	h.draining.Store(draining)
}
