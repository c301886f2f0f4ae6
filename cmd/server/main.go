// Mood Post - Image Mood Music Recommendation Bot
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodpost

// Package main is the entry point for the Mood Post LINE bot.
//
// A user sends a photo; the bot scores its mood with Google Cloud Vision,
// asks whether to recommend by favourite artists or by mood, and answers
// with Spotify tracks.
//
// # Application Architecture
//
// Components are built in this order:
//
//  1. Configuration: defaults, config.yaml, then environment (.env is loaded first)
//  2. Logging: zerolog, bridged to slog for the supervisor
//  3. Session store: memory or in-memory BadgerDB
//  4. Collaborators: LINE, Vision and Spotify clients, each behind a circuit breaker
//  5. Conversation machine and recommendation planner
//  6. HTTP server: webhook, health probes and /metrics on chi
//  7. Supervisor tree: HTTP server plus session and dedup sweepers
//
// # Required Environment
//
//	LINE_CHANNEL_ACCESS_TOKEN, LINE_CHANNEL_SECRET
//	GOOGLE_VISION_API_KEY
//	SPOTIFY_CLIENT_ID, SPOTIFY_CLIENT_SECRET
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the supervisor tree. The HTTP server marks
// itself draining, stops accepting connections and lets in-flight webhook
// deliveries finish within SHUTDOWN_TIMEOUT.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/tomtom215/moodpost/internal/api"
	"github.com/tomtom215/moodpost/internal/bot"
	"github.com/tomtom215/moodpost/internal/config"
	"github.com/tomtom215/moodpost/internal/line"
	"github.com/tomtom215/moodpost/internal/logging"
	"github.com/tomtom215/moodpost/internal/recommend"
	"github.com/tomtom215/moodpost/internal/session"
	"github.com/tomtom215/moodpost/internal/spotify"
	"github.com/tomtom215/moodpost/internal/supervisor"
	"github.com/tomtom215/moodpost/internal/supervisor/services"
	"github.com/tomtom215/moodpost/internal/vision"
)

// readinessProbeUser is looked up to prove the session store answers.
const readinessProbeUser = "readiness-probe"

func main() {
	// A missing .env is normal in containers.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logging.Warn().Err(err).Msg("Failed to read .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		stop()
		logging.Fatal().Err(err).Msg("Server failed")
	}
	logging.Info().Msg("Application stopped gracefully")
}

//nolint:gocyclo // sequential wiring
func run(ctx context.Context, cfg *config.Config) error {
	logging.Info().
		Str("addr", cfg.Server.Addr()).
		Str("session_store", cfg.Session.Store).
		Str("spotify_market", cfg.Spotify.Market).
		Msg("Starting Mood Post")

	sessions, err := session.NewFactory(session.StoreType(cfg.Session.Store), cfg.Session.TTL)
	if err != nil {
		return fmt.Errorf("session store: %w", err)
	}
	defer func() {
		if err := sessions.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing session store")
		}
	}()

	lineClient, err := line.NewClient(line.Config{
		AccessToken: cfg.LINE.ChannelAccessToken,
		APIURL:      cfg.LINE.APIURL,
		DataAPIURL:  cfg.LINE.DataAPIURL,
		Timeout:     cfg.HTTPClient.Timeout,
	})
	if err != nil {
		return fmt.Errorf("line client: %w", err)
	}

	visionClient, err := vision.NewClient(vision.Config{
		APIKey:    cfg.Vision.APIKey,
		URL:       cfg.Vision.URL,
		MaxLabels: cfg.Vision.MaxLabels,
		Timeout:   cfg.HTTPClient.Timeout,
	})
	if err != nil {
		return fmt.Errorf("vision client: %w", err)
	}

	spotifyCfg := spotify.Config{
		ClientID:          cfg.Spotify.ClientID,
		ClientSecret:      cfg.Spotify.ClientSecret,
		APIURL:            cfg.Spotify.APIURL,
		AccountsURL:       cfg.Spotify.AccountsURL,
		Market:            cfg.Spotify.Market,
		RequestsPerSecond: cfg.Spotify.RequestsPerSecond,
		Timeout:           cfg.HTTPClient.Timeout,
	}
	tokens, err := spotify.NewTokenSource(spotifyCfg)
	if err != nil {
		return fmt.Errorf("spotify token source: %w", err)
	}
	spotifyCfg.OnUnauthorized = tokens.Invalidate
	catalog, err := spotify.NewCatalog(spotifyCfg)
	if err != nil {
		return fmt.Errorf("spotify catalog: %w", err)
	}

	machine, err := bot.NewMachine(bot.Dependencies{
		Sessions: sessions.Store(),
		Locales:  sessions.LocaleStore(),
		Channel:  lineClient,
		Content:  lineClient,
		Vision:   visionClient,
		Planner:  recommend.NewPlanner(tokens, catalog),
	})
	if err != nil {
		return fmt.Errorf("conversation machine: %w", err)
	}

	store := sessions.Store()
	handler, err := api.NewHandler(machine, api.Config{
		ChannelSecret: cfg.LINE.ChannelSecret,
		Concurrency:   cfg.Webhook.Concurrency,
		DedupTTL:      cfg.Webhook.DedupTTL,
	}, api.ReadinessCheck{
		Name: "session_store",
		Check: func(ctx context.Context) error {
			_, err := store.Get(ctx, readinessProbeUser)
			return err
		},
	})
	if err != nil {
		return fmt.Errorf("api handler: %w", err)
	}

	mw := api.NewChiMiddleware(&api.ChiMiddlewareConfig{
		RateLimitRequests: cfg.Webhook.RateLimitRequests,
		RateLimitWindow:   cfg.Webhook.RateLimitWindow,
		RateLimitDisabled: cfg.Webhook.RateLimitDisabled,
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      api.NewRouter(handler, mw),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return fmt.Errorf("supervisor tree: %w", err)
	}

	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, handler.SetDraining))
	tree.AddMaintenanceService(services.NewCacheCleaner("webhook-dedup-cleaner", handler.DedupCache(), cfg.Webhook.DedupTTL))
	if sw := sessions.Sweeper(); sw != nil {
		tree.AddMaintenanceService(services.NewSessionSweeper(sw, cfg.Session.SweepInterval))
		logging.Info().Dur("ttl", cfg.Session.TTL).Msg("Session sweeper enabled")
	}

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	var serveErr error
	if err := <-tree.ServeBackground(ctx); err != nil && !errors.Is(err, context.Canceled) {
		serveErr = err
	}

	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
		}
	}
	return serveErr
}
