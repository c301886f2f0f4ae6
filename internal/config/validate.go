// Mood Post - Image Mood Music Recommendation Bot
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodpost

package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/tomtom215/moodpost/internal/logging"
	"github.com/tomtom215/moodpost/internal/session"
)

const (
	maxWebhookConcurrency = 64
	maxVisionLabels       = 50
)

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	return errors.Join(
		c.validateServer(),
		c.validateCredentials(),
		c.validateURLs(),
		c.validateVision(),
		c.validateSpotify(),
		c.validateSession(),
		c.validateWebhook(),
		c.validateLogging(),
	)
}

func (c *Config) validateServer() error {
	var errs []error
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Server.Port))
	}
	errs = append(errs,
		positive("server.read_timeout", c.Server.ReadTimeout),
		positive("server.write_timeout", c.Server.WriteTimeout),
		positive("server.idle_timeout", c.Server.IdleTimeout),
		positive("SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout),
		positive("HTTP_TIMEOUT", c.HTTPClient.Timeout),
	)
	return errors.Join(errs...)
}

func (c *Config) validateCredentials() error {
	var errs []error
	required := []struct{ name, value string }{
		{"LINE_CHANNEL_ACCESS_TOKEN", c.LINE.ChannelAccessToken},
		{"LINE_CHANNEL_SECRET", c.LINE.ChannelSecret},
		{"GOOGLE_VISION_API_KEY", c.Vision.APIKey},
		{"SPOTIFY_CLIENT_ID", c.Spotify.ClientID},
		{"SPOTIFY_CLIENT_SECRET", c.Spotify.ClientSecret},
	}
	for _, r := range required {
		if r.value == "" {
			errs = append(errs, fmt.Errorf("%s is required", r.name))
		}
	}
	return errors.Join(errs...)
}

func (c *Config) validateURLs() error {
	return errors.Join(
		httpURL("LINE_API_URL", c.LINE.APIURL),
		httpURL("LINE_DATA_API_URL", c.LINE.DataAPIURL),
		httpURL("GOOGLE_VISION_URL", c.Vision.URL),
		httpURL("SPOTIFY_API_URL", c.Spotify.APIURL),
		httpURL("SPOTIFY_ACCOUNTS_URL", c.Spotify.AccountsURL),
	)
}

func (c *Config) validateVision() error {
	if c.Vision.MaxLabels < 1 || c.Vision.MaxLabels > maxVisionLabels {
		return fmt.Errorf("VISION_MAX_LABELS must be between 1 and %d, got %d", maxVisionLabels, c.Vision.MaxLabels)
	}
	return nil
}

func (c *Config) validateSpotify() error {
	var errs []error
	if len(c.Spotify.Market) != 2 {
		errs = append(errs, fmt.Errorf("SPOTIFY_MARKET must be a two-letter country code, got %q", c.Spotify.Market))
	}
	if c.Spotify.RequestsPerSecond <= 0 {
		errs = append(errs, fmt.Errorf("SPOTIFY_REQUESTS_PER_SECOND must be positive, got %g", c.Spotify.RequestsPerSecond))
	}
	return errors.Join(errs...)
}

func (c *Config) validateSession() error {
	var errs []error
	switch session.StoreType(c.Session.Store) {
	case session.StoreMemory, session.StoreBadger:
	default:
		errs = append(errs, fmt.Errorf("SESSION_STORE must be %q or %q, got %q",
			session.StoreMemory, session.StoreBadger, c.Session.Store))
	}
	if c.Session.TTL < 0 {
		errs = append(errs, fmt.Errorf("SESSION_TTL must not be negative, got %s", c.Session.TTL))
	}
	if c.Session.TTL > 0 && c.Session.SweepInterval <= 0 {
		errs = append(errs, errors.New("SESSION_SWEEP_INTERVAL must be positive when SESSION_TTL is set"))
	}
	return errors.Join(errs...)
}

func (c *Config) validateWebhook() error {
	var errs []error
	if c.Webhook.Concurrency < 1 || c.Webhook.Concurrency > maxWebhookConcurrency {
		errs = append(errs, fmt.Errorf("WEBHOOK_CONCURRENCY must be between 1 and %d, got %d",
			maxWebhookConcurrency, c.Webhook.Concurrency))
	}
	errs = append(errs, positive("WEBHOOK_DEDUP_TTL", c.Webhook.DedupTTL))
	if !c.Webhook.RateLimitDisabled {
		if c.Webhook.RateLimitRequests < 1 {
			errs = append(errs, fmt.Errorf("RATE_LIMIT_REQUESTS must be positive when rate limiting is enabled, got %d",
				c.Webhook.RateLimitRequests))
		}
		errs = append(errs, positive("RATE_LIMIT_WINDOW", c.Webhook.RateLimitWindow))
	}
	return errors.Join(errs...)
}

func (c *Config) validateLogging() error {
	var errs []error
	if !logging.ValidLevel(c.Logging.Level) {
		errs = append(errs, fmt.Errorf("LOG_LEVEL %q is not a valid level", c.Logging.Level))
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format))
	}
	return errors.Join(errs...)
}

func positive(name string, d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("%s must be positive, got %s", name, d)
	}
	return nil
}

func httpURL(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%s must be an absolute http(s) URL, got %q", name, raw)
	}
	return nil
}
