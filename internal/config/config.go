// Mood Post - Image Mood Music Recommendation Bot
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodpost

// Package config loads the service configuration with koanf.
//
// Sources, lowest priority first:
//
//  1. built-in defaults (defaultConfig)
//  2. an optional YAML file: $CONFIG_PATH, ./config.yaml or
//     /etc/moodpost/config.yaml, first one found
//  3. environment variables listed in envMappings
//
// Call Load once at startup; the result is validated and read-only.
package config

import (
	"net"
	"strconv"
	"time"

	"github.com/tomtom215/moodpost/internal/session"
)

// Config is the complete service configuration.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	HTTPClient HTTPClientConfig `koanf:"http_client"`
	LINE       LINEConfig       `koanf:"line"`
	Vision     VisionConfig     `koanf:"vision"`
	Spotify    SpotifyConfig    `koanf:"spotify"`
	Session    SessionConfig    `koanf:"session"`
	Webhook    WebhookConfig    `koanf:"webhook"`
	Logging    LoggingConfig    `koanf:"logging"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// HTTPClientConfig configures outbound calls to LINE, Vision and Spotify.
type HTTPClientConfig struct {
	Timeout time.Duration `koanf:"timeout"`
}

// LINEConfig holds the Messaging API channel credentials.
type LINEConfig struct {
	ChannelAccessToken string `koanf:"channel_access_token"`
	ChannelSecret      string `koanf:"channel_secret"`
	APIURL             string `koanf:"api_url"`
	DataAPIURL         string `koanf:"data_api_url"`
}

// VisionConfig configures the Google Cloud Vision client.
type VisionConfig struct {
	APIKey    string `koanf:"api_key"`
	URL       string `koanf:"url"`
	MaxLabels int    `koanf:"max_labels"`
}

// SpotifyConfig configures the Spotify Web API client.
type SpotifyConfig struct {
	ClientID          string  `koanf:"client_id"`
	ClientSecret      string  `koanf:"client_secret"`
	APIURL            string  `koanf:"api_url"`
	AccountsURL       string  `koanf:"accounts_url"`
	Market            string  `koanf:"market"`
	RequestsPerSecond float64 `koanf:"requests_per_second"`
}

// SessionConfig selects the conversation store. A zero TTL keeps
// sessions until the flow ends.
type SessionConfig struct {
	Store         string        `koanf:"store"`
	TTL           time.Duration `koanf:"ttl"`
	SweepInterval time.Duration `koanf:"sweep_interval"`
}

// WebhookConfig configures webhook intake.
type WebhookConfig struct {
	Concurrency       int           `koanf:"concurrency"`
	DedupTTL          time.Duration `koanf:"dedup_ttl"`
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig configures zerolog.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            3000,
			Host:            "0.0.0.0",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    90 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		HTTPClient: HTTPClientConfig{
			Timeout: 15 * time.Second,
		},
		LINE: LINEConfig{
			APIURL:     "https://api.line.me",
			DataAPIURL: "https://api-data.line.me",
		},
		Vision: VisionConfig{
			URL:       "https://vision.googleapis.com/v1/images:annotate",
			MaxLabels: 10,
		},
		Spotify: SpotifyConfig{
			APIURL:            "https://api.spotify.com",
			AccountsURL:       "https://accounts.spotify.com",
			Market:            "US",
			RequestsPerSecond: 10,
		},
		Session: SessionConfig{
			Store:         string(session.StoreMemory),
			SweepInterval: time.Minute,
		},
		Webhook: WebhookConfig{
			Concurrency:       8,
			DedupTTL:          10 * time.Minute,
			RateLimitRequests: 300,
			RateLimitWindow:   time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}
