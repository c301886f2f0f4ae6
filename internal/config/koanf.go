// Mood Post - Image Mood Music Recommendation Bot
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodpost

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar names the environment variable holding the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultConfigPaths are searched when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{
	"config.yaml",
	"/etc/moodpost/config.yaml",
}

// envMappings maps environment variables (lower-cased) to koanf paths.
// Variables not listed are ignored.
var envMappings = map[string]string{
	"port":             "server.port",
	"http_host":        "server.host",
	"shutdown_timeout": "server.shutdown_timeout",
	"http_timeout":     "http_client.timeout",

	"line_channel_access_token": "line.channel_access_token",
	"line_channel_secret":       "line.channel_secret",
	"line_api_url":              "line.api_url",
	"line_data_api_url":         "line.data_api_url",

	"google_vision_api_key": "vision.api_key",
	"google_vision_url":     "vision.url",
	"vision_max_labels":     "vision.max_labels",

	"spotify_client_id":           "spotify.client_id",
	"spotify_client_secret":       "spotify.client_secret",
	"spotify_api_url":             "spotify.api_url",
	"spotify_accounts_url":        "spotify.accounts_url",
	"spotify_market":              "spotify.market",
	"spotify_requests_per_second": "spotify.requests_per_second",

	"session_store":          "session.store",
	"session_ttl":            "session.ttl",
	"session_sweep_interval": "session.sweep_interval",

	"webhook_concurrency": "webhook.concurrency",
	"webhook_dedup_ttl":   "webhook.dedup_ttl",
	"rate_limit_requests": "webhook.rate_limit_requests",
	"rate_limit_window":   "webhook.rate_limit_window",
	"disable_rate_limit":  "webhook.rate_limit_disabled",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// Load builds the configuration from defaults, the optional config file and
// the environment, then validates it.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// findConfigFile returns the first existing config file, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envTransformFunc maps an environment variable name to its koanf path,
// or "" to skip it.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

// normalize trims values that commonly pick up stray whitespace from .env
// files and upper-cases the market code.
func (c *Config) normalize() {
	c.LINE.ChannelAccessToken = strings.TrimSpace(c.LINE.ChannelAccessToken)
	c.LINE.ChannelSecret = strings.TrimSpace(c.LINE.ChannelSecret)
	c.Vision.APIKey = strings.TrimSpace(c.Vision.APIKey)
	c.Spotify.ClientID = strings.TrimSpace(c.Spotify.ClientID)
	c.Spotify.ClientSecret = strings.TrimSpace(c.Spotify.ClientSecret)
	c.Spotify.Market = strings.ToUpper(strings.TrimSpace(c.Spotify.Market))
	c.Session.Store = strings.ToLower(strings.TrimSpace(c.Session.Store))
	c.Logging.Level = strings.ToLower(c.Logging.Level)
	c.Logging.Format = strings.ToLower(c.Logging.Format)
}
