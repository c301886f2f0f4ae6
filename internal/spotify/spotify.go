// Mood Post - Image Mood Music Recommendation Bot
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodpost

// Package spotify implements recommend.TokenSource and recommend.Catalog on
// the Spotify Web API using the client-credentials flow.
package spotify

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/tomtom215/moodpost/internal/httpclient"
)

// Defaults for Config.
const (
	DefaultAPIURL            = "https://api.spotify.com"
	DefaultAccountsURL       = "https://accounts.spotify.com"
	DefaultMarket            = "US"
	DefaultRequestsPerSecond = 10.0
)

// Breaker and metric names.
const (
	collaboratorAuth = "spotify-auth"
	collaboratorAPI  = "spotify-api"
)

// Config configures the token source and the catalog.
type Config struct {
	ClientID          string
	ClientSecret      string
	APIURL            string
	AccountsURL       string
	Market            string
	RequestsPerSecond float64
	Timeout           time.Duration
	HTTPClient        *http.Client

	// OnUnauthorized is called by the catalog when Spotify rejects an
	// access token with 401. Pass TokenSource.Invalidate so the next plan
	// fetches a fresh token.
	OnUnauthorized func()
}

func (c Config) withDefaults() (Config, error) {
	if c.ClientID == "" || c.ClientSecret == "" {
		return c, errors.New("spotify: client id and secret are required")
	}
	if c.APIURL == "" {
		c.APIURL = DefaultAPIURL
	}
	if c.AccountsURL == "" {
		c.AccountsURL = DefaultAccountsURL
	}
	c.APIURL = strings.TrimRight(c.APIURL, "/")
	c.AccountsURL = strings.TrimRight(c.AccountsURL, "/")
	if c.Market == "" {
		c.Market = DefaultMarket
	}
	if c.RequestsPerSecond <= 0 {
		c.RequestsPerSecond = DefaultRequestsPerSecond
	}
	if c.HTTPClient == nil {
		c.HTTPClient = httpclient.New(c.Timeout)
	}
	return c, nil
}
