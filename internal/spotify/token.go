// Mood Post - Image Mood Music Recommendation Bot
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodpost

package spotify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/moodpost/internal/breaker"
	"github.com/tomtom215/moodpost/internal/cache"
	"github.com/tomtom215/moodpost/internal/httpclient"
	"github.com/tomtom215/moodpost/internal/logging"
	"github.com/tomtom215/moodpost/internal/metrics"
)

const (
	tokenCacheKey = "client_credentials"

	// tokenExpiryMargin is subtracted from expires_in so a cached token is
	// never used in its last minute.
	tokenExpiryMargin = time.Minute
)

// TokenSource obtains client-credentials access tokens and reuses them
// until shortly before they expire. Concurrent misses share one request.
type TokenSource struct {
	clientID     string
	clientSecret string
	tokenURL     string
	httpClient   *http.Client
	breaker      *breaker.Breaker

	cache *cache.Cache[string]
	group singleflight.Group
}

// NewTokenSource creates a TokenSource.
func NewTokenSource(cfg Config) (*TokenSource, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}
	return &TokenSource{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		tokenURL:     cfg.AccountsURL + "/api/token",
		httpClient:   cfg.HTTPClient,
		breaker:      breaker.New(collaboratorAuth, breaker.Settings{IsSuccessful: httpclient.ClientErrorsSucceed}),
		cache:        cache.New[string](0),
	}, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// AccessToken returns a valid access token.
func (s *TokenSource) AccessToken(ctx context.Context) (string, error) {
	if token, ok := s.cache.Get(tokenCacheKey); ok {
		metrics.RecordTokenCache(true)
		return token, nil
	}
	metrics.RecordTokenCache(false)

	v, err, _ := s.group.Do(tokenCacheKey, func() (any, error) {
		if token, ok := s.cache.Get(tokenCacheKey); ok {
			return token, nil
		}
		tr, err := breaker.Do(s.breaker, func() (tokenResponse, error) {
			return s.fetch(ctx)
		})
		if err != nil {
			return "", err
		}
		if ttl := time.Duration(tr.ExpiresIn)*time.Second - tokenExpiryMargin; ttl > 0 {
			s.cache.SetWithTTL(tokenCacheKey, tr.AccessToken, ttl)
		}
		logging.Debug().Int("expires_in", tr.ExpiresIn).Msg("Spotify access token refreshed")
		return tr.AccessToken, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Invalidate drops the cached token.
func (s *TokenSource) Invalidate() {
	s.cache.Delete(tokenCacheKey)
}

func (s *TokenSource) fetch(ctx context.Context) (_ tokenResponse, err error) {
	start := time.Now()
	defer func() { metrics.RecordCollaboratorRequest(collaboratorAuth, time.Since(start), err) }()

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return tokenResponse{}, fmt.Errorf("create request: %w", err)
	}
	req.SetBasicAuth(s.clientID, s.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return tokenResponse{}, fmt.Errorf("request token: %w", err)
	}
	defer resp.Body.Close()

	if err := httpclient.CheckStatus(collaboratorAuth, resp); err != nil {
		return tokenResponse{}, err
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return tokenResponse{}, fmt.Errorf("decode token: %w", err)
	}
	if tr.AccessToken == "" {
		return tokenResponse{}, errors.New("spotify: token response without access_token")
	}
	return tr, nil
}
