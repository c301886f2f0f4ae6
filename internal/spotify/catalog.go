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
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/moodpost/internal/breaker"
	"github.com/tomtom215/moodpost/internal/httpclient"
	"github.com/tomtom215/moodpost/internal/metrics"
	"github.com/tomtom215/moodpost/internal/recommend"
)

// Catalog implements recommend.Catalog. Requests are paced by a token
// bucket so a burst of users cannot run into Spotify's rate limit.
type Catalog struct {
	baseURL    string
	market     string
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *breaker.Breaker

	onUnauthorized func()
}

// NewCatalog creates a Catalog.
func NewCatalog(cfg Config) (*Catalog, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}
	burst := int(cfg.RequestsPerSecond)
	if burst < 1 {
		burst = 1
	}
	return &Catalog{
		baseURL:    cfg.APIURL,
		market:     cfg.Market,
		httpClient: cfg.HTTPClient,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst),
		breaker:    breaker.New(collaboratorAPI, breaker.Settings{IsSuccessful: httpclient.ClientErrorsSucceed}),

		onUnauthorized: cfg.OnUnauthorized,
	}, nil
}

type image struct {
	URL string `json:"url"`
}

type artistObject struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type trackObject struct {
	Name         string         `json:"name"`
	Artists      []artistObject `json:"artists"`
	ExternalURLs struct {
		Spotify string `json:"spotify"`
	} `json:"external_urls"`
	Album struct {
		Images []image `json:"images"`
	} `json:"album"`
}

type playlistObject struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type searchResponse struct {
	Artists struct {
		Items []*artistObject `json:"items"`
	} `json:"artists"`
	Playlists struct {
		Items []*playlistObject `json:"items"`
	} `json:"playlists"`
}

type topTracksResponse struct {
	Tracks []*trackObject `json:"tracks"`
}

type playlistTracksResponse struct {
	Items []struct {
		Track *trackObject `json:"track"`
	} `json:"items"`
}

// FindArtist implements recommend.Catalog.
func (c *Catalog) FindArtist(ctx context.Context, token, name string) (recommend.Artist, bool, error) {
	var resp searchResponse
	err := c.get(ctx, token, "/v1/search", url.Values{
		"q":     {name},
		"type":  {"artist"},
		"limit": {"1"},
	}, &resp)
	if err != nil {
		return recommend.Artist{}, false, err
	}
	for _, a := range resp.Artists.Items {
		if a != nil && a.ID != "" {
			return recommend.Artist{ID: a.ID, Name: a.Name}, true, nil
		}
	}
	return recommend.Artist{}, false, nil
}

// TopTracks implements recommend.Catalog.
func (c *Catalog) TopTracks(ctx context.Context, token, artistID string) ([]recommend.Item, error) {
	var resp topTracksResponse
	err := c.get(ctx, token, "/v1/artists/"+url.PathEscape(artistID)+"/top-tracks", url.Values{
		"market": {c.market},
	}, &resp)
	if err != nil {
		return nil, err
	}
	items := make([]recommend.Item, 0, len(resp.Tracks))
	for _, t := range resp.Tracks {
		if t != nil {
			items = append(items, toItem(t))
		}
	}
	return items, nil
}

// FindPlaylists implements recommend.Catalog. Spotify may return null
// entries in the result list; they are dropped before limit applies.
func (c *Catalog) FindPlaylists(ctx context.Context, token, query string, limit int) ([]recommend.Playlist, error) {
	var resp searchResponse
	err := c.get(ctx, token, "/v1/search", url.Values{
		"q":     {query},
		"type":  {"playlist"},
		"limit": {strconv.Itoa(limit)},
	}, &resp)
	if err != nil {
		return nil, err
	}
	playlists := make([]recommend.Playlist, 0, len(resp.Playlists.Items))
	for _, p := range resp.Playlists.Items {
		if p != nil && p.ID != "" {
			playlists = append(playlists, recommend.Playlist{ID: p.ID, Name: p.Name})
		}
	}
	return playlists, nil
}

// PlaylistTracks implements recommend.Catalog. Entries without a track
// (removed or local files) are skipped.
func (c *Catalog) PlaylistTracks(ctx context.Context, token, playlistID string, limit int) ([]recommend.Item, error) {
	var resp playlistTracksResponse
	err := c.get(ctx, token, "/v1/playlists/"+url.PathEscape(playlistID)+"/tracks", url.Values{
		"limit": {strconv.Itoa(limit)},
	}, &resp)
	if err != nil {
		return nil, err
	}
	items := make([]recommend.Item, 0, len(resp.Items))
	for _, it := range resp.Items {
		if it.Track != nil {
			items = append(items, toItem(it.Track))
		}
	}
	return items, nil
}

func toItem(t *trackObject) recommend.Item {
	item := recommend.Item{Title: t.Name, URL: t.ExternalURLs.Spotify}
	if len(t.Artists) > 0 {
		item.Artist = t.Artists[0].Name
	}
	if len(t.Album.Images) > 0 {
		item.ArtworkURL = t.Album.Images[0].URL
	}
	return item
}

// get performs an authenticated GET and decodes the JSON answer into result.
func (c *Catalog) get(ctx context.Context, token, path string, query url.Values, result any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}
	err := breaker.Run(c.breaker, func() (err error) {
		start := time.Now()
		defer func() { metrics.RecordCollaboratorRequest(collaboratorAPI, time.Since(start), err) }()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.URL.RawQuery = query.Encode()
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if err := httpclient.CheckStatus(collaboratorAPI, resp); err != nil {
			return err
		}
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	})

	var se *httpclient.StatusError
	if c.onUnauthorized != nil && errors.As(err, &se) && se.StatusCode == http.StatusUnauthorized {
		c.onUnauthorized()
	}
	return err
}
