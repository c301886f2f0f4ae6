// Mood Post - Image Mood Music Recommendation Bot
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodpost

// Package recommend builds track recommendations from a music catalog.
//
// Two plans are offered. The artist plan looks up the user's favorite
// artists and takes a few top tracks from each; the surprise plan searches
// playlists for the detected mood and samples their first tracks. Failures
// for a single artist or playlist are logged and skipped; only a failure to
// obtain an access token (or, for the surprise plan, to search at all) fails
// the whole plan.
package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tomtom215/moodpost/internal/logging"
	"github.com/tomtom215/moodpost/internal/mood"
)

// Plan limits.
const (
	MaxArtists          = 3
	TracksPerArtist     = 3
	PlaylistSearchLimit = 3
	PlaylistsUsed       = 2
	TracksPerPlaylist   = 5
	MaxSurpriseItems    = 9
)

// UnknownArtist is shown for tracks the catalog returns without an artist.
const UnknownArtist = "Unknown"

// ErrInvalidUserInput is returned when the user's artist list is empty.
var ErrInvalidUserInput = errors.New("invalid user input")

// Item is one recommended track.
type Item struct {
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	URL        string `json:"url"`
	ArtworkURL string `json:"artwork_url,omitempty"`
}

// Artist is a catalog artist match.
type Artist struct {
	ID   string
	Name string
}

// Playlist is a catalog playlist match.
type Playlist struct {
	ID   string
	Name string
}

// TokenSource hands out catalog access tokens.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// Catalog is the music catalog the plans run against. Every call takes the
// access token obtained once per plan.
type Catalog interface {
	// FindArtist returns the best match for name; ok is false when nothing matched.
	FindArtist(ctx context.Context, token, name string) (artist Artist, ok bool, err error)
	// TopTracks returns the artist's most popular tracks, best first.
	TopTracks(ctx context.Context, token, artistID string) ([]Item, error)
	// FindPlaylists returns up to limit playlists matching query. Entries the
	// service reports as missing are left out.
	FindPlaylists(ctx context.Context, token, query string, limit int) ([]Playlist, error)
	// PlaylistTracks returns up to limit tracks from the start of the playlist.
	PlaylistTracks(ctx context.Context, token, playlistID string, limit int) ([]Item, error)
}

// ParseArtists splits a comma-separated artist list, trimming whitespace and
// dropping empty entries.
func ParseArtists(text string) ([]string, error) {
	parts := strings.Split(text, ",")
	artists := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			artists = append(artists, p)
		}
	}
	if len(artists) == 0 {
		return nil, fmt.Errorf("%w: no artist names", ErrInvalidUserInput)
	}
	return artists, nil
}

// SurpriseQuery returns the playlist search query for a mood.
func SurpriseQuery(m mood.Type) string {
	switch m {
	case mood.Happy:
		return "happy upbeat feel good"
	case mood.Sad:
		return "sad melancholy emotional"
	case mood.Energetic:
		return "energetic pump up workout"
	case mood.Calm:
		return "calm peaceful relaxing chill"
	default:
		return "popular music"
	}
}

// Planner runs recommendation plans against a catalog.
type Planner struct {
	tokens  TokenSource
	catalog Catalog
}

// NewPlanner creates a Planner.
func NewPlanner(tokens TokenSource, catalog Catalog) *Planner {
	return &Planner{tokens: tokens, catalog: catalog}
}

// ArtistPlan returns up to TracksPerArtist top tracks for each of the first
// MaxArtists artists, in artist order.
func (p *Planner) ArtistPlan(ctx context.Context, artists []string) ([]Item, error) {
	token, err := p.tokens.AccessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("get access token: %w", err)
	}

	if len(artists) > MaxArtists {
		artists = artists[:MaxArtists]
	}

	log := logging.Ctx(ctx)
	items := make([]Item, 0, len(artists)*TracksPerArtist)
	for _, name := range artists {
		artist, ok, err := p.catalog.FindArtist(ctx, token, name)
		if err != nil {
			log.Warn().Err(err).Str("artist", logging.Sanitize(name)).Msg("Artist search failed, skipping")
			continue
		}
		if !ok {
			log.Debug().Str("artist", logging.Sanitize(name)).Msg("No catalog match for artist")
			continue
		}

		tracks, err := p.catalog.TopTracks(ctx, token, artist.ID)
		if err != nil {
			log.Warn().Err(err).Str("artist_id", artist.ID).Msg("Top tracks lookup failed, skipping")
			continue
		}
		if len(tracks) > TracksPerArtist {
			tracks = tracks[:TracksPerArtist]
		}
		items = appendItems(items, tracks, len(artists)*TracksPerArtist)
	}
	return items, nil
}

// SurprisePlan samples tracks from playlists matching the mood, capped at
// MaxSurpriseItems.
func (p *Planner) SurprisePlan(ctx context.Context, m mood.Type) ([]Item, error) {
	token, err := p.tokens.AccessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("get access token: %w", err)
	}

	playlists, err := p.catalog.FindPlaylists(ctx, token, SurpriseQuery(m), PlaylistSearchLimit)
	if err != nil {
		return nil, fmt.Errorf("search playlists: %w", err)
	}
	// Catalog results never hold empty entries, so this keeps the first
	// PlaylistsUsed playlists that exist, not the first PlaylistsUsed slots.
	if len(playlists) > PlaylistsUsed {
		playlists = playlists[:PlaylistsUsed]
	}

	log := logging.Ctx(ctx)
	items := make([]Item, 0, MaxSurpriseItems)
	for _, pl := range playlists {
		if len(items) >= MaxSurpriseItems {
			break
		}
		tracks, err := p.catalog.PlaylistTracks(ctx, token, pl.ID, TracksPerPlaylist)
		if err != nil {
			log.Warn().Err(err).Str("playlist_id", pl.ID).Msg("Playlist tracks lookup failed, skipping")
			continue
		}
		items = appendItems(items, tracks, MaxSurpriseItems)
	}
	return items, nil
}

// appendItems appends tracks to items until it holds limit entries,
// filling in missing artists.
func appendItems(items, tracks []Item, limit int) []Item {
	for _, t := range tracks {
		if len(items) >= limit {
			break
		}
		if strings.TrimSpace(t.Artist) == "" {
			t.Artist = UnknownArtist
		}
		items = append(items, t)
	}
	return items
}
