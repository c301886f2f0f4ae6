// Mood Post - Image Mood Music Recommendation Bot
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodpost

package recommend

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/tomtom215/moodpost/internal/mood"
)

type fakeTokens struct {
	token string
	err   error
	calls int
}

func (f *fakeTokens) AccessToken(context.Context) (string, error) {
	f.calls++
	return f.token, f.err
}

type fakeCatalog struct {
	artists       map[string]Artist
	artistErr     map[string]error
	topTracks     map[string][]Item
	topErr        map[string]error
	playlists     []Playlist
	playlistErr   error
	playlistItems map[string][]Item
	tracksErr     map[string]error

	gotTokens    []string
	gotQuery     string
	gotLimit     int
	trackLimits  []int
	searchedFor  []string
	playlistHits []string
}

func (f *fakeCatalog) FindArtist(_ context.Context, token, name string) (Artist, bool, error) {
	f.gotTokens = append(f.gotTokens, token)
	f.searchedFor = append(f.searchedFor, name)
	if err := f.artistErr[name]; err != nil {
		return Artist{}, false, err
	}
	a, ok := f.artists[name]
	return a, ok, nil
}

func (f *fakeCatalog) TopTracks(_ context.Context, token, artistID string) ([]Item, error) {
	f.gotTokens = append(f.gotTokens, token)
	if err := f.topErr[artistID]; err != nil {
		return nil, err
	}
	return f.topTracks[artistID], nil
}

func (f *fakeCatalog) FindPlaylists(_ context.Context, token, query string, limit int) ([]Playlist, error) {
	f.gotTokens = append(f.gotTokens, token)
	f.gotQuery = query
	f.gotLimit = limit
	return f.playlists, f.playlistErr
}

func (f *fakeCatalog) PlaylistTracks(_ context.Context, token, playlistID string, limit int) ([]Item, error) {
	f.gotTokens = append(f.gotTokens, token)
	f.trackLimits = append(f.trackLimits, limit)
	f.playlistHits = append(f.playlistHits, playlistID)
	if err := f.tracksErr[playlistID]; err != nil {
		return nil, err
	}
	return f.playlistItems[playlistID], nil
}

func tracks(prefix string, n int) []Item {
	items := make([]Item, n)
	for i := range items {
		items[i] = Item{
			Title:  fmt.Sprintf("%s-%d", prefix, i+1),
			Artist: prefix,
			URL:    fmt.Sprintf("https://open.spotify.com/track/%s%d", prefix, i+1),
		}
	}
	return items
}

func titles(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Title
	}
	return out
}

func TestParseArtists(t *testing.T) {
	tests := []struct {
		in      string
		want    []string
		wantErr bool
	}{
		{"A, , B,", []string{"A", "B"}, false},
		{"Juice WRLD, Joji, Travis Scott", []string{"Juice WRLD", "Joji", "Travis Scott"}, false},
		{"  Joji  ", []string{"Joji"}, false},
		{"周杰倫, 五月天", []string{"周杰倫", "五月天"}, false},
		{",  ,", nil, true},
		{"", nil, true},
	}
	for _, tt := range tests {
		got, err := ParseArtists(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidUserInput) {
				t.Errorf("ParseArtists(%q) error = %v, want ErrInvalidUserInput", tt.in, err)
			}
			continue
		}
		if err != nil || !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseArtists(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
}

func TestArtistPlan(t *testing.T) {
	cat := &fakeCatalog{
		artists: map[string]Artist{
			"A": {ID: "a"}, "B": {ID: "b"}, "D": {ID: "d"},
		},
		topTracks: map[string][]Item{
			"a": tracks("a", 10),
			"b": tracks("b", 2),
			"d": tracks("d", 3),
		},
	}
	tok := &fakeTokens{token: "tok"}
	p := NewPlanner(tok, cat)

	got, err := p.ArtistPlan(context.Background(), []string{"A", "C", "B", "D"})
	if err != nil {
		t.Fatalf("ArtistPlan() error = %v", err)
	}
	want := []string{"a-1", "a-2", "a-3", "b-1", "b-2"}
	if !reflect.DeepEqual(titles(got), want) {
		t.Errorf("titles = %v, want %v", titles(got), want)
	}
	if !reflect.DeepEqual(cat.searchedFor, []string{"A", "C", "B"}) {
		t.Errorf("searched %v, only the first three artists should be used", cat.searchedFor)
	}
	if tok.calls != 1 {
		t.Errorf("token requested %d times, want 1", tok.calls)
	}
	for _, tk := range cat.gotTokens {
		if tk != "tok" {
			t.Errorf("catalog call with token %q", tk)
		}
	}
}

func TestArtistPlanSkipsFailures(t *testing.T) {
	cat := &fakeCatalog{
		artists:   map[string]Artist{"B": {ID: "b"}, "C": {ID: "c"}},
		artistErr: map[string]error{"A": errors.New("search 500")},
		topErr:    map[string]error{"b": errors.New("top tracks 429")},
		topTracks: map[string][]Item{"c": {{Title: "c-1", URL: "u"}}},
	}
	got, err := NewPlanner(&fakeTokens{token: "t"}, cat).ArtistPlan(context.Background(), []string{"A", "B", "C"})
	if err != nil {
		t.Fatalf("ArtistPlan() error = %v", err)
	}
	if len(got) != 1 || got[0].Title != "c-1" {
		t.Fatalf("got %+v, want only c-1", got)
	}
	if got[0].Artist != UnknownArtist {
		t.Errorf("Artist = %q, want %q", got[0].Artist, UnknownArtist)
	}
}

func TestArtistPlanTokenFailureIsTotal(t *testing.T) {
	cat := &fakeCatalog{}
	tokenErr := errors.New("accounts down")
	_, err := NewPlanner(&fakeTokens{err: tokenErr}, cat).ArtistPlan(context.Background(), []string{"A"})
	if !errors.Is(err, tokenErr) {
		t.Errorf("error = %v, want token error", err)
	}
	if len(cat.searchedFor) != 0 {
		t.Error("catalog must not be called without a token")
	}
}

func TestSurprisePlanCapsAtNine(t *testing.T) {
	cat := &fakeCatalog{
		playlists: []Playlist{{ID: "p1"}, {ID: "p2"}, {ID: "p3"}},
		playlistItems: map[string][]Item{
			"p1": tracks("p1", 5),
			"p2": tracks("p2", 5),
			"p3": tracks("p3", 5),
		},
	}
	got, err := NewPlanner(&fakeTokens{token: "t"}, cat).SurprisePlan(context.Background(), mood.Energetic)
	if err != nil {
		t.Fatalf("SurprisePlan() error = %v", err)
	}
	if len(got) != MaxSurpriseItems {
		t.Fatalf("len = %d, want %d", len(got), MaxSurpriseItems)
	}
	want := []string{"p1-1", "p1-2", "p1-3", "p1-4", "p1-5", "p2-1", "p2-2", "p2-3", "p2-4"}
	if !reflect.DeepEqual(titles(got), want) {
		t.Errorf("titles = %v, want %v", titles(got), want)
	}
	if cat.gotQuery != "energetic pump up workout" || cat.gotLimit != PlaylistSearchLimit {
		t.Errorf("search = %q limit %d", cat.gotQuery, cat.gotLimit)
	}
	if !reflect.DeepEqual(cat.playlistHits, []string{"p1", "p2"}) {
		t.Errorf("playlists fetched = %v, want first two", cat.playlistHits)
	}
	for _, l := range cat.trackLimits {
		if l != TracksPerPlaylist {
			t.Errorf("track limit = %d", l)
		}
	}
}

func TestSurprisePlanSkipsBrokenPlaylist(t *testing.T) {
	cat := &fakeCatalog{
		playlists:     []Playlist{{ID: "p1"}, {ID: "p2"}},
		tracksErr:     map[string]error{"p1": errors.New("404")},
		playlistItems: map[string][]Item{"p2": tracks("p2", 3)},
	}
	got, err := NewPlanner(&fakeTokens{token: "t"}, cat).SurprisePlan(context.Background(), mood.Calm)
	if err != nil {
		t.Fatalf("SurprisePlan() error = %v", err)
	}
	if !reflect.DeepEqual(titles(got), []string{"p2-1", "p2-2", "p2-3"}) {
		t.Errorf("titles = %v", titles(got))
	}
}

func TestSurprisePlanFailures(t *testing.T) {
	searchErr := errors.New("search failed")
	_, err := NewPlanner(&fakeTokens{token: "t"}, &fakeCatalog{playlistErr: searchErr}).SurprisePlan(context.Background(), mood.Sad)
	if !errors.Is(err, searchErr) {
		t.Errorf("error = %v, want search error", err)
	}

	tokenErr := errors.New("no token")
	_, err = NewPlanner(&fakeTokens{err: tokenErr}, &fakeCatalog{}).SurprisePlan(context.Background(), mood.Sad)
	if !errors.Is(err, tokenErr) {
		t.Errorf("error = %v, want token error", err)
	}

	got, err := NewPlanner(&fakeTokens{token: "t"}, &fakeCatalog{}).SurprisePlan(context.Background(), mood.Sad)
	if err != nil || len(got) != 0 {
		t.Errorf("no playlists: got %v, %v; want empty, nil", got, err)
	}
}

func TestSurpriseQuery(t *testing.T) {
	tests := map[mood.Type]string{
		mood.Happy:     "happy upbeat feel good",
		mood.Sad:       "sad melancholy emotional",
		mood.Energetic: "energetic pump up workout",
		mood.Calm:      "calm peaceful relaxing chill",
		"":             "popular music",
	}
	for m, want := range tests {
		if got := SurpriseQuery(m); got != want {
			t.Errorf("SurpriseQuery(%q) = %q, want %q", m, got, want)
		}
	}
}
