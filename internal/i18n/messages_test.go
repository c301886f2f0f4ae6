// Mood Post - Image Mood Music Recommendation Bot
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodpost

package i18n

import (
	"strings"
	"testing"

	"github.com/tomtom215/moodpost/internal/mood"
)

func TestEveryEnglishKeyIsTranslated(t *testing.T) {
	for k := MessageKey(0); k < numKeys; k++ {
		if catalog[English][k] == "" {
			t.Errorf("English text missing for key %d", k)
		}
	}
}

func TestTextFallsBackToEnglish(t *testing.T) {
	got := Text(Chinese, KeyNoArtists)
	if got != "❌ Please provide at least one artist name!" {
		t.Errorf("Text(zh, KeyNoArtists) = %q", got)
	}
	if Text(Chinese, KeyAnalyzing) != "🎨 正在分析你的圖片...請稍候！" {
		t.Error("Chinese translation should win when present")
	}
	if Text(Locale(9), KeyGreeting) != Text(English, KeyGreeting) {
		t.Error("unknown locale should fall back to English")
	}
	if Text(English, numKeys) != "" {
		t.Error("out of range key should be empty")
	}
}

func TestFormat(t *testing.T) {
	got := Format(English, KeyMoodDetected,
		"description", "Your image radiates happiness and positivity!",
		"mood", "HAPPY",
		"emoji", "😊",
		"details", "Detected: party, smile",
	)
	want := "✨ Your image radiates happiness and positivity!\n\nDetected mood: HAPPY 😊\n\n" +
		"Details: Detected: party, smile\n\n🎵 Reply with 'artist' to use your favorite artists, " +
		"or reply with 'surprise' for random recommendations!"
	if got != want {
		t.Errorf("Format = %q\nwant %q", got, want)
	}

	if got := Format(Chinese, KeySearching, "artists", "周杰倫, 五月天"); got != "🔍 正在搜尋 周杰倫, 五月天 的音樂..." {
		t.Errorf("Format zh = %q", got)
	}

	// A value that looks like a placeholder is not expanded again.
	if got := Format(English, KeySearching, "artists", "{mood}"); !strings.Contains(got, "{mood}") {
		t.Errorf("Format expanded a value: %q", got)
	}
}

func TestParseLocale(t *testing.T) {
	tests := []struct {
		in     string
		want   Locale
		wantOK bool
	}{
		{"en", English, true},
		{"en-US", English, true},
		{"zh", Chinese, true},
		{"zh-TW", Chinese, true},
		{"zh-Hant", Chinese, true},
		{"fr", English, false},
		{"", English, false},
		{"not a tag!", English, false},
	}
	for _, tt := range tests {
		got, ok := ParseLocale(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseLocale(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestMoodDescription(t *testing.T) {
	for _, m := range mood.All {
		if MoodDescription(English, m) != mood.Description(m) {
			t.Errorf("English description for %s differs from scorer", m)
		}
		if MoodDescription(Chinese, m) == "" {
			t.Errorf("no Chinese description for %s", m)
		}
	}
	if MoodDescription(English, mood.Type("jazzy")) != "" {
		t.Error("unknown mood should have no description")
	}
}
