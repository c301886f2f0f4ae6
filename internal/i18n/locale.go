// Mood Post - Image Mood Music Recommendation Bot
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodpost

// Package i18n holds the localized chat text.
//
// The set of locales is closed: English is the default and the fallback for
// any key a locale does not translate. Tables are arrays indexed by
// MessageKey, so a lookup never allocates and an unknown key is caught by the
// bounds check in Text rather than silently returning "".
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Locale is a supported chat language.
type Locale uint8

const (
	English Locale = iota
	Chinese

	numLocales
)

// Locales lists every supported locale.
var Locales = []Locale{English, Chinese}

// String returns the short code used in postbacks and storage ("en", "zh").
func (l Locale) String() string {
	switch l {
	case English:
		return "en"
	case Chinese:
		return "zh"
	default:
		return "en"
	}
}

// Tag returns the BCP 47 tag for l.
func (l Locale) Tag() language.Tag {
	if l == Chinese {
		return language.Chinese
	}
	return language.English
}

// Valid reports whether l is a known locale.
func (l Locale) Valid() bool {
	return l < numLocales
}

// ParseLocale maps a language code to a supported locale. Region and script
// subtags are ignored, so "zh-TW" and "zh-Hant" both give Chinese. Codes for
// languages we do not carry report false.
func ParseLocale(code string) (Locale, bool) {
	code = strings.TrimSpace(code)
	if code == "" {
		return English, false
	}
	tag, err := language.Parse(code)
	if err != nil {
		return English, false
	}
	base, conf := tag.Base()
	if conf != language.Exact {
		return English, false
	}
	switch base.String() {
	case "en":
		return English, true
	case "zh":
		return Chinese, true
	default:
		return English, false
	}
}
