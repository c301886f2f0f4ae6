// Mood Post - Image Mood Music Recommendation Bot
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodpost

package bot

import (
	"strconv"
	"strings"

	"github.com/tomtom215/moodpost/internal/i18n"
	"github.com/tomtom215/moodpost/internal/mood"
	"github.com/tomtom215/moodpost/internal/recommend"
)

func textMessage(loc i18n.Locale, key i18n.MessageKey) Message {
	return Message{Text: i18n.Text(loc, key)}
}

func welcomeMessage(loc i18n.Locale) Message {
	return Message{
		Text: i18n.Text(loc, i18n.KeyWelcome),
		QuickReplies: []QuickReply{
			{Label: "English", Data: "action=set_language&lang=en", DisplayText: "English"},
			{Label: "中文", Data: "action=set_language&lang=zh", DisplayText: "中文"},
		},
	}
}

func moodSummary(loc i18n.Locale, r mood.Result) Message {
	desc := i18n.MoodDescription(loc, r.Mood)
	if desc == "" {
		desc = r.Description
	}
	artistLabel := i18n.Text(loc, i18n.KeyButtonArtist)
	surpriseLabel := i18n.Text(loc, i18n.KeyButtonSurprise)
	return Message{
		Text: i18n.Format(loc, i18n.KeyMoodDetected,
			"description", desc,
			"mood", r.Mood.Upper(),
			"emoji", r.Mood.Emoji(),
			"details", r.Details,
		),
		QuickReplies: []QuickReply{
			{Label: artistLabel, Data: PostbackArtistMode, DisplayText: artistLabel},
			{Label: surpriseLabel, Data: PostbackSurpriseMode, DisplayText: surpriseLabel},
		},
	}
}

func recommendationsMessage(loc i18n.Locale, m mood.Type, items []recommend.Item) Message {
	if len(items) == 0 {
		return textMessage(loc, i18n.KeyNoRecommendations)
	}

	var b strings.Builder
	b.WriteString(i18n.Format(loc, i18n.KeyRecommendations, "mood", m.Upper()))
	for i, it := range items {
		b.WriteString(i18n.Format(loc, i18n.KeyRecommendationItem,
			"n", strconv.Itoa(i+1),
			"title", it.Title,
			"artist", it.Artist,
			"url", it.URL,
		))
	}
	b.WriteString(i18n.Text(loc, i18n.KeyAnotherImage))
	return Message{Text: b.String()}
}
