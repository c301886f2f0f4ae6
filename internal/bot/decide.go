// Mood Post - Image Mood Music Recommendation Bot
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodpost

package bot

import (
	"net/url"
	"strings"

	"github.com/tomtom215/moodpost/internal/i18n"
	"github.com/tomtom215/moodpost/internal/mood"
	"github.com/tomtom215/moodpost/internal/recommend"
	"github.com/tomtom215/moodpost/internal/session"
)

// Action is what the machine does in response to an event.
type Action int

const (
	// ActionIgnore does nothing.
	ActionIgnore Action = iota
	// ActionReply replies with Decision.Key and leaves the session alone.
	ActionReply
	// ActionWelcome greets a new follower and offers the language choice.
	ActionWelcome
	// ActionSetLanguage stores Decision.Locale.
	ActionSetLanguage
	// ActionAnalyzeImage scores the image and stores a MoodDetected session.
	ActionAnalyzeImage
	// ActionAskArtists moves the session to AwaitingArtists.
	ActionAskArtists
	// ActionArtistPlan runs the artist plan for Decision.Artists.
	ActionArtistPlan
	// ActionSurprisePlan runs the surprise plan for Decision.Mood.
	ActionSurprisePlan
)

var actionNames = [...]string{
	ActionIgnore:       "ignore",
	ActionReply:        "reply",
	ActionWelcome:      "welcome",
	ActionSetLanguage:  "set_language",
	ActionAnalyzeImage: "analyze_image",
	ActionAskArtists:   "ask_artists",
	ActionArtistPlan:   "artist_plan",
	ActionSurprisePlan: "surprise_plan",
}

func (a Action) String() string {
	if a >= 0 && int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

// Decision is the outcome of Decide.
type Decision struct {
	Action Action
	// Key is the reply text for ActionReply.
	Key i18n.MessageKey
	// Err is the expected condition behind a guidance reply, if any.
	Err error
	// Artists is the parsed list for ActionArtistPlan.
	Artists []string
	// Mood is the detected mood for the recommendation plans.
	Mood mood.Type
	// Locale is the chosen locale for ActionSetLanguage.
	Locale i18n.Locale
}

func reply(key i18n.MessageKey, err error) Decision {
	return Decision{Action: ActionReply, Key: key, Err: err}
}

// Decide maps the current session and an event to a Decision. It has no
// side effects.
func Decide(sess session.Session, ev Event) Decision {
	switch ev.Kind {
	case KindFollow:
		return Decision{Action: ActionWelcome}
	case KindImage:
		return Decision{Action: ActionAnalyzeImage}
	case KindText:
		return decideText(sess, ev.Text)
	case KindPostback:
		return decidePostback(sess, ev.PostbackData)
	case KindUnsupported:
		return reply(i18n.KeyUnsupportedMessage, nil)
	default:
		return Decision{Action: ActionIgnore}
	}
}

func decideText(sess session.Session, text string) Decision {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "artist", "artists":
		if !sess.HasMood() {
			return reply(i18n.KeySendImageFirst, ErrNoSession)
		}
		return Decision{Action: ActionAskArtists, Mood: sess.Mood.Mood}
	case "surprise":
		if !sess.HasMood() {
			return reply(i18n.KeySendImageFirst, ErrNoSession)
		}
		return Decision{Action: ActionSurprisePlan, Mood: sess.Mood.Mood}
	}

	switch sess.Step {
	case session.StepAwaitingArtists:
		artists, err := recommend.ParseArtists(text)
		if err != nil {
			return reply(i18n.KeyNoArtists, err)
		}
		return Decision{Action: ActionArtistPlan, Artists: artists, Mood: sess.Mood.Mood}
	case session.StepMoodDetected:
		return reply(i18n.KeyFallback, nil)
	default:
		return reply(i18n.KeyGreeting, nil)
	}
}

func decidePostback(sess session.Session, data string) Decision {
	values, err := url.ParseQuery(data)
	action := values.Get("action")

	if err == nil && action == "set_language" {
		loc, ok := i18n.ParseLocale(values.Get("lang"))
		if !ok {
			return Decision{Action: ActionIgnore}
		}
		return Decision{Action: ActionSetLanguage, Locale: loc}
	}

	// Menu selections need a scored image, whatever they carry.
	if !sess.HasMood() {
		return reply(i18n.KeySessionExpired, ErrNoSession)
	}
	if err != nil {
		return Decision{Action: ActionIgnore}
	}

	switch action {
	case "artist_mode":
		return Decision{Action: ActionAskArtists, Mood: sess.Mood.Mood}
	case "surprise_mode":
		return Decision{Action: ActionSurprisePlan, Mood: sess.Mood.Mood}
	default:
		return Decision{Action: ActionIgnore}
	}
}
