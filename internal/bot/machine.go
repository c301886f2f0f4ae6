// Mood Post - Image Mood Music Recommendation Bot
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodpost

package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tomtom215/moodpost/internal/i18n"
	"github.com/tomtom215/moodpost/internal/logging"
	"github.com/tomtom215/moodpost/internal/metrics"
	"github.com/tomtom215/moodpost/internal/mood"
	"github.com/tomtom215/moodpost/internal/recommend"
	"github.com/tomtom215/moodpost/internal/session"
)

// Dependencies are the collaborators a Machine drives.
type Dependencies struct {
	Sessions session.Store
	Locales  session.LocaleStore
	Channel  Channel
	Content  ContentFetcher
	Vision   Vision
	Planner  Planner
}

// Machine executes Decisions against its collaborators.
type Machine struct {
	sessions session.Store
	locales  session.LocaleStore
	channel  Channel
	content  ContentFetcher
	vision   Vision
	planner  Planner
}

// NewMachine validates deps and returns a Machine.
func NewMachine(deps Dependencies) (*Machine, error) {
	switch {
	case deps.Sessions == nil:
		return nil, errors.New("bot: session store is required")
	case deps.Locales == nil:
		return nil, errors.New("bot: locale store is required")
	case deps.Channel == nil:
		return nil, errors.New("bot: channel is required")
	case deps.Content == nil:
		return nil, errors.New("bot: content fetcher is required")
	case deps.Vision == nil:
		return nil, errors.New("bot: vision client is required")
	case deps.Planner == nil:
		return nil, errors.New("bot: planner is required")
	}
	return &Machine{
		sessions: deps.Sessions,
		locales:  deps.Locales,
		channel:  deps.Channel,
		content:  deps.Content,
		vision:   deps.Vision,
		planner:  deps.Planner,
	}, nil
}

// Handle processes one event. Failures of Vision, content download or the
// catalog are reported to the user and logged, never returned. Channel and
// store failures are returned.
func (m *Machine) Handle(ctx context.Context, ev Event) error {
	if ev.UserID == "" {
		logging.Ctx(ctx).Debug().Str("kind", string(ev.Kind)).Msg("Event without user id ignored")
		return nil
	}
	ctx = logging.ContextWithUserID(ctx, ev.UserID)
	log := logging.Ctx(ctx)

	sess, err := m.sessions.Get(ctx, ev.UserID)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	loc, err := m.locales.Locale(ctx, ev.UserID)
	if err != nil {
		log.Warn().Err(err).Msg("Locale lookup failed, using English")
		loc = i18n.English
	}

	d := Decide(sess, ev)
	log.Debug().Str("kind", string(ev.Kind)).Str("step", string(sess.Step)).Str("action", d.Action.String()).Msg("Event decided")

	switch d.Action {
	case ActionIgnore:
		return nil

	case ActionReply:
		if d.Err != nil {
			log.Info().Str("reason", d.Err.Error()).Msg("Guiding user")
		}
		return m.reply(ctx, ev, textMessage(loc, d.Key))

	case ActionWelcome:
		return m.reply(ctx, ev, welcomeMessage(loc))

	case ActionSetLanguage:
		if err := m.locales.SetLocale(ctx, ev.UserID, d.Locale); err != nil {
			return fmt.Errorf("store locale: %w", err)
		}
		log.Info().Str("locale", d.Locale.String()).Msg("Language preference set")
		return m.reply(ctx, ev, textMessage(d.Locale, i18n.KeyLanguageSet))

	case ActionAnalyzeImage:
		return m.analyzeImage(ctx, ev, loc)

	case ActionAskArtists:
		sess.Step = session.StepAwaitingArtists
		if err := m.sessions.Set(ctx, sess); err != nil {
			return fmt.Errorf("store session: %w", err)
		}
		return m.reply(ctx, ev, textMessage(loc, i18n.KeyAskArtists))

	case ActionArtistPlan:
		first := Message{Text: i18n.Format(loc, i18n.KeySearching, "artists", strings.Join(d.Artists, ", "))}
		return m.runPlan(ctx, ev, loc, "artist", d.Mood, first, func(ctx context.Context) ([]recommend.Item, error) {
			return m.planner.ArtistPlan(ctx, d.Artists)
		})

	case ActionSurprisePlan:
		first := Message{Text: i18n.Format(loc, i18n.KeySurprising, "mood", string(d.Mood))}
		return m.runPlan(ctx, ev, loc, "surprise", d.Mood, first, func(ctx context.Context) ([]recommend.Item, error) {
			return m.planner.SurprisePlan(ctx, d.Mood)
		})

	default:
		return fmt.Errorf("unhandled action %s", d.Action)
	}
}

func (m *Machine) analyzeImage(ctx context.Context, ev Event, loc i18n.Locale) error {
	log := logging.Ctx(ctx)

	if err := m.reply(ctx, ev, textMessage(loc, i18n.KeyAnalyzing)); err != nil {
		return err
	}

	result, err := m.detectMood(ctx, ev.MessageID)
	if err != nil {
		var ce *CollaboratorError
		if errors.As(err, &ce) {
			log.Error().Err(ce.Err).Str("collaborator", ce.Collaborator).Msg("Image analysis failed")
		} else {
			log.Error().Err(err).Msg("Image analysis failed")
		}
		return m.push(ctx, ev.UserID, textMessage(loc, i18n.KeyAnalysisFailed))
	}

	next := session.Session{UserID: ev.UserID, Step: session.StepMoodDetected, Mood: &result}
	if err := m.sessions.Set(ctx, next); err != nil {
		log.Error().Err(err).Msg("Failed to store session")
		if pushErr := m.push(ctx, ev.UserID, textMessage(loc, i18n.KeyAnalysisFailed)); pushErr != nil {
			return errors.Join(fmt.Errorf("store session: %w", err), pushErr)
		}
		return fmt.Errorf("store session: %w", err)
	}

	metrics.RecordMoodDetection(string(result.Mood))
	log.Info().Str("mood", string(result.Mood)).Str("details", result.Details).Msg("Mood detected")
	return m.push(ctx, ev.UserID, moodSummary(loc, result))
}

func (m *Machine) detectMood(ctx context.Context, messageID string) (mood.Result, error) {
	image, err := m.content.Content(ctx, messageID)
	if err != nil {
		return mood.Result{}, collaboratorErr(CollaboratorLineContent, err)
	}
	analysis, err := m.vision.Analyze(ctx, image)
	if err != nil {
		return mood.Result{}, collaboratorErr(CollaboratorVision, err)
	}
	return mood.Score(analysis), nil
}

// runPlan replies with first, runs plan and pushes the outcome. The session
// is deleted when runPlan returns, whatever happened.
func (m *Machine) runPlan(ctx context.Context, ev Event, loc i18n.Locale, name string, md mood.Type, first Message,
	plan func(context.Context) ([]recommend.Item, error)) error {
	log := logging.Ctx(ctx)
	defer func() {
		if err := m.sessions.Delete(ctx, ev.UserID); err != nil {
			log.Error().Err(err).Msg("Failed to delete session")
		}
	}()

	if err := m.reply(ctx, ev, first); err != nil {
		return err
	}

	items, err := plan(ctx)
	metrics.RecordRecommendation(name, len(items), err)
	if err != nil {
		err = collaboratorErr(CollaboratorSpotify, err)
		log.Error().Err(err).Str("plan", name).Msg("Recommendation failed")
		return m.push(ctx, ev.UserID, textMessage(loc, i18n.KeyRecommendFailed))
	}

	log.Info().Str("plan", name).Int("items", len(items)).Msg("Recommendations ready")
	return m.push(ctx, ev.UserID, recommendationsMessage(loc, md, items))
}

func (m *Machine) reply(ctx context.Context, ev Event, msg Message) error {
	return collaboratorErr(CollaboratorLine, m.channel.Reply(ctx, ev.ReplyToken, msg))
}

func (m *Machine) push(ctx context.Context, userID string, msg Message) error {
	return collaboratorErr(CollaboratorLine, m.channel.Push(ctx, userID, msg))
}
