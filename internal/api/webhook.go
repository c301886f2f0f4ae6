// Mood Post - Image Mood Music Recommendation Bot
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodpost

package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/moodpost/internal/bot"
	"github.com/tomtom215/moodpost/internal/line"
	"github.com/tomtom215/moodpost/internal/logging"
	"github.com/tomtom215/moodpost/internal/metrics"
	"github.com/tomtom215/moodpost/internal/models"
)

// Webhook receives LINE webhook deliveries.
//
// The signature is checked before anything else. Events are handled
// concurrently and the response is written once all of them finished: 200
// when every event succeeded, 500 when any failed. Events whose
// webhookEventId was already seen are skipped, so LINE redeliveries do not
// run a flow twice.
func (h *Handler) Webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.cfg.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, r, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "Request body too large", err)
			return
		}
		respondError(w, r, http.StatusBadRequest, "READ_ERROR", "Failed to read request body", err)
		return
	}

	payload, err := line.ParseWebhook(h.cfg.ChannelSecret, body, r.Header.Get(line.SignatureHeader))
	switch {
	case errors.Is(err, line.ErrMissingSignature):
		metrics.WebhookSignatureFailures.Inc()
		respondError(w, r, http.StatusUnauthorized, "MISSING_SIGNATURE", line.SignatureHeader+" header required", nil)
		return
	case errors.Is(err, line.ErrInvalidSignature):
		metrics.WebhookSignatureFailures.Inc()
		logging.Ctx(r.Context()).Warn().Str("remote_addr", r.RemoteAddr).Msg("Webhook signature mismatch")
		respondError(w, r, http.StatusUnauthorized, "INVALID_SIGNATURE", "Webhook signature mismatch", nil)
		return
	case err != nil:
		respondError(w, r, http.StatusBadRequest, "INVALID_PAYLOAD", "Invalid webhook payload", err)
		return
	}

	result := h.dispatch(r.Context(), payload.Events)

	if result.Failed > 0 {
		respondJSON(w, r, http.StatusInternalServerError, &models.APIResponse{
			Status: models.StatusError,
			Data:   result,
			Error: &models.APIError{
				Code:    "EVENT_FAILED",
				Message: fmt.Sprintf("%d of %d events failed", result.Failed, result.Received),
			},
		})
		return
	}
	respondJSON(w, r, http.StatusOK, &models.APIResponse{Status: models.StatusSuccess, Data: result})
}

// dispatch handles events concurrently, bounded by cfg.Concurrency, and
// waits for all of them. Handling runs on a context detached from the
// request so a dropped connection does not abort a half-finished flow.
func (h *Handler) dispatch(ctx context.Context, events []line.Event) models.WebhookResult {
	ctx = context.WithoutCancel(ctx)
	result := models.WebhookResult{Received: len(events)}
	var handled, failed atomic.Int32

	var g errgroup.Group
	g.SetLimit(h.cfg.Concurrency)

	for _, le := range events {
		ev := le.BotEvent()
		kind := string(ev.Kind)

		if le.WebhookEventID != "" && !h.seen.SetIfAbsent(le.WebhookEventID, struct{}{}) {
			result.Duplicates++
			metrics.RecordWebhookDuplicate(kind)
			logging.Ctx(ctx).Info().Str("webhook_event_id", le.WebhookEventID).
				Bool("redelivery", le.DeliveryContext.IsRedelivery).Msg("Duplicate webhook event skipped")
			continue
		}

		evCtx := logging.ContextWithNewCorrelationID(ctx)
		g.Go(func() error {
			err := h.handle(evCtx, ev)
			metrics.RecordWebhookEvent(kind, err)
			if err != nil {
				failed.Add(1)
				logging.Ctx(evCtx).Error().Err(err).Str("kind", kind).
					Str("webhook_event_id", le.WebhookEventID).Msg("Webhook event failed")
				return err
			}
			handled.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	result.Handled = int(handled.Load())
	result.Failed = int(failed.Load())
	return result
}

// handle runs one event, turning a panic into an error so a single bad
// event cannot take the process down.
func (h *Handler) handle(ctx context.Context, ev bot.Event) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic handling %s event: %v", ev.Kind, rec)
		}
	}()
	return h.events.Handle(ctx, ev)
}
