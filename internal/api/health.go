// Mood Post - Image Mood Music Recommendation Bot
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodpost

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/moodpost/internal/breaker"
	"github.com/tomtom215/moodpost/internal/models"
)

// Banner is the plain-text body of GET /.
const Banner = "Mood Post LINE Bot is running! 🎵"

const readinessTimeout = 2 * time.Second

// Root answers GET / with the banner.
func (h *Handler) Root(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(Banner))
}

// HealthLive is the liveness probe; it only proves the process serves HTTP.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, &models.APIResponse{
		Status: models.StatusSuccess,
		Data: models.HealthStatus{
			Alive:  true,
			Ready:  !h.draining.Load(),
			Uptime: time.Since(h.startTime).Seconds(),
		},
	})
}

// HealthReady runs every readiness check. Breaker states are reported but
// an open breaker does not fail readiness: it heals by itself.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	ready := !h.draining.Load()
	checks := make(map[string]string, len(h.checks)+1)
	if !ready {
		checks["shutdown"] = "draining"
	}
	for _, c := range h.checks {
		if err := c.Check(ctx); err != nil {
			ready = false
			checks[c.Name] = err.Error()
			continue
		}
		checks[c.Name] = "ok"
	}

	status, code := "ready", http.StatusOK
	if !ready {
		status, code = "not_ready", http.StatusServiceUnavailable
	}
	respondJSON(w, r, code, &models.APIResponse{
		Status: status,
		Data: models.HealthStatus{
			Alive:    true,
			Ready:    ready,
			Uptime:   time.Since(h.startTime).Seconds(),
			Checks:   checks,
			Breakers: breaker.States(),
		},
	})
}
