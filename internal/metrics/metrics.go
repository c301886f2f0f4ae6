// Mood Post - Image Mood Music Recommendation Bot
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodpost

// Package metrics defines the Prometheus metrics exported at /metrics.
//
// Metrics are registered on the default registry through promauto when the
// package is loaded. Callers use the Record* helpers rather than touching the
// vectors directly so label values stay consistent.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Webhook Metrics
	WebhookEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_events_total",
			Help: "Total number of LINE webhook events handled",
		},
		[]string{"kind", "result"}, // result: "ok", "error", "duplicate"
	)

	WebhookSignatureFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "webhook_signature_failures_total",
			Help: "Total number of webhook deliveries rejected for a bad signature",
		},
	)

	// Conversation Metrics
	MoodDetections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mood_detections_total",
			Help: "Total number of images scored, by winning mood",
		},
		[]string{"mood"},
	)

	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Total number of recommendation flows, by plan and outcome",
		},
		[]string{"plan", "outcome"}, // outcome: "delivered", "empty", "failed"
	)

	RecommendationItems = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_items",
			Help:    "Number of tracks returned per recommendation flow",
			Buckets: []float64{0, 1, 3, 5, 7, 9},
		},
		[]string{"plan"},
	)

	// Collaborator Metrics
	CollaboratorRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "collaborator_requests_total",
			Help: "Total number of outbound requests to external services",
		},
		[]string{"collaborator", "result"}, // result: "success", "error"
	)

	CollaboratorDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "collaborator_request_duration_seconds",
			Help:    "Duration of outbound requests to external services",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"collaborator"},
	)

	TokenCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "token_cache_lookups_total",
			Help: "Spotify access token cache lookups",
		},
		[]string{"result"}, // result: "hit", "miss"
	)

	// Session Metrics
	SessionsExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sessions_expired_total",
			Help: "Total number of idle sessions removed by the sweeper",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordWebhookEvent counts one handled webhook event.
func RecordWebhookEvent(kind string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	WebhookEventsTotal.WithLabelValues(kind, result).Inc()
}

// RecordWebhookDuplicate counts a redelivered event that was skipped.
func RecordWebhookDuplicate(kind string) {
	WebhookEventsTotal.WithLabelValues(kind, "duplicate").Inc()
}

// RecordMoodDetection counts a scored image.
func RecordMoodDetection(mood string) {
	MoodDetections.WithLabelValues(mood).Inc()
}

// RecordRecommendation records the outcome of a recommendation flow. A
// non-nil err is "failed"; otherwise zero items is "empty".
func RecordRecommendation(plan string, items int, err error) {
	switch {
	case err != nil:
		RecommendationsTotal.WithLabelValues(plan, "failed").Inc()
		return
	case items == 0:
		RecommendationsTotal.WithLabelValues(plan, "empty").Inc()
	default:
		RecommendationsTotal.WithLabelValues(plan, "delivered").Inc()
	}
	RecommendationItems.WithLabelValues(plan).Observe(float64(items))
}

// RecordCollaboratorRequest records one outbound call.
func RecordCollaboratorRequest(collaborator string, duration time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	CollaboratorRequests.WithLabelValues(collaborator, result).Inc()
	CollaboratorDuration.WithLabelValues(collaborator).Observe(duration.Seconds())
}

// RecordTokenCache records a token cache lookup.
func RecordTokenCache(hit bool) {
	if hit {
		TokenCacheHits.WithLabelValues("hit").Inc()
		return
	}
	TokenCacheHits.WithLabelValues("miss").Inc()
}
