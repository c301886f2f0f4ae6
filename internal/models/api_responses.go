// Mood Post - Image Mood Music Recommendation Bot
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodpost

// Package models defines the JSON envelopes returned by the HTTP endpoints.
package models

import (
	"time"
)

// Response status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// APIResponse wraps every JSON answer of the HTTP surface.
//
// Example webhook acknowledgement:
//
//	{
//	  "status": "success",
//	  "data": {"received": 2, "handled": 1, "duplicates": 1, "failed": 0},
//	  "metadata": {"timestamp": "2026-03-01T12:00:00Z", "request_id": "1f0c..."}
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {"code": "INVALID_SIGNATURE", "message": "Webhook signature mismatch"},
//	  "metadata": {"timestamp": "2026-03-01T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data,omitempty"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata accompanies every response.
type Metadata struct {
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
}

// APIError is the error body: a machine-readable code and a message.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// WebhookResult summarises one webhook delivery.
type WebhookResult struct {
	Received   int `json:"received"`
	Handled    int `json:"handled"`
	Duplicates int `json:"duplicates"`
	Failed     int `json:"failed"`
}

// HealthStatus is the body of the health endpoints.
type HealthStatus struct {
	Alive    bool              `json:"alive"`
	Ready    bool              `json:"ready"`
	Uptime   float64           `json:"uptime_seconds"`
	Checks   map[string]string `json:"checks,omitempty"`
	Breakers map[string]string `json:"breakers,omitempty"`
}
