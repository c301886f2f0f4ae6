// Mood Post - Image Mood Music Recommendation Bot
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodpost

package line

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
)

// SignatureHeader carries the base64 HMAC-SHA256 of the request body.
const SignatureHeader = "X-Line-Signature"

var (
	// ErrMissingSignature is returned when no signature was sent.
	ErrMissingSignature = errors.New("line: missing signature")

	// ErrInvalidSignature is returned when the signature does not match.
	ErrInvalidSignature = errors.New("line: invalid signature")
)

// VerifySignature checks signature against the HMAC-SHA256 of body keyed
// with the channel secret.
func VerifySignature(channelSecret string, body []byte, signature string) error {
	if signature == "" {
		return ErrMissingSignature
	}
	got, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return ErrInvalidSignature
	}

	mac := hmac.New(sha256.New, []byte(channelSecret))
	mac.Write(body)
	if !hmac.Equal(got, mac.Sum(nil)) {
		return ErrInvalidSignature
	}
	return nil
}

// Sign returns the signature LINE would send for body. Used by tests and
// local tooling that replays webhooks.
func Sign(channelSecret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(channelSecret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
