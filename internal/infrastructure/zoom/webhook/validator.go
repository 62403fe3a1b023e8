// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package webhook handles validation of Zoom webhook deliveries.
package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"
)

// ReplayWindow is the maximum allowed skew between the signed timestamp and
// verification time.
const ReplayWindow = 300 * time.Second

// Validator handles validation of Zoom webhook signatures
type Validator struct {
	secretToken string
	// now is overridable for tests
	now func() time.Time
}

// NewValidator creates a new Zoom webhook validator
func NewValidator(secretToken string) *Validator {
	return &Validator{
		secretToken: secretToken,
		now:         time.Now,
	}
}

// ValidateSignature validates the Zoom webhook signature.
//
// The body must be the exact raw bytes received on the wire, never a
// re-serialization: re-encoding can change key order or whitespace and
// silently break verification.
func (v *Validator) ValidateSignature(body []byte, signature, timestamp string) error {
	if v.secretToken == "" {
		return fmt.Errorf("webhook secret token not configured")
	}

	if signature == "" {
		return fmt.Errorf("missing webhook signature")
	}

	if timestamp == "" {
		return fmt.Errorf("missing webhook timestamp")
	}

	// Parse timestamp for replay protection
	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid timestamp format: %w", err)
	}

	// Compare in seconds against both window bounds; converting an
	// attacker-supplied skew to a time.Duration could overflow.
	now := v.now().Unix()
	window := int64(ReplayWindow / time.Second)
	if ts < now-window || ts > now+window {
		return fmt.Errorf("request timestamp outside replay window")
	}

	// Expected signature: v0=HMAC_SHA256(secret, "v0:timestamp:body")
	message := fmt.Sprintf("v0:%s:%s", timestamp, body)
	h := hmac.New(sha256.New, []byte(v.secretToken))
	h.Write([]byte(message))
	expectedSignature := "v0=" + hex.EncodeToString(h.Sum(nil))

	if !hmac.Equal([]byte(signature), []byte(expectedSignature)) {
		return fmt.Errorf("invalid webhook signature")
	}

	return nil
}

// SignToken signs the plain token of an endpoint.url_validation challenge
// with the shared secret, returning the hex encoded HMAC.
func (v *Validator) SignToken(plainToken string) string {
	h := hmac.New(sha256.New, []byte(v.secretToken))
	h.Write([]byte(plainToken))
	return hex.EncodeToString(h.Sum(nil))
}
