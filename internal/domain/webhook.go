// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package domain

// WebhookValidator validates inbound webhook deliveries.
type WebhookValidator interface {
	// ValidateSignature verifies the keyed hash over the raw request body and
	// timestamp. The body must be the exact bytes received on the wire.
	ValidateSignature(body []byte, signature, timestamp string) error

	// SignToken answers the provider's URL-ownership challenge by signing the
	// supplied plain token with the shared secret.
	SignToken(plainToken string) string
}
