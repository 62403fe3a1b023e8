// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package constants contains shared constants for the recording recap service.
package constants

// Constants for the HTTP request headers
const (
	// RequestIDHeader is the header name for the request ID
	RequestIDHeader string = "X-REQUEST-ID"

	// ZoomSignatureHeader is the header Zoom signs webhook deliveries with
	ZoomSignatureHeader string = "x-zm-signature"

	// ZoomTimestampHeader is the header carrying the Zoom webhook request timestamp
	ZoomTimestampHeader string = "x-zm-request-timestamp"
)

// contextRequestID is the type for the request ID context key
type contextRequestID string

// RequestIDContextID is the context ID for the request ID
const RequestIDContextID contextRequestID = "X-REQUEST-ID"

// ZoomWebhookPath is the path of the Zoom webhook endpoint.
const ZoomWebhookPath = "/webhooks/zoom"
