// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package models contains the data models of the recording recap service.
package models

import "encoding/json"

// Zoom webhook event types handled by the service. Any other event type is
// acknowledged without processing so Zoom does not retry or disable the
// endpoint.
const (
	EventEndpointURLValidation = "endpoint.url_validation"
	EventRecordingCompleted    = "recording.completed"
)

// WebhookEnvelope is the outer structure of every Zoom webhook delivery.
// The payload is kept raw so each event type can decode its own shape.
type WebhookEnvelope struct {
	Event         string          `json:"event"`
	EventTS       int64           `json:"event_ts"`
	Payload       json.RawMessage `json:"payload"`
	DownloadToken string          `json:"download_token"`
}

// URLValidationPayload is the payload of endpoint.url_validation events.
type URLValidationPayload struct {
	PlainToken string `json:"plainToken"`
}

// RecordingCompletedPayload is the payload of recording.completed events.
type RecordingCompletedPayload struct {
	AccountID string          `json:"account_id"`
	Object    RecordingObject `json:"object"`
}

// RecordingObject describes the recorded meeting in a recording.completed
// payload. StartTime is kept as the raw ISO-8601 string because the recap
// message renders its date and time parts separately.
type RecordingObject struct {
	UUID           string          `json:"uuid"`
	ID             int64           `json:"id"`
	HostID         string          `json:"host_id"`
	HostEmail      string          `json:"host_email"`
	Topic          string          `json:"topic"`
	Type           int             `json:"type"`
	StartTime      string          `json:"start_time"`
	Timezone       string          `json:"timezone"`
	Duration       int             `json:"duration"`
	ShareURL       string          `json:"share_url"`
	TotalSize      int64           `json:"total_size"`
	RecordingCount int             `json:"recording_count"`
	RecordingFiles []RecordingFile `json:"recording_files"`
}
