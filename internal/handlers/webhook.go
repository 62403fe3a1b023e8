// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package handlers contains the HTTP handlers of the recording recap service.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/linuxfoundation/lfx-v2-recording-recap-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-recording-recap-service/internal/logging"
	"github.com/linuxfoundation/lfx-v2-recording-recap-service/internal/middleware"
	"github.com/linuxfoundation/lfx-v2-recording-recap-service/internal/service"
	"github.com/linuxfoundation/lfx-v2-recording-recap-service/pkg/constants"
)

// WebhookHandler handles inbound Zoom webhook deliveries.
type WebhookHandler struct {
	webhookService *service.ZoomWebhookService
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(webhookService *service.ZoomWebhookService) *WebhookHandler {
	return &WebhookHandler{webhookService: webhookService}
}

// webhookResponseBody is the JSON response for regular webhook events.
type webhookResponseBody struct {
	Message string `json:"message"`
}

// urlValidationResponseBody is the JSON response Zoom expects for the
// endpoint.url_validation challenge.
type urlValidationResponseBody struct {
	PlainToken     string `json:"plainToken"`
	EncryptedToken string `json:"encryptedToken"`
}

// HandleZoomWebhook processes one webhook delivery. Responses stay coarse:
// provider and pipeline detail is logged, never returned to the caller.
func (h *WebhookHandler) HandleZoomWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// A panic inside the pipeline must not take down the server or leak
	// internals to the caller.
	defer func() {
		if rec := recover(); rec != nil {
			slog.ErrorContext(ctx, "panic while processing webhook",
				"panic", rec, logging.PriorityCritical())
			writeJSON(w, http.StatusInternalServerError, webhookResponseBody{Message: "Internal server error."})
		}
	}()

	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, webhookResponseBody{Message: "Method not allowed."})
		return
	}

	rawBody, ok := middleware.GetRawBodyFromContext(ctx)
	if !ok {
		// Capture middleware not in the chain; fall back to reading here.
		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, webhookResponseBody{Message: "Invalid request: No data provided"})
			return
		}
		rawBody = body
	}

	var envelope struct {
		Event         string          `json:"event"`
		EventTS       int64           `json:"event_ts"`
		Payload       json.RawMessage `json:"payload"`
		DownloadToken string          `json:"download_token"`
	}
	if err := json.Unmarshal(rawBody, &envelope); err != nil || len(rawBody) == 0 {
		slog.WarnContext(ctx, "invalid webhook request body", logging.ErrKey, err)
		writeJSON(w, http.StatusBadRequest, webhookResponseBody{Message: "Invalid request: No data provided"})
		return
	}

	response, err := h.webhookService.ProcessWebhookEvent(ctx, service.WebhookRequest{
		Event:         envelope.Event,
		EventTS:       envelope.EventTS,
		Payload:       envelope.Payload,
		DownloadToken: envelope.DownloadToken,
		Signature:     r.Header.Get(constants.ZoomSignatureHeader),
		Timestamp:     r.Header.Get(constants.ZoomTimestampHeader),
		RawBody:       rawBody,
	})
	if err != nil {
		writeDomainError(ctx, w, err)
		return
	}

	if response.PlainToken != nil && response.EncryptedToken != nil {
		writeJSON(w, http.StatusOK, urlValidationResponseBody{
			PlainToken:     *response.PlainToken,
			EncryptedToken: *response.EncryptedToken,
		})
		return
	}

	message := service.MessageEventReceived
	if response.Message != nil {
		message = *response.Message
	}
	writeJSON(w, http.StatusOK, webhookResponseBody{Message: message})
}

// writeDomainError maps the error taxonomy onto HTTP statuses with a coarse
// message. The wrapped provider error is already logged where it happened.
func writeDomainError(ctx context.Context, w http.ResponseWriter, err error) {
	message := "Internal server error."
	status := http.StatusInternalServerError

	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		message = domainErr.Message
		switch domainErr.Type {
		case domain.ErrorTypeValidation:
			status = http.StatusBadRequest
		case domain.ErrorTypeUnauthorized:
			status = http.StatusUnauthorized
			message = "Unauthorized"
		case domain.ErrorTypeNotFound:
			status = http.StatusNotFound
		case domain.ErrorTypeConflict:
			status = http.StatusConflict
		case domain.ErrorTypeUnavailable:
			status = http.StatusServiceUnavailable
		case domain.ErrorTypeInternal:
			status = http.StatusInternalServerError
			message = "Internal server error."
		}
	}

	slog.DebugContext(ctx, "webhook request failed", logging.ErrKey, err, "status", status)

	writeJSON(w, status, webhookResponseBody{Message: message})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
