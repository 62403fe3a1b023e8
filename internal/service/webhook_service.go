// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package service contains the webhook processing and recap pipeline logic of
// the recording recap service.
package service

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-recording-recap-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-recording-recap-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-recording-recap-service/internal/logging"
	"github.com/linuxfoundation/lfx-v2-recording-recap-service/pkg/utils"
)

// RecordingProcessor runs the recap pipeline for one recording.completed
// event and returns the outcome message for the webhook response.
type RecordingProcessor interface {
	ProcessRecording(ctx context.Context, payload models.RecordingCompletedPayload, downloadToken string) (string, error)
}

// ZoomWebhookService handles Zoom webhook event processing
type ZoomWebhookService struct {
	webhookValidator domain.WebhookValidator
	processor        RecordingProcessor
}

// WebhookRequest represents the webhook processing request
type WebhookRequest struct {
	Event         string
	EventTS       int64
	Payload       json.RawMessage
	DownloadToken string
	Signature     string
	Timestamp     string
	RawBody       []byte
}

// WebhookResponse represents the webhook processing response
type WebhookResponse struct {
	Status         *string
	Message        *string
	PlainToken     *string
	EncryptedToken *string
}

// NewZoomWebhookService creates a new ZoomWebhookService
func NewZoomWebhookService(webhookValidator domain.WebhookValidator, processor RecordingProcessor) *ZoomWebhookService {
	return &ZoomWebhookService{
		webhookValidator: webhookValidator,
		processor:        processor,
	}
}

// ServiceReady checks if the service is ready to process requests
func (s *ZoomWebhookService) ServiceReady() bool {
	return s.webhookValidator != nil && s.processor != nil
}

// ProcessWebhookEvent processes a Zoom webhook event
func (s *ZoomWebhookService) ProcessWebhookEvent(ctx context.Context, req WebhookRequest) (*WebhookResponse, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	if err := s.validateSignature(req); err != nil {
		return nil, err
	}

	ctx = logging.AppendCtx(ctx, slog.String("event_type", req.Event))

	switch req.Event {
	case models.EventEndpointURLValidation:
		return s.handleEndpointValidation(ctx, req)
	case models.EventRecordingCompleted:
		return s.handleRecordingCompleted(ctx, req)
	default:
		// Unhandled events are acknowledged so the provider does not
		// retry deliveries or disable the endpoint.
		slog.InfoContext(ctx, "ignoring unhandled webhook event type")
		return &WebhookResponse{
			Message: utils.StringPtr(MessageEventReceived),
		}, nil
	}
}

// validateRequest validates the webhook request structure
func (s *ZoomWebhookService) validateRequest(req WebhookRequest) error {
	if req.Event == "" {
		return domain.NewValidationError("missing event field")
	}

	if len(req.Payload) == 0 {
		return domain.NewValidationError("missing payload field")
	}

	if req.Signature == "" || req.Timestamp == "" {
		return domain.NewValidationError("missing signature headers")
	}

	return nil
}

// validateSignature validates the webhook signature over the raw body
func (s *ZoomWebhookService) validateSignature(req WebhookRequest) error {
	if err := s.webhookValidator.ValidateSignature(req.RawBody, req.Signature, req.Timestamp); err != nil {
		return domain.NewUnauthorizedError("invalid webhook signature", err)
	}
	return nil
}

// handleEndpointValidation handles the endpoint.url_validation challenge by
// echoing the plain token together with its keyed hash.
func (s *ZoomWebhookService) handleEndpointValidation(ctx context.Context, req WebhookRequest) (*WebhookResponse, error) {
	var payload models.URLValidationPayload
	if err := json.Unmarshal(req.Payload, &payload); err != nil {
		slog.ErrorContext(ctx, "invalid url_validation payload", logging.ErrKey, err)
		return nil, domain.NewValidationError("invalid validation payload format", err)
	}

	if payload.PlainToken == "" {
		slog.ErrorContext(ctx, "missing plainToken in validation payload")
		return nil, domain.NewValidationError("missing plainToken in validation payload")
	}

	slog.InfoContext(ctx, "webhook endpoint validation completed successfully")

	return &WebhookResponse{
		PlainToken:     utils.StringPtr(payload.PlainToken),
		EncryptedToken: utils.StringPtr(s.webhookValidator.SignToken(payload.PlainToken)),
	}, nil
}

// handleRecordingCompleted decodes the payload and runs the recap pipeline
// synchronously; the pipeline outcome decides the webhook response.
func (s *ZoomWebhookService) handleRecordingCompleted(ctx context.Context, req WebhookRequest) (*WebhookResponse, error) {
	var payload models.RecordingCompletedPayload
	if err := json.Unmarshal(req.Payload, &payload); err != nil {
		slog.ErrorContext(ctx, "invalid recording.completed payload", logging.ErrKey, err)
		return nil, domain.NewValidationError("invalid webhook payload format", err)
	}

	message, err := s.processor.ProcessRecording(ctx, payload, req.DownloadToken)
	if err != nil {
		return nil, err
	}

	return &WebhookResponse{
		Status:  utils.StringPtr("success"),
		Message: utils.StringPtr(message),
	}, nil
}
