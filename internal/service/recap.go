// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"os"
	"strconv"

	"github.com/linuxfoundation/lfx-v2-recording-recap-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-recording-recap-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-recording-recap-service/internal/logging"
	"github.com/linuxfoundation/lfx-v2-recording-recap-service/pkg/concurrent"
	"github.com/linuxfoundation/lfx-v2-recording-recap-service/pkg/utils"
)

// User-facing outcome messages. Responses to the webhook caller stay coarse;
// provider detail goes to the logs only.
const (
	MessageEventReceived        = "Event received"
	MessageNoRecordings         = "No recordings available."
	MessageRecordingURLMissing  = "Recording URL is not available."
	MessageDownloadTokenMissing = "Download token is missing."
	MessageDeliveryFailed       = "Failed to post the meeting summary to Slack."
)

// RecapService orchestrates the recording recap pipeline: fetch the recording
// and participants, download, transcribe, summarize, route, and post. Each
// event is processed synchronously within its webhook request; there is no
// deduplication, so a redelivered event produces a second post.
type RecapService struct {
	source      domain.RecordingSource
	transcriber domain.TranscriptionService
	channels    domain.ChannelClient
	summaries   *SummaryGenerator
	router      *ChannelRouter
	pool        *concurrent.WorkerPool
}

// NewRecapService creates a new RecapService
func NewRecapService(
	source domain.RecordingSource,
	transcriber domain.TranscriptionService,
	channels domain.ChannelClient,
	summaries *SummaryGenerator,
	router *ChannelRouter,
) *RecapService {
	return &RecapService{
		source:      source,
		transcriber: transcriber,
		channels:    channels,
		summaries:   summaries,
		router:      router,
		pool:        concurrent.NewWorkerPool(2),
	}
}

// ServiceReady checks if the service is ready to process requests
func (s *RecapService) ServiceReady() bool {
	return s.source != nil && s.transcriber != nil && s.channels != nil &&
		s.summaries != nil && s.router != nil
}

// ProcessRecording runs the full pipeline for one recording.completed event
// and returns the outcome message for the webhook response. Transcription,
// summarization, and model routing degrade softly; metadata fetch, download,
// and delivery failures abort the request.
func (s *RecapService) ProcessRecording(ctx context.Context, payload models.RecordingCompletedPayload, downloadToken string) (string, error) {
	obj := payload.Object

	if obj.UUID == "" || obj.ID == 0 {
		return "", domain.NewValidationError("missing meeting ID or UUID")
	}

	meeting := models.MeetingRecording{
		MeetingID:     strconv.FormatInt(obj.ID, 10),
		MeetingUUID:   obj.UUID,
		Topic:         utils.CoalesceString(obj.Topic, "No topic"),
		HostEmail:     utils.CoalesceString(obj.HostEmail, "No host email provided"),
		StartTime:     obj.StartTime,
		Duration:      obj.Duration,
		ShareURL:      obj.ShareURL,
		DownloadToken: downloadToken,
	}

	ctx = logging.AppendCtx(ctx,
		slog.String("meeting_id", meeting.MeetingID),
		slog.String("meeting_uuid", meeting.MeetingUUID),
	)

	slog.InfoContext(ctx, "processing recording completed event", "topic", meeting.Topic)

	// The recordings lookup and the participants lookup are independent
	// calls to the meeting platform, so run them in parallel. Participants
	// are enrichment only; their lookup failing never fails the event.
	var participants []string
	err := s.pool.Run(ctx,
		func() error {
			files, passcode, err := s.source.GetRecordingMetadata(ctx, meeting.MeetingUUID)
			if err != nil {
				return err
			}
			meeting.Files = files
			meeting.Passcode = passcode
			return nil
		},
		func() error {
			fetched, err := s.source.GetParticipants(ctx, meeting.MeetingUUID)
			if err != nil {
				slog.WarnContext(ctx, "failed to fetch participants", logging.ErrKey, err)
				return nil
			}
			participants = fetched
			return nil
		},
	)
	if err != nil {
		slog.ErrorContext(ctx, "failed to fetch recording metadata", logging.ErrKey, err)
		return "", domain.NewUnavailableError("failed to fetch recording metadata", err)
	}

	if len(participants) == 0 {
		participants = []string{models.UnknownParticipant}
	}

	file := meeting.FirstSupportedFile()
	if file == nil {
		slog.WarnContext(ctx, "no transcribable recording files", "file_count", len(meeting.Files))
		return MessageNoRecordings, nil
	}

	if file.DownloadURL == "" {
		slog.ErrorContext(ctx, "recording download URL not found")
		return "", domain.NewValidationError(MessageRecordingURLMissing)
	}

	token := utils.CoalesceString(file.DownloadToken, meeting.DownloadToken)
	if token == "" {
		slog.ErrorContext(ctx, "download token not found in the webhook payload")
		return "", domain.NewValidationError(MessageDownloadTokenMissing)
	}

	filePath, err := s.source.DownloadRecording(ctx, file.DownloadURL, token)
	if err != nil {
		slog.ErrorContext(ctx, "failed to download recording", logging.ErrKey, err)
		return "", domain.NewUnavailableError("failed to download recording", err)
	}
	defer func() {
		if removeErr := os.Remove(filePath); removeErr != nil {
			slog.WarnContext(ctx, "failed to remove temporary recording file",
				logging.ErrKey, removeErr, "file_path", filePath)
			return
		}
		slog.InfoContext(ctx, "removed temporary recording file", "file_path", filePath)
	}()

	transcript, err := s.transcriber.TranscribeFile(ctx, filePath)
	if err != nil {
		slog.WarnContext(ctx, "transcription failed", logging.ErrKey, err)
		transcript = ""
	}

	summary := s.buildSummary(ctx, transcript, &meeting, file, participants)

	if err := s.deliver(ctx, meeting.Topic, summary); err != nil {
		return "", err
	}

	return MessageEventReceived, nil
}

// buildSummary produces the complete structured summary for the meeting.
// Meeting details and share details always come from platform metadata; only
// the meeting_summary section is model-generated, and any generation failure
// degrades to placeholder text.
func (s *RecapService) buildSummary(ctx context.Context, transcript string, meeting *models.MeetingRecording, file *models.RecordingFile, participants []string) models.StructuredSummary {
	date, timeOfDay := meeting.DateParts()
	details := models.MeetingDetails{
		Title:        meeting.Topic,
		DateTime:     date + " at " + timeOfDay,
		HostEmail:    meeting.HostEmail,
		MeetingID:    meeting.MeetingID,
		Participants: participants,
		Duration:     meeting.DurationString(),
	}
	share := models.ShareDetails{
		PlayURL:  utils.CoalesceString(file.PlayURL, meeting.ShareURL),
		Password: meeting.Passcode,
	}

	if transcript == "" {
		slog.WarnContext(ctx, "no transcript available, skipping summarization")
		return models.NewPlaceholderSummary(details, share, models.PlaceholderNoTranscription)
	}

	result := s.summaries.Generate(ctx, transcript)
	if result.Status != SummaryOK {
		return models.NewPlaceholderSummary(details, share, "")
	}

	summary := models.StructuredSummary{
		MeetingDetails: details,
		ShareDetails:   share,
		MeetingSummary: result.Section,
	}
	summary.FillMissing()
	return summary
}

// deliver resolves the destination channel, joins it, and posts the recap.
func (s *RecapService) deliver(ctx context.Context, meetingTopic string, summary models.StructuredSummary) error {
	// The candidate list is fetched fresh per event; channel names and
	// topics drift between deliveries.
	candidates, err := s.channels.ListPublicChannels(ctx)
	if err != nil {
		slog.WarnContext(ctx, "failed to list channels for routing", logging.ErrKey, err)
		candidates = nil
	}

	channelID := s.router.ChooseChannel(ctx, meetingTopic, summary.MeetingSummary.SummaryOverview, candidates)
	if channelID == "" {
		slog.InfoContext(ctx, "no routed channel, falling back to default channel")
		channelID, err = s.router.EnsureDefaultChannel(ctx)
		if err != nil {
			slog.ErrorContext(ctx, "failed to find or create the default channel",
				logging.ErrKey, err, logging.PriorityCritical())
			return domain.NewUnavailableError(MessageDeliveryFailed, err)
		}
	}

	if err := s.channels.JoinChannel(ctx, channelID); err != nil {
		slog.ErrorContext(ctx, "failed to join destination channel", logging.ErrKey, err, "channel_id", channelID)
		return domain.NewUnavailableError(MessageDeliveryFailed, err)
	}

	if err := s.channels.PostMessage(ctx, channelID, FormatRecapMessage(summary)); err != nil {
		slog.ErrorContext(ctx, "failed to post recap", logging.ErrKey, err, "channel_id", channelID)
		return domain.NewUnavailableError(MessageDeliveryFailed, err)
	}

	slog.InfoContext(ctx, "posted meeting recap", "channel_id", channelID)

	return nil
}
