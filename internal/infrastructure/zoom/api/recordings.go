// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/linuxfoundation/lfx-v2-recording-recap-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-recording-recap-service/internal/logging"
	"github.com/linuxfoundation/lfx-v2-recording-recap-service/pkg/utils"
)

// recordingMetadataResponse represents the Zoom get-meeting-recordings response
type recordingMetadataResponse struct {
	UUID                  string                 `json:"uuid"`
	ID                    int64                  `json:"id"`
	Topic                 string                 `json:"topic"`
	Password              string                 `json:"password"`
	RecordingPlayPasscode string                 `json:"recording_play_passcode"`
	RecordingFiles        []models.RecordingFile `json:"recording_files"`
}

// GetRecordingMetadata fetches the recording file list and playback passcode
// for a meeting. A meeting with no cloud recording (404) yields an empty file
// list, which callers treat as "no recording available" rather than a fault.
func (c *Client) GetRecordingMetadata(ctx context.Context, meetingUUID string) ([]models.RecordingFile, string, error) {
	ctx = logging.AppendCtx(ctx, slog.String("zoom_operation", "get_recording_metadata"))

	path := fmt.Sprintf("/meetings/%s/recordings", utils.DoubleEscapePathSegment(meetingUUID))
	resp, err := c.doRequest(ctx, http.MethodGet, path)
	if err != nil {
		slog.ErrorContext(ctx, "failed to get recording metadata", logging.ErrKey, err)
		return nil, "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		slog.InfoContext(ctx, "meeting has no cloud recording")
		return []models.RecordingFile{}, "", nil
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		err := parseErrorResponse(body)
		slog.ErrorContext(ctx, "Zoom API returned error", logging.ErrKey, err, "status", resp.StatusCode)
		return nil, "", err
	}

	var metadata recordingMetadataResponse
	if err := json.NewDecoder(resp.Body).Decode(&metadata); err != nil {
		slog.ErrorContext(ctx, "failed to decode recording metadata", logging.ErrKey, err)
		return nil, "", fmt.Errorf("failed to decode recording metadata: %w", err)
	}

	passcode := utils.CoalesceString(metadata.RecordingPlayPasscode, metadata.Password)

	slog.InfoContext(ctx, "retrieved recording metadata",
		"file_count", len(metadata.RecordingFiles),
		"has_passcode", passcode != "")

	return metadata.RecordingFiles, passcode, nil
}

// participantsResponse represents one page of the past-meeting participants API
type participantsResponse struct {
	NextPageToken string `json:"next_page_token"`
	Participants  []struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		UserEmail string `json:"user_email"`
	} `json:"participants"`
}

// GetParticipants fetches the participant emails for a past meeting,
// following next_page_token pagination. Participants without an email fall
// back to their display name.
func (c *Client) GetParticipants(ctx context.Context, meetingUUID string) ([]string, error) {
	ctx = logging.AppendCtx(ctx, slog.String("zoom_operation", "get_participants"))

	basePath := fmt.Sprintf("/past_meetings/%s/participants", utils.DoubleEscapePathSegment(meetingUUID))

	var participants []string
	nextPageToken := ""
	for {
		path := basePath + "?page_size=300"
		if nextPageToken != "" {
			path += "&next_page_token=" + url.QueryEscape(nextPageToken)
		}

		resp, err := c.doRequest(ctx, http.MethodGet, path)
		if err != nil {
			slog.ErrorContext(ctx, "failed to get participants", logging.ErrKey, err)
			return nil, err
		}

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			_ = resp.Body.Close()
			err := parseErrorResponse(body)
			slog.ErrorContext(ctx, "Zoom API returned error", logging.ErrKey, err, "status", resp.StatusCode)
			return nil, err
		}

		var page participantsResponse
		err = json.NewDecoder(resp.Body).Decode(&page)
		_ = resp.Body.Close()
		if err != nil {
			slog.ErrorContext(ctx, "failed to decode participants response", logging.ErrKey, err)
			return nil, fmt.Errorf("failed to decode participants response: %w", err)
		}

		for _, p := range page.Participants {
			if email := utils.CoalesceString(p.UserEmail, p.Name); email != "" {
				participants = append(participants, email)
			}
		}

		nextPageToken = page.NextPageToken
		if nextPageToken == "" {
			break
		}
	}

	slog.InfoContext(ctx, "retrieved meeting participants", "participant_count", len(participants))

	return participants, nil
}
