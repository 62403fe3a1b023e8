// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package domain contains the ports and error taxonomy of the recording recap service.
package domain

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-recording-recap-service/internal/domain/models"
)

// RecordingSource defines the interface for fetching recording artifacts and
// metadata from the meeting platform.
type RecordingSource interface {
	// GetRecordingMetadata returns the recording files and the playback
	// passcode for a meeting. An empty file list with a nil error means the
	// meeting has no recording available.
	GetRecordingMetadata(ctx context.Context, meetingUUID string) ([]models.RecordingFile, string, error)

	// GetParticipants returns the participant emails for a past meeting.
	GetParticipants(ctx context.Context, meetingUUID string) ([]string, error)

	// DownloadRecording streams the recording at downloadURL to local
	// temporary storage using token as the bearer credential and returns the
	// local file path. The caller owns the file and must remove it.
	DownloadRecording(ctx context.Context, downloadURL, token string) (string, error)
}
