// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package mocks contains testify mocks for the domain ports.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/linuxfoundation/lfx-v2-recording-recap-service/internal/domain/models"
)

// MockRecordingSource implements domain.RecordingSource for testing
type MockRecordingSource struct {
	mock.Mock
}

func (m *MockRecordingSource) GetRecordingMetadata(ctx context.Context, meetingUUID string) ([]models.RecordingFile, string, error) {
	args := m.Called(ctx, meetingUUID)
	files := args.Get(0)
	if files == nil {
		return nil, args.String(1), args.Error(2)
	}
	return files.([]models.RecordingFile), args.String(1), args.Error(2)
}

func (m *MockRecordingSource) GetParticipants(ctx context.Context, meetingUUID string) ([]string, error) {
	args := m.Called(ctx, meetingUUID)
	participants := args.Get(0)
	if participants == nil {
		return nil, args.Error(1)
	}
	return participants.([]string), args.Error(1)
}

func (m *MockRecordingSource) DownloadRecording(ctx context.Context, downloadURL, token string) (string, error) {
	args := m.Called(ctx, downloadURL, token)
	return args.String(0), args.Error(1)
}
