// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/linuxfoundation/lfx-v2-recording-recap-service/internal/domain"
)

// MockTranscriptionService implements domain.TranscriptionService for testing
type MockTranscriptionService struct {
	mock.Mock
}

func (m *MockTranscriptionService) TranscribeFile(ctx context.Context, filePath string) (string, error) {
	args := m.Called(ctx, filePath)
	return args.String(0), args.Error(1)
}

// MockCompletionService implements domain.CompletionService for testing
type MockCompletionService struct {
	mock.Mock
}

func (m *MockCompletionService) CreateCompletion(ctx context.Context, req domain.CompletionRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}
