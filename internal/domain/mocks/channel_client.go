// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/linuxfoundation/lfx-v2-recording-recap-service/internal/domain/models"
)

// MockChannelClient implements domain.ChannelClient for testing
type MockChannelClient struct {
	mock.Mock
}

func (m *MockChannelClient) ListPublicChannels(ctx context.Context) ([]models.ChannelCandidate, error) {
	args := m.Called(ctx)
	channels := args.Get(0)
	if channels == nil {
		return nil, args.Error(1)
	}
	return channels.([]models.ChannelCandidate), args.Error(1)
}

func (m *MockChannelClient) JoinChannel(ctx context.Context, channelID string) error {
	args := m.Called(ctx, channelID)
	return args.Error(0)
}

func (m *MockChannelClient) CreateChannel(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}

func (m *MockChannelClient) PostMessage(ctx context.Context, channelID, text string) error {
	args := m.Called(ctx, channelID, text)
	return args.Error(0)
}
