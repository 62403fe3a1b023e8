// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/linuxfoundation/lfx-v2-recording-recap-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-recording-recap-service/internal/domain/mocks"
	"github.com/linuxfoundation/lfx-v2-recording-recap-service/internal/domain/models"
)

var routingCandidates = []models.ChannelCandidate{
	{ID: "C0000001A", Name: "general", Topic: "company wide"},
	{ID: "C0000002B", Name: "roadmap", Topic: "product planning"},
}

func setupRouter(t *testing.T) (*ChannelRouter, *mocks.MockCompletionService, *mocks.MockChannelClient) {
	t.Helper()
	completions := &mocks.MockCompletionService{}
	channels := &mocks.MockChannelClient{}
	return NewChannelRouter(completions, channels, "bot-lost-meeting-recordings"), completions, channels
}

func TestChooseChannel(t *testing.T) {
	t.Run("accepts a bare channel ID from the known set", func(t *testing.T) {
		router, completions, _ := setupRouter(t)
		completions.On("CreateCompletion", mock.Anything, mock.MatchedBy(func(req domain.CompletionRequest) bool {
			return req.MaxTokens == routerMaxTokens &&
				req.Temperature == 0 &&
				strings.Contains(req.UserPrompt, "Meeting Topic: Roadmap Review") &&
				strings.Contains(req.UserPrompt, "- ID: C0000002B, Name: roadmap, Topic: product planning")
		})).Return("C0000002B", nil)

		got := router.ChooseChannel(context.Background(), "Roadmap Review", "Discussed Q3 roadmap", routingCandidates)
		assert.Equal(t, "C0000002B", got)
		completions.AssertExpectations(t)
	})

	t.Run("prompt lists the ID of every candidate", func(t *testing.T) {
		router, completions, _ := setupRouter(t)
		var prompt string
		completions.On("CreateCompletion", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				prompt = args.Get(1).(domain.CompletionRequest).UserPrompt
			}).
			Return("None", nil)

		router.ChooseChannel(context.Background(), "topic", "overview", routingCandidates)

		// The response format demands an ID, so the prompt must expose one
		// for each candidate.
		for _, ch := range routingCandidates {
			assert.Contains(t, prompt, ch.ID)
		}
	})

	t.Run("extracts an ID embedded in prose", func(t *testing.T) {
		router, completions, _ := setupRouter(t)
		completions.On("CreateCompletion", mock.Anything, mock.Anything).
			Return("The best channel would be C0000002B.", nil)

		got := router.ChooseChannel(context.Background(), "topic", "overview", routingCandidates)
		assert.Equal(t, "C0000002B", got)
	})

	t.Run("none means no destination", func(t *testing.T) {
		router, completions, _ := setupRouter(t)
		completions.On("CreateCompletion", mock.Anything, mock.Anything).Return("None", nil)

		assert.Empty(t, router.ChooseChannel(context.Background(), "topic", "overview", routingCandidates))
	})

	t.Run("hallucinated ID outside the known set is rejected", func(t *testing.T) {
		router, completions, _ := setupRouter(t)
		completions.On("CreateCompletion", mock.Anything, mock.Anything).Return("C9999999Z", nil)

		assert.Empty(t, router.ChooseChannel(context.Background(), "topic", "overview", routingCandidates))
	})

	t.Run("provider failure degrades to no destination", func(t *testing.T) {
		router, completions, _ := setupRouter(t)
		completions.On("CreateCompletion", mock.Anything, mock.Anything).Return("", errors.New("timeout"))

		assert.Empty(t, router.ChooseChannel(context.Background(), "topic", "overview", routingCandidates))
	})

	t.Run("no candidates skips the model call", func(t *testing.T) {
		router, completions, _ := setupRouter(t)

		assert.Empty(t, router.ChooseChannel(context.Background(), "topic", "overview", nil))
		completions.AssertNotCalled(t, "CreateCompletion", mock.Anything, mock.Anything)
	})
}

func TestExtractChannelID(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
	}{
		{name: "bare ID", response: "C012AB3CD", want: "C012AB3CD"},
		{name: "quoted ID", response: `"C012AB3CD"`, want: "C012AB3CD"},
		{name: "ID with whitespace", response: "  C012AB3CD\n", want: "C012AB3CD"},
		{name: "lowercase none", response: "none", want: ""},
		{name: "capitalized none", response: "None", want: ""},
		{name: "ID inside a sentence", response: "Post it to C012AB3CD please", want: "C012AB3CD"},
		{name: "too short to be an ID", response: "C123", want: ""},
		{name: "unrelated text", response: "general", want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, extractChannelID(tc.response))
		})
	}
}

func TestEnsureDefaultChannel(t *testing.T) {
	t.Run("returns existing channel, matching case-insensitively", func(t *testing.T) {
		router, _, channels := setupRouter(t)
		channels.On("ListPublicChannels", mock.Anything).Return([]models.ChannelCandidate{
			{ID: "C0000009X", Name: "bot-lost-meeting-recordings"},
		}, nil)

		id, err := router.EnsureDefaultChannel(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "C0000009X", id)
		channels.AssertNotCalled(t, "CreateChannel", mock.Anything, mock.Anything)
	})

	t.Run("creates the channel when absent", func(t *testing.T) {
		router, _, channels := setupRouter(t)
		channels.On("ListPublicChannels", mock.Anything).Return([]models.ChannelCandidate{}, nil)
		channels.On("CreateChannel", mock.Anything, "bot-lost-meeting-recordings").Return("C0000010Y", nil)

		id, err := router.EnsureDefaultChannel(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "C0000010Y", id)
	})

	t.Run("create race re-fetches the existing channel", func(t *testing.T) {
		router, _, channels := setupRouter(t)
		channels.On("ListPublicChannels", mock.Anything).Return([]models.ChannelCandidate{}, nil).Once()
		channels.On("CreateChannel", mock.Anything, "bot-lost-meeting-recordings").
			Return("", domain.NewConflictError("channel already exists"))
		channels.On("ListPublicChannels", mock.Anything).Return([]models.ChannelCandidate{
			{ID: "C0000011Z", Name: "bot-lost-meeting-recordings"},
		}, nil).Once()

		id, err := router.EnsureDefaultChannel(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "C0000011Z", id)
	})

	t.Run("list failure is an error", func(t *testing.T) {
		router, _, channels := setupRouter(t)
		channels.On("ListPublicChannels", mock.Anything).Return(nil, errors.New("invalid_auth"))

		_, err := router.EnsureDefaultChannel(context.Background())
		assert.Error(t, err)
	})

	t.Run("create failure is an error", func(t *testing.T) {
		router, _, channels := setupRouter(t)
		channels.On("ListPublicChannels", mock.Anything).Return([]models.ChannelCandidate{}, nil)
		channels.On("CreateChannel", mock.Anything, "bot-lost-meeting-recordings").
			Return("", errors.New("restricted_action"))

		_, err := router.EnsureDefaultChannel(context.Background())
		assert.Error(t, err)
	})
}
