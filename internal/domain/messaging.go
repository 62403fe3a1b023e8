// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package domain

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-recording-recap-service/internal/domain/models"
)

// ChannelClient defines the interface for the team messaging provider.
type ChannelClient interface {
	// ListPublicChannels returns every public channel in the workspace. The
	// list is fetched fresh per call; channel topics and membership change.
	ListPublicChannels(ctx context.Context) ([]models.ChannelCandidate, error)

	// JoinChannel joins the given channel. Already being a member is success.
	JoinChannel(ctx context.Context, channelID string) error

	// CreateChannel creates a public channel and returns its ID. A name
	// collision is reported as a conflict error so callers can re-fetch.
	CreateChannel(ctx context.Context, name string) (string, error)

	// PostMessage posts text to the given channel.
	PostMessage(ctx context.Context, channelID, text string) error
}
