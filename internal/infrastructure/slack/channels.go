// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package slack

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/linuxfoundation/lfx-v2-recording-recap-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-recording-recap-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-recording-recap-service/internal/logging"
)

// conversationsPageLimit is the page size requested from conversations.list.
const conversationsPageLimit = "1000"

type conversationsListResponse struct {
	envelope
	Channels []struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Topic struct {
			Value string `json:"value"`
		} `json:"topic"`
	} `json:"channels"`
	ResponseMetadata struct {
		NextCursor string `json:"next_cursor"`
	} `json:"response_metadata"`
}

// ListPublicChannels returns every public channel in the workspace, following
// pagination cursors until exhausted. Names and topics are lower-cased so
// callers can match against them case-insensitively.
func (c *Client) ListPublicChannels(ctx context.Context) ([]models.ChannelCandidate, error) {
	ctx = logging.AppendCtx(ctx, slog.String("slack_operation", "conversations_list"))

	var channels []models.ChannelCandidate
	cursor := ""
	for {
		params := url.Values{
			"types": []string{"public_channel"},
			"limit": []string{conversationsPageLimit},
		}
		if cursor != "" {
			params.Set("cursor", cursor)
		}

		var page conversationsListResponse
		if err := c.callGet(ctx, "conversations.list", params, &page); err != nil {
			slog.ErrorContext(ctx, "failed to list channels", logging.ErrKey, err)
			return nil, err
		}

		for _, ch := range page.Channels {
			channels = append(channels, models.ChannelCandidate{
				ID:    ch.ID,
				Name:  strings.ToLower(ch.Name),
				Topic: strings.ToLower(ch.Topic.Value),
			})
		}

		cursor = page.ResponseMetadata.NextCursor
		if cursor == "" {
			break
		}
	}

	slog.DebugContext(ctx, "listed public channels", "count", len(channels))

	return channels, nil
}

type joinChannelRequest struct {
	Channel string `json:"channel"`
}

// JoinChannel joins the bot to the given channel. Already being a member is
// treated as success.
func (c *Client) JoinChannel(ctx context.Context, channelID string) error {
	ctx = logging.AppendCtx(ctx, slog.String("slack_operation", "conversations_join"))

	var resp struct {
		envelope
	}
	err := c.callJSON(ctx, "conversations.join", joinChannelRequest{Channel: channelID}, &resp)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Reason == ErrAlreadyInChannel {
			slog.DebugContext(ctx, "already a member of channel", "channel_id", channelID)
			return nil
		}
		slog.ErrorContext(ctx, "failed to join channel", logging.ErrKey, err, "channel_id", channelID)
		return err
	}

	return nil
}

type createChannelRequest struct {
	Name string `json:"name"`
}

type createChannelResponse struct {
	envelope
	Channel struct {
		ID string `json:"id"`
	} `json:"channel"`
}

// CreateChannel creates a public channel and returns its ID. A name collision
// surfaces as a conflict error so the caller can re-fetch the existing channel.
func (c *Client) CreateChannel(ctx context.Context, name string) (string, error) {
	ctx = logging.AppendCtx(ctx, slog.String("slack_operation", "conversations_create"))

	var resp createChannelResponse
	err := c.callJSON(ctx, "conversations.create", createChannelRequest{Name: name}, &resp)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Reason == ErrNameTaken {
			return "", domain.NewConflictError(fmt.Sprintf("channel %q already exists", name), err)
		}
		slog.ErrorContext(ctx, "failed to create channel", logging.ErrKey, err, "channel_name", name)
		return "", err
	}

	slog.InfoContext(ctx, "created channel", "channel_name", name, "channel_id", resp.Channel.ID)

	return resp.Channel.ID, nil
}
