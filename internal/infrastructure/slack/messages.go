// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package slack

import (
	"context"
	"errors"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-recording-recap-service/internal/logging"
)

type postMessageRequest struct {
	Channel string `json:"channel"`
	Text    string `json:"text"`
}

// PostMessage posts text to the given channel. Delivery is not retried; the
// caller decides whether a failed post is fatal for the request.
func (c *Client) PostMessage(ctx context.Context, channelID, text string) error {
	ctx = logging.AppendCtx(ctx, slog.String("slack_operation", "chat_post_message"))

	var resp struct {
		envelope
	}
	err := c.callJSON(ctx, "chat.postMessage", postMessageRequest{Channel: channelID, Text: text}, &resp)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			switch apiErr.Reason {
			case ErrChannelNotFound:
				slog.ErrorContext(ctx, "channel does not exist or bot cannot see it",
					logging.ErrKey, err, "channel_id", channelID)
			case ErrMissingScope:
				slog.ErrorContext(ctx, "bot token lacks the scope to post messages",
					logging.ErrKey, err, "channel_id", channelID)
			default:
				slog.ErrorContext(ctx, "failed to post message",
					logging.ErrKey, err, "channel_id", channelID)
			}
		} else {
			slog.ErrorContext(ctx, "failed to post message", logging.ErrKey, err, "channel_id", channelID)
		}
		return err
	}

	slog.InfoContext(ctx, "posted message", "channel_id", channelID, "message_chars", len(text))

	return nil
}
