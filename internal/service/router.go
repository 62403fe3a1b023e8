// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/linuxfoundation/lfx-v2-recording-recap-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-recording-recap-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-recording-recap-service/internal/logging"
)

const (
	routerSystemPrompt = "You are a helpful assistant that categorizes information into Slack channels based on relevance."

	// routerMaxTokens is small because the expected response is a single
	// channel ID or the word "none".
	routerMaxTokens = 10
)

// Slack channel IDs start with C followed by at least 7 upper-case
// alphanumerics. The strict pattern matches a bare ID; the embedded pattern
// pulls one out of a descriptive sentence.
var (
	channelIDStrict   = regexp.MustCompile(`^C[A-Z0-9]{7,}$`)
	channelIDEmbedded = regexp.MustCompile(`C[A-Z0-9]{7,}`)
)

// ChannelRouter decides which channel a recap should be posted to. The model
// only nominates a destination; every nomination is checked against the real
// channel list before it is used.
type ChannelRouter struct {
	completions        domain.CompletionService
	channels           domain.ChannelClient
	defaultChannelName string
}

// NewChannelRouter creates a new ChannelRouter
func NewChannelRouter(completions domain.CompletionService, channels domain.ChannelClient, defaultChannelName string) *ChannelRouter {
	return &ChannelRouter{
		completions:        completions,
		channels:           channels,
		defaultChannelName: defaultChannelName,
	}
}

// ChooseChannel asks the model to pick the most relevant channel for the
// meeting and returns its ID, or empty when no trustworthy match was found.
// Routing is best-effort: any failure here means the caller falls back to the
// default channel.
func (r *ChannelRouter) ChooseChannel(ctx context.Context, meetingTopic, summaryOverview string, candidates []models.ChannelCandidate) string {
	ctx = logging.AppendCtx(ctx, slog.String("stage", "channel_routing"))

	if len(candidates) == 0 {
		slog.WarnContext(ctx, "no channel candidates available for routing")
		return ""
	}

	// The model can only answer with an ID it has been shown, so every
	// candidate line carries the ID alongside the name and topic.
	var channelInfo strings.Builder
	for _, ch := range candidates {
		fmt.Fprintf(&channelInfo, "- ID: %s, Name: %s, Topic: %s\n", ch.ID, ch.Name, ch.Topic)
	}

	prompt := fmt.Sprintf(
		"Based on the meeting topic and summary overview, determine the most appropriate Slack channel ID to post the meeting summary to.\n\n"+
			"Meeting Topic: %s\n"+
			"Summary Overview: %s\n\n"+
			"List of available Slack channels:\n%s\n"+
			"Provide only the Slack channel ID (e.g., C012AB3CD). If no suitable channel is found, respond with 'None'.",
		meetingTopic, summaryOverview, channelInfo.String())

	response, err := r.completions.CreateCompletion(ctx, domain.CompletionRequest{
		SystemPrompt: routerSystemPrompt,
		UserPrompt:   prompt,
		MaxTokens:    routerMaxTokens,
		Temperature:  0,
	})
	if err != nil {
		slog.ErrorContext(ctx, "channel routing completion failed", logging.ErrKey, err)
		return ""
	}

	channelID := extractChannelID(response)
	if channelID == "" {
		slog.InfoContext(ctx, "no suitable channel nominated", "response", response)
		return ""
	}

	// Never trust the model: the nominated ID must exist in the workspace.
	for _, ch := range candidates {
		if ch.ID == channelID {
			slog.InfoContext(ctx, "channel routing decision", "channel_id", channelID, "channel_name", ch.Name)
			return channelID
		}
	}

	slog.WarnContext(ctx, "model nominated a channel that does not exist", "channel_id", channelID)
	return ""
}

// extractChannelID pulls a channel ID out of the model response, tolerating
// quotes and surrounding prose. Returns empty for "none" or unusable output.
func extractChannelID(response string) string {
	cleaned := strings.Trim(strings.TrimSpace(response), `"'`)

	if channelIDStrict.MatchString(cleaned) {
		return cleaned
	}

	if strings.EqualFold(cleaned, "none") {
		return ""
	}

	return channelIDEmbedded.FindString(cleaned)
}

// EnsureDefaultChannel returns the ID of the default channel, creating it
// when absent. A create that loses a race to another writer re-fetches the
// channel list and returns the existing ID.
func (r *ChannelRouter) EnsureDefaultChannel(ctx context.Context) (string, error) {
	ctx = logging.AppendCtx(ctx, slog.String("stage", "default_channel"))

	if id, err := r.findChannelByName(ctx, r.defaultChannelName); err != nil {
		return "", err
	} else if id != "" {
		return id, nil
	}

	id, err := r.channels.CreateChannel(ctx, r.defaultChannelName)
	if err != nil {
		if domain.GetErrorType(err) == domain.ErrorTypeConflict {
			slog.InfoContext(ctx, "default channel created concurrently, re-fetching",
				"channel_name", r.defaultChannelName)
			id, lookupErr := r.findChannelByName(ctx, r.defaultChannelName)
			if lookupErr != nil {
				return "", lookupErr
			}
			if id != "" {
				return id, nil
			}
		}
		return "", fmt.Errorf("failed to ensure default channel %q: %w", r.defaultChannelName, err)
	}

	return id, nil
}

// findChannelByName searches the public channel list for a name match,
// case-insensitively. Returns empty without error when not found.
func (r *ChannelRouter) findChannelByName(ctx context.Context, name string) (string, error) {
	channels, err := r.channels.ListPublicChannels(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list channels: %w", err)
	}

	normalized := strings.ToLower(name)
	for _, ch := range channels {
		if ch.Name == normalized {
			return ch.ID, nil
		}
	}

	return "", nil
}
