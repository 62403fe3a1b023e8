// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/linuxfoundation/lfx-v2-recording-recap-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-recording-recap-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-recording-recap-service/internal/logging"
)

const (
	summarySystemPrompt = "You are a helpful assistant that summarizes meeting transcripts."

	// summaryMaxTokens bounds the generated summary size.
	summaryMaxTokens = 1500
	// summaryTemperature is kept low because the output must parse as JSON.
	summaryTemperature = 0.2
)

// summaryPromptFormat pins the exact JSON shape the model must produce. Only
// the meeting_summary section is trusted from the response; meeting details
// and share details are always overwritten with platform metadata.
const summaryPromptFormat = `You are an assistant that summarizes meeting transcripts into a structured JSON format.

Please provide the summary in the following JSON format:

{
  "meeting_details": {
    "title": "",
    "date_time": "",
    "host_email": "",
    "meeting_id": "",
    "duration": ""
  },
  "share_details": {
    "play_url": "",
    "password": ""
  },
  "meeting_summary": {
    "summary_overview": "",
    "main_topics": [
      {"topic": "", "timestamp": ""}
    ],
    "action_items": [
      {"action_item": "", "responsible": ""}
    ]
  }
}

Transcript:
%TRANSCRIPT%

Please ensure the JSON structure is followed precisely.`

// SummaryStatus classifies the outcome of one summary generation attempt.
type SummaryStatus int

const (
	// SummaryOK means the model output parsed into the expected structure.
	SummaryOK SummaryStatus = iota
	// SummaryMalformed means the model responded but the output did not parse.
	SummaryMalformed
	// SummaryFailed means the completion call itself failed.
	SummaryFailed
)

// SummaryResult is the outcome of generating a summary from a transcript.
// Callers branch on Status; Section is only meaningful for SummaryOK.
type SummaryResult struct {
	Status  SummaryStatus
	Section models.MeetingSummarySection
	Raw     string
	Err     error
}

// SummaryGenerator turns meeting transcripts into structured summaries using
// a text-generation model.
type SummaryGenerator struct {
	completions domain.CompletionService
}

// NewSummaryGenerator creates a new SummaryGenerator
func NewSummaryGenerator(completions domain.CompletionService) *SummaryGenerator {
	return &SummaryGenerator{completions: completions}
}

// Generate asks the model to summarize the transcript and parses the response
// defensively. Model output is never trusted to be well-formed; a response
// that does not parse is reported as malformed, not as a fault.
func (g *SummaryGenerator) Generate(ctx context.Context, transcript string) SummaryResult {
	ctx = logging.AppendCtx(ctx, slog.String("stage", "summarization"))

	prompt := strings.ReplaceAll(summaryPromptFormat, "%TRANSCRIPT%", transcript)

	raw, err := g.completions.CreateCompletion(ctx, domain.CompletionRequest{
		SystemPrompt: summarySystemPrompt,
		UserPrompt:   prompt,
		MaxTokens:    summaryMaxTokens,
		Temperature:  summaryTemperature,
	})
	if err != nil {
		slog.ErrorContext(ctx, "summary generation failed", logging.ErrKey, err)
		return SummaryResult{Status: SummaryFailed, Err: err}
	}

	section, ok := parseSummaryResponse(raw)
	if !ok {
		slog.WarnContext(ctx, "summary response did not parse as JSON", "response_chars", len(raw))
		return SummaryResult{Status: SummaryMalformed, Raw: raw}
	}

	slog.InfoContext(ctx, "summary generation successful",
		"main_topics", len(section.MainTopics), "action_items", len(section.ActionItems))

	return SummaryResult{Status: SummaryOK, Section: section, Raw: raw}
}

// parseSummaryResponse extracts the meeting_summary section from the model
// output. Models sometimes wrap JSON in markdown fences or prose, so after a
// direct parse fails the outermost braces are tried as a fallback.
func parseSummaryResponse(raw string) (models.MeetingSummarySection, bool) {
	candidate := strings.TrimSpace(raw)
	candidate = strings.TrimPrefix(candidate, "```json")
	candidate = strings.TrimPrefix(candidate, "```")
	candidate = strings.TrimSuffix(candidate, "```")
	candidate = strings.TrimSpace(candidate)

	var summary models.StructuredSummary
	if err := json.Unmarshal([]byte(candidate), &summary); err == nil {
		return summary.MeetingSummary, true
	}

	start := strings.Index(candidate, "{")
	end := strings.LastIndex(candidate, "}")
	if start >= 0 && end > start {
		if err := json.Unmarshal([]byte(candidate[start:end+1]), &summary); err == nil {
			return summary.MeetingSummary, true
		}
	}

	return models.MeetingSummarySection{}, false
}
