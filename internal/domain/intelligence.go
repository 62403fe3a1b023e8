// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package domain

import "context"

// CompletionRequest describes a single text-generation call.
type CompletionRequest struct {
	SystemPrompt string
	UserPrompt   string
	MaxTokens    int
	Temperature  float32
}

// TranscriptionService converts a local audio/video file into plain text.
type TranscriptionService interface {
	TranscribeFile(ctx context.Context, filePath string) (string, error)
}

// CompletionService generates text from a prompt. Used by the summarization
// stage and the channel router.
type CompletionService interface {
	CreateCompletion(ctx context.Context, req CompletionRequest) (string, error)
}
