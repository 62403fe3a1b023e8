// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package openai contains the OpenAI API client used for transcription and
// text generation.
package openai

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	// BaseURL is the base URL for the OpenAI API
	BaseURL = "https://api.openai.com/v1"
	// DefaultClientTimeout bounds every OpenAI request; transcription of long
	// recordings is the slowest call this client makes.
	DefaultClientTimeout = 120 * time.Second
	// DefaultChatModel is the text-generation model used for summaries and
	// channel routing.
	DefaultChatModel = "gpt-4"
	// TranscriptionModel is the speech-to-text model.
	TranscriptionModel = "whisper-1"
)

// Config holds the configuration for the OpenAI client
type Config struct {
	APIKey string
	// Optional: override base URL for testing
	BaseURL string
	// Optional: override the chat model
	ChatModel string
	// Optional: override timeout for HTTP requests
	Timeout time.Duration
}

// Client represents an OpenAI API client
type Client struct {
	httpClient *http.Client
	config     Config
}

// NewClient creates a new OpenAI API client
func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = BaseURL
	}
	if config.ChatModel == "" {
		config.ChatModel = DefaultChatModel
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultClientTimeout
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		config: config,
	}
}

// errorResponse matches the OpenAI API error envelope
type errorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// parseErrorResponse attempts to parse an OpenAI API error response
func parseErrorResponse(statusCode int, body []byte) error {
	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		return fmt.Errorf("openai API error (status %d, type %s): %s", statusCode, errResp.Error.Type, errResp.Error.Message)
	}
	return fmt.Errorf("openai API error (status %d): %s", statusCode, string(body))
}
