// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package slack contains the Slack Web API client used to deliver recaps.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	// BaseURL is the base URL for the Slack Web API
	BaseURL = "https://slack.com/api"
	// DefaultClientTimeout is the default HTTP client timeout for Slack API requests
	DefaultClientTimeout = 30 * time.Second
)

// Well-known Slack API error reasons the service reacts to.
const (
	ErrAlreadyInChannel = "already_in_channel"
	ErrNameTaken        = "name_taken"
	ErrChannelNotFound  = "channel_not_found"
	ErrMissingScope     = "missing_scope"
)

// Config holds the configuration for the Slack client
type Config struct {
	BotToken string
	// Optional: override base URL for testing
	BaseURL string
	// Optional: override timeout for HTTP requests
	Timeout time.Duration
}

// Client represents a Slack Web API client
type Client struct {
	httpClient *http.Client
	config     Config
}

// NewClient creates a new Slack Web API client
func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = BaseURL
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

// APIError is a Slack Web API failure with its provider-specific reason.
type APIError struct {
	Method string
	Reason string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("slack API error (%s): %s", e.Method, e.Reason)
}

// callJSON POSTs a JSON body to the given API method and decodes the envelope
// into out, which must embed the ok/error fields.
func (c *Client) callJSON(ctx context.Context, method string, body any, out envelopeReader) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal %s request: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/"+method, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	return c.do(req, method, out)
}

// callGet performs a GET against the given API method with query parameters.
func (c *Client) callGet(ctx context.Context, method string, params url.Values, out envelopeReader) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/"+method+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", method, err)
	}

	return c.do(req, method, out)
}

func (c *Client) do(req *http.Request, method string, out envelopeReader) error {
	req.Header.Set("Authorization", "Bearer "+c.config.BotToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", method, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", method, err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned status %d: %s", method, resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse %s response: %w", method, err)
	}

	if ok, reason := out.status(); !ok {
		return &APIError{Method: method, Reason: reason}
	}

	return nil
}

// envelope is the ok/error pair present in every Slack API response.
// The accessor is named status, not envelope, so the promoted field of
// embedding response types does not shadow the method.
type envelope struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

func (e envelope) status() (bool, string) {
	return e.OK, e.Error
}

// envelopeReader is implemented by response types embedding envelope.
type envelopeReader interface {
	status() (bool, string)
}
