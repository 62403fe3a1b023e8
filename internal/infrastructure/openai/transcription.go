// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/linuxfoundation/lfx-v2-recording-recap-service/internal/logging"
)

// transcriptionResponse matches the OpenAI transcription API response
type transcriptionResponse struct {
	Text string `json:"text"`
}

// TranscribeFile converts a local audio/video file into plain text using the
// speech-to-text API. Callers treat transcription as best-effort enrichment;
// the orchestrator degrades any error here to an empty transcript.
func (c *Client) TranscribeFile(ctx context.Context, filePath string) (string, error) {
	ctx = logging.AppendCtx(ctx, slog.String("openai_operation", "transcribe"))

	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open recording file: %w", err)
	}
	defer func() { _ = file.Close() }()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if err := writer.WriteField("model", TranscriptionModel); err != nil {
		return "", err
	}

	part, err := writer.CreateFormFile("file", filepath.Base(filePath))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("failed to read recording file: %w", err)
	}

	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/audio/transcriptions", body)
	if err != nil {
		return "", fmt.Errorf("failed to create transcription request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.ErrorContext(ctx, "transcription request failed", logging.ErrKey, err)
		return "", fmt.Errorf("transcription request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read transcription response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		err := parseErrorResponse(resp.StatusCode, respBody)
		slog.ErrorContext(ctx, "transcription failed", logging.ErrKey, err, "status", resp.StatusCode)
		return "", err
	}

	var transcription transcriptionResponse
	if err := json.Unmarshal(respBody, &transcription); err != nil {
		return "", fmt.Errorf("failed to parse transcription response: %w", err)
	}

	slog.InfoContext(ctx, "transcription completed", "transcript_chars", len(transcription.Text))

	return transcription.Text, nil
}
