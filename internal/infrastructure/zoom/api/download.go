// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package api

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/linuxfoundation/lfx-v2-recording-recap-service/internal/logging"
)

// supportedDownloadSuffixes are the file suffixes the transcription stage can
// consume. Anything else is rejected before network I/O completes.
var supportedDownloadSuffixes = map[string]bool{
	"mp4": true,
	"m4a": true,
	"mov": true,
}

// DownloadRecording streams the recording at downloadURL to a local temporary
// file, using token as the bearer credential. The file suffix is derived from
// the URL path and must be a supported audio/video container.
//
// Transient network errors are retried with exponential backoff, up to
// MaxAttempts total attempts. An HTTP error status is never retried: the
// server answered, it just said no.
//
// On success the caller owns the returned file and must remove it.
func (c *Client) DownloadRecording(ctx context.Context, downloadURL, token string) (string, error) {
	ctx = logging.AppendCtx(ctx, slog.String("zoom_operation", "download_recording"))

	parsed, err := url.Parse(downloadURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return "", fmt.Errorf("invalid download URL: %q", downloadURL)
	}

	suffix := strings.ToLower(strings.TrimPrefix(path.Ext(parsed.Path), "."))
	if !supportedDownloadSuffixes[suffix] {
		return "", fmt.Errorf("unsupported recording file suffix: %q", suffix)
	}

	var lastErr error
	for attempt := 0; attempt < c.config.MaxAttempts; attempt++ {
		if attempt > 0 {
			backoff := c.downloadBackoff(attempt)
			slog.WarnContext(ctx, "retrying recording download",
				"attempt", attempt+1,
				"max_attempts", c.config.MaxAttempts,
				"backoff", backoff.String(),
				logging.ErrKey, lastErr)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}

		filePath, retryable, err := c.tryDownload(ctx, downloadURL, token, suffix)
		if err == nil {
			slog.InfoContext(ctx, "downloaded recording", "file_path", filePath, "attempt", attempt+1)
			return filePath, nil
		}
		lastErr = err
		if !retryable {
			slog.ErrorContext(ctx, "recording download failed (not retryable)", logging.ErrKey, err)
			return "", err
		}
	}

	slog.ErrorContext(ctx, "recording download failed after all retries",
		"attempts", c.config.MaxAttempts,
		logging.ErrKey, lastErr,
		logging.PriorityCritical())
	return "", fmt.Errorf("download failed after %d attempts: %w", c.config.MaxAttempts, lastErr)
}

// tryDownload performs a single download attempt. The second return value
// reports whether the failure was a transient network error worth retrying.
func (c *Client) tryDownload(ctx context.Context, downloadURL, token, suffix string) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return "", false, fmt.Errorf("failed to create download request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", false, ctx.Err()
		}
		return "", true, fmt.Errorf("download request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", false, fmt.Errorf("download returned status %d: %s", resp.StatusCode, string(body))
	}

	tempFile, err := os.CreateTemp("", "recording-*."+suffix)
	if err != nil {
		return "", false, fmt.Errorf("failed to create temporary file: %w", err)
	}

	if _, err := io.Copy(tempFile, resp.Body); err != nil {
		_ = tempFile.Close()
		_ = os.Remove(tempFile.Name())
		// A failure mid-stream is a network error; the next attempt starts over.
		return "", true, fmt.Errorf("failed to stream recording: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		_ = os.Remove(tempFile.Name())
		return "", false, fmt.Errorf("failed to close temporary file: %w", err)
	}

	return tempFile.Name(), false, nil
}

// downloadBackoff calculates the backoff duration for a retry attempt with
// jitter to avoid thundering herds.
func (c *Client) downloadBackoff(attempt int) time.Duration {
	backoff := float64(c.config.InitialBackoff) * math.Pow(2, float64(attempt-1))
	if time.Duration(backoff) > c.config.MaxBackoff {
		backoff = float64(c.config.MaxBackoff)
	}

	jitter := backoff * 0.25 * (rand.Float64()*2 - 1)
	withJitter := time.Duration(backoff + jitter)
	if withJitter < c.config.InitialBackoff {
		withJitter = c.config.InitialBackoff
	}
	return withJitter
}
