// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownloadRecording(t *testing.T) {
	var tokenCalls int
	authServer := newAuthServer(t, &tokenCalls)

	t.Run("streams to a temporary file", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer download-token", r.Header.Get("Authorization"))
			_, _ = w.Write([]byte("fake mp4 bytes"))
		}))
		t.Cleanup(server.Close)

		client := newTestClient(t, server.URL, authServer.URL)

		filePath, err := client.DownloadRecording(context.Background(), server.URL+"/rec/download/abc.mp4", "download-token")
		require.NoError(t, err)
		t.Cleanup(func() { _ = os.Remove(filePath) })

		assert.True(t, strings.HasSuffix(filePath, ".mp4"), "suffix should come from the URL path")
		content, err := os.ReadFile(filePath)
		require.NoError(t, err)
		assert.Equal(t, "fake mp4 bytes", string(content))
	})

	t.Run("rejects malformed URLs before network I/O", func(t *testing.T) {
		client := newTestClient(t, "http://unused.invalid", authServer.URL)

		_, err := client.DownloadRecording(context.Background(), "://not-a-url", "token")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid download URL")
	})

	t.Run("rejects unsupported suffixes", func(t *testing.T) {
		client := newTestClient(t, "http://unused.invalid", authServer.URL)

		for _, u := range []string{
			"https://zoom.us/rec/download/abc.vtt",
			"https://zoom.us/rec/download/abc.exe",
			"https://zoom.us/rec/download/abc",
		} {
			_, err := client.DownloadRecording(context.Background(), u, "token")
			require.Error(t, err, "url %s should be rejected", u)
			assert.Contains(t, err.Error(), "unsupported recording file suffix")
		}
	})

	t.Run("http error status fails immediately without retry", func(t *testing.T) {
		var requests atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			requests.Add(1)
			http.Error(w, "expired token", http.StatusUnauthorized)
		}))
		t.Cleanup(server.Close)

		client := newTestClient(t, server.URL, authServer.URL)

		_, err := client.DownloadRecording(context.Background(), server.URL+"/rec/download/abc.m4a", "token")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 401")
		assert.Equal(t, int32(1), requests.Load())
	})

	t.Run("transient network errors are retried", func(t *testing.T) {
		var requests atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			if requests.Add(1) < 3 {
				// Drop the connection without a response to simulate a
				// transient network failure.
				hj, ok := w.(http.Hijacker)
				require.True(t, ok)
				conn, _, err := hj.Hijack()
				require.NoError(t, err)
				_ = conn.Close()
				return
			}
			_, _ = w.Write([]byte("recovered"))
		}))
		t.Cleanup(server.Close)

		client := newTestClient(t, server.URL, authServer.URL)

		filePath, err := client.DownloadRecording(context.Background(), server.URL+"/rec/download/abc.mov", "token")
		require.NoError(t, err)
		t.Cleanup(func() { _ = os.Remove(filePath) })

		assert.Equal(t, int32(3), requests.Load())
		content, err := os.ReadFile(filePath)
		require.NoError(t, err)
		assert.Equal(t, "recovered", string(content))
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		var requests atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			requests.Add(1)
			hj, ok := w.(http.Hijacker)
			require.True(t, ok)
			conn, _, err := hj.Hijack()
			require.NoError(t, err)
			_ = conn.Close()
		}))
		t.Cleanup(server.Close)

		client := newTestClient(t, server.URL, authServer.URL)

		_, err := client.DownloadRecording(context.Background(), server.URL+"/rec/download/abc.mp4", "token")
		require.Error(t, err)
		assert.Equal(t, int32(DefaultMaxAttempts), requests.Load())
	})
}
