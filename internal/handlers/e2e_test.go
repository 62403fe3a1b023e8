// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linuxfoundation/lfx-v2-recording-recap-service/internal/infrastructure/openai"
	"github.com/linuxfoundation/lfx-v2-recording-recap-service/internal/infrastructure/slack"
	zoomapi "github.com/linuxfoundation/lfx-v2-recording-recap-service/internal/infrastructure/zoom/api"
	zoomwebhook "github.com/linuxfoundation/lfx-v2-recording-recap-service/internal/infrastructure/zoom/webhook"
	"github.com/linuxfoundation/lfx-v2-recording-recap-service/internal/middleware"
	"github.com/linuxfoundation/lfx-v2-recording-recap-service/internal/service"
	"github.com/linuxfoundation/lfx-v2-recording-recap-service/pkg/constants"
)

const e2eSecret = "e2e-webhook-secret"

// fakeZoom serves the OAuth token endpoint, the recordings and participants
// APIs, and the recording download.
func fakeZoom(t *testing.T) *httptest.Server {
	t.Helper()

	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/oauth/token":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token": "zoom-token", "token_type": "bearer", "expires_in": 3600}`))

		case strings.HasSuffix(r.URL.Path, "/recordings"):
			assert.Equal(t, "Bearer zoom-token", r.Header.Get("Authorization"))
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"recording_play_passcode": "s3cret",
				"recording_files": []map[string]any{
					{
						"file_type":    "MP4",
						"download_url": server.URL + "/rec/download/abc.mp4",
						"play_url":     server.URL + "/rec/play/abc",
					},
				},
			})

		case strings.HasSuffix(r.URL.Path, "/participants"):
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"participants": [{"user_email": "alice@example.com"}], "next_page_token": ""}`))

		case strings.HasPrefix(r.URL.Path, "/rec/download/"):
			assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
			_, _ = w.Write([]byte("fake mp4 bytes"))

		default:
			t.Errorf("unexpected zoom request: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

// fakeOpenAI answers transcription with a fixed transcript and chat
// completions according to the requested token budget: the summary call and
// the routing call are distinguishable by max_tokens.
func fakeOpenAI(t *testing.T, transcript, routedChannelID string) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/audio/transcriptions":
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]string{"text": transcript})

		case "/chat/completions":
			var req struct {
				MaxTokens int `json:"max_tokens"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

			content := routedChannelID
			if req.MaxTokens > 100 {
				content = `{"meeting_summary": {"summary_overview": "Discussed Q3 roadmap", "main_topics": [{"topic": "Roadmap", "timestamp": "00:01:00"}], "action_items": []}}`
			}

			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"choices": []map[string]any{
					{"message": map[string]string{"content": content}, "finish_reason": "stop"},
				},
			})

		default:
			t.Errorf("unexpected openai request: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

type slackPost struct {
	Channel string `json:"channel"`
	Text    string `json:"text"`
}

// fakeSlack serves a fixed channel list and records posted messages.
func fakeSlack(t *testing.T, posts *[]slackPost) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/conversations.list":
			_, _ = w.Write([]byte(`{
				"ok": true,
				"channels": [
					{"id": "C0000001A", "name": "general", "topic": {"value": "company wide"}},
					{"id": "C0000002B", "name": "roadmap", "topic": {"value": "product planning"}}
				],
				"response_metadata": {"next_cursor": ""}
			}`))

		case "/conversations.join":
			_, _ = w.Write([]byte(`{"ok": true}`))

		case "/chat.postMessage":
			var post slackPost
			require.NoError(t, json.NewDecoder(r.Body).Decode(&post))
			*posts = append(*posts, post)
			_, _ = w.Write([]byte(`{"ok": true, "ts": "1724400000.000100"}`))

		default:
			t.Errorf("unexpected slack request: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

// buildPipeline wires real services against the fake providers.
func buildPipeline(zoomURL, openaiURL, slackURL string) http.Handler {
	zoomClient := zoomapi.NewClient(zoomapi.Config{
		AccountID:      "acct-1",
		ClientID:       "client-id",
		ClientSecret:   "client-secret",
		BaseURL:        zoomURL,
		AuthURL:        zoomURL + "/oauth/token",
		InitialBackoff: time.Millisecond,
	})
	openaiClient := openai.NewClient(openai.Config{APIKey: "openai-key", BaseURL: openaiURL})
	slackClient := slack.NewClient(slack.Config{BotToken: "xoxb-test", BaseURL: slackURL})

	recapService := service.NewRecapService(
		zoomClient,
		openaiClient,
		slackClient,
		service.NewSummaryGenerator(openaiClient),
		service.NewChannelRouter(openaiClient, slackClient, "bot-lost-meeting-recordings"),
	)
	webhookService := service.NewZoomWebhookService(zoomwebhook.NewValidator(e2eSecret), recapService)
	handler := NewWebhookHandler(webhookService)

	return middleware.RequestIDMiddleware()(
		middleware.WebhookBodyCaptureMiddleware()(
			http.HandlerFunc(handler.HandleZoomWebhook),
		),
	)
}

func TestWebhookEndToEnd(t *testing.T) {
	t.Run("recording.completed is routed to the matching channel", func(t *testing.T) {
		var posts []slackPost
		zoom := fakeZoom(t)
		ai := fakeOpenAI(t, "Discussed Q3 roadmap", "C0000002B")
		slackSrv := fakeSlack(t, &posts)

		handler := buildPipeline(zoom.URL, ai.URL, slackSrv.URL)

		body := webhookBody(t, zoom.URL+"/rec/share/xyz")
		timestamp := strconv.FormatInt(time.Now().Unix(), 10)
		w := postWebhook(t, handler, body, map[string]string{
			constants.ZoomSignatureHeader: signBody(e2eSecret, timestamp, body),
			constants.ZoomTimestampHeader: timestamp,
		})

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), service.MessageEventReceived)

		require.Len(t, posts, 1)
		assert.Equal(t, "C0000002B", posts[0].Channel)
		assert.Contains(t, posts[0].Text, "Q3 Planning")
		assert.Contains(t, posts[0].Text, "Discussed Q3 roadmap")
		assert.Contains(t, posts[0].Text, "alice@example.com")
		assert.Contains(t, posts[0].Text, "s3cret")
	})

	t.Run("tampered signature is rejected before any provider call", func(t *testing.T) {
		var posts []slackPost
		zoom := fakeZoom(t)
		ai := fakeOpenAI(t, "irrelevant", "None")
		slackSrv := fakeSlack(t, &posts)

		handler := buildPipeline(zoom.URL, ai.URL, slackSrv.URL)

		body := webhookBody(t, zoom.URL+"/rec/share/xyz")
		timestamp := strconv.FormatInt(time.Now().Unix(), 10)
		w := postWebhook(t, handler, body, map[string]string{
			constants.ZoomSignatureHeader: signBody("wrong-secret", timestamp, body),
			constants.ZoomTimestampHeader: timestamp,
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Empty(t, posts)
	})

	t.Run("url_validation round trip", func(t *testing.T) {
		var posts []slackPost
		zoom := fakeZoom(t)
		ai := fakeOpenAI(t, "irrelevant", "None")
		slackSrv := fakeSlack(t, &posts)

		handler := buildPipeline(zoom.URL, ai.URL, slackSrv.URL)

		body := `{"event": "endpoint.url_validation", "payload": {"plainToken": "qgg8vlvZRS6UYooatFL8Aw"}}`
		timestamp := strconv.FormatInt(time.Now().Unix(), 10)
		w := postWebhook(t, handler, body, map[string]string{
			constants.ZoomSignatureHeader: signBody(e2eSecret, timestamp, body),
			constants.ZoomTimestampHeader: timestamp,
		})

		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "qgg8vlvZRS6UYooatFL8Aw", resp["plainToken"])
		assert.Equal(t, zoomwebhook.NewValidator(e2eSecret).SignToken("qgg8vlvZRS6UYooatFL8Aw"), resp["encryptedToken"])
	})
}
