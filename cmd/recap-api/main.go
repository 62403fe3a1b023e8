// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package main is the recording recap service: it receives Zoom
// recording.completed webhooks, transcribes and summarizes the recording, and
// posts the recap to the most relevant Slack channel.
package main

import (
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/linuxfoundation/lfx-v2-recording-recap-service/internal/handlers"
	"github.com/linuxfoundation/lfx-v2-recording-recap-service/internal/infrastructure/openai"
	"github.com/linuxfoundation/lfx-v2-recording-recap-service/internal/infrastructure/slack"
	zoomapi "github.com/linuxfoundation/lfx-v2-recording-recap-service/internal/infrastructure/zoom/api"
	zoomwebhook "github.com/linuxfoundation/lfx-v2-recording-recap-service/internal/infrastructure/zoom/webhook"
	"github.com/linuxfoundation/lfx-v2-recording-recap-service/internal/logging"
	"github.com/linuxfoundation/lfx-v2-recording-recap-service/internal/service"
)

func main() {
	// Load a local .env when present; deployed environments set real env vars.
	if err := godotenv.Load(); err == nil {
		slog.Debug("loaded environment from .env file")
	}

	env := parseEnv()
	flags := parseFlags(env.Port)

	logging.InitStructureLogConfig()

	// Initialize provider clients
	zoomClient := zoomapi.NewClient(zoomapi.Config{
		AccountID:    env.Zoom.AccountID,
		ClientID:     env.Zoom.ClientID,
		ClientSecret: env.Zoom.ClientSecret,
	})
	openaiClient := openai.NewClient(openai.Config{
		APIKey:    env.OpenAIAPIKey,
		ChatModel: env.OpenAIModel,
	})
	slackClient := slack.NewClient(slack.Config{
		BotToken: env.SlackBotToken,
	})
	webhookValidator := zoomwebhook.NewValidator(env.ZoomWebhookSecretToken)

	// Initialize services
	recapService := service.NewRecapService(
		zoomClient,
		openaiClient,
		slackClient,
		service.NewSummaryGenerator(openaiClient),
		service.NewChannelRouter(openaiClient, slackClient, env.DefaultSlackChannel),
	)
	webhookService := service.NewZoomWebhookService(webhookValidator, recapService)

	// Initialize handlers
	webhookHandler := handlers.NewWebhookHandler(webhookService)
	healthHandler := handlers.NewHealthHandler(webhookService, recapService)

	// Setup graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	gracefulCloseWG := sync.WaitGroup{}

	httpServer := setupHTTPServer(flags, webhookHandler, healthHandler, &gracefulCloseWG)

	// This next line blocks until SIGINT or SIGTERM is received.
	<-done

	gracefulShutdown(httpServer, &gracefulCloseWG)
}
