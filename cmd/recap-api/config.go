// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/linuxfoundation/lfx-v2-recording-recap-service/internal/logging"
)

// flags are the command line flags for the recording recap service.
type flags struct {
	Debug bool
	Port  string
	Bind  string
}

// environment are the environment variables for the recording recap service.
type environment struct {
	Port                   string
	ZoomWebhookSecretToken string
	Zoom                   zoomConfig
	OpenAIAPIKey           string
	OpenAIModel            string
	SlackBotToken          string
	DefaultSlackChannel    string
}

// zoomConfig holds the Zoom Server-to-Server OAuth app credentials
type zoomConfig struct {
	AccountID    string
	ClientID     string
	ClientSecret string
}

// parseFlags parses command line flags for the recording recap service
func parseFlags(defaultPort string) flags {
	var debug = flag.Bool("d", false, "enable debug logging")
	var port = flag.String("p", defaultPort, "listen port")
	var bind = flag.String("bind", "*", "interface to bind on")

	flag.Usage = func() {
		flag.PrintDefaults()
		os.Exit(2)
	}
	flag.Parse()

	// Based on the debug flag, set the log level environment variable used by [logging.InitStructureLogConfig]
	if *debug {
		err := os.Setenv("LOG_LEVEL", "debug")
		if err != nil {
			slog.With(logging.ErrKey, err).Error("error setting log level")
			os.Exit(1)
		}
	}

	return flags{
		Debug: *debug,
		Port:  *port,
		Bind:  *bind,
	}
}

// parseEnv parses environment variables for the recording recap service
func parseEnv() environment {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	defaultSlackChannel := os.Getenv("DEFAULT_SLACK_CHANNEL")
	if defaultSlackChannel == "" {
		defaultSlackChannel = "bot-lost-meeting-recordings"
	}

	return environment{
		Port:                   port,
		ZoomWebhookSecretToken: requireEnv("ZOOM_WEBHOOK_SECRET_TOKEN"),
		Zoom: zoomConfig{
			AccountID:    requireEnv("ZOOM_ACCOUNT_ID"),
			ClientID:     requireEnv("ZOOM_CLIENT_ID"),
			ClientSecret: requireEnv("ZOOM_CLIENT_SECRET"),
		},
		OpenAIAPIKey:        requireEnv("OPENAI_API_KEY"),
		OpenAIModel:         os.Getenv("OPENAI_MODEL"),
		SlackBotToken:       requireEnv("SLACK_BOT_TOKEN"),
		DefaultSlackChannel: defaultSlackChannel,
	}
}

// requireEnv returns the value of a required environment variable, exiting
// when it is not set.
func requireEnv(name string) string {
	value := os.Getenv(name)
	if value == "" {
		slog.Error(name + " environment variable is required but not set")
		os.Exit(1)
	}
	return value
}
