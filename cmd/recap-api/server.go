// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/linuxfoundation/lfx-v2-recording-recap-service/internal/handlers"
	"github.com/linuxfoundation/lfx-v2-recording-recap-service/internal/logging"
	"github.com/linuxfoundation/lfx-v2-recording-recap-service/internal/middleware"
	"github.com/linuxfoundation/lfx-v2-recording-recap-service/pkg/constants"
)

// setupHTTPServer configures and starts the HTTP server
func setupHTTPServer(flags flags, webhookHandler *handlers.WebhookHandler, healthHandler *handlers.HealthHandler, gracefulCloseWG *sync.WaitGroup) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc(constants.ZoomWebhookPath, webhookHandler.HandleZoomWebhook)
	mux.HandleFunc("/livez", healthHandler.HandleLiveness)
	mux.HandleFunc("/readyz", healthHandler.HandleReadiness)
	mux.HandleFunc("/", healthHandler.HandleIndex)

	var handler http.Handler = mux

	// Add HTTP middleware
	// Note: Order matters - RequestIDMiddleware should come first in the chain,
	// so it should be the last middleware added to the handler since it is executed in reverse order.
	handler = middleware.WebhookBodyCaptureMiddleware()(handler)
	handler = middleware.RequestLoggerMiddleware()(handler)
	handler = middleware.RequestIDMiddleware()(handler)

	// Set up http listener in a goroutine using provided command line parameters.
	var addr string
	if flags.Bind == "*" {
		addr = ":" + flags.Port
	} else {
		addr = flags.Bind + ":" + flags.Port
	}
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 3 * time.Second,
	}
	gracefulCloseWG.Add(1)
	go func() {
		slog.With("addr", addr).Debug("starting http server, listening on port " + flags.Port)
		err := httpServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			slog.With(logging.ErrKey, err).Error("http listener error")
			os.Exit(1)
		}
		// Because ErrServerClosed is *immediately* returned when Shutdown is
		// called, not when when Shutdown completes, this must not yet decrement
		// the wait group.
	}()

	return httpServer
}

// gracefulShutdown drains in-flight requests before the process exits.
func gracefulShutdown(httpServer *http.Server, gracefulCloseWG *sync.WaitGroup) {
	slog.Info("shutting down http server")

	shutdownCtx, release := context.WithTimeout(context.Background(), 25*time.Second)
	defer release()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.With(logging.ErrKey, err).Error("http server shutdown error")
	}
	gracefulCloseWG.Done()
	gracefulCloseWG.Wait()

	slog.Info("shutdown complete")
}
