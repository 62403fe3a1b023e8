// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package handlers

import (
	"net/http"
)

// ReadinessChecker reports whether a service has all of its dependencies wired.
type ReadinessChecker interface {
	ServiceReady() bool
}

// HealthHandler serves the index banner and the health check endpoints.
type HealthHandler struct {
	services []ReadinessChecker
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(services ...ReadinessChecker) *HealthHandler {
	return &HealthHandler{services: services}
}

// HandleIndex responds with a short banner confirming the service is up.
func (h *HealthHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte("The recording recap service is running successfully!"))
}

// HandleLiveness reports process liveness.
func (h *HealthHandler) HandleLiveness(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte("OK"))
}

// HandleReadiness reports whether every service has its dependencies wired.
func (h *HealthHandler) HandleReadiness(w http.ResponseWriter, _ *http.Request) {
	for _, svc := range h.services {
		if !svc.ServiceReady() {
			http.Error(w, "service not ready", http.StatusServiceUnavailable)
			return
		}
	}
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte("OK"))
}
