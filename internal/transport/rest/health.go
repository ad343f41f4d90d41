package rest

import (
	"context"
	"net/http"
	"time"
)

const probeTimeout = 10 * time.Second

// toolChecker reports whether yt-dlp can be executed.
type toolChecker interface {
	Version(ctx context.Context) (string, bool)
}

// modelChecker reports whether a language model is configured.
type modelChecker interface {
	Available() bool
}

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	tool    toolChecker
	model   modelChecker
	version string
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(tool toolChecker, model modelChecker, version string) *HealthHandler {
	return &HealthHandler{tool: tool, model: model, version: version}
}

// HealthResponse is the JSON response for /health and /ready.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Ready is the readiness probe: 200 if yt-dlp is available, 503 if not.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
	defer cancel()

	if _, ok := h.tool.Version(ctx); !ok {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:    "down",
			Timestamp: time.Now(),
		})
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Health is the full health check. A missing tool makes the service "down";
// an unconfigured model only "degraded", since downloads still work.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
	defer cancel()

	components := make(map[string]CompStatus)
	overallStatus := "ok"

	start := time.Now()
	version, ok := h.tool.Version(ctx)
	latency := time.Since(start)

	if !ok {
		components["ytdlp"] = CompStatus{Status: "down"}
		overallStatus = "down"
	} else {
		components["ytdlp"] = CompStatus{
			Status:  "ok",
			Version: version,
			Latency: latency.String(),
		}
	}

	if h.model.Available() {
		components["model"] = CompStatus{Status: "ok"}
	} else {
		components["model"] = CompStatus{Status: "unconfigured"}
		if overallStatus == "ok" {
			overallStatus = "degraded"
		}
	}

	status := http.StatusOK
	if overallStatus == "down" {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, HealthResponse{
		Status:     overallStatus,
		Version:    h.version,
		Components: components,
		Timestamp:  time.Now(),
	})
}
