package rest

import (
	"context"
	"log/slog"
	"net/http"
)

type toolProber interface {
	Version(ctx context.Context) (string, bool)
	Invalidate()
}

// ToolHandler exposes the cached yt-dlp probe.
type ToolHandler struct {
	tool toolProber
	log  *slog.Logger
}

// NewToolHandler creates a ToolHandler.
func NewToolHandler(tool toolProber, logger *slog.Logger) *ToolHandler {
	return &ToolHandler{tool: tool, log: logger.With("handler", "tool")}
}

// ToolStatus is the data of the tool endpoints.
type ToolStatus struct {
	Available bool   `json:"available"`
	Version   string `json:"version,omitempty"`
}

// Status handles GET /api/subtitles/tool.
func (h *ToolHandler) Status(w http.ResponseWriter, r *http.Request) {
	version, ok := h.tool.Version(r.Context())
	writeSuccess(w, "Tool status", ToolStatus{Available: ok, Version: version})
}

// Refresh handles POST /api/subtitles/tool/refresh. It drops the cached
// probe and probes again.
func (h *ToolHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.tool.Invalidate()
	version, ok := h.tool.Version(r.Context())
	h.log.InfoContext(r.Context(), "tool probe refreshed", slog.Bool("available", ok), slog.String("version", version))
	writeSuccess(w, "Tool status refreshed", ToolStatus{Available: ok, Version: version})
}
