package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/subvocab-backend/internal/config"
	"github.com/heartmarshall/subvocab-backend/internal/domain"
	"github.com/heartmarshall/subvocab-backend/internal/service/subtitle"
)

const (
	msgToolMissing   = "yt-dlp is not installed. Please install it: https://github.com/yt-dlp/yt-dlp#installation"
	msgNetwork       = "Unable to access the YouTube video. Please check the URL and your internet connection."
	msgNotFound      = "No subtitles found for this video in the specified language."
	msgToolFailed    = "Failed to download subtitles"
	msgServerError   = "Server error"
	msgBadBody       = "Invalid request body"
	msgTooLarge      = "Request body is too large"
	msgTextRequired  = "Text content is required for analysis"
	msgAnalyzeFailed = "Failed to analyze text"
)

// multipartOverhead is headroom for multipart framing on top of the file.
const multipartOverhead = 64 << 10

type subtitleService interface {
	Fetch(ctx context.Context, in subtitle.FetchInput) (*domain.Subtitle, error)
}

type analysisService interface {
	Analyze(ctx context.Context, text string) ([]domain.SentenceAnalysis, error)
	AnalyzeFile(ctx context.Context, name, content string) ([]domain.SentenceAnalysis, error)
}

// SubtitleHandler serves the /api/subtitles endpoints.
type SubtitleHandler struct {
	subtitles subtitleService
	analysis  analysisService
	cfg       config.SubtitlesConfig
	log       *slog.Logger
}

// NewSubtitleHandler creates a SubtitleHandler.
func NewSubtitleHandler(subtitles subtitleService, analysis analysisService, cfg config.SubtitlesConfig, logger *slog.Logger) *SubtitleHandler {
	return &SubtitleHandler{
		subtitles: subtitles,
		analysis:  analysis,
		cfg:       cfg,
		log:       logger.With("handler", "subtitles"),
	}
}

type downloadRequest struct {
	YoutubeURL    string `json:"youtubeUrl"`
	Language      string `json:"language"`
	AutoTranslate bool   `json:"autoTranslate"`
}

type analyzeRequest struct {
	Text string `json:"text"`
}

// Download handles POST /api/subtitles/download.
func (h *SubtitleHandler) Download(w http.ResponseWriter, r *http.Request) {
	var req downloadRequest
	if !h.decode(w, r, &req) {
		return
	}

	sub, err := h.subtitles.Fetch(r.Context(), subtitle.FetchInput{
		URL:           req.YoutubeURL,
		Language:      req.Language,
		AutoTranslate: req.AutoTranslate,
	})
	if err != nil {
		h.handleFetchError(w, r, err)
		return
	}

	writeSuccess(w, "Subtitles downloaded successfully", sub)
}

// Analyze handles POST /api/subtitles/analyze. The run is detached from the
// request context so a client disconnect does not cut it short.
func (h *SubtitleHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, msgTextRequired, "")
		return
	}

	result, err := h.analysis.Analyze(context.WithoutCancel(r.Context()), req.Text)
	if err != nil {
		h.handleAnalyzeError(w, r, err)
		return
	}

	writeSuccess(w, "Text analyzed successfully", result)
}

// AnalyzeFile handles POST /api/subtitles/analyze/file with a multipart
// field named "file".
func (h *SubtitleHandler) AnalyzeFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxFileSize+multipartOverhead)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, msgTooLarge, "")
			return
		}
		writeError(w, http.StatusBadRequest, "Subtitle file is required", err.Error())
		return
	}
	defer file.Close()

	if !h.cfg.IsSupportedFormat(header.Filename) {
		writeError(w, http.StatusBadRequest, "Unsupported file format", header.Filename)
		return
	}
	if header.Size > h.cfg.MaxFileSize {
		writeError(w, http.StatusRequestEntityTooLarge, msgTooLarge, "")
		return
	}

	content, err := io.ReadAll(io.LimitReader(file, h.cfg.MaxFileSize+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Subtitle file could not be read", err.Error())
		return
	}
	if int64(len(content)) > h.cfg.MaxFileSize {
		writeError(w, http.StatusRequestEntityTooLarge, msgTooLarge, "")
		return
	}

	result, err := h.analysis.AnalyzeFile(context.WithoutCancel(r.Context()), header.Filename, string(content))
	if err != nil {
		h.handleAnalyzeError(w, r, err)
		return
	}

	writeSuccess(w, "Text analyzed successfully", result)
}

func (h *SubtitleHandler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, msgTooLarge, "")
			return false
		}
		writeError(w, http.StatusBadRequest, msgBadBody, err.Error())
		return false
	}
	return true
}

func (h *SubtitleHandler) handleFetchError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *domain.ValidationError
	diag := domain.DiagnosticOf(err)

	switch {
	case errors.As(err, &ve) && len(ve.Errors) > 0:
		writeError(w, http.StatusBadRequest, ve.Errors[0].Message, "")
		return
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, msgNotFound, diag)
		return
	case errors.Is(err, domain.ErrToolMissing):
		writeError(w, http.StatusInternalServerError, msgToolMissing, "")
	case errors.Is(err, domain.ErrNetwork):
		writeError(w, http.StatusInternalServerError, msgNetwork, diag)
	case errors.Is(err, domain.ErrToolFailed):
		if diag == "" {
			diag = err.Error()
		}
		writeError(w, http.StatusInternalServerError, msgToolFailed, diag)
	default:
		writeError(w, http.StatusInternalServerError, msgServerError, err.Error())
	}
	h.log.ErrorContext(r.Context(), "subtitle download failed", slog.String("error", err.Error()))
}

func (h *SubtitleHandler) handleAnalyzeError(w http.ResponseWriter, r *http.Request, err error) {
	h.log.ErrorContext(r.Context(), "analysis failed", slog.String("error", err.Error()))
	writeError(w, http.StatusInternalServerError, msgAnalyzeFailed, err.Error())
}
