package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/lexops/casechron/internal/fileproc"
	"github.com/lexops/casechron/middleware"
	"github.com/lexops/casechron/services/extraction"
	"github.com/lexops/casechron/utils"
	"go.uber.org/zap"
)

// ChronologyRequest is the JSON request body for a chronology build.
type ChronologyRequest struct {
	CaseDescription string            `json:"case_description"`
	Documents       []DocumentPayload `json:"documents" validate:"required,min=1,dive"`
}

// DocumentPayload is one pre-extracted document.
type DocumentPayload struct {
	Name string `json:"name" validate:"required"`
	Text string `json:"text" validate:"required"`
}

// ChronologyResponse carries the rendered report plus build metadata.
type ChronologyResponse struct {
	Markdown   string   `json:"markdown"`
	EventCount int      `json:"event_count"`
	Warnings   []string `json:"warnings"`
}

// ChronologyBuilder defines the orchestration operation handlers depend on.
type ChronologyBuilder interface {
	BuildChronology(ctx context.Context, docs []extraction.Document, caseDescription string) (*extraction.Result, error)
}

// ChronologyHandler handles chronology-related HTTP requests
type ChronologyHandler struct {
	service        ChronologyBuilder
	logger         *zap.Logger
	maxUploadBytes int64
}

// NewChronologyHandler creates a new ChronologyHandler
func NewChronologyHandler(service ChronologyBuilder, maxUploadBytes int64, logger *zap.Logger) *ChronologyHandler {
	return &ChronologyHandler{
		service:        service,
		logger:         logger,
		maxUploadBytes: maxUploadBytes,
	}
}

// HandleBuild handles POST /api/v1/chronology
func (h *ChronologyHandler) HandleBuild(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestIDFromContext(ctx)

	var req ChronologyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to parse request body",
			zap.String("request_id", requestID),
			zap.Error(err))
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	docs := make([]extraction.Document, len(req.Documents))
	for i, doc := range req.Documents {
		docs[i] = extraction.Document{Name: doc.Name, Text: doc.Text}
	}

	h.build(w, r, docs, req.CaseDescription)
}

// HandleUpload handles POST /api/v1/chronology/upload with multipart
// PDF or text files under the "documents" field.
func (h *ChronologyHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestIDFromContext(r.Context())

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		h.logger.Warn("failed to parse multipart form",
			zap.String("request_id", requestID),
			zap.Error(err))
		_ = utils.WriteBadRequest(w, "Invalid multipart request", nil)
		return
	}

	files := r.MultipartForm.File["documents"]
	if len(files) == 0 {
		_ = utils.WriteBadRequest(w, "At least one document file is required", nil)
		return
	}

	docs := make([]extraction.Document, 0, len(files))
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			_ = utils.WriteBadRequest(w, "Failed to read uploaded file "+header.Filename, nil)
			return
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			_ = utils.WriteBadRequest(w, "Failed to read uploaded file "+header.Filename, nil)
			return
		}

		text, err := fileproc.ExtractText(header.Filename, data)
		if err != nil {
			// An unreadable file is a per-document problem; keep it in
			// the batch with empty text so it surfaces as a warning.
			h.logger.Warn("failed to extract text from upload",
				zap.String("request_id", requestID),
				zap.String("file", header.Filename),
				zap.Error(err))
			text = ""
		}
		docs = append(docs, extraction.Document{Name: header.Filename, Text: text})
	}

	h.build(w, r, docs, r.FormValue("case_description"))
}

func (h *ChronologyHandler) build(w http.ResponseWriter, r *http.Request, docs []extraction.Document, caseDescription string) {
	ctx := r.Context()
	requestID := middleware.GetRequestIDFromContext(ctx)

	h.logger.Debug("building chronology",
		zap.String("request_id", requestID),
		zap.Int("documents", len(docs)))

	result, err := h.service.BuildChronology(ctx, docs, caseDescription)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	h.logger.Info("chronology built",
		zap.String("request_id", requestID),
		zap.Int("events", len(result.Events)),
		zap.Int("warnings", len(result.Warnings)))

	_ = utils.WriteOK(w, ChronologyResponse{
		Markdown:   result.Markdown,
		EventCount: len(result.Events),
		Warnings:   result.Warnings,
	})
}
