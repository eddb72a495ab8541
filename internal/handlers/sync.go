package handlers

import (
	"context"
	"errors"
	"net/http"

	"pdfchat/internal/contextutil"
	"pdfchat/internal/domain"
)

// SyncHandler handles HTTP requests that trigger a Drive sync.
type SyncHandler struct {
	syncer Syncer
}

// NewSyncHandler creates a new SyncHandler.
func NewSyncHandler(syncer Syncer) *SyncHandler {
	return &SyncHandler{syncer: syncer}
}

// SyncResponse represents the HTTP response payload for a completed sync.
type SyncResponse struct {
	OK             bool                `json:"ok"`
	IndexedFiles   int                 `json:"indexedFiles"`
	IndexedChunks  int                 `json:"indexedChunks"`
	UnchangedFiles int                 `json:"unchangedFiles"`
	FailedFiles    []domain.FailedFile `json:"failedFiles"`
}

// ServeHTTP runs a sync pass. With ?force=true the index is cleared first.
func (h *SyncHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	// The run continues if the client disconnects.
	runCtx := context.WithoutCancel(ctx)

	run := h.syncer.Run
	if r.URL.Query().Get("force") == "true" {
		run = h.syncer.Rebuild
	}

	result, err := run(runCtx)
	if err != nil {
		h.handleSyncError(ctx, w, err)
		return
	}

	failed := result.FailedFiles
	if failed == nil {
		failed = []domain.FailedFile{}
	}
	writeJSON(ctx, w, http.StatusOK, SyncResponse{
		OK:             true,
		IndexedFiles:   result.FilesProcessed,
		IndexedChunks:  result.ChunksIndexed,
		UnchangedFiles: result.FilesUnchanged,
		FailedFiles:    failed,
	})
}

// handleSyncError maps sync errors to HTTP status codes.
func (h *SyncHandler) handleSyncError(ctx context.Context, w http.ResponseWriter, err error) {
	logger := contextutil.LoggerFromContext(ctx)

	switch {
	case errors.Is(err, domain.ErrConfiguration):
		logger.WarnContext(ctx, "sync not configured", "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrAuth):
		logger.WarnContext(ctx, "sync credentials unavailable", "error", err)
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrSyncInProgress):
		logger.InfoContext(ctx, "sync already running")
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrFetch):
		logger.ErrorContext(ctx, "failed to list drive folder", "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		logger.ErrorContext(ctx, "sync failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
