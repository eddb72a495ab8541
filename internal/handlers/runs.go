package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"pdfchat/internal/contextutil"
	"pdfchat/internal/domain"
)

const (
	defaultRunsLimit = 20
	maxRunsLimit     = 200
)

// RunsHandler serves the recorded sync run history.
type RunsHandler struct {
	runs RunLister
}

// NewRunsHandler creates a new RunsHandler. runs may be nil when history is disabled.
func NewRunsHandler(runs RunLister) *RunsHandler {
	return &RunsHandler{runs: runs}
}

// RunSummary is the JSON form of one sync run.
type RunSummary struct {
	RunID          string              `json:"runId"`
	StartedAt      string              `json:"startedAt"`
	FinishedAt     string              `json:"finishedAt"`
	DurationMS     int64               `json:"durationMs"`
	IndexedFiles   int                 `json:"indexedFiles"`
	UnchangedFiles int                 `json:"unchangedFiles"`
	IndexedChunks  int                 `json:"indexedChunks"`
	FailedFiles    []domain.FailedFile `json:"failedFiles"`
}

// RunsResponse represents the HTTP response payload for the run history.
type RunsResponse struct {
	Runs []RunSummary `json:"runs"`
}

// ServeHTTP lists recent runs. ?limit=N caps the count.
func (h *RunsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	if h.runs == nil {
		writeError(w, http.StatusNotFound, "sync history disabled")
		return
	}

	limit := defaultRunsLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxRunsLimit)
	}

	runs, err := h.runs.List(ctx, limit)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list sync runs", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to list sync runs")
		return
	}

	resp := RunsResponse{Runs: make([]RunSummary, 0, len(runs))}
	for _, run := range runs {
		resp.Runs = append(resp.Runs, summarizeRun(run))
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}

// RunHandler serves a single recorded sync run by id.
type RunHandler struct {
	runs RunLister
}

// NewRunHandler creates a new RunHandler. runs may be nil when history is disabled.
func NewRunHandler(runs RunLister) *RunHandler {
	return &RunHandler{runs: runs}
}

// ServeHTTP returns the run named by the {id} route parameter.
func (h *RunHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	if h.runs == nil {
		writeError(w, http.StatusNotFound, "sync history disabled")
		return
	}

	runID := chi.URLParam(r, "id")
	if runID == "" {
		writeError(w, http.StatusBadRequest, "run id required")
		return
	}

	run, err := h.runs.Get(ctx, runID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "sync run not found")
			return
		}
		logger.ErrorContext(ctx, "failed to get sync run", "run_id", runID, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(ctx, w, http.StatusOK, summarizeRun(run))
}

func summarizeRun(run *domain.SyncResult) RunSummary {
	failed := run.FailedFiles
	if failed == nil {
		failed = []domain.FailedFile{}
	}
	return RunSummary{
		RunID:          run.RunID,
		StartedAt:      run.StartedAt.UTC().Format(time.RFC3339),
		FinishedAt:     run.FinishedAt.UTC().Format(time.RFC3339),
		DurationMS:     run.Duration().Milliseconds(),
		IndexedFiles:   run.FilesProcessed,
		UnchangedFiles: run.FilesUnchanged,
		IndexedChunks:  run.ChunksIndexed,
		FailedFiles:    failed,
	}
}
