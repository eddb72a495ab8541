package handlers

import (
	"net/http"
	"time"

	"pdfchat/internal/contextutil"
	"pdfchat/internal/indexer"
)

// HealthHandler handles HTTP requests for health checks.
type HealthHandler struct {
	status StatusReporter
	now    func() time.Time
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(status StatusReporter) *HealthHandler {
	return &HealthHandler{
		status: status,
		now:    time.Now,
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	// Overall health status: "healthy" or "empty" before the first document is indexed
	Status string `json:"status"`

	// Timestamp of the health check
	Timestamp string `json:"timestamp"`

	Index indexer.IndexStats `json:"index"`

	// Most recent sync run since startup, if any
	LastRun *RunSummary `json:"lastRun,omitempty"`
}

// ServeHTTP handles HTTP requests for health checks.
// It always returns 200; an empty index is reported in the status field.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	stats := h.status.Stats()
	status := "healthy"
	if stats.Chunks == 0 {
		status = "empty"
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: h.now().UTC().Format(time.RFC3339),
		Index:     stats,
	}
	if last := h.status.LastResult(); last != nil {
		summary := summarizeRun(last)
		response.LastRun = &summary
	}

	writeJSON(ctx, w, http.StatusOK, response)
}
