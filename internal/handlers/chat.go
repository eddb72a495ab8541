package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"pdfchat/internal/contextutil"
	"pdfchat/internal/domain"
)

// ChatHandler handles HTTP requests for questions against the index.
type ChatHandler struct {
	answerer Answerer
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(answerer Answerer) *ChatHandler {
	return &ChatHandler{answerer: answerer}
}

// ChatRequest represents the HTTP request payload for chat.
type ChatRequest struct {
	Question string `json:"question"`
}

// ContextExcerpt is one matched chunk in a chat response.
type ContextExcerpt struct {
	Filename string `json:"filename"`
	Excerpt  string `json:"excerpt"`
}

// ChatResponse represents the HTTP response payload for chat.
type ChatResponse struct {
	Answer  string           `json:"answer"`
	Context []ContextExcerpt `json:"context"`
}

// ServeHTTP handles HTTP requests for chat.
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	// An empty body is a missing question, not a malformed one.
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	answer, err := h.answerer.Answer(ctx, req.Question)
	if err != nil {
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			writeError(w, http.StatusBadRequest, validationErr.Message)
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "Invalid input")
			return
		}
		logger.ErrorContext(ctx, "failed to answer question", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := ChatResponse{
		Answer:  answer.Summary,
		Context: make([]ContextExcerpt, 0, len(answer.Matches)),
	}
	for _, m := range answer.Matches {
		resp.Context = append(resp.Context, ContextExcerpt{Filename: m.Filename, Excerpt: m.Excerpt})
	}

	logger.DebugContext(ctx, "answered question", "matches", len(resp.Context))
	writeJSON(ctx, w, http.StatusOK, resp)
}
