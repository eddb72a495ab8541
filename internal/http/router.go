package http

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"pdfchat/internal/handlers"
)

// Banner is the plain-text body served at the root path.
const Banner = "pdfchat: POST /api/sync-drive to index the Drive folder, POST /api/chat to ask a question.\n"

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Syncer   handlers.Syncer
	Answerer handlers.Answerer
	Status   handlers.StatusReporter
	// Runs is nil when sync history is disabled.
	Runs handlers.RunLister
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(CORS)

	syncHandler := handlers.NewSyncHandler(deps.Syncer)
	chatHandler := handlers.NewChatHandler(deps.Answerer)
	runsHandler := handlers.NewRunsHandler(deps.Runs)
	runHandler := handlers.NewRunHandler(deps.Runs)
	healthHandler := handlers.NewHealthHandler(deps.Status)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/sync-drive", syncHandler)
		r.Method(http.MethodPost, "/chat", chatHandler)
		r.Method(http.MethodGet, "/sync/runs", runsHandler)
		r.Method(http.MethodGet, "/sync/runs/{id}", runHandler)
		r.Method(http.MethodGet, "/health", healthHandler)
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, Banner)
	})

	return r
}
