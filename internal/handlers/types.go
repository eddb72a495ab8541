package handlers

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_syncer.go -package=mocks pdfchat/internal/handlers Syncer
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_answerer.go -package=mocks pdfchat/internal/handlers Answerer
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_run_lister.go -package=mocks pdfchat/internal/handlers RunLister
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_status_reporter.go -package=mocks pdfchat/internal/handlers StatusReporter

import (
	"context"

	"pdfchat/internal/domain"
	"pdfchat/internal/indexer"
)

// Syncer triggers sync runs.
type Syncer interface {
	Run(ctx context.Context) (*domain.SyncResult, error)
	Rebuild(ctx context.Context) (*domain.SyncResult, error)
}

// Answerer answers questions against the index.
type Answerer interface {
	Answer(ctx context.Context, question string) (*domain.Answer, error)
}

// RunLister reads recorded sync runs.
type RunLister interface {
	// List returns up to limit runs, newest first.
	List(ctx context.Context, limit int) ([]*domain.SyncResult, error)
	// Get returns one run or an error wrapping domain.ErrNotFound.
	Get(ctx context.Context, runID string) (*domain.SyncResult, error)
}

// StatusReporter exposes index statistics and the last sync run.
type StatusReporter interface {
	Stats() indexer.IndexStats
	LastResult() *domain.SyncResult
}
