// Package app wires configuration into the sync pipeline, query engine and run history.
package app

import (
	"database/sql"
	"fmt"
	"log/slog"

	"pdfchat/internal/config"
	"pdfchat/internal/drive"
	"pdfchat/internal/http"
	"pdfchat/internal/index"
	"pdfchat/internal/indexer"
	"pdfchat/internal/pdftext"
	"pdfchat/internal/rag"
	"pdfchat/internal/storage"
)

// App holds the long-lived components of a pdfchat process.
type App struct {
	Store    *index.MemoryStore
	Pipeline *indexer.Pipeline
	Engine   *rag.Engine
	// Runs is nil when sync history is disabled.
	Runs *storage.RunRepo

	db *sql.DB
}

// New builds an App from cfg. Missing Drive credentials or folder are logged
// and surface as errors when a sync is triggered.
func New(cfg *config.Config) (*App, error) {
	a := &App{}

	var recorder indexer.RunRecorder
	if cfg.HistoryEnabled() {
		db, err := storage.New(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		if err := storage.Migrate(db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		a.db = db
		a.Runs = storage.NewRunRepo(db)
		recorder = a.Runs
		slog.Info("Database initialized", "path", cfg.DBPath)
	} else {
		slog.Info("Sync history disabled")
	}

	creds, err := drive.LoadCredentials(cfg.ServiceAccountFile, cfg.ClientEmail, cfg.PrivateKey)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to load Google credentials: %w", err)
	}
	if creds == nil {
		slog.Warn("No Google credentials found; sync requests will fail until they are configured")
	} else {
		slog.Info("Google credentials loaded", "origin", creds.Origin, "client_email", creds.ClientEmail())
	}
	if cfg.DriveFolderID == "" {
		slog.Warn("GOOGLE_DRIVE_FOLDER_ID not set; sync requests will fail until it is configured")
	}

	policy, err := indexer.ParsePolicy(cfg.SyncPolicy)
	if err != nil {
		a.Close()
		return nil, err
	}
	scorer, err := rag.ParseScorer(cfg.QueryScorer)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Store = index.NewMemoryStore()
	a.Pipeline = indexer.NewPipeline(
		drive.NewProvider(creds),
		pdftext.NewExtractor(),
		a.Store,
		indexer.NewFixedChunker(cfg.ChunkSize, cfg.ChunkStep),
		recorder,
		indexer.Options{
			FolderID: cfg.DriveFolderID,
			TempDir:  cfg.TempDir,
			Policy:   policy,
			Workers:  cfg.SyncWorkers,
		},
	)
	a.Engine = rag.NewEngine(a.Store,
		rag.WithScorer(scorer),
		rag.WithTopK(cfg.QueryTopK),
		rag.WithExcerptLength(cfg.ExcerptLength),
	)
	slog.Info("Query engine initialized", "scorer", cfg.QueryScorer, "top_k", cfg.QueryTopK, "excerpt_length", cfg.ExcerptLength)

	return a, nil
}

// RouterDeps returns the HTTP router dependencies for a.
func (a *App) RouterDeps() *http.Deps {
	deps := &http.Deps{
		Syncer:   a.Pipeline,
		Answerer: a.Engine,
		Status:   a.Pipeline,
	}
	// Leave Runs as a nil interface, not a typed nil pointer.
	if a.Runs != nil {
		deps.Runs = a.Runs
	}
	return deps
}

// Close releases the database connection, if any.
func (a *App) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}
