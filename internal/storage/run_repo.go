package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"pdfchat/internal/domain"
)

// timeLayout has fixed-width fractions so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// RunRepo records completed sync runs. It implements indexer.RunRecorder.
type RunRepo struct {
	db *sql.DB
}

// NewRunRepo creates a new RunRepo.
func NewRunRepo(db *sql.DB) *RunRepo {
	return &RunRepo{db: db}
}

// Record inserts a run and its failed files in one transaction.
func (r *RunRepo) Record(ctx context.Context, result *domain.SyncResult) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO sync_runs (id, started_at, finished_at, files_processed, files_unchanged, chunks_indexed)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		result.RunID,
		result.StartedAt.UTC().Format(timeLayout),
		result.FinishedAt.UTC().Format(timeLayout),
		result.FilesProcessed,
		result.FilesUnchanged,
		result.ChunksIndexed,
	)
	if err != nil {
		return fmt.Errorf("failed to insert sync run: %w", err)
	}

	for _, f := range result.FailedFiles {
		if _, err = tx.ExecContext(ctx,
			"INSERT INTO sync_run_failures (run_id, document_id, filename, error) VALUES (?, ?, ?, ?)",
			result.RunID, f.DocumentID, f.Filename, f.Error,
		); err != nil {
			return fmt.Errorf("failed to insert sync failure: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit sync run: %w", err)
	}
	return nil
}

// List returns up to limit runs, newest first, with their failed files.
func (r *RunRepo) List(ctx context.Context, limit int) ([]*domain.SyncResult, error) {
	if limit <= 0 {
		return nil, &domain.ValidationError{Field: "limit", Message: "must be greater than 0"}
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, files_processed, files_unchanged, chunks_indexed
		 FROM sync_runs ORDER BY started_at DESC, id LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query sync runs: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var runs []*domain.SyncResult
	for rows.Next() {
		var run domain.SyncResult
		var startedAt, finishedAt string
		if err := rows.Scan(&run.RunID, &startedAt, &finishedAt, &run.FilesProcessed, &run.FilesUnchanged, &run.ChunksIndexed); err != nil {
			return nil, fmt.Errorf("failed to scan sync run: %w", err)
		}
		if run.StartedAt, err = time.Parse(timeLayout, startedAt); err != nil {
			return nil, fmt.Errorf("failed to parse started_at: %w", err)
		}
		if run.FinishedAt, err = time.Parse(timeLayout, finishedAt); err != nil {
			return nil, fmt.Errorf("failed to parse finished_at: %w", err)
		}
		runs = append(runs, &run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	for _, run := range runs {
		failures, err := r.failures(ctx, run.RunID)
		if err != nil {
			return nil, err
		}
		run.FailedFiles = failures
	}

	return runs, nil
}

// Get returns a single run, or domain.ErrNotFound.
func (r *RunRepo) Get(ctx context.Context, runID string) (*domain.SyncResult, error) {
	var run domain.SyncResult
	var startedAt, finishedAt string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, started_at, finished_at, files_processed, files_unchanged, chunks_indexed
		 FROM sync_runs WHERE id = ?`,
		runID,
	).Scan(&run.RunID, &startedAt, &finishedAt, &run.FilesProcessed, &run.FilesUnchanged, &run.ChunksIndexed)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query sync run: %w", err)
	}
	if run.StartedAt, err = time.Parse(timeLayout, startedAt); err != nil {
		return nil, fmt.Errorf("failed to parse started_at: %w", err)
	}
	if run.FinishedAt, err = time.Parse(timeLayout, finishedAt); err != nil {
		return nil, fmt.Errorf("failed to parse finished_at: %w", err)
	}

	if run.FailedFiles, err = r.failures(ctx, runID); err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *RunRepo) failures(ctx context.Context, runID string) ([]domain.FailedFile, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT document_id, filename, error FROM sync_run_failures WHERE run_id = ? ORDER BY document_id",
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query sync failures: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var failures []domain.FailedFile
	for rows.Next() {
		var f domain.FailedFile
		if err := rows.Scan(&f.DocumentID, &f.Filename, &f.Error); err != nil {
			return nil, fmt.Errorf("failed to scan sync failure: %w", err)
		}
		failures = append(failures, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return failures, nil
}
