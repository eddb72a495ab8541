package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"pdfchat/internal/domain"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)
	if err := Migrate(db); err != nil {
		t.Errorf("second Migrate() error = %v", err)
	}
}

func TestRunRepo_RecordAndGet(t *testing.T) {
	repo := NewRunRepo(openTestDB(t))
	ctx := context.Background()

	started := time.Date(2026, 5, 1, 12, 0, 0, 123, time.UTC)
	run := &domain.SyncResult{
		RunID:          "run-1",
		StartedAt:      started,
		FinishedAt:     started.Add(3 * time.Second),
		FilesProcessed: 2,
		FilesUnchanged: 1,
		ChunksIndexed:  9,
		FailedFiles: []domain.FailedFile{
			{DocumentID: "docB", Filename: "b.pdf", Error: "fetch error: 404"},
		},
	}
	if err := repo.Record(ctx, run); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	got, err := repo.Get(ctx, "run-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !got.StartedAt.Equal(run.StartedAt) || !got.FinishedAt.Equal(run.FinishedAt) {
		t.Errorf("Get() times = %v..%v, want %v..%v", got.StartedAt, got.FinishedAt, run.StartedAt, run.FinishedAt)
	}
	if got.FilesProcessed != 2 || got.FilesUnchanged != 1 || got.ChunksIndexed != 9 {
		t.Errorf("Get() counters = %+v", got)
	}
	if len(got.FailedFiles) != 1 || got.FailedFiles[0] != run.FailedFiles[0] {
		t.Errorf("Get() FailedFiles = %+v, want %+v", got.FailedFiles, run.FailedFiles)
	}
}

func TestRunRepo_Get_NotFound(t *testing.T) {
	repo := NewRunRepo(openTestDB(t))
	if _, err := repo.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestRunRepo_Record_DuplicateRollsBack(t *testing.T) {
	repo := NewRunRepo(openTestDB(t))
	ctx := context.Background()
	run := &domain.SyncResult{RunID: "run-1", StartedAt: time.Now(), FinishedAt: time.Now()}
	if err := repo.Record(ctx, run); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	dup := &domain.SyncResult{
		RunID:       "run-1",
		StartedAt:   time.Now(),
		FinishedAt:  time.Now(),
		FailedFiles: []domain.FailedFile{{DocumentID: "x", Filename: "x.pdf", Error: "e"}},
	}
	if err := repo.Record(ctx, dup); err == nil {
		t.Fatal("Record() duplicate id expected error")
	}

	got, err := repo.Get(ctx, "run-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(got.FailedFiles) != 0 {
		t.Errorf("Get() FailedFiles = %+v, want none after rollback", got.FailedFiles)
	}
}

func TestRunRepo_List(t *testing.T) {
	repo := NewRunRepo(openTestDB(t))
	ctx := context.Background()
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"run-a", "run-b", "run-c"} {
		started := base.Add(time.Duration(i) * time.Minute)
		run := &domain.SyncResult{RunID: id, StartedAt: started, FinishedAt: started.Add(time.Second), FilesProcessed: i}
		if id == "run-b" {
			run.FailedFiles = []domain.FailedFile{
				{DocumentID: "z", Filename: "z.pdf", Error: "decode error"},
				{DocumentID: "y", Filename: "y.pdf", Error: "fetch error"},
			}
		}
		if err := repo.Record(ctx, run); err != nil {
			t.Fatalf("Record(%s) error = %v", id, err)
		}
	}

	tests := []struct {
		name    string
		limit   int
		wantIDs []string
		wantErr bool
	}{
		{name: "all newest first", limit: 10, wantIDs: []string{"run-c", "run-b", "run-a"}},
		{name: "limited", limit: 2, wantIDs: []string{"run-c", "run-b"}},
		{name: "invalid limit", limit: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs, err := repo.List(ctx, tt.limit)
			if (err != nil) != tt.wantErr {
				t.Fatalf("List() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(runs) != len(tt.wantIDs) {
				t.Fatalf("List() returned %d runs, want %d", len(runs), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if runs[i].RunID != id {
					t.Errorf("List()[%d] = %s, want %s", i, runs[i].RunID, id)
				}
			}
			if runs[1].RunID == "run-b" {
				failed := runs[1].FailedFiles
				if len(failed) != 2 || failed[0].DocumentID != "y" || failed[1].DocumentID != "z" {
					t.Errorf("run-b FailedFiles = %+v, want y then z", failed)
				}
			}
		})
	}
}
