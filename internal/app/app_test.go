package app

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"pdfchat/internal/config"
	"pdfchat/internal/domain"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		ServiceAccountFile: filepath.Join(dir, "missing.json"),
		TempDir:            filepath.Join(dir, "tmp"),
		ChunkSize:          100,
		ChunkStep:          100,
		SyncPolicy:         "replace",
		SyncWorkers:        1,
		QueryTopK:          5,
		ExcerptLength:      400,
		QueryScorer:        "substring",
		DBPath:             filepath.Join(dir, "pdfchat.db"),
	}
}

func TestNew_WithHistory(t *testing.T) {
	a, err := New(testConfig(t))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer a.Close()

	if a.Runs == nil {
		t.Fatal("Runs should be set when history is enabled")
	}
	if a.RouterDeps().Runs == nil {
		t.Error("RouterDeps().Runs should be set when history is enabled")
	}

	runs, err := a.Runs.List(context.Background(), 5)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("len(runs) = %d, want 0", len(runs))
	}
}

func TestNew_HistoryDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.DBPath = config.HistoryDisabled

	a, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer a.Close()

	if a.Runs != nil {
		t.Error("Runs should be nil when history is disabled")
	}
	if deps := a.RouterDeps(); deps.Runs != nil {
		t.Errorf("RouterDeps().Runs = %#v, want nil interface", deps.Runs)
	}
}

func TestNew_SyncFailsWithoutConfiguration(t *testing.T) {
	cfg := testConfig(t)
	cfg.DBPath = config.HistoryDisabled

	a, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer a.Close()

	if _, err := a.Pipeline.Run(context.Background()); !errors.Is(err, domain.ErrConfiguration) {
		t.Errorf("Run() without folder error = %v, want ErrConfiguration", err)
	}

	cfg.DriveFolderID = "folder-1"
	b, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer b.Close()

	if _, err := b.Pipeline.Run(context.Background()); !errors.Is(err, domain.ErrAuth) {
		t.Errorf("Run() without credentials error = %v, want ErrAuth", err)
	}
}

func TestNew_InvalidPolicy(t *testing.T) {
	cfg := testConfig(t)
	cfg.SyncPolicy = "merge"

	if _, err := New(cfg); err == nil {
		t.Error("New() with unknown sync policy should fail")
	}
}

func TestNew_PartialCredentials(t *testing.T) {
	cfg := testConfig(t)
	cfg.ClientEmail = "svc@project.iam.gserviceaccount.com"

	if _, err := New(cfg); err == nil {
		t.Error("New() with email but no private key should fail")
	}
}
