package indexer

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"pdfchat/internal/contextutil"
	"pdfchat/internal/domain"
)

// Policy selects how a re-synced document's chunks reach the store.
type Policy string

const (
	// PolicyReplace drops a document's previous chunks before adding the fresh set,
	// and skips documents whose modification time has not changed.
	PolicyReplace Policy = "replace"
	// PolicyAppend appends every run's chunks without deduplication.
	PolicyAppend Policy = "append"
)

// ParsePolicy converts a config string into a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyReplace, PolicyAppend:
		return Policy(s), nil
	}
	return "", fmt.Errorf("unknown sync policy %q (want %q or %q)", s, PolicyReplace, PolicyAppend)
}

// Options configures a Pipeline.
type Options struct {
	FolderID string
	TempDir  string
	Policy   Policy
	// Workers bounds how many documents are processed at once. Values below 1 mean 1.
	Workers int
}

// Pipeline runs sync passes from a remote folder into the chunk store.
type Pipeline struct {
	sources   SourceProvider
	extractor Extractor
	store     ChunkStore
	chunker   *FixedChunker
	recorder  RunRecorder
	opts      Options
	now       func() time.Time

	// running is held for the duration of a run.
	running sync.Mutex

	mu       sync.Mutex
	versions map[string]time.Time // document id -> modified time at last successful sync
	last     *domain.SyncResult
}

// NewPipeline creates a new sync pipeline. recorder may be nil.
func NewPipeline(
	sources SourceProvider,
	extractor Extractor,
	store ChunkStore,
	chunker *FixedChunker,
	recorder RunRecorder,
	opts Options,
) *Pipeline {
	if chunker == nil {
		chunker = NewFixedChunker(DefaultChunkSize, DefaultChunkStep)
	}
	if opts.Policy == "" {
		opts.Policy = PolicyReplace
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.TempDir == "" {
		opts.TempDir = os.TempDir()
	}
	return &Pipeline{
		sources:   sources,
		extractor: extractor,
		store:     store,
		chunker:   chunker,
		recorder:  recorder,
		opts:      opts,
		now:       time.Now,
		versions:  make(map[string]time.Time),
	}
}

// Run executes one sync pass over the configured folder.
// It fails fast on missing configuration or credentials and when another run
// is active. A failure on a single document is logged and reported in
// SyncResult.FailedFiles without aborting the run.
func (p *Pipeline) Run(ctx context.Context) (*domain.SyncResult, error) {
	return p.run(ctx, false)
}

// Rebuild clears the store and the recorded document versions, then runs a full sync.
func (p *Pipeline) Rebuild(ctx context.Context) (*domain.SyncResult, error) {
	return p.run(ctx, true)
}

// LastResult returns the most recent completed run, or nil.
func (p *Pipeline) LastResult() *domain.SyncResult {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

func (p *Pipeline) run(ctx context.Context, rebuild bool) (*domain.SyncResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if p.opts.FolderID == "" {
		return nil, fmt.Errorf("%w: GOOGLE_DRIVE_FOLDER_ID not set", domain.ErrConfiguration)
	}

	if !p.running.TryLock() {
		return nil, domain.ErrSyncInProgress
	}
	defer p.running.Unlock()

	source, err := p.sources.Source(ctx)
	if err != nil {
		return nil, err
	}

	docs, err := source.ListDocuments(ctx, p.opts.FolderID)
	if err != nil {
		return nil, domain.WrapError(err, "failed to list folder "+p.opts.FolderID)
	}

	if err := os.MkdirAll(p.opts.TempDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	if rebuild {
		p.store.Clear()
		p.mu.Lock()
		p.versions = make(map[string]time.Time)
		p.mu.Unlock()
		logger.InfoContext(ctx, "cleared index before rebuild")
	}

	result := &domain.SyncResult{
		RunID:     uuid.New().String(),
		StartedAt: p.now(),
	}
	logger.InfoContext(ctx, "starting sync", "run_id", result.RunID, "folder_id", p.opts.FolderID,
		"documents", len(docs), "policy", p.opts.Policy, "workers", p.opts.Workers)

	var resultMu sync.Mutex
	var g errgroup.Group
	g.SetLimit(p.opts.Workers)

	for _, doc := range docs {
		doc := doc
		g.Go(func() error {
			unchanged, err := p.syncDocument(ctx, source, doc)

			resultMu.Lock()
			defer resultMu.Unlock()
			if err != nil {
				logger.ErrorContext(ctx, "failed to sync document", "document_id", doc.ID, "filename", doc.Name, "error", err)
				result.FailedFiles = append(result.FailedFiles, domain.FailedFile{
					DocumentID: doc.ID,
					Filename:   doc.Name,
					Error:      err.Error(),
				})
				return nil
			}
			result.FilesProcessed++
			if unchanged {
				result.FilesUnchanged++
			}
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(result.FailedFiles, func(i, j int) bool {
		return result.FailedFiles[i].DocumentID < result.FailedFiles[j].DocumentID
	})
	result.ChunksIndexed = p.store.Size()
	result.FinishedAt = p.now()

	p.mu.Lock()
	p.last = result
	p.mu.Unlock()

	logger.InfoContext(ctx, "sync completed",
		"run_id", result.RunID,
		"files_processed", result.FilesProcessed,
		"files_unchanged", result.FilesUnchanged,
		"files_failed", len(result.FailedFiles),
		"chunks_indexed", result.ChunksIndexed,
		"duration", result.Duration())

	if p.recorder != nil {
		if err := p.recorder.Record(ctx, result); err != nil {
			logger.WarnContext(ctx, "failed to record sync run", "run_id", result.RunID, "error", err)
		}
	}

	return result, nil
}

// syncDocument fetches, extracts and chunks one document, then stores its chunks.
// It reports unchanged=true when the document was skipped as already current.
func (p *Pipeline) syncDocument(ctx context.Context, source Source, doc domain.Document) (unchanged bool, err error) {
	logger := contextutil.LoggerFromContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while processing document: %v", r)
		}
	}()

	if p.opts.Policy == PolicyReplace && p.isCurrent(doc) {
		logger.DebugContext(ctx, "skipping unchanged document", "document_id", doc.ID, "modified_time", doc.ModifiedTime)
		return true, nil
	}

	var text string
	err = withTempFile(p.opts.TempDir, tempName(doc.ID), func(f *os.File) error {
		body, err := source.Fetch(ctx, doc.ID)
		if err != nil {
			return err
		}
		defer func() {
			_ = body.Close()
		}()

		if _, err := io.Copy(f, body); err != nil {
			return fmt.Errorf("failed to write temp file: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to close temp file: %w", err)
		}

		text, err = p.extractor.Extract(ctx, f.Name())
		return err
	})
	if err != nil {
		return false, err
	}

	chunks := p.chunker.Chunk(doc.ID, doc.Name, text)
	if len(chunks) == 0 {
		logger.WarnContext(ctx, "no text extracted", "document_id", doc.ID, "filename", doc.Name)
	}

	switch p.opts.Policy {
	case PolicyAppend:
		p.store.Add(chunks...)
	default:
		p.store.ReplaceDocument(doc.ID, chunks)
	}
	p.markCurrent(doc)

	logger.InfoContext(ctx, "indexed document", "document_id", doc.ID, "filename", doc.Name, "chunks", len(chunks))
	return false, nil
}

func (p *Pipeline) isCurrent(doc domain.Document) bool {
	if doc.ModifiedTime.IsZero() {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	seen, ok := p.versions[doc.ID]
	return ok && seen.Equal(doc.ModifiedTime)
}

func (p *Pipeline) markCurrent(doc domain.Document) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.versions[doc.ID] = doc.ModifiedTime
}
