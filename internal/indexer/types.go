package indexer

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_source.go -package=mocks pdfchat/internal/indexer Source,SourceProvider
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_extractor.go -package=mocks pdfchat/internal/indexer Extractor
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_run_recorder.go -package=mocks pdfchat/internal/indexer RunRecorder

import (
	"context"
	"io"

	"pdfchat/internal/domain"
)

// Source lists and downloads documents from a remote folder.
type Source interface {
	// ListDocuments returns every PDF in folderID that is not trashed.
	// Failures wrap domain.ErrFetch.
	ListDocuments(ctx context.Context, folderID string) ([]domain.Document, error)
	// Fetch opens the raw bytes of a document. The caller closes the reader.
	Fetch(ctx context.Context, documentID string) (io.ReadCloser, error)
}

// SourceProvider builds an authenticated Source.
// It returns an error wrapping domain.ErrAuth when no usable credentials exist.
type SourceProvider interface {
	Source(ctx context.Context) (Source, error)
}

// Extractor decodes the PDF stored at path into plain text.
// Decode failures wrap domain.ErrDecode. An image-only document yields "" and no error.
type Extractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// ChunkStore is the write side of the chunk index.
type ChunkStore interface {
	Add(chunks ...domain.Chunk)
	ReplaceDocument(documentID string, chunks []domain.Chunk)
	All() []domain.Chunk
	Size() int
	Clear()
}

// RunRecorder keeps a history of completed sync runs.
type RunRecorder interface {
	Record(ctx context.Context, result *domain.SyncResult) error
}
