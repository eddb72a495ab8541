// Package index holds the in-memory chunk collection queried by the RAG engine.
package index

import (
	"sync"

	"pdfchat/internal/domain"
)

// MemoryStore is an insertion-ordered, in-memory collection of chunks.
// It is safe for concurrent use. Readers may observe a partial view while
// a sync run is writing.
type MemoryStore struct {
	mu     sync.RWMutex
	chunks []domain.Chunk
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Add appends chunks without deduplicating by ID.
func (s *MemoryStore) Add(chunks ...domain.Chunk) {
	if len(chunks) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks = append(s.chunks, chunks...)
}

// ReplaceDocument drops every chunk owned by documentID and appends chunks,
// as one atomic step. Ownership is decided by Chunk.DocumentID rather than
// the ID prefix, since document IDs may themselves contain underscores.
func (s *MemoryStore) ReplaceDocument(documentID string, chunks []domain.Chunk) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]domain.Chunk, 0, len(s.chunks)+len(chunks))
	for _, c := range s.chunks {
		if c.DocumentID != documentID {
			kept = append(kept, c)
		}
	}
	s.chunks = append(kept, chunks...)
}

// All returns a snapshot of every chunk in insertion order.
func (s *MemoryStore) All() []domain.Chunk {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Chunk, len(s.chunks))
	copy(out, s.chunks)
	return out
}

// Size returns the number of stored chunks.
func (s *MemoryStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks)
}

// Clear removes all chunks.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks = nil
}
