package indexer

import (
	"strconv"

	"pdfchat/internal/domain"
)

const (
	// DefaultChunkSize is the maximum number of runes per chunk.
	DefaultChunkSize = 1800
	// DefaultChunkStep is the distance in runes between chunk starts.
	DefaultChunkStep = 1800
)

// FixedChunker splits text into fixed-size rune windows.
type FixedChunker struct {
	size int
	step int
}

// NewFixedChunker creates a chunker with window length size and window step step.
// Non-positive values fall back to the defaults. A step larger than size would
// leave gaps, so it is clamped to size.
func NewFixedChunker(size, step int) *FixedChunker {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if step <= 0 {
		step = DefaultChunkStep
	}
	if step > size {
		step = size
	}
	return &FixedChunker{size: size, step: step}
}

// Size returns the window length.
func (c *FixedChunker) Size() int { return c.size }

// Step returns the window step.
func (c *FixedChunker) Step() int { return c.step }

// Chunk splits text into windows starting every step runes.
// Empty text yields no chunks. text must be valid UTF-8 (the extractor
// guarantees it); invalid bytes would come back as U+FFFD.
func (c *FixedChunker) Chunk(documentID, filename, text string) []domain.Chunk {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	chunks := make([]domain.Chunk, 0, (len(runes)+c.step-1)/c.step)
	for start := 0; start < len(runes); start += c.step {
		end := min(start+c.size, len(runes))
		chunks = append(chunks, domain.Chunk{
			ID:         ChunkID(documentID, start),
			DocumentID: documentID,
			Filename:   filename,
			Offset:     start,
			Text:       string(runes[start:end]),
		})
	}
	return chunks
}

// ChunkID returns the stable id of the chunk starting at offset.
func ChunkID(documentID string, offset int) string {
	return documentID + "_" + strconv.Itoa(offset)
}
