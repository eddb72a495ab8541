package domain

import "time"

// Document is a remote file as reported by the source listing.
type Document struct {
	ID           string
	Name         string
	ModifiedTime time.Time
}

// Chunk is a bounded slice of one document's extracted text.
type Chunk struct {
	ID         string // DocumentID + "_" + Offset
	DocumentID string
	Filename   string // Denormalized document name, for display
	Offset     int    // Start offset in runes
	Text       string
}
