package domain

import "time"

// FailedFile describes one document skipped during a sync run.
type FailedFile struct {
	DocumentID string `json:"documentId"`
	Filename   string `json:"filename"`
	Error      string `json:"error"`
}

// SyncResult reports the outcome of one sync run.
type SyncResult struct {
	RunID          string
	StartedAt      time.Time
	FinishedAt     time.Time
	FilesProcessed int
	// FilesUnchanged counts documents skipped because their modification
	// time matched the last successful sync. They are included in FilesProcessed.
	FilesUnchanged int
	// ChunksIndexed is the total store size after the run, including
	// chunks left from earlier runs.
	ChunksIndexed int
	FailedFiles   []FailedFile
}

// Duration returns how long the run took.
func (r *SyncResult) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
