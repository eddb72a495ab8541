package indexer

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"sort"
	"unicode/utf8"

	"pdfchat/internal/domain"
)

// ChunkerVersion identifies the chunking implementation.
// Update this when chunking logic changes significantly.
const ChunkerVersion = "fixed-v1"

// IndexStats summarizes the current contents of the chunk store.
type IndexStats struct {
	Documents      int            `json:"documents"`
	Chunks         int            `json:"chunks"`
	ChunkRuneStats ChunkRuneStats `json:"chunk_rune_stats"`
	ChunkerVersion string         `json:"chunker_version"`
	// IndexVersion is a hash of the chunker version, window parameters and sync policy.
	IndexVersion string `json:"index_version"`
}

// ChunkRuneStats contains statistics about chunk lengths in runes.
type ChunkRuneStats struct {
	Min  int     `json:"min"`
	Max  int     `json:"max"`
	Mean float64 `json:"mean"`
	P95  int     `json:"p95"`
}

// Stats computes statistics over a snapshot of the store.
func (p *Pipeline) Stats() IndexStats {
	stats := computeIndexStats(p.store.All())
	stats.ChunkerVersion = ChunkerVersion
	stats.IndexVersion = indexVersion(p.chunker, p.opts.Policy)
	return stats
}

func computeIndexStats(chunks []domain.Chunk) IndexStats {
	docs := make(map[string]struct{})
	lengths := make([]int, 0, len(chunks))
	for _, c := range chunks {
		docs[c.DocumentID] = struct{}{}
		lengths = append(lengths, utf8.RuneCountInString(c.Text))
	}
	return IndexStats{
		Documents:      len(docs),
		Chunks:         len(chunks),
		ChunkRuneStats: computeRuneStats(lengths),
	}
}

func indexVersion(c *FixedChunker, policy Policy) string {
	input := fmt.Sprintf("%s|size=%d|step=%d|policy=%s", ChunkerVersion, c.Size(), c.Step(), policy)
	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:])[:16]
}

// computeRuneStats computes min, max, mean, and p95 from chunk lengths.
func computeRuneStats(lengths []int) ChunkRuneStats {
	if len(lengths) == 0 {
		return ChunkRuneStats{}
	}

	sorted := make([]int, len(lengths))
	copy(sorted, lengths)
	sort.Ints(sorted)

	sum := 0
	for _, n := range lengths {
		sum += n
	}
	mean := float64(sum) / float64(len(lengths))

	p95Index := int(math.Ceil(float64(len(sorted))*0.95)) - 1
	if p95Index < 0 {
		p95Index = 0
	}

	return ChunkRuneStats{
		Min:  sorted[0],
		Max:  sorted[len(sorted)-1],
		Mean: math.Round(mean*100) / 100,
		P95:  sorted[p95Index],
	}
}
