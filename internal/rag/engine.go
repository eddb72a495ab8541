// Package rag answers questions from the chunk index by lexical matching.
package rag

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"pdfchat/internal/contextutil"
	"pdfchat/internal/domain"
)

const (
	// DefaultTopK is the maximum number of matches returned.
	DefaultTopK = 5
	// DefaultExcerptLength is the maximum excerpt length in runes.
	DefaultExcerptLength = 400

	summaryTemplate = "Found %d excerpt(s). Review the excerpts and ask something more specific."
)

// ChunkReader is the read side of the chunk index.
type ChunkReader interface {
	All() []domain.Chunk
}

// Engine ranks stored chunks against a question.
type Engine struct {
	chunks     ChunkReader
	scorer     Scorer
	topK       int
	excerptLen int
}

// Option configures an Engine.
type Option func(*Engine)

// WithScorer replaces the default substring scorer.
func WithScorer(s Scorer) Option {
	return func(e *Engine) {
		if s != nil {
			e.scorer = s
		}
	}
}

// WithTopK sets the maximum number of matches. Non-positive values are ignored.
func WithTopK(k int) Option {
	return func(e *Engine) {
		if k > 0 {
			e.topK = k
		}
	}
}

// WithExcerptLength sets the excerpt length in runes. Non-positive values are ignored.
func WithExcerptLength(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.excerptLen = n
		}
	}
}

// NewEngine creates a new query engine over chunks.
func NewEngine(chunks ChunkReader, opts ...Option) *Engine {
	e := &Engine{
		chunks:     chunks,
		scorer:     SubstringScorer,
		topK:       DefaultTopK,
		excerptLen: DefaultExcerptLength,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Answer returns up to topK matching chunks for question, best first.
// Candidates with equal scores keep the store's iteration order.
// An empty or whitespace-only question fails with a *domain.ValidationError.
func (e *Engine) Answer(ctx context.Context, question string) (*domain.Answer, error) {
	logger := contextutil.LoggerFromContext(ctx)

	terms := Tokenize(question)
	if len(terms) == 0 {
		logger.WarnContext(ctx, "empty question")
		return nil, &domain.ValidationError{
			Field:   "question",
			Message: "question required",
		}
	}

	type candidate struct {
		chunk domain.Chunk
		score float64
	}
	var candidates []candidate
	for _, c := range e.chunks.All() {
		if score := e.scorer.Score(terms, c.Text); score > 0 {
			candidates = append(candidates, candidate{chunk: c, score: score})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > e.topK {
		candidates = candidates[:e.topK]
	}

	matches := make([]domain.Match, 0, len(candidates))
	for _, c := range candidates {
		matches = append(matches, domain.Match{
			ChunkID:  c.chunk.ID,
			Filename: c.chunk.Filename,
			Excerpt:  excerpt(c.chunk.Text, e.excerptLen),
			Score:    c.score,
		})
	}

	logger.InfoContext(ctx, "answered question", "terms", len(terms), "matches", len(matches))
	return &domain.Answer{
		Summary: fmt.Sprintf(summaryTemplate, len(matches)),
		Matches: matches,
	}, nil
}

// Tokenize lowercases s and splits it on whitespace.
func Tokenize(s string) []string {
	return strings.Fields(strings.ToLower(s))
}

// excerpt returns the first n runes of text.
func excerpt(text string, n int) string {
	count := 0
	for i := range text {
		if count == n {
			return text[:i]
		}
		count++
	}
	return text
}
