package domain

// Match is one chunk returned for a question.
type Match struct {
	ChunkID  string
	Filename string
	Excerpt  string
	Score    float64
}

// Answer is the query engine's response to a question.
type Answer struct {
	Summary string
	Matches []Match
}
