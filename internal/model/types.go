// Package model defines shared data structures.
package model

import "time"

// Sources of a word lookup, recorded in the journal.
const (
	SourceTool = "tool"
	SourceCLI  = "cli"
	SourcePlay = "play"
)

// Query is a single longest-word lookup.
type Query struct {
	Source    string
	UsedWords []string
	Letters   []string
}

// Answer is the outcome of a lookup. Found is false when no candidate
// remained and Word holds the no-match text.
type Answer struct {
	Word  string
	Found bool
}

// ServerConfig defines tool server settings.
type ServerConfig struct {
	WordListPath string
	Cache        bool
	Watch        bool
	Journal      bool
	JournalPath  string
	LogLevel     string
}

// Invocation captures one lookup for the journal.
type Invocation struct {
	ID           int64
	At           time.Time
	Source       string
	Letters      string
	UsedCount    int
	Result       string
	Found        bool
	ErrCategory  string
	DurationMs   int64
	CorpusDigest string
}

// HistoryConfig defines filters for history output.
type HistoryConfig struct {
	Source string
	Since  *time.Time
	Last   int
}
