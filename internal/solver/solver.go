// Package solver finds the longest unused word that can be spelled from a
// set of letters.
package solver

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/verte-zerg/spellbee/internal/model"
	"github.com/verte-zerg/spellbee/internal/toolerr"
	"github.com/verte-zerg/spellbee/internal/wordlist"
)

// NoMatch is returned when no candidate word remains.
const NoMatch = "No valid words found"

// Source supplies the corpus, normalized and in file order.
type Source interface {
	Words() ([]string, error)
}

// Recorder stores completed lookups.
type Recorder interface {
	RecordInvocation(ctx context.Context, inv model.Invocation) error
}

type digester interface {
	Digest() string
}

// Service answers longest-word lookups against a corpus.
type Service struct {
	source   Source
	recorder Recorder
	logger   zerolog.Logger
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithRecorder journals every Solve call.
func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		s.recorder = r
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// New returns a Service reading words from source.
func New(source Source, opts ...Option) *Service {
	s := &Service{source: source, logger: zerolog.Nop(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LongestWord returns the longest corpus word made only of letters that is
// not in usedWords, or NoMatch. Letters are case-insensitive and may be
// reused; usedWords are compared exactly against the lowercased word.
// Equal-length words resolve to the one earliest in the corpus.
func (s *Service) LongestWord(usedWords, letters []string) (string, error) {
	words, err := s.source.Words()
	if err != nil {
		return "", toolerr.ResourceUnavailable("failed to read word list: %w", err)
	}

	used := make(map[string]struct{}, len(usedWords))
	for _, w := range usedWords {
		used[w] = struct{}{}
	}
	allowed := wordlist.LettersOnly(wordlist.NewLetterSet(letters))

	best := ""
	bestLen := 0
	for _, word := range words {
		if !allowed(word) {
			continue
		}
		if _, ok := used[word]; ok {
			continue
		}
		if n := utf8.RuneCountInString(word); n > bestLen {
			best = word
			bestLen = n
		}
	}
	if bestLen == 0 {
		return NoMatch, nil
	}
	return best, nil
}

// Solve runs LongestWord for q and journals the outcome when a recorder
// is attached. Journal failures are logged and otherwise ignored.
func (s *Service) Solve(ctx context.Context, q model.Query) (model.Answer, error) {
	start := s.now()
	word, err := s.LongestWord(q.UsedWords, q.Letters)
	answer := model.Answer{Word: word, Found: err == nil && word != NoMatch}

	if s.recorder != nil {
		inv := model.Invocation{
			At:          start,
			Source:      q.Source,
			Letters:     strings.ToLower(strings.Join(q.Letters, "")),
			UsedCount:   len(q.UsedWords),
			Result:      word,
			Found:       answer.Found,
			ErrCategory: string(toolerr.CategoryOf(err)),
			DurationMs:  s.now().Sub(start).Milliseconds(),
		}
		if d, ok := s.source.(digester); ok {
			inv.CorpusDigest = d.Digest()
		}
		if rerr := s.recorder.RecordInvocation(ctx, inv); rerr != nil {
			s.logger.Warn().Err(rerr).Msg("failed to journal lookup")
		}
	}
	return answer, err
}

// SplitLetters turns free-form input such as "c a t" or "c,a,t" into
// single-character letters.
func SplitLetters(input string) []string {
	letters := make([]string, 0, len(input))
	for _, r := range input {
		if r == ',' || r == ' ' || r == '\t' {
			continue
		}
		letters = append(letters, string(r))
	}
	return letters
}
