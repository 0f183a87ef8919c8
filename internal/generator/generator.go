// Package generator builds random letter puzzles from a corpus.
package generator

import (
	"errors"
	"math/rand"
	"sort"
	"time"
)

// DefaultPuzzleSize is the number of distinct letters in a generated puzzle.
const DefaultPuzzleSize = 7

// ErrNoPuzzle is returned when no corpus word has the requested number of
// distinct letters.
var ErrNoPuzzle = errors.New("no word with the requested number of distinct letters")

// Generator produces randomized letter sets.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Generator with a fixed seed.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Letters picks a random word made of exactly size distinct letters and
// returns those letters shuffled, so that at least one word in the corpus
// uses every letter.
func (g *Generator) Letters(words []string, size int) ([]string, error) {
	candidates := make([][]rune, 0, len(words)/8)
	for _, word := range words {
		if letters := distinctLetters(word); len(letters) == size {
			candidates = append(candidates, letters)
		}
	}
	if len(candidates) == 0 {
		return nil, ErrNoPuzzle
	}
	picked := candidates[g.rnd.Intn(len(candidates))]
	g.rnd.Shuffle(len(picked), func(i, j int) {
		picked[i], picked[j] = picked[j], picked[i]
	})
	out := make([]string, 0, len(picked))
	for _, r := range picked {
		out = append(out, string(r))
	}
	return out, nil
}

func distinctLetters(word string) []rune {
	seen := make(map[rune]struct{}, len(word))
	letters := make([]rune, 0, len(word))
	for _, r := range word {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		letters = append(letters, r)
	}
	sort.Slice(letters, func(i, j int) bool { return letters[i] < letters[j] })
	return letters
}
