// Package wordlist provides word list filtering helpers.
package wordlist

import (
	"strings"

	"github.com/samber/lo"
)

// FilterFunc returns true when a word should be kept.
type FilterFunc func(string) bool

// FilterForLang returns a language-specific filter for word lists.
func FilterForLang(lang string) FilterFunc {
	switch strings.ToLower(lang) {
	case "en":
		return filterEnglishASCII
	default:
		return func(string) bool { return true }
	}
}

func filterEnglishASCII(word string) bool {
	if word == "" {
		return false
	}
	for i := 0; i < len(word); i++ {
		ch := word[i]
		if ch < 'a' || ch > 'z' {
			return false
		}
	}
	return true
}

// LetterSet is a lowercase set of allowed characters.
type LetterSet map[rune]struct{}

// NewLetterSet builds a set from letters, lowercasing each entry. Entries
// that are not exactly one character after lowercasing can never match a
// word character and are dropped.
func NewLetterSet(letters []string) LetterSet {
	lowered := lo.Map(letters, func(letter string, _ int) []rune {
		return []rune(strings.ToLower(letter))
	})
	singles := lo.Filter(lowered, func(letter []rune, _ int) bool {
		return len(letter) == 1
	})
	return lo.SliceToMap(singles, func(letter []rune) (rune, struct{}) {
		return letter[0], struct{}{}
	})
}

// Contains reports whether r is in the set.
func (s LetterSet) Contains(r rune) bool {
	_, ok := s[r]
	return ok
}

// LettersOnly keeps non-empty words built only from characters in set.
// Characters may repeat within a word.
func LettersOnly(set LetterSet) FilterFunc {
	return func(word string) bool {
		if word == "" {
			return false
		}
		for _, r := range word {
			if !set.Contains(r) {
				return false
			}
		}
		return true
	}
}

// LengthBetween keeps words whose character count lies in [minLen, maxLen].
// A non-positive maxLen means no upper bound.
func LengthBetween(minLen, maxLen int) FilterFunc {
	return func(word string) bool {
		n := len([]rune(word))
		if n < minLen {
			return false
		}
		return maxLen <= 0 || n <= maxLen
	}
}
