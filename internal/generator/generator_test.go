package generator

import (
	"errors"
	"sort"
	"strings"
	"testing"
)

func TestLettersComeFromOneWord(t *testing.T) {
	words := []string{"cat", "stone", "bee", "letters", "pangram"}
	gen := NewSeeded(1)
	for i := 0; i < 20; i++ {
		letters, err := gen.Letters(words, 5)
		if err != nil {
			t.Fatalf("Letters failed: %v", err)
		}
		sorted := append([]string(nil), letters...)
		sort.Strings(sorted)
		got := strings.Join(sorted, "")
		if got != "enost" && got != "elrst" {
			t.Fatalf("unexpected letters %v", letters)
		}
	}
}

func TestLettersSeededIsDeterministic(t *testing.T) {
	words := []string{"pangram", "letters", "spelling", "stone", "crane"}
	a, errA := NewSeeded(42).Letters(words, 5)
	b, errB := NewSeeded(42).Letters(words, 5)
	if errA != nil || errB != nil {
		t.Fatalf("unexpected errors: %v %v", errA, errB)
	}
	if strings.Join(a, "") != strings.Join(b, "") {
		t.Fatalf("expected identical puzzles, got %v and %v", a, b)
	}
}

func TestLettersNoCandidate(t *testing.T) {
	_, err := New().Letters([]string{"cat", "dog"}, DefaultPuzzleSize)
	if !errors.Is(err, ErrNoPuzzle) {
		t.Fatalf("expected ErrNoPuzzle, got %v", err)
	}
}
