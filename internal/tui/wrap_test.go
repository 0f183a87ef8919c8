package tui

import (
	"strings"
	"testing"
)

func plainWords(words ...string) []styledWord {
	out := make([]styledWord, 0, len(words))
	for _, w := range words {
		out = append(out, styledWord{s: w, width: len([]rune(w))})
	}
	return out
}

func TestWrapStyledWordsBreaksAtWidth(t *testing.T) {
	got := wrapStyledWords(plainWords("cat", "act", "cats", "tacts"), 8)
	want := "cat act\ncats\ntacts"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestWrapStyledWordsLongWordOwnLine(t *testing.T) {
	got := wrapStyledWords(plainWords("a", "extraordinary", "b"), 5)
	want := "a\nextraordinary\nb"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestWrapStyledWordsNoWidth(t *testing.T) {
	got := wrapStyledWords(plainWords("one", "two"), 0)
	if got != "one two" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestBuildStyledWordsWidth(t *testing.T) {
	words := buildStyledWords([]string{"über", "日本"}, "日本")
	if words[0].width != 4 || words[1].width != 4 {
		t.Fatalf("unexpected widths: %d %d", words[0].width, words[1].width)
	}
	if words[1].s != latestUsedStyle.Render("日本") {
		t.Fatalf("expected latest word style")
	}
	if !strings.Contains(words[0].s, "über") {
		t.Fatalf("expected word text in output")
	}
}
