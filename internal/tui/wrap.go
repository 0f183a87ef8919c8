package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

type styledWord struct {
	s     string
	width int
}

func buildStyledWords(words []string, latest string) []styledWord {
	out := make([]styledWord, 0, len(words))
	for _, w := range words {
		style := usedStyle
		if w == latest {
			style = latestUsedStyle
		}
		out = append(out, styledWord{s: style.Render(w), width: runewidth.StringWidth(w)})
	}
	return out
}

// wrapStyledWords lays words out separated by single spaces, breaking lines
// so that no line exceeds width cells. A word wider than width gets a line
// of its own.
func wrapStyledWords(words []styledWord, width int) string {
	var out strings.Builder
	lineWidth := 0
	for _, item := range words {
		switch {
		case lineWidth == 0:
		case width > 0 && lineWidth+1+item.width > width:
			out.WriteRune('\n')
			lineWidth = 0
		default:
			out.WriteRune(' ')
			lineWidth++
		}
		out.WriteString(item.s)
		lineWidth += item.width
	}
	return out.String()
}
