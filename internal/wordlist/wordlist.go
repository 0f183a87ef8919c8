// Package wordlist loads word lists from files.
package wordlist

import (
	"bufio"
	"io"
	"os"
	"strings"
)

const maxLineSize = 1024 * 1024

// LoadWords reads one word per line from the provided file path.
// Lines are trimmed and lowercased; blank lines are skipped.
func LoadWords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()
	return ParseWords(file)
}

// ParseWords reads one word per line from r, in order. An input with no
// words yields an empty slice and no error.
func ParseWords(r io.Reader) ([]string, error) {
	words := []string{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if line == "" {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}
