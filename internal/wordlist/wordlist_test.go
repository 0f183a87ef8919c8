package wordlist

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func writeWords(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write word list: %v", err)
	}
}

func TestParseWordsNormalizes(t *testing.T) {
	words, err := ParseWords(strings.NewReader("  Cat \n\n\tACT\r\n   \ncats\n"))
	if err != nil {
		t.Fatalf("ParseWords failed: %v", err)
	}
	expected := []string{"cat", "act", "cats"}
	if len(words) != len(expected) {
		t.Fatalf("expected %d words, got %v", len(expected), words)
	}
	for i, word := range expected {
		if words[i] != word {
			t.Fatalf("expected %q at index %d, got %q", word, i, words[i])
		}
	}
}

func TestLoadWordsEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	writeWords(t, path, "\n  \n")
	words, err := LoadWords(path)
	if err != nil {
		t.Fatalf("LoadWords failed: %v", err)
	}
	if len(words) != 0 {
		t.Fatalf("expected no words, got %v", words)
	}
}

func TestLoadWordsMissingFile(t *testing.T) {
	if _, err := LoadWords(filepath.Join(t.TempDir(), "missing.txt")); !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestCorpusUncachedRereads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	writeWords(t, path, "cat\n")
	corpus := NewCorpus(path, false)

	first, err := corpus.Words()
	if err != nil || len(first) != 1 {
		t.Fatalf("unexpected first load: %v %v", first, err)
	}
	firstDigest := corpus.Digest()
	if firstDigest == "" {
		t.Fatalf("expected digest after load")
	}

	writeWords(t, path, "cat\ncats\n")
	second, err := corpus.Words()
	if err != nil || len(second) != 2 {
		t.Fatalf("expected reread to see new word: %v %v", second, err)
	}
	if corpus.Digest() == firstDigest {
		t.Fatalf("expected digest to change with contents")
	}
}

func TestCorpusCacheInvalidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	writeWords(t, path, "cat\n")
	corpus := NewCorpus(path, true)

	if _, err := corpus.Words(); err != nil {
		t.Fatalf("load: %v", err)
	}
	writeWords(t, path, "cat\ncats\n")
	cached, _ := corpus.Words()
	if len(cached) != 1 {
		t.Fatalf("expected cached words, got %v", cached)
	}
	corpus.Invalidate()
	fresh, _ := corpus.Words()
	if len(fresh) != 2 {
		t.Fatalf("expected reload after invalidate, got %v", fresh)
	}
}

func TestCorpusMissingFileNotCached(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	corpus := NewCorpus(path, true)
	if _, err := corpus.Words(); err == nil {
		t.Fatalf("expected error for missing file")
	}
	writeWords(t, path, "dog\n")
	words, err := corpus.Words()
	if err != nil || len(words) != 1 {
		t.Fatalf("expected load once file exists: %v %v", words, err)
	}
}

func TestCorpusWatchInvalidates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words.txt")
	writeWords(t, path, "cat\n")
	corpus := NewCorpus(path, true)
	if _, err := corpus.Words(); err != nil {
		t.Fatalf("load: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- corpus.Watch(ctx, zerolog.Nop())
	}()

	deadline := time.Now().Add(4 * time.Second)
	for time.Now().Before(deadline) {
		writeWords(t, path, "cat\ncats\n")
		time.Sleep(50 * time.Millisecond)
		words, err := corpus.Words()
		if err == nil && len(words) == 2 {
			cancel()
			if werr := <-done; werr != nil {
				t.Fatalf("watch returned error: %v", werr)
			}
			return
		}
	}
	t.Fatalf("timeout waiting for watcher to drop cache")
}

func TestCorpusInvalidateDuringLoadNotCached(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	writeWords(t, path, "cat\n")
	corpus := NewCorpus(path, true)

	reads := 0
	corpus.read = func(p string) ([]string, string, error) {
		reads++
		words, digest, err := readCorpus(p)
		if reads == 1 {
			// The file changes and the watcher fires after this read finished.
			writeWords(t, p, "dog\ndogs\n")
			corpus.Invalidate()
		}
		return words, digest, err
	}

	first, err := corpus.Words()
	if err != nil || strings.Join(first, ",") != "cat" {
		t.Fatalf("expected the in-flight read to return old words, got %v %v", first, err)
	}
	staleDigest := corpus.Digest()

	second, err := corpus.Words()
	if err != nil || strings.Join(second, ",") != "dog,dogs" {
		t.Fatalf("expected reload after overlapping invalidate, got %v %v", second, err)
	}
	if _, err := corpus.Words(); err != nil || reads != 2 {
		t.Fatalf("expected the fresh load to be cached, reads=%d err=%v", reads, err)
	}
	if corpus.Digest() == "" || corpus.Digest() == staleDigest {
		t.Fatalf("expected digest of the new file, got %q", corpus.Digest())
	}
}

func TestCorpusWatchDropsCacheFromBeforeWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	writeWords(t, path, "cat\n")
	corpus := NewCorpus(path, true)
	if _, err := corpus.Words(); err != nil {
		t.Fatalf("load: %v", err)
	}
	writeWords(t, path, "cat\ncats\n")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- corpus.Watch(ctx, zerolog.Nop())
	}()

	deadline := time.Now().Add(4 * time.Second)
	for time.Now().Before(deadline) {
		words, err := corpus.Words()
		if err == nil && len(words) == 2 {
			cancel()
			if werr := <-done; werr != nil {
				t.Fatalf("watch returned error: %v", werr)
			}
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("change made before the watch started was never picked up")
}
