package wordlist

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"os"
	"sync"

	"github.com/zeebo/blake3"
)

// Corpus is a word list file. With caching enabled the parsed words are
// kept in memory until Invalidate is called; otherwise every call to
// Words re-reads the file.
type Corpus struct {
	path  string
	cache bool

	read func(path string) ([]string, string, error)

	mu     sync.RWMutex
	gen    uint64
	loaded bool
	words  []string
	digest string
}

// NewCorpus returns a corpus backed by the file at path.
func NewCorpus(path string, cache bool) *Corpus {
	return &Corpus{path: path, cache: cache, read: readCorpus}
}

// Path returns the word list path.
func (c *Corpus) Path() string {
	return c.path
}

// Words returns the corpus words in file order. Callers must not modify
// the returned slice. A load that overlaps an Invalidate is returned to
// its caller but not cached.
func (c *Corpus) Words() ([]string, error) {
	c.mu.RLock()
	if c.cache && c.loaded {
		words := c.words
		c.mu.RUnlock()
		return words, nil
	}
	gen := c.gen
	c.mu.RUnlock()

	words, digest, err := c.read(c.path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.gen == gen {
		c.digest = digest
		if c.cache {
			c.words = words
			c.loaded = true
		}
	}
	c.mu.Unlock()
	return words, nil
}

// Digest returns the BLAKE3 digest of the file contents from the most
// recent successful load, or "" before the first load.
func (c *Corpus) Digest() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.digest
}

// Invalidate drops the cached words so the next call reloads the file.
func (c *Corpus) Invalidate() {
	c.mu.Lock()
	c.gen++
	c.loaded = false
	c.words = nil
	c.mu.Unlock()
}

func readCorpus(path string) ([]string, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	words, err := ParseWords(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("failed to parse word list: %w", err)
	}
	sum := blake3.Sum256(data)
	return words, hex.EncodeToString(sum[:]), nil
}
