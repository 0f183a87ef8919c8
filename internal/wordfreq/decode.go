package wordfreq

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/vmihailenco/msgpack/v5"
)

type wordEntry struct {
	word  string
	score float64
}

// decodeEntries reads a wordfreq data file. The layout is a msgpack array
// whose first element may be a header map; every following element is
// either a frequency bin (a list of words, most frequent bin first) or a
// [score, words] pair.
func decodeEntries(name string, r io.Reader) ([]wordEntry, error) {
	if strings.HasSuffix(name, ".gz") {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer func() {
			_ = gz.Close()
		}()
		r = gz
	}

	var root []interface{}
	if err := msgpack.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", name, err)
	}

	var entries []wordEntry
	for i, item := range root {
		switch item.(type) {
		case map[string]interface{}, map[interface{}]interface{}:
			continue
		}
		if score, words, ok := scoredBin(item); ok {
			entries = appendBin(entries, words, score)
			continue
		}
		if words, ok := toStringSlice(item); ok {
			entries = appendBin(entries, words, float64(len(root)-i))
			continue
		}
		return nil, fmt.Errorf("unsupported entry %T at index %d", item, i)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("wordfreq data contained no entries")
	}
	return entries, nil
}

func appendBin(entries []wordEntry, words []string, score float64) []wordEntry {
	for _, word := range words {
		entries = append(entries, wordEntry{word: word, score: score})
	}
	return entries
}

func scoredBin(item interface{}) (float64, []string, bool) {
	pair, ok := item.([]interface{})
	if !ok || len(pair) != 2 {
		return 0, nil, false
	}
	score, ok := toFloat64(pair[0])
	if !ok {
		return 0, nil, false
	}
	words, ok := toStringSlice(pair[1])
	if !ok {
		return 0, nil, false
	}
	return score, words, true
}

func toFloat64(v interface{}) (float64, bool) {
	switch num := v.(type) {
	case float64:
		return num, true
	case float32:
		return float64(num), true
	case int8:
		return float64(num), true
	case int16:
		return float64(num), true
	case int32:
		return float64(num), true
	case int64:
		return float64(num), true
	case uint8:
		return float64(num), true
	case uint16:
		return float64(num), true
	case uint32:
		return float64(num), true
	case uint64:
		return float64(num), true
	case string:
		parsed, err := strconv.ParseFloat(num, 64)
		return parsed, err == nil
	default:
		return 0, false
	}
}

func toStringSlice(v interface{}) ([]string, bool) {
	items, ok := v.([]interface{})
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		switch s := item.(type) {
		case string:
			out = append(out, s)
		case []byte:
			out = append(out, string(s))
		default:
			return nil, false
		}
	}
	return out, true
}
