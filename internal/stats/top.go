package stats

import (
	"sort"

	"github.com/verte-zerg/spellbee/internal/model"
)

// ResultCount is how often a word was returned.
type ResultCount struct {
	Word  string
	Count int
}

// TopResults returns the n most frequently returned words, ignoring
// misses and errors. Ties are ordered alphabetically.
func TopResults(invs []model.Invocation, n int) []ResultCount {
	if n <= 0 || len(invs) == 0 {
		return nil
	}
	counts := map[string]int{}
	for _, inv := range invs {
		if !inv.Found {
			continue
		}
		counts[inv.Result]++
	}
	items := make([]ResultCount, 0, len(counts))
	for word, count := range counts {
		items = append(items, ResultCount{Word: word, Count: count})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count == items[j].Count {
			return items[i].Word < items[j].Word
		}
		return items[i].Count > items[j].Count
	})
	if n > len(items) {
		n = len(items)
	}
	return items[:n]
}
