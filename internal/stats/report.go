package stats

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/verte-zerg/spellbee/internal/model"
)

const topResultCount = 5

// Lister loads journal entries.
type Lister interface {
	ListInvocations(ctx context.Context, cfg model.HistoryConfig) ([]model.Invocation, error)
}

// Summary aggregates journal entries.
type Summary struct {
	Calls         int
	Found         int
	Misses        int
	Errors        int
	AvgDurationMs float64
}

// Report contains precomputed data for history rendering.
type Report struct {
	Summary Summary
	Top     []ResultCount
	Entries []model.Invocation
}

// Summarize counts hits, misses and errors across invs.
func Summarize(invs []model.Invocation) Summary {
	var s Summary
	var total int64
	for _, inv := range invs {
		s.Calls++
		total += inv.DurationMs
		switch {
		case inv.ErrCategory != "":
			s.Errors++
		case inv.Found:
			s.Found++
		default:
			s.Misses++
		}
	}
	if s.Calls > 0 {
		s.AvgDurationMs = float64(total) / float64(s.Calls)
	}
	return s
}

// BuildReport loads and prepares data for history rendering.
func BuildReport(ctx context.Context, st Lister, cfg model.HistoryConfig) (Report, error) {
	entries, err := st.ListInvocations(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Summary: Summarize(entries),
		Top:     TopResults(entries, topResultCount),
		Entries: entries,
	}, nil
}

// WriteReport renders r as plain text. Lines are truncated to width when
// it is positive.
func WriteReport(w io.Writer, r Report, width int) error {
	s := r.Summary
	lines := []string{
		fmt.Sprintf("Calls %d  Found %d  Misses %d  Errors %d  Avg %.1f ms",
			s.Calls, s.Found, s.Misses, s.Errors, s.AvgDurationMs),
	}
	if len(r.Top) > 0 {
		parts := make([]string, 0, len(r.Top))
		for _, rc := range r.Top {
			parts = append(parts, fmt.Sprintf("%s (%d)", rc.Word, rc.Count))
		}
		lines = append(lines, "Top answers: "+strings.Join(parts, ", "))
	}
	if len(r.Entries) > 0 {
		lines = append(lines, "")
		rows := make([][]string, 0, len(r.Entries))
		for _, inv := range r.Entries {
			outcome := inv.Result
			if inv.ErrCategory != "" {
				outcome = "error: " + inv.ErrCategory
			}
			rows = append(rows, []string{
				inv.At.Local().Format("2006-01-02 15:04:05"),
				inv.Source,
				inv.Letters,
				strconv.Itoa(inv.UsedCount),
				strconv.FormatInt(inv.DurationMs, 10),
				outcome,
			})
		}
		headers := []string{"Time", "Source", "Letters", "Used", "ms", "Result"}
		lines = append(lines, FormatTable(headers, rows, map[int]bool{3: true, 4: true}, width)...)
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}
	return nil
}
