package statsui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/spellbee/internal/model"
)

type fakeLister struct {
	entries []model.Invocation
	err     error
	calls   []model.HistoryConfig
}

func (f *fakeLister) ListInvocations(_ context.Context, cfg model.HistoryConfig) ([]model.Invocation, error) {
	f.calls = append(f.calls, cfg)
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Invocation
	for _, inv := range f.entries {
		if cfg.Source == "" || inv.Source == cfg.Source {
			out = append(out, inv)
		}
	}
	return out, nil
}

func sampleEntries() []model.Invocation {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return []model.Invocation{
		{At: at, Source: model.SourceTool, Letters: "cats", Result: "cats", Found: true, DurationMs: 2},
		{At: at.Add(time.Minute), Source: model.SourceCLI, Letters: "xyz", Result: "No valid words found", DurationMs: 1},
		{At: at.Add(2 * time.Minute), Source: model.SourceTool, Letters: "cat", ErrCategory: "resource_unavailable"},
	}
}

func TestViewShowsSummaryAndRows(t *testing.T) {
	m := NewModel(context.Background(), &fakeLister{entries: sampleEntries()}, model.HistoryConfig{})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	view := m.View()
	assert.Contains(t, view, "Source: all")
	assert.Contains(t, view, "Top answers: cats (1)")
	assert.Contains(t, view, "error: resource_unavailable")
	assert.Len(t, m.table.Rows(), 3)
}

func TestCycleSourceReloads(t *testing.T) {
	lister := &fakeLister{entries: sampleEntries()}
	m := NewModel(context.Background(), lister, model.HistoryConfig{})

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	require.Len(t, lister.calls, 2)
	assert.Equal(t, model.SourceTool, lister.calls[1].Source)
	assert.Len(t, m.table.Rows(), 2)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	assert.Equal(t, model.SourceCLI, m.cfg.Source)
	assert.Len(t, m.table.Rows(), 1)
}

func TestLoadErrorShown(t *testing.T) {
	m := NewModel(context.Background(), &fakeLister{err: errors.New("disk gone")}, model.HistoryConfig{})
	assert.Contains(t, m.View(), "disk gone")
}

func TestEmptyJournal(t *testing.T) {
	m := NewModel(context.Background(), &fakeLister{}, model.HistoryConfig{})
	assert.Contains(t, m.View(), "No lookups journaled yet.")
}

func TestQuit(t *testing.T) {
	m := NewModel(context.Background(), &fakeLister{}, model.HistoryConfig{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestNextSourceWraps(t *testing.T) {
	assert.Equal(t, "", nextSource(model.SourcePlay))
	assert.Equal(t, "", nextSource("unknown"))
}

func TestColumnsStretchResult(t *testing.T) {
	cols := columnsFor(120)
	assert.Greater(t, cols[len(cols)-1].Width, 16)
	assert.Equal(t, 16, columnsFor(0)[5].Width)
}
