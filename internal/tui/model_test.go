package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/spellbee/internal/model"
	"github.com/verte-zerg/spellbee/internal/solver"
	"github.com/verte-zerg/spellbee/internal/toolerr"
)

type staticSource []string

func (s staticSource) Words() ([]string, error) { return s, nil }

type failingSolver struct{}

func (failingSolver) Solve(context.Context, model.Query) (model.Answer, error) {
	return model.Answer{}, toolerr.ResourceUnavailable("failed to read word list: %w", errors.New("gone"))
}

// run executes cmd and feeds the resulting message back into the model.
func run(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	m.Update(cmd())
}

func newPlayModel(letters string) *Model {
	svc := solver.New(staticSource{"cat", "act", "cats", "tacts", "dog"})
	return NewModel(context.Background(), svc, letters, nil)
}

func TestEnterSolves(t *testing.T) {
	m := newPlayModel("c a t s")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	run(t, m, cmd)

	assert.True(t, m.answer.Found)
	assert.Equal(t, "tacts", m.answer.Word)
	assert.Contains(t, m.View(), "tacts")
}

func TestTabMarksUsedAndResolves(t *testing.T) {
	m := newPlayModel("cats")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	run(t, m, cmd)

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	run(t, m, cmd)
	assert.Equal(t, []string{"tacts"}, m.Used())
	assert.Equal(t, "cats", m.answer.Word)

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	run(t, m, cmd)
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	run(t, m, cmd)
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	run(t, m, cmd)
	assert.Equal(t, []string{"tacts", "cats", "cat", "act"}, m.Used())
	assert.False(t, m.answer.Found)
	assert.Equal(t, solver.NoMatch, m.answer.Word)

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Nil(t, cmd, "tab without an answer does nothing")
	assert.Len(t, m.Used(), 4)
}

func TestCtrlRClearsUsed(t *testing.T) {
	svc := solver.New(staticSource{"cat", "cats"})
	m := NewModel(context.Background(), svc, "cats", []string{"cats", "cats"})
	assert.Equal(t, []string{"cats"}, m.Used())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	run(t, m, cmd)
	assert.Empty(t, m.Used())
	assert.Equal(t, "cats", m.answer.Word)
}

func TestStaleResultIgnored(t *testing.T) {
	m := newPlayModel("cat")
	_, first := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	_, second := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	stale := first()
	run(t, m, second)
	m.Update(solvedMsg{seq: stale.(solvedMsg).seq, answer: model.Answer{Word: "stale", Found: true}})
	assert.Equal(t, "cat", m.answer.Word)
}

func TestErrorRendered(t *testing.T) {
	m := NewModel(context.Background(), failingSolver{}, "cat", nil)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	run(t, m, cmd)
	assert.Contains(t, m.View(), "resource_unavailable")
}

func TestQuitKeys(t *testing.T) {
	for _, key := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		m := newPlayModel("cat")
		_, cmd := m.Update(tea.KeyMsg{Type: key})
		require.NotNil(t, cmd)
		assert.Equal(t, tea.Quit(), cmd())
	}
}

func TestInitSolvesPrefilledLetters(t *testing.T) {
	assert.NotNil(t, newPlayModel("").Init())
	m := newPlayModel("cat")
	m.Update(m.solveCmd()())
	assert.Equal(t, "cat", m.answer.Word)
}

func TestViewFitsWindow(t *testing.T) {
	m := newPlayModel("cats")
	m.Update(tea.WindowSizeMsg{Width: 60, Height: 12})
	view := m.View()
	assert.Len(t, strings.Split(view, "\n"), 12)
	assert.Contains(t, view, "esc quit")
}

func TestCtrlNStartsNewPuzzle(t *testing.T) {
	svc := solver.New(staticSource{"cat", "dog", "good"})
	puzzles := [][]string{{"d", "o", "g"}}
	m := NewModel(context.Background(), svc, "cat", []string{"cat"}, WithPuzzles(func() ([]string, error) {
		next := puzzles[0]
		return next, nil
	}))
	assert.Contains(t, m.renderFooter(), "ctrl+n")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	run(t, m, cmd)
	assert.Equal(t, "d o g", m.input.Value())
	assert.Empty(t, m.Used())
	assert.Equal(t, "good", m.answer.Word)
}

func TestCtrlNWithoutPuzzles(t *testing.T) {
	m := newPlayModel("cat")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	assert.Nil(t, cmd)
	assert.NotContains(t, m.renderFooter(), "ctrl+n")
}

func TestCtrlNError(t *testing.T) {
	m := NewModel(context.Background(), failingSolver{}, "", nil, WithPuzzles(func() ([]string, error) {
		return nil, toolerr.Internal("no puzzle")
	}))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "no puzzle")
}
