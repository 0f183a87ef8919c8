// Package tui provides the Bubble Tea play interface.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/verte-zerg/spellbee/internal/model"
	"github.com/verte-zerg/spellbee/internal/solver"
	"github.com/verte-zerg/spellbee/internal/toolerr"
)

// Solver answers lookups for the play screen.
type Solver interface {
	Solve(ctx context.Context, q model.Query) (model.Answer, error)
}

type solvedMsg struct {
	seq    int
	answer model.Answer
	err    error
}

// PuzzleFunc returns a fresh set of letters.
type PuzzleFunc func() ([]string, error)

// Option configures a Model.
type Option func(*Model)

// WithPuzzles enables ctrl+n, which replaces the letters with a new puzzle.
func WithPuzzles(fn PuzzleFunc) Option {
	return func(m *Model) {
		m.puzzle = fn
	}
}

// Model implements the Bubble Tea play UI.
type Model struct {
	ctx    context.Context
	solver Solver
	puzzle PuzzleFunc
	input  textinput.Model

	used   []string
	answer model.Answer
	err    error
	solved bool
	seq    int

	width  int
	height int
}

var (
	labelStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	answerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	missStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")).Italic(true)
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	usedStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	latestUsedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	footerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// NewModel constructs a play model. letters pre-fills the input and used
// seeds the used-word list.
func NewModel(ctx context.Context, s Solver, letters string, used []string, opts ...Option) *Model {
	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = "letters, e.g. c a t s"
	input.CharLimit = 64
	input.SetValue(letters)
	input.Focus()
	m := &Model{
		ctx:    ctx,
		solver: s,
		input:  input,
		used:   lo.Uniq(used),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if strings.TrimSpace(m.input.Value()) != "" {
		return tea.Batch(textinput.Blink, m.solveCmd())
	}
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case solvedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.answer = msg.answer
		m.err = msg.err
		m.solved = true
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m, m.solveCmd()
		case tea.KeyTab:
			if !m.solved || !m.answer.Found {
				return m, nil
			}
			m.used = lo.Uniq(append(m.used, m.answer.Word))
			return m, m.solveCmd()
		case tea.KeyCtrlR:
			m.used = nil
			return m, m.solveCmd()
		case tea.KeyCtrlN:
			if m.puzzle == nil {
				return m, nil
			}
			return m, m.newPuzzle()
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// Used returns the words marked as used so far.
func (m *Model) Used() []string {
	return append([]string(nil), m.used...)
}

func (m *Model) newPuzzle() tea.Cmd {
	letters, err := m.puzzle()
	if err != nil {
		m.seq++
		m.err = err
		m.solved = true
		return nil
	}
	m.input.SetValue(strings.Join(letters, " "))
	m.used = nil
	return m.solveCmd()
}

func (m *Model) solveCmd() tea.Cmd {
	m.seq++
	seq := m.seq
	q := model.Query{
		Source:    model.SourcePlay,
		Letters:   solver.SplitLetters(m.input.Value()),
		UsedWords: m.Used(),
	}
	ctx, s := m.ctx, m.solver
	return func() tea.Msg {
		answer, err := s.Solve(ctx, q)
		return solvedMsg{seq: seq, answer: answer, err: err}
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	contentWidth := m.width * 7 / 10
	if contentWidth < 20 {
		contentWidth = 20
	}

	lines := []string{
		labelStyle.Render("Letters ") + m.input.View(),
		"",
		labelStyle.Render("Answer  ") + m.renderAnswer(),
		"",
		labelStyle.Render(fmt.Sprintf("Used (%d)", len(m.used))),
	}
	if len(m.used) > 0 {
		latest := m.used[len(m.used)-1]
		lines = append(lines, wrapStyledWords(buildStyledWords(m.used, latest), contentWidth))
	}
	content := strings.Join(lines, "\n")
	footer := m.renderFooter()

	if m.width == 0 || m.height == 0 {
		return content + "\n\n" + footer
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	block := lipgloss.NewStyle().Width(contentWidth).Render(content)
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, block)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderAnswer() string {
	switch {
	case !m.solved:
		return missStyle.Render("press enter")
	case m.err != nil:
		return errorStyle.Render(fmt.Sprintf("%s: %v", toolerr.CategoryOf(m.err), m.err))
	case !m.answer.Found:
		return missStyle.Render(m.answer.Word)
	default:
		return answerStyle.Render(m.answer.Word)
	}
}

func (m *Model) renderFooter() string {
	keys := []string{"enter solve", "tab mark used", "ctrl+r clear used"}
	if m.puzzle != nil {
		keys = append(keys, "ctrl+n new letters")
	}
	keys = append(keys, "esc quit")
	return footerStyle.Render(strings.Join(keys, " · "))
}
