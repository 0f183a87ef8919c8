// Package statsui provides the Bubble Tea history browser.
package statsui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/spellbee/internal/model"
	"github.com/verte-zerg/spellbee/internal/stats"
)

var sourceCycle = []string{"", model.SourceTool, model.SourceCLI, model.SourcePlay}

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
)

// Model implements the Bubble Tea history UI.
type Model struct {
	ctx    context.Context
	lister stats.Lister
	cfg    model.HistoryConfig

	report stats.Report
	errMsg string
	table  table.Model

	width  int
	height int
}

// NewModel constructs a history UI model and loads the first report.
func NewModel(ctx context.Context, lister stats.Lister, cfg model.HistoryConfig) *Model {
	m := &Model{ctx: ctx, lister: lister, cfg: cfg}
	m.table = table.New(
		table.WithColumns(columnsFor(0)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	m.refreshReport()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "s":
			m.cfg.Source = nextSource(m.cfg.Source)
			m.refreshReport()
			return m, nil
		case "r":
			m.refreshReport()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	source := m.cfg.Source
	if source == "" {
		source = "all"
	}
	header := headerStyle.Render(fmt.Sprintf("Source: %s · s cycle source · r reload · q quit", source))
	if m.errMsg != "" {
		return header + "\n\n" + errorStyle.Render(m.errMsg)
	}
	s := m.report.Summary
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		renderCard("Calls", strconv.Itoa(s.Calls)),
		renderCard("Found", strconv.Itoa(s.Found)),
		renderCard("Misses", strconv.Itoa(s.Misses)),
		renderCard("Errors", strconv.Itoa(s.Errors)),
		renderCard("Avg ms", fmt.Sprintf("%.1f", s.AvgDurationMs)),
	)
	parts := []string{header, cards}
	if len(m.report.Top) > 0 {
		top := make([]string, 0, len(m.report.Top))
		for _, rc := range m.report.Top {
			top = append(top, fmt.Sprintf("%s (%d)", rc.Word, rc.Count))
		}
		parts = append(parts, headerStyle.Render("Top answers: ")+strings.Join(top, ", "))
	}
	if len(m.report.Entries) == 0 {
		parts = append(parts, "", headerStyle.Render("No lookups journaled yet."))
		return strings.Join(parts, "\n")
	}
	parts = append(parts, "", m.table.View())
	return strings.Join(parts, "\n")
}

func (m *Model) refreshReport() {
	report, err := stats.BuildReport(m.ctx, m.lister, m.cfg)
	if err != nil {
		m.errMsg = fmt.Sprintf("failed to load journal: %v", err)
		return
	}
	m.errMsg = ""
	m.report = report
	m.table.SetRows(rowsFor(report.Entries))
	m.table.GotoBottom()
}

func (m *Model) updateLayout() {
	m.table.SetColumns(columnsFor(m.width))
	// header, cards (3 lines), top answers, spacer
	reserved := 7
	if h := m.height - reserved; h > 3 {
		m.table.SetHeight(h)
	}
}

func columnsFor(width int) []table.Column {
	cols := []table.Column{
		{Title: "Time", Width: 19},
		{Title: "Source", Width: 6},
		{Title: "Letters", Width: 10},
		{Title: "Used", Width: 4},
		{Title: "ms", Width: 5},
		{Title: "Result", Width: 16},
	}
	if width <= 0 {
		return cols
	}
	fixed := 0
	for _, c := range cols[:len(cols)-1] {
		fixed += c.Width + 2
	}
	if rest := width - fixed - 2; rest > cols[len(cols)-1].Width {
		cols[len(cols)-1].Width = rest
	}
	return cols
}

func rowsFor(entries []model.Invocation) []table.Row {
	rows := make([]table.Row, 0, len(entries))
	for _, inv := range entries {
		result := inv.Result
		if inv.ErrCategory != "" {
			result = "error: " + inv.ErrCategory
		}
		rows = append(rows, table.Row{
			inv.At.Local().Format("2006-01-02 15:04:05"),
			inv.Source,
			inv.Letters,
			strconv.Itoa(inv.UsedCount),
			strconv.FormatInt(inv.DurationMs, 10),
			result,
		})
	}
	return rows
}

func renderCard(title, value string) string {
	return cardStyle.Render(cardTitleStyle.Render(title) + "\n" + cardValueStyle.Render(value))
}

func nextSource(current string) string {
	for i, s := range sourceCycle {
		if s == current {
			return sourceCycle[(i+1)%len(sourceCycle)]
		}
	}
	return sourceCycle[0]
}
