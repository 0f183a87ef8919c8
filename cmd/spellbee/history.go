package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/spellbee/internal/model"
	"github.com/verte-zerg/spellbee/internal/stats"
	"github.com/verte-zerg/spellbee/internal/statsui"
	"github.com/verte-zerg/spellbee/internal/store"
)

var (
	historySource string
	historySince  string
	historyLast   int
	historyTUI    bool
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show journaled lookups",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historySource, "source", "", "source filter (tool, cli, play)")
	cmd.Flags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&historyLast, "last", 20, "limit to last N lookups (0 for all)")
	cmd.Flags().BoolVarP(&historyTUI, "interactive", "i", false, "browse the journal in a TUI")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := historyConfig()
	if err != nil {
		return err
	}
	serverCfg, err := loadServerConfig(cmd)
	if err != nil {
		return err
	}
	if _, err := os.Stat(serverCfg.JournalPath); os.IsNotExist(err) {
		return fmt.Errorf("no journal at %s (enable it with [journal] enabled = true or --journal)", serverCfg.JournalPath)
	}

	st, err := store.Open(serverCfg.JournalPath)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			fmt.Fprintf(os.Stderr, "failed to close journal: %v\n", cerr)
		}
	}()

	if historyTUI {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return fmt.Errorf("--interactive needs a terminal")
		}
		program := tea.NewProgram(statsui.NewModel(cmd.Context(), st, cfg), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run history TUI: %w", err)
		}
		return nil
	}

	report, err := stats.BuildReport(cmd.Context(), st, cfg)
	if err != nil {
		return fmt.Errorf("failed to read journal: %w", err)
	}
	return stats.WriteReport(cmd.OutOrStdout(), report, terminalWidth())
}

func historyConfig() (model.HistoryConfig, error) {
	cfg := model.HistoryConfig{Source: historySource, Last: historyLast}
	switch historySource {
	case "", model.SourceTool, model.SourceCLI, model.SourcePlay:
	default:
		return cfg, fmt.Errorf("--source must be one of %s, %s, %s", model.SourceTool, model.SourceCLI, model.SourcePlay)
	}
	if historyLast < 0 {
		return cfg, fmt.Errorf("--last must be >= 0")
	}
	if historySince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", historySince, time.Local)
		if err != nil {
			return cfg, fmt.Errorf("invalid --since value: %w", err)
		}
		cfg.Since = &parsed
	}
	return cfg, nil
}

func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return width
}
