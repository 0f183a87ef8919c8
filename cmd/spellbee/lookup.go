package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/spellbee/internal/generator"
	"github.com/verte-zerg/spellbee/internal/model"
	"github.com/verte-zerg/spellbee/internal/solver"
	"github.com/verte-zerg/spellbee/internal/tui"
)

var playPuzzleSize int

func newLongestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "longest [letters]",
		Short: "Print the longest unused word for a set of letters",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLongestCmd,
	}
	addServerFlags(cmd)
	addLookupFlags(cmd)
	return cmd
}

func runLongestCmd(cmd *cobra.Command, args []string) error {
	letters := lookupLetters
	if len(args) == 1 {
		if cmd.Flags().Changed("letters") {
			return fmt.Errorf("pass letters either as an argument or with --letters")
		}
		letters = args[0]
	}
	if strings.TrimSpace(letters) == "" {
		return fmt.Errorf("--letters must not be empty")
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	answer, err := a.service.Solve(cmd.Context(), model.Query{
		Source:    model.SourceCLI,
		Letters:   solver.SplitLetters(letters),
		UsedWords: lookupUsed,
	})
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), answer.Word); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Solve interactively in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runPlayCmd,
	}
	addServerFlags(cmd)
	addLookupFlags(cmd)
	cmd.Flags().IntVar(&playPuzzleSize, "puzzle-size", generator.DefaultPuzzleSize, "distinct letters in generated puzzles")
	return cmd
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("play needs an interactive terminal; use `spellbee longest` in scripts")
	}
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	gen := generator.New()
	puzzle := func() ([]string, error) {
		words, err := a.corpus.Words()
		if err != nil {
			return nil, err
		}
		return gen.Letters(words, playPuzzleSize)
	}
	letters := lookupLetters
	if strings.TrimSpace(letters) == "" {
		if next, err := puzzle(); err == nil {
			letters = strings.Join(next, " ")
		} else {
			a.logger.Debug().Err(err).Msg("no starting puzzle")
		}
	}

	m := tui.NewModel(cmd.Context(), a.service, letters, lookupUsed, tui.WithPuzzles(puzzle))
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
