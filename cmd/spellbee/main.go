// Package main provides the CLI entrypoint for spellbee.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/spellbee/internal/config"
	"github.com/verte-zerg/spellbee/internal/logging"
	"github.com/verte-zerg/spellbee/internal/model"
	"github.com/verte-zerg/spellbee/internal/solver"
	"github.com/verte-zerg/spellbee/internal/store"
	"github.com/verte-zerg/spellbee/internal/wordlist"
)

var version = "dev"

var (
	serverWordList string
	serverCache    bool
	serverWatch    bool
	serverJournal  bool
	logLevel       string

	lookupLetters string
	lookupUsed    []string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "spellbee",
		Short:         "Longest-word helper for letter games, served as an MCP tool",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runServeCmd,
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", logging.DefaultLevel, "log level (trace, debug, info, warn, error)")
	addServerFlags(rootCmd)

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newLongestCmd())
	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newWordlistCmd())
	rootCmd.AddCommand(newConfigCmd())
	return rootCmd
}

func addServerFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&serverWordList, "wordlist", "", "word list path, relative to the executable (default: words.txt)")
	cmd.Flags().BoolVar(&serverCache, "cache", false, "keep the parsed word list in memory")
	cmd.Flags().BoolVar(&serverWatch, "watch", true, "drop the cached word list when the file changes")
	cmd.Flags().BoolVar(&serverJournal, "journal", false, "record lookups in the journal database")
}

func addLookupFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&lookupLetters, "letters", "l", "", "allowed letters, e.g. \"c a t s\" or c,a,t,s")
	cmd.Flags().StringSliceVarP(&lookupUsed, "used", "u", nil, "words already used (repeatable or comma separated)")
}

// app holds the pieces shared by every command that answers lookups.
type app struct {
	cfg     model.ServerConfig
	logger  zerolog.Logger
	corpus  *wordlist.Corpus
	journal *store.Store
	service *solver.Service
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadServerConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger, corpus: wordlist.NewCorpus(cfg.WordListPath, cfg.Cache)}
	opts := []solver.Option{solver.WithLogger(logger)}
	if cfg.Journal {
		st, err := store.Open(cfg.JournalPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open journal: %w", err)
		}
		a.journal = st
		opts = append(opts, solver.WithRecorder(st))
	}
	a.service = solver.New(a.corpus, opts...)
	return a, nil
}

func (a *app) close() {
	if a.journal == nil {
		return
	}
	if err := a.journal.Close(); err != nil {
		a.logger.Warn().Err(err).Msg("failed to close journal")
	}
}

func loadServerConfig(cmd *cobra.Command) (model.ServerConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.ServerConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "wordlist", &serverWordList, fileCfg.Server.WordList)
	applyBoolConfig(cmd, "cache", &serverCache, fileCfg.Server.Cache)
	applyBoolConfig(cmd, "watch", &serverWatch, fileCfg.Server.Watch)
	applyBoolConfig(cmd, "journal", &serverJournal, fileCfg.Journal.Enabled)
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)

	installDir, err := config.InstallDir()
	if err != nil {
		return model.ServerConfig{}, fmt.Errorf("failed to locate executable: %w", err)
	}
	journalPath := config.DefaultDBPath()
	if fileCfg.Journal.Path != nil && *fileCfg.Journal.Path != "" {
		journalPath = *fileCfg.Journal.Path
	}
	return model.ServerConfig{
		WordListPath: config.ResolveWordListPath(serverWordList, installDir),
		Cache:        serverCache,
		Watch:        serverWatch,
		Journal:      serverJournal,
		JournalPath:  journalPath,
		LogLevel:     logLevel,
	}, nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}
