package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/spellbee/internal/config"
	"github.com/verte-zerg/spellbee/internal/logging"
	"github.com/verte-zerg/spellbee/internal/wordfreq"
)

const (
	defaultWordlistLang = "en"
	defaultWordlistSize = 50000
	defaultMinLength    = 3
)

var (
	wordlistLang      string
	wordlistSize      int
	wordlistMinLength int
	wordlistMaxLength int
	wordlistOut       string
	wordlistForce     bool
)

func newWordlistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wordlist",
		Short: "Generate the word list from the wordfreq dataset",
		Args:  cobra.NoArgs,
		RunE:  runWordlistCmd,
	}
	cmd.Flags().StringVar(&wordlistLang, "lang", defaultWordlistLang, "wordfreq language code")
	cmd.Flags().IntVar(&wordlistSize, "size", defaultWordlistSize, "number of words")
	cmd.Flags().IntVar(&wordlistMinLength, "min-length", defaultMinLength, "shortest word kept")
	cmd.Flags().IntVar(&wordlistMaxLength, "max-length", 0, "longest word kept (0 for no limit)")
	cmd.Flags().StringVar(&wordlistOut, "out", "", "output path (default: the configured word list)")
	cmd.Flags().BoolVar(&wordlistForce, "force", false, "overwrite an existing word list")
	return cmd
}

func runWordlistCmd(cmd *cobra.Command, _ []string) error {
	if wordlistSize <= 0 {
		return fmt.Errorf("--size must be greater than 0")
	}
	if wordlistMinLength < 1 {
		return fmt.Errorf("--min-length must be >= 1")
	}
	if wordlistMaxLength != 0 && wordlistMaxLength < wordlistMinLength {
		return fmt.Errorf("--max-length must be 0 or >= --min-length")
	}

	serverCfg, err := loadServerConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := logging.New(cmd.ErrOrStderr(), serverCfg.LogLevel)
	if err != nil {
		return err
	}
	outPath := serverCfg.WordListPath
	if wordlistOut != "" {
		outPath, err = filepath.Abs(wordlistOut)
		if err != nil {
			return fmt.Errorf("invalid --out: %w", err)
		}
	}

	logger.Info().Msg("fetching wordfreq metadata")
	wheel, err := wordfreq.DownloadLatestWheel(cmd.Context(), config.DefaultWordfreqCacheDir())
	if err != nil {
		return fmt.Errorf("failed to download wordfreq wheel: %w", err)
	}
	logger.Info().Str("wheel", wheel.Filename).Bool("cached", wheel.Cached).Msg("using wordfreq wheel")

	types, err := wordfreq.ListLanguageTypes(wheel.Path)
	if err != nil {
		return fmt.Errorf("failed to list languages: %w", err)
	}
	listType, ok := selectWordlistType(types[wordlistLang])
	if !ok {
		return fmt.Errorf("no word list for %q (available: %v)", wordlistLang, types.Languages())
	}

	words, err := wordfreq.ExtractWordlist(wheel.Path, wordfreq.Options{
		Lang:      wordlistLang,
		ListType:  listType,
		Size:      wordlistSize,
		MinLength: wordlistMinLength,
		MaxLength: wordlistMaxLength,
	})
	if err != nil {
		return fmt.Errorf("failed to extract word list: %w", err)
	}
	if err := wordfreq.WriteCorpus(outPath, words, wordlistForce); err != nil {
		return err
	}
	if err := wordfreq.WriteAttribution(wheel.Path, filepath.Dir(outPath)); err != nil {
		return fmt.Errorf("failed to write attribution: %w", err)
	}
	logger.Info().Str("path", outPath).Int("words", len(words)).Str("list", listType).Msg("wrote word list")
	return nil
}

// selectWordlistType prefers the large list and falls back to the small one.
func selectWordlistType(available map[string]struct{}) (string, bool) {
	for _, t := range []string{"large", "small"} {
		if _, ok := available[t]; ok {
			return t, true
		}
	}
	return "", false
}
