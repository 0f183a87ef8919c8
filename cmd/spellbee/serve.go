package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/verte-zerg/spellbee/internal/mcp"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve get_longest_word over MCP on stdin/stdout (default)",
		Args:  cobra.NoArgs,
		RunE:  runServeCmd,
	}
	addServerFlags(cmd)
	return cmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	serveCtx, cancel := context.WithCancel(gctx)
	defer cancel()

	if a.cfg.Cache && a.cfg.Watch {
		g.Go(func() error {
			if err := a.corpus.Watch(serveCtx, a.logger); err != nil {
				a.logger.Warn().Err(err).Msg("word list watcher disabled")
			}
			return nil
		})
	}

	if _, err := a.corpus.Words(); err != nil {
		a.logger.Warn().Err(err).Str("wordlist", a.corpus.Path()).Msg("word list not readable yet; lookups will fail until it is")
	}

	srv := mcp.NewServer(a.service, mcp.WithLogger(a.logger), mcp.WithVersion(version))
	g.Go(func() error {
		defer cancel()
		return srv.Serve(serveCtx, mcp.Stdio())
	})

	a.logger.Info().
		Str("wordlist", a.corpus.Path()).
		Bool("cache", a.cfg.Cache).
		Bool("journal", a.cfg.Journal).
		Str("version", version).
		Msg("spellbee tool server ready on stdio")

	if err := g.Wait(); err != nil {
		a.logger.Error().Err(err).Msg("tool server stopped")
		return err
	}
	return nil
}
