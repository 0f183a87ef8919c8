package wordlist

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const watchedOps = fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename

// Watch invalidates the cache whenever the word list file changes. It
// watches the containing directory so that editors replacing the file
// by rename are noticed. Anything cached before the watch is registered
// is dropped. Watch blocks until ctx is done.
func (c *Corpus) Watch(ctx context.Context, logger zerolog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		if cerr := watcher.Close(); cerr != nil {
			logger.Debug().Err(cerr).Msg("closing corpus watcher")
		}
	}()

	dir := filepath.Dir(c.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	target := filepath.Clean(c.path)
	// Changes made before the watch was registered went unseen.
	c.Invalidate()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&watchedOps == 0 {
				continue
			}
			c.Invalidate()
			logger.Info().Str("path", c.path).Str("op", event.Op.String()).Msg("word list changed, cache dropped")
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(werr).Msg("corpus watcher error")
		}
	}
}
