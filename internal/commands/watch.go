package commands

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/okra-platform/jvppgen/internal/watch"
)

// Watch generates once and then regenerates whenever the input file changes.
// Generation failures are logged and do not stop watching.
func (c *Controller) Watch(ctx context.Context) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	logger := c.Logger.With().Str("component", "watch").Logger()

	regenerate := func() {
		results, err := c.generate(cfg)
		if err != nil {
			logger.Error().Err(err).Msg("generation failed")
			return
		}
		logger.Info().Int("types", len(results)).Msg("generation complete")
	}
	regenerate()

	changes := make(chan string, 1)
	fw, err := watch.NewFileWatcher(
		[]string{filepath.Base(cfg.Input)},
		cfg.Watch.Exclude,
		func(path string, op fsnotify.Op) {
			select {
			case changes <- path:
			default:
			}
		},
		watch.WithDebounce(watch.DefaultDebounce),
		watch.WithLogger(c.Logger),
	)
	if err != nil {
		return err
	}
	defer fw.Close()

	dir := filepath.Dir(cfg.Input)
	if err := fw.AddDirectory(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- fw.Start(ctx)
	}()

	logger.Info().Str("input", cfg.Input).Msg("Watching for changes")

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-errCh:
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		case path := <-changes:
			logger.Info().Str("file", path).Msg("Input changed, regenerating")
			regenerate()
		}
	}
}
