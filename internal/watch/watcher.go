// Package watch reports changes to API files so they can be regenerated
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce is how long the watcher waits for a burst of events to settle
const DefaultDebounce = 200 * time.Millisecond

// FileWatcher watches directories for changes to files matching patterns
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	patterns []string
	exclude  []string
	onChange func(path string, op fsnotify.Op)
	logger   zerolog.Logger

	debounce time.Duration
	mu       sync.Mutex
	timer    *time.Timer
}

// Option configures a FileWatcher
type Option func(*FileWatcher)

// WithDebounce coalesces events arriving within d into one callback for the
// last of them. Zero disables debouncing.
func WithDebounce(d time.Duration) Option {
	return func(fw *FileWatcher) {
		fw.debounce = d
	}
}

// WithLogger sets the logger watcher errors are reported to
func WithLogger(logger zerolog.Logger) Option {
	return func(fw *FileWatcher) {
		fw.logger = logger.With().Str("component", "watch").Logger()
	}
}

// NewFileWatcher creates a watcher calling onChange for every matching event.
// Patterns and exclusions match the base name of a path; an exclusion ending
// in "/" matches a directory name.
func NewFileWatcher(patterns, exclude []string, onChange func(path string, op fsnotify.Op), opts ...Option) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	fw := &FileWatcher{
		watcher:  watcher,
		patterns: patterns,
		exclude:  exclude,
		onChange: onChange,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(fw)
	}
	return fw, nil
}

// AddDirectory recursively adds a directory to the watcher
func (fw *FileWatcher) AddDirectory(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if path != dir && fw.excludedDir(info.Name()) {
			return filepath.SkipDir
		}
		if err := fw.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", path, err)
		}
		return nil
	})
}

// Start delivers events until ctx is done or the watcher is closed
func (fw *FileWatcher) Start(ctx context.Context) error {
	defer fw.stopTimer()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher channel closed")
			}

			if fw.shouldWatch(event.Name) {
				fw.dispatch(event)
			}

			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !fw.excludedDir(info.Name()) {
					if err := fw.AddDirectory(event.Name); err != nil {
						fw.logger.Warn().Err(err).Str("dir", event.Name).Msg("failed to watch new directory")
					}
				}
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			if err != nil {
				fw.logger.Error().Err(err).Msg("watcher error")
			}
		}
	}
}

// Close stops the watcher
func (fw *FileWatcher) Close() error {
	return fw.watcher.Close()
}

func (fw *FileWatcher) dispatch(event fsnotify.Event) {
	if fw.debounce <= 0 {
		fw.onChange(event.Name, event.Op)
		return
	}

	fw.mu.Lock()
	defer fw.mu.Unlock()
	if fw.timer != nil {
		fw.timer.Stop()
	}
	fw.timer = time.AfterFunc(fw.debounce, func() {
		fw.onChange(event.Name, event.Op)
	})
}

func (fw *FileWatcher) stopTimer() {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	if fw.timer != nil {
		fw.timer.Stop()
	}
}

// shouldWatch reports whether a change to path triggers a callback
func (fw *FileWatcher) shouldWatch(path string) bool {
	base := filepath.Base(path)

	for _, pattern := range fw.exclude {
		if strings.HasSuffix(pattern, "/") {
			if fw.inExcludedDir(path, strings.TrimSuffix(pattern, "/")) {
				return false
			}
			continue
		}
		if matched, _ := filepath.Match(pattern, base); matched {
			return false
		}
	}

	for _, pattern := range fw.patterns {
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}
	return false
}

func (fw *FileWatcher) excludedDir(name string) bool {
	for _, pattern := range fw.exclude {
		dir, ok := strings.CutSuffix(pattern, "/")
		if !ok {
			continue
		}
		if matched, _ := filepath.Match(dir, name); matched {
			return true
		}
	}
	return false
}

func (fw *FileWatcher) inExcludedDir(path, dir string) bool {
	for _, part := range strings.Split(filepath.ToSlash(filepath.Dir(path)), "/") {
		if matched, _ := filepath.Match(dir, part); matched {
			return true
		}
	}
	return false
}
