// Package watch reruns the upload hook when the options file changes.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce is how long the watcher waits for further events before
// calling the handler.
const DefaultDebounce = 250 * time.Millisecond

// Handler is called once per burst of changes to the watched file.
type Handler func(ctx context.Context) error

// Watcher watches a single file. The parent directory is watched so that
// editors and atomic writers that replace the file are seen too.
type Watcher struct {
	path     string
	debounce time.Duration
	handler  Handler
	logger   zerolog.Logger
	watcher  *fsnotify.Watcher
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the debounce window.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// New creates a watcher for path that calls handler after changes.
func New(path string, handler Handler, logger zerolog.Logger, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &Watcher{
		path:     abs,
		debounce: DefaultDebounce,
		handler:  handler,
		logger:   logger.With().Str("component", "watch").Str("path", abs).Logger(),
		watcher:  fw,
	}
	for _, opt := range opts {
		opt(w)
	}

	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}
	return w, nil
}

// Run blocks until ctx is cancelled. Handler errors are logged and do not
// stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() { _ = w.watcher.Close() }()

	var timer *time.Timer
	var timerC <-chan time.Time

	w.logger.Info().Msg("Watching options file for changes.")

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			w.logger.Debug().Msg("Watcher stopping.")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug().Str("op", event.Op.String()).Msg("Options file changed.")

			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Msg("File watcher error.")

		case <-timerC:
			timer = nil
			timerC = nil
			if err := w.handler(ctx); err != nil {
				w.logger.Error().Err(err).Msg("Failed to apply changed options.")
			}
		}
	}
}

// relevant reports whether event touches the watched file with an operation
// that can leave new content behind.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}
