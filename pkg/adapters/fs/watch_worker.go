package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"
)

// DefaultWatchDebounce coalesces the bursts of events a single save produces
// (create temp, write, rename).
const DefaultWatchDebounce = 50 * time.Millisecond

type watchWorker struct {
	backend *Backend
	target  string
	watcher *fsnotify.Watcher
	out     chan struct{}
}

// Watch implements core.Watchable. It signals on out every time the file
// holding key is created, written or replaced. The channel is closed when
// ctx is done.
func (b *Backend) Watch(ctx context.Context, key string) (<-chan struct{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	target, err := b.Path(key)
	if err != nil {
		return nil, err
	}

	// The directory must exist to be watched; the file itself may not.
	if err := os.MkdirAll(b.Dir(), 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", b.Dir(), err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(b.Dir()); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", b.Dir(), err)
	}

	w := &watchWorker{
		backend: b,
		target:  target,
		watcher: watcher,
		out:     make(chan struct{}, 1),
	}

	b.trackWatcher(1)
	lifecycle.Go(ctx, w.run, lifecycle.WithErrorHandler(w.handleError))
	return w.out, nil
}

func (w *watchWorker) run(ctx context.Context) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("watcher panic: %v", recovered)
			logger := w.backend.config.Logger
			if logger == nil {
				return
			}
			// Stack traces only when debugging.
			if logger.Enabled(ctx, slog.LevelDebug) {
				logger.Error("watcher panic", "error", err, "stack", string(debug.Stack()))
			} else {
				logger.Error("watcher panic", "error", err)
			}
		}
	}()
	defer w.backend.trackWatcher(-1)
	defer close(w.out)
	defer w.watcher.Close()

	return w.loop(ctx)
}

func (w *watchWorker) loop(ctx context.Context) error {
	timer := time.NewTimer(DefaultWatchDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			if !w.relevant(event) {
				continue
			}
			if w.backend.config.Logger != nil {
				w.backend.config.Logger.Debug("event received", "name", event.Name, "op", event.Op.String())
			}
			timer.Reset(DefaultWatchDebounce)

		case <-timer.C:
			// Coalesce: a signal already waiting covers this change too.
			select {
			case w.out <- struct{}{}:
			default:
			}

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.handleError(wErr)
		}
	}
}

// relevant reports whether event touches the watched file. Atomic writes
// surface as a create or rename of the target; temp files are ignored.
func (w *watchWorker) relevant(event fsnotify.Event) bool {
	if strings.HasPrefix(filepath.Base(event.Name), TempFilePrefix) {
		return false
	}
	if filepath.Clean(event.Name) != w.target {
		return false
	}
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove)
}

func (w *watchWorker) handleError(err error) {
	if w.backend.config.Logger != nil {
		w.backend.config.Logger.Error("fsnotify error", "error", err)
	}
	if w.backend.config.ErrorHandler != nil {
		w.backend.config.ErrorHandler(err)
	}
}
