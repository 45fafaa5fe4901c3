package out

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	bookout "readtrack/internal/modules/book/port/out"
	"readtrack/internal/platform/logging"
)

const defaultDebounce = 250 * time.Millisecond

// FSNotifyWatcher watches the parent directory so that editors which
// replace the file on save are still observed.
type FSNotifyWatcher struct {
	debounce time.Duration
	logger   *slog.Logger
}

func NewFSNotifyWatcher(debounce time.Duration, logger *slog.Logger) bookout.ChangeWatcher {
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	return &FSNotifyWatcher{debounce: debounce, logger: logging.Component(logger, "book-watcher")}
}

func (w *FSNotifyWatcher) Watch(ctx context.Context, path string) (<-chan struct{}, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve watch path: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	changes := make(chan struct{}, 1)
	go func() {
		defer close(changes)
		defer fw.Close()
		var timer *time.Timer
		var fire <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return
			case ev, ok := <-fw.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs || ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				if timer == nil {
					timer = time.NewTimer(w.debounce)
				} else {
					timer.Reset(w.debounce)
				}
				fire = timer.C
			case <-fire:
				fire = nil
				select {
				case changes <- struct{}{}:
				default:
				}
			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				w.logger.Warn("watch error", "path", abs, "error", err)
			}
		}
	}()
	return changes, nil
}
