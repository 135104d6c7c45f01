package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"timecard-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

const configDebounce = 100 * time.Millisecond

// configWatcher reloads the global config whenever the file changes on disk
// and hands the result to the program as a message.
type configWatcher struct {
	path    string
	logger  *slog.Logger
	watcher *fsnotify.Watcher
	msgs    chan tea.Msg
	cancel  context.CancelFunc
}

// watchConfig watches the directory holding path; editors often replace the
// file instead of writing it in place.
func watchConfig(ctx context.Context, path string, logger *slog.Logger) (*configWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create config watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}
	runCtx, cancel := context.WithCancel(ctx)
	cw := &configWatcher{
		path:    filepath.Clean(path),
		logger:  logger,
		watcher: w,
		msgs:    make(chan tea.Msg, 1),
		cancel:  cancel,
	}
	go cw.run(runCtx)
	return cw, nil
}

func (cw *configWatcher) run(ctx context.Context) {
	defer close(cw.msgs)

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != cw.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			cw.logger.Debug("config event", "op", ev.Op.String(), "path", ev.Name)
			if timer == nil {
				timer = time.NewTimer(configDebounce)
			} else {
				timer.Reset(configDebounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			cfg, err := store.LoadConfigFile(cw.path)
			if err != nil {
				cw.logger.Warn("config reload failed", "error", err)
				cw.send(ctx, watchErrMsg{err: err})
				continue
			}
			cw.send(ctx, configChangedMsg{cfg: cfg})

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			cw.logger.Error("fsnotify error", "error", err)
			cw.send(ctx, watchErrMsg{err: err})
		}
	}
}

func (cw *configWatcher) send(ctx context.Context, msg tea.Msg) {
	// Only the newest change matters; drop a stale unread one.
	select {
	case <-cw.msgs:
	default:
	}
	select {
	case cw.msgs <- msg:
	case <-ctx.Done():
	}
}

// next waits for the watcher's next message. The app re-issues it after each one.
func (cw *configWatcher) next() tea.Cmd {
	if cw == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-cw.msgs
		if !ok {
			return nil
		}
		return msg
	}
}

func (cw *configWatcher) Close() error {
	if cw == nil {
		return nil
	}
	cw.cancel()
	if err := cw.watcher.Close(); err != nil && !errors.Is(err, fsnotify.ErrClosed) {
		return err
	}
	return nil
}
