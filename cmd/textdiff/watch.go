package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// fileWatcher reports changes to a fixed set of files.
type fileWatcher struct {
	watcher *fsnotify.Watcher
	files   map[string]bool
	logger  *slog.Logger
}

// newFileWatcher watches the directories holding paths, so that files
// replaced by rename are still seen.
func newFileWatcher(logger *slog.Logger, paths ...string) (*fileWatcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &fileWatcher{
		watcher: fsWatcher,
		files:   make(map[string]bool),
		logger:  logger,
	}
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			_ = fsWatcher.Close()
			return nil, fmt.Errorf("resolve %s: %w", p, err)
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fsWatcher.Add(dir); err != nil {
			_ = fsWatcher.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	return w, nil
}

// Run calls onChange after every write, create or rename of a watched file
// until ctx is done.
func (w *fileWatcher) Run(ctx context.Context, onChange func()) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !w.files[abs] {
				continue
			}
			w.logger.Debug("file changed", "path", event.Name, "op", event.Op.String())
			onChange()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch: %w", err)
		}
	}
}

func (w *fileWatcher) Close() error {
	return w.watcher.Close()
}
