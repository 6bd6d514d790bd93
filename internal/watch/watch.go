// Package watch observes a drop directory for new contract files so
// the review TUI can pick them up automatically.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Files starts an fsnotify watcher on dir and emits the path of every
// newly created regular file until ctx is cancelled. Hidden files and
// editor temp files are skipped. The returned channel is closed when
// the watcher stops.
func Files(ctx context.Context, dir string) (<-chan string, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}

	out := make(chan string)
	go func() {
		defer close(out)
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !ev.Op.Has(fsnotify.Create) || skip(ev.Name) {
					continue
				}
				info, err := os.Stat(ev.Name)
				if err != nil || info.IsDir() {
					continue
				}
				select {
				case out <- ev.Name:
				case <-ctx.Done():
					return
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				// Watch errors are non-fatal; keep watching.
			}
		}
	}()
	return out, nil
}

// skip filters out hidden files and common in-progress write names.
func skip(path string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") {
		return true
	}
	switch {
	case strings.HasSuffix(name, ".tmp"),
		strings.HasSuffix(name, ".part"),
		strings.HasSuffix(name, ".swp"),
		strings.HasSuffix(name, "~"):
		return true
	}
	return false
}
