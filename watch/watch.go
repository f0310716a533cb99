// Package watch reports changes to a single file. The parent directory is
// watched so that editors which replace the file by rename are still seen.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDelay is how long a file must stay quiet before a change is
// reported.
const DefaultDelay = 300 * time.Millisecond

// Watcher debounces change events for one file.
type Watcher struct {
	path  string
	delay time.Duration
	fsw   *fsnotify.Watcher
}

// New starts watching path. Events are delivered once Run is called.
func New(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{path: abs, delay: DefaultDelay, fsw: fsw}, nil
}

// Run calls fn after each burst of writes, creates or renames of the file,
// until ctx is done. It closes the watcher on return.
func (w *Watcher) Run(ctx context.Context, fn func()) error {
	defer w.fsw.Close()

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			log.Debug("file changed", "path", w.path, "op", event.Op.String())

			if timer == nil {
				timer = time.AfterFunc(w.delay, fn)
			} else {
				timer.Reset(w.delay)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", "path", w.path, "error", err)
		}
	}
}

// Watch calls fn whenever path changes, until ctx is done.
func Watch(ctx context.Context, path string, fn func()) error {
	w, err := New(path)
	if err != nil {
		return err
	}
	return w.Run(ctx, fn)
}
