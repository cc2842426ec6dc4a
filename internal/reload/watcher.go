package reload

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/atomicstack/kmouse/internal/engine"
	"github.com/atomicstack/kmouse/internal/logging"
	"github.com/atomicstack/kmouse/internal/logging/events"
)

// Watcher re-reads the settings file whenever it changes and publishes the
// merged settings. Invalid files are logged and skipped.
type Watcher struct {
	path   string
	base   engine.Settings
	pinned Pinned

	fs    *fsnotify.Watcher
	quiet time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	settings chan engine.Settings
	wg       sync.WaitGroup
}

// NewWatcher watches the directory holding path so that editors which save by
// renaming are still noticed. A save usually arrives as a burst of events; the
// file is re-read once it has been quiet for the given duration.
func NewWatcher(path string, base engine.Settings, pinned Pinned, quiet time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		path:     filepath.Clean(path),
		base:     base,
		pinned:   pinned,
		fs:       fw,
		quiet:    quiet,
		ctx:      ctx,
		cancel:   cancel,
		settings: make(chan engine.Settings, 1),
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Settings delivers the latest valid settings. Only the newest value is
// kept if the consumer falls behind.
func (w *Watcher) Settings() <-chan engine.Settings {
	return w.settings
}

// Stop cancels the watcher.
func (w *Watcher) Stop() {
	w.cancel()
	w.fs.Close()
}

// Wait blocks until the watch loop has exited.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	var (
		timer *time.Timer
		due   <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	for {
		select {
		case <-w.ctx.Done():
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			if w.quiet <= 0 {
				w.reload()
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.quiet)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.quiet)
			}
			due = timer.C
		case <-due:
			due = nil
			w.reload()
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logging.Error(fmt.Errorf("watch %s: %w", w.path, err))
			events.Reload.Error(w.path, err)
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}

func (w *Watcher) reload() {
	f, err := Decode(w.path)
	if err == nil {
		var s engine.Settings
		s, err = f.Merge(w.base, w.pinned)
		if err == nil {
			w.publish(s)
			events.Reload.Applied(w.path)
			return
		}
	}
	logging.Error(fmt.Errorf("reload %s: %w", w.path, err))
	events.Reload.Error(w.path, err)
}

func (w *Watcher) publish(s engine.Settings) {
	for {
		select {
		case w.settings <- s:
			return
		case <-w.ctx.Done():
			return
		default:
		}
		select {
		case <-w.settings:
		default:
		}
	}
}
