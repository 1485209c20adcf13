package colorpicker

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultWatchDebounce is the default debounce interval for file watch events.
const DefaultWatchDebounce = 500 * time.Millisecond

// configWatcher reloads the picker when its configuration file changes.
// It watches the parent directory so editors that save by renaming a
// temporary file are seen too.
type configWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	onReload func() error
	onError  func(error)

	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

func newConfigWatcher(path string, debounce time.Duration, onReload func() error, onError func(error)) (*configWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, err
	}
	return &configWatcher{
		watcher:  w,
		path:     abs,
		debounce: debounce,
		onReload: onReload,
		onError:  onError,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start runs the event loop on its own goroutine.
func (cw *configWatcher) Start() {
	go cw.loop()
}

// Stop ends the event loop and waits for it. Safe to call more than once.
func (cw *configWatcher) Stop() {
	cw.stopOnce.Do(func() { close(cw.stopCh) })
	<-cw.doneCh
}

// relevant reports whether ev may have changed the configuration file.
func (cw *configWatcher) relevant(ev fsnotify.Event) bool {
	name, err := filepath.Abs(ev.Name)
	if err != nil {
		name = ev.Name
	}
	if name != cw.path {
		return false
	}
	return ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

func (cw *configWatcher) loop() {
	defer close(cw.doneCh)
	defer cw.watcher.Close()

	timer := time.NewTimer(cw.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-cw.stopCh:
			return

		case ev, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if cw.relevant(ev) {
				timer.Reset(cw.debounce)
			}

		case <-timer.C:
			if cw.onReload == nil {
				continue
			}
			if err := cw.onReload(); err != nil && cw.onError != nil {
				cw.onError(err)
			}

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			if cw.onError != nil {
				cw.onError(err)
			}
		}
	}
}
