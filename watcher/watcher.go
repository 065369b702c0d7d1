package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

const (
	watcherStr      = "watcher"
	DefaultDebounce = 500 * time.Millisecond
)

// Watcher notifies changes of a single file. fsnotify watches the directory that contains
// it so that editors that replace the file are also detected
// + path: cleaned path of the watched file
// + debounce: a burst of events closer than this produces only one notification
type Watcher struct {
	path     string
	debounce time.Duration
	watcher  *fsnotify.Watcher
}

func New(path string, debounce time.Duration) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("error resolving path %s: %w", path, err)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("error creating watcher: %w", err)
	}

	if err := fsWatcher.Add(filepath.Dir(absPath)); err != nil {
		_ = fsWatcher.Close()
		return nil, fmt.Errorf("error watching directory of %s: %w", path, err)
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{
		path:     absPath,
		debounce: debounce,
		watcher:  fsWatcher,
	}, nil
}

func getLogMessage(method string, message string, err error) string {
	if err != nil {
		return fmt.Sprintf("[component: %s][method: %s][status: ERROR] %s: %s", watcherStr, method, message, err.Error())
	}
	return fmt.Sprintf("[component: %s][method: %s][status: OK] %s", watcherStr, method, message)
}

// Watch blocks until ctx is done or the watcher fails. onChange is called with the path of
// the file after each write or creation of it, never concurrently with itself
func (w *Watcher) Watch(ctx context.Context, onChange func(path string)) error {
	defer func() { _ = w.watcher.Close() }()

	var (
		mu    sync.Mutex
		timer *time.Timer
		fire  sync.Mutex
	)
	notify := func() {
		fire.Lock()
		defer fire.Unlock()
		if ctx.Err() != nil {
			return
		}
		log.Info(getLogMessage("Watch", "change detected on "+w.path, nil))
		onChange(w.path)
	}
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.isRelevant(event) {
				continue
			}

			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, notify)
			mu.Unlock()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Error(getLogMessage("Watch", "watcher failed", err))
			return err
		}
	}
}

func (w *Watcher) isRelevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}

	eventPath, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return eventPath == w.path
}

// Path returns the absolute path of the watched file
func (w *Watcher) Path() string {
	return w.path
}
