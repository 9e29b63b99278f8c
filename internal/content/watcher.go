package content

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"cawver-web/internal/background"
	"cawver-web/pkg/logger"
)

const (
	reloadJobName = "content-reload"
	// reloadDelay lets a burst of writes from one save settle into one reload.
	reloadDelay   = 150 * time.Millisecond
	reloadRetries = 2
	reloadBackoff = 300 * time.Millisecond
)

// Watcher reloads a Store whenever its source file is written or replaced.
type Watcher struct {
	watcher   *fsnotify.Watcher
	store     *Store
	scheduler *background.Scheduler
	target    string
	done      chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
}

// NewWatcher watches the directory holding the store's source file. Editors
// often save by renaming a temp file over the original, which only the parent
// directory sees. With a scheduler, reloads are debounced and retried on
// it; without one they run inline on the event loop.
func NewWatcher(store *Store, scheduler *background.Scheduler) (*Watcher, error) {
	if store == nil || store.Source() == "" {
		return nil, errors.New("content store has no source file to watch")
	}

	target, err := filepath.Abs(store.Source())
	if err != nil {
		return nil, err
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := fsWatcher.Add(filepath.Dir(target)); err != nil {
		fsWatcher.Close()
		return nil, err
	}

	return &Watcher{
		watcher:   fsWatcher,
		store:     store,
		scheduler: scheduler,
		target:    target,
		done:      make(chan struct{}),
	}, nil
}

// Start begins handling file events in the background.
func (w *Watcher) Start() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				w.handle(event)

			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				logger.Error(err, "Content watcher error", nil)

			case <-w.done:
				return
			}
		}
	}()
}

func (w *Watcher) handle(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.target {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}

	if w.scheduler == nil {
		if err := w.store.Reload(); err != nil {
			logger.Error(err, "Failed to reload site content, keeping previous version", map[string]interface{}{
				"file": w.target,
			})
		}
		return
	}

	err := w.scheduler.ScheduleCoalesced(background.Job{
		Name:        reloadJobName,
		Delay:       reloadDelay,
		RetryPolicy: background.RetryPolicy{MaxRetries: reloadRetries, Backoff: reloadBackoff},
		Run: func(context.Context) error {
			return w.store.Reload()
		},
	})
	if err != nil && !errors.Is(err, background.ErrJobPending) {
		logger.Error(err, "Failed to schedule content reload", map[string]interface{}{"file": w.target})
	}
}

// Stop ends the event loop and releases the underlying watcher.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.watcher.Close()
		w.wg.Wait()
	})
	return err
}
