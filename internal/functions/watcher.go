package functions

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

const defaultDebounceDuration = 100 * time.Millisecond

// Watcher watches the script root on the local filesystem and reloads the
// registry when function metadata changes. Only meaningful for filesystem
// storage; remote stores have no change notification.
type Watcher struct {
	registry *Registry
	watcher  *fsnotify.Watcher
	rootDir  string
	debounce time.Duration

	mu    sync.Mutex
	timer *time.Timer

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWatcher creates a watcher over rootDir, the script root's location on
// the local filesystem.
func NewWatcher(registry *Registry, rootDir string, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	if debounce <= 0 {
		debounce = defaultDebounceDuration
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Watcher{
		registry: registry,
		watcher:  fsw,
		rootDir:  rootDir,
		debounce: debounce,
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Start begins watching the script root and its function directories.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(w.rootDir); err != nil {
		return fmt.Errorf("adding watch for %s: %w", w.rootDir, err)
	}

	entries, err := os.ReadDir(w.rootDir)
	if err != nil {
		return fmt.Errorf("reading script root: %w", err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(w.rootDir, entry.Name())
		if err := w.watcher.Add(dir); err != nil {
			log.Warn().Err(err).Str("dir", dir).Msg("Failed to watch function directory")
		}
	}

	w.wg.Add(1)
	go w.eventLoop()

	log.Debug().Str("root", w.rootDir).Msg("Watching script root")
	return nil
}

// Stop stops the watcher and cleans up resources.
func (w *Watcher) Stop() error {
	w.cancel()
	w.wg.Wait()

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	return w.watcher.Close()
}

func (w *Watcher) eventLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("Watcher error")
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	// A new function directory needs its own watch for the function.json
	// that lands inside it.
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.watcher.Add(event.Name); err != nil {
				log.Warn().Err(err).Str("dir", event.Name).Msg("Failed to watch new function directory")
			}
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		if err := w.registry.Reload(w.ctx); err != nil {
			log.Warn().Err(err).Msg("Registry reload failed")
			return
		}
		log.Debug().Str("event", event.Name).Msg("Registry reloaded after change")
	})
}
