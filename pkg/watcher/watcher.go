// Package watcher reports component source files that changed on disk.
package watcher

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ursazoo/compdoc/pkg/discovery"
)

// DefaultDebounce is the quiet period applied per path before the handler runs.
const DefaultDebounce = 200 * time.Millisecond

// Handler is invoked with the absolute path of a changed file.
type Handler func(path string)

// Options configures a FileWatcher.
type Options struct {
	// Debounce groups rapid events for the same path. Zero selects DefaultDebounce.
	Debounce time.Duration
	// Filter selects candidate files by their path relative to the root.
	Filter discovery.Config
}

// FileWatcher watches a directory tree and calls a Handler for changed
// candidate files.
//
// **Features:**
//   - Debouncing - Groups rapid changes to one handler call per path
//   - Serialized - Handler calls never overlap
//   - Recursive - Directories created after Start are watched too
//
// **Usage:**
//
//	w, err := NewFileWatcher(handle, Options{Filter: cfg}, logger)
//	if err != nil {
//	    return err
//	}
//	if err := w.Start("src/components"); err != nil {
//	    return err
//	}
//	defer w.Stop()
type FileWatcher struct {
	watcher *fsnotify.Watcher
	handler Handler
	options Options
	logger  *slog.Logger
	root    string

	// Debouncing
	debounceTimers map[string]*time.Timer
	debounceMu     sync.Mutex

	// handlerMu serializes handler calls
	handlerMu sync.Mutex

	// Lifecycle
	stopChan chan struct{}
	stopped  bool
	mu       sync.Mutex
}

// NewFileWatcher creates a new file watcher.
func NewFileWatcher(handler Handler, options Options, logger *slog.Logger) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if options.Debounce <= 0 {
		options.Debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FileWatcher{
		watcher:        w,
		handler:        handler,
		options:        options,
		logger:         logger,
		debounceTimers: make(map[string]*time.Timer),
		stopChan:       make(chan struct{}),
	}, nil
}

// Start begins watching rootPath and its subdirectories in the background.
func (fw *FileWatcher) Start(rootPath string) error {
	fw.mu.Lock()
	if fw.stopped {
		fw.mu.Unlock()
		return fmt.Errorf("watcher already stopped")
	}
	fw.mu.Unlock()

	if err := fw.options.Filter.Validate(); err != nil {
		return err
	}
	root, err := filepath.Abs(rootPath)
	if err != nil {
		return fmt.Errorf("failed to resolve root path: %w", err)
	}
	fw.root = root

	if err := fw.addTree(root); err != nil {
		return fmt.Errorf("failed to watch %s: %w", root, err)
	}
	fw.logger.Info("file watcher started", "root", root, "debounce", fw.options.Debounce)

	go fw.eventLoop()
	return nil
}

// addTree watches dir and every non-excluded directory below it.
func (fw *FileWatcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil // Continue on error
		}
		if !d.IsDir() {
			return nil
		}
		if path != fw.root && fw.options.Filter.Excluded(fw.rel(path)) {
			return filepath.SkipDir
		}
		if err := fw.watcher.Add(path); err != nil {
			fw.logger.Warn("failed to watch directory", "path", path, "error", err)
		}
		return nil
	})
}

// Stop stops the file watcher. Safe to call multiple times.
func (fw *FileWatcher) Stop() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.stopped {
		return nil
	}
	fw.stopped = true
	close(fw.stopChan)

	fw.debounceMu.Lock()
	for _, timer := range fw.debounceTimers {
		timer.Stop()
	}
	fw.debounceTimers = make(map[string]*time.Timer)
	fw.debounceMu.Unlock()

	err := fw.watcher.Close()
	fw.logger.Info("file watcher stopped")
	return err
}

// eventLoop is the main event processing loop.
func (fw *FileWatcher) eventLoop() {
	for {
		select {
		case <-fw.stopChan:
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			fw.handleEvent(event)

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Error("file watcher error", "error", err)
		}
	}
}

// handleEvent processes a file system event.
func (fw *FileWatcher) handleEvent(event fsnotify.Event) {
	path := event.Name
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if err := fw.addTree(path); err != nil {
				fw.logger.Warn("failed to watch new directory", "path", path, "error", err)
			}
			return
		}
	}
	if !fw.options.Filter.Match(fw.rel(path)) {
		return
	}

	fw.logger.Debug("file event", "op", event.Op.String(), "file", path)
	switch {
	case event.Has(fsnotify.Write), event.Has(fsnotify.Create):
		fw.debounce(path)
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		// Documents of removed components are kept until regenerated by hand.
		fw.logger.Info("component source removed", "file", path)
	}
}

// debounce schedules the handler after the debounce delay. Later events for
// the same path restart the delay.
func (fw *FileWatcher) debounce(path string) {
	fw.debounceMu.Lock()
	defer fw.debounceMu.Unlock()

	if timer, exists := fw.debounceTimers[path]; exists {
		timer.Stop()
	}
	fw.debounceTimers[path] = time.AfterFunc(fw.options.Debounce, func() {
		fw.debounceMu.Lock()
		delete(fw.debounceTimers, path)
		fw.debounceMu.Unlock()

		fw.mu.Lock()
		stopped := fw.stopped
		fw.mu.Unlock()
		if stopped {
			return
		}

		fw.handlerMu.Lock()
		defer fw.handlerMu.Unlock()
		fw.handler(path)
	})
}

func (fw *FileWatcher) rel(path string) string {
	rel, err := filepath.Rel(fw.root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// Stats returns file watcher statistics.
func (fw *FileWatcher) Stats() FileWatcherStats {
	fw.debounceMu.Lock()
	pending := len(fw.debounceTimers)
	fw.debounceMu.Unlock()

	fw.mu.Lock()
	defer fw.mu.Unlock()
	return FileWatcherStats{
		Pending:   pending,
		IsRunning: !fw.stopped,
	}
}

// FileWatcherStats contains file watcher statistics.
type FileWatcherStats struct {
	Pending   int
	IsRunning bool
}
