package cli

import (
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 500 * time.Millisecond

// watch re-extracts changed files until interrupted. Events are debounced
// so editor save bursts trigger one pass.
func (r *runner) watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := addDirectoriesRecursively(watcher, r.rootDir); err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	var debounce *time.Timer
	changed := make(map[string]bool)
	extractCh := make(chan struct{}, 1)

	for {
		select {
		case <-sigCh:
			log.Println("Watch mode stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !r.shouldProcessEvent(event) {
				continue
			}

			// New directories need watching too.
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					addDirectoriesRecursively(watcher, event.Name)
					continue
				}
			}

			changed[event.Name] = true
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(watchDebounce, func() {
				select {
				case extractCh <- struct{}{}:
				default:
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("Watch error: %v", err)

		case <-extractCh:
			files := make([]string, 0, len(changed))
			for f := range changed {
				files = append(files, f)
			}
			changed = make(map[string]bool)

			for _, file := range files {
				if _, err := os.Stat(file); err != nil {
					continue // deleted between event and extraction
				}
				if n, ok := r.extractOne(file); ok {
					log.Printf("Re-extracted %s (%d messages)", r.relPath(file), n)
				}
			}
		}
	}
}

// shouldProcessEvent filters watch events down to writes of extractable
// source files (and directory creation, handled by the caller).
func (r *runner) shouldProcessEvent(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Rename) {
		return false
	}

	if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
		return true
	}
	return r.files.Matches(r.relPath(event.Name))
}

// addDirectoriesRecursively registers a directory tree with the watcher,
// skipping hidden directories and node_modules.
func addDirectoriesRecursively(watcher *fsnotify.Watcher, root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		name := info.Name()
		if path != root && (name == "node_modules" || (len(name) > 1 && name[0] == '.')) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
