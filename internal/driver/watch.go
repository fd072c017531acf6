package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchDebounce is the quiet period after the last change before files are reformatted.
const WatchDebounce = 100 * time.Millisecond

// Watch reformats .tolk files under paths whenever they change, until ctx is
// cancelled. Each reformatted file is passed to onResult. Watch honours
// opts.Write; without it results only report what would change.
func Watch(ctx context.Context, paths []string, opts Options, onResult func(Result)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Явно переданные файлы: следим за каталогом, фильтруем по имени.
	only := make(map[string]struct{})
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return &PathError{Path: p}
		}
		if info.IsDir() {
			if err := watchDir(watcher, p); err != nil {
				return fmt.Errorf("failed to watch %s: %w", p, err)
			}
			continue
		}
		only[filepath.Clean(p)] = struct{}{}
		if err := watcher.Add(filepath.Dir(p)); err != nil {
			return fmt.Errorf("failed to watch %s: %w", p, err)
		}
	}
	dirsWatched := len(only) < len(paths)

	pending := make(map[string]struct{})
	var debounce *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create != 0 && dirsWatched {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !skipDir(info.Name()) {
					_ = watchDir(watcher, event.Name)
					continue
				}
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			name := filepath.Clean(event.Name)
			if filepath.Ext(name) != Ext {
				continue
			}
			if _, listed := only[name]; !listed && (!dirsWatched || excluded(opts.Config, name)) {
				continue
			}
			pending[name] = struct{}{}
			if debounce == nil {
				debounce = time.NewTimer(WatchDebounce)
			} else {
				debounce.Reset(WatchDebounce)
			}
			fire = debounce.C
		case <-fire:
			fire = nil
			files := make([]string, 0, len(pending))
			for name := range pending {
				files = append(files, name)
			}
			clear(pending)
			sort.Strings(files)
			for _, f := range files {
				if ctx.Err() != nil {
					return nil
				}
				res := formatFile(f, &opts)
				if onResult != nil {
					onResult(res)
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if onResult != nil {
				onResult(Result{Err: fmt.Errorf("watcher error: %w", err)})
			}
		}
	}
}

// watchDir recursively adds a directory to the watcher.
func watchDir(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && skipDir(d.Name()) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
