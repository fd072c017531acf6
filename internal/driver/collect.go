package driver

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"tolkfmt/internal/config"
)

// Ext is the extension of Tolk source files.
const Ext = ".tolk"

// PathError reports an input path that does not exist.
type PathError struct {
	Path string
}

func (e *PathError) Error() string { return "Path not found: " + e.Path }

// CollectFiles expands paths into a sorted, deduplicated list of .tolk files.
// Directories are walked recursively, skipping node_modules, dot directories
// and the config's exclude patterns. Explicit file arguments are taken as given.
// Paths that do not exist are returned in missing.
func CollectFiles(ctx context.Context, paths []string, cfg *config.Config) (files, missing []string, err error) {
	seen := make(map[string]struct{})
	addFile := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		info, err := os.Stat(p)
		if errors.Is(err, os.ErrNotExist) {
			missing = append(missing, p)
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		if !info.IsDir() {
			addFile(filepath.Clean(p))
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if d.IsDir() {
				if path != p && skipDir(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(path) != Ext || excluded(cfg, path) {
				return nil
			}
			addFile(path)
			return nil
		})
		if err != nil {
			return nil, nil, err
		}
	}

	sort.Strings(files)
	return files, missing, nil
}

func skipDir(name string) bool {
	return name == "node_modules" || (strings.HasPrefix(name, ".") && name != "." && name != "..")
}

func excluded(cfg *config.Config, path string) bool {
	if cfg == nil || len(cfg.Exclude) == 0 {
		return false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	base, err := filepath.Abs(cfg.Dir())
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(base, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = path
	}
	return cfg.Excluded(rel)
}
