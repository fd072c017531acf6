package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tolkfmt/internal/config"
	"tolkfmt/internal/format"
)

const (
	messy  = "fun   main(  ) {\nreturn    1+2;\n}"
	tidy   = "fun main() {\n    return 1 + 2;\n}\n"
	broken = "fun main( {"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
}

func byPath(results []Result) map[string]Result {
	out := make(map[string]Result, len(results))
	for _, r := range results {
		out[filepath.ToSlash(r.Path)] = r
	}
	return out
}

func TestCollectFilesSkipsHiddenAndVendored(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.tolk":                  tidy,
		"sub/b.tolk":              tidy,
		"sub/readme.md":           "x",
		"node_modules/dep/c.tolk": tidy,
		".git/d.tolk":             tidy,
		"gen/e.tolk":              tidy,
	})
	cfg := &config.Config{Path: filepath.Join(root, "tolkfmt.toml"), Exclude: []string{"gen/*"}}

	files, missing, err := CollectFiles(context.Background(), []string{root, filepath.Join(root, "nope")}, cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "a.tolk"), filepath.Join(root, "sub", "b.tolk")}, files)
	assert.Equal(t, []string{filepath.Join(root, "nope")}, missing)
}

func TestCollectFilesDeduplicates(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.tolk": tidy})
	a := filepath.Join(root, "a.tolk")

	files, _, err := CollectFiles(context.Background(), []string{a, root, a}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{a}, files)
}

func TestFormatPathsCheckMode(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"messy.tolk": messy, "tidy.tolk": tidy})

	results, err := FormatPaths(context.Background(), []string{root}, Options{Jobs: 2})
	require.NoError(t, err)
	require.Len(t, results, 2)

	got := byPath(results)
	m := got[filepath.ToSlash(filepath.Join(root, "messy.tolk"))]
	require.NoError(t, m.Err)
	assert.True(t, m.Changed)
	assert.Equal(t, tidy, string(m.Formatted))
	assert.Equal(t, messy, string(m.Original))

	tf := got[filepath.ToSlash(filepath.Join(root, "tidy.tolk"))]
	require.NoError(t, tf.Err)
	assert.False(t, tf.Changed)

	data, err := os.ReadFile(filepath.Join(root, "messy.tolk"))
	require.NoError(t, err)
	assert.Equal(t, messy, string(data), "check mode must not touch files")
}

func TestFormatPathsWritePreservesMode(t *testing.T) {
	root := t.TempDir()
	p := filepath.Join(root, "x.tolk")
	require.NoError(t, os.WriteFile(p, []byte(messy), 0o600))

	results, err := FormatPaths(context.Background(), []string{p}, Options{Write: true})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	assert.True(t, results[0].Changed)

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, tidy, string(data))
	info, err := os.Stat(p)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFormatPathsSyntaxErrorLeavesFile(t *testing.T) {
	root := t.TempDir()
	p := filepath.Join(root, "bad.tolk")
	writeTree(t, root, map[string]string{"bad.tolk": broken})

	results, err := FormatPaths(context.Background(), []string{p}, Options{Write: true})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.NoError(t, results[0].Err)
	assert.False(t, results[0].Changed)
	require.NotNil(t, results[0].Syntax)

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, broken, string(data))
}

func TestFormatPathsSyntaxErrorKeepsLineEndings(t *testing.T) {
	inputs := map[string]string{
		"crlf.tolk": "fun f( {\r\n}\r\n",
		"bom.tolk":  "\uFEFFfun f( {\n}\n",
	}
	for name, content := range inputs {
		t.Run(name, func(t *testing.T) {
			root := t.TempDir()
			p := filepath.Join(root, name)
			writeTree(t, root, map[string]string{name: content})

			results, err := FormatPaths(context.Background(), []string{p}, Options{Write: true})
			require.NoError(t, err)
			require.Len(t, results, 1)
			res := results[0]
			require.NoError(t, res.Err)
			require.NotNil(t, res.Syntax)
			assert.False(t, res.Changed)
			assert.Equal(t, content, string(res.Formatted))

			data, err := os.ReadFile(p)
			require.NoError(t, err)
			assert.Equal(t, content, string(data))
		})
	}
}

func TestFormatPathsNoFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"notes.txt": "x"})

	_, err := FormatPaths(context.Background(), []string{root}, Options{})
	assert.ErrorIs(t, err, ErrNoFiles)

	results, err := FormatPaths(context.Background(), []string{filepath.Join(root, "missing")}, Options{})
	assert.ErrorIs(t, err, ErrNoFiles)
	require.Len(t, results, 1)
	var pe *PathError
	require.True(t, errors.As(results[0].Err, &pe))
	assert.Equal(t, "Path not found: "+filepath.Join(root, "missing"), pe.Error())
}

func TestFormatPathsInvalidRangeIsFileError(t *testing.T) {
	root := t.TempDir()
	p := filepath.Join(root, "x.tolk")
	writeTree(t, root, map[string]string{"x.tolk": tidy})

	rng := format.Range{Start: format.Position{Line: 50}, End: format.Position{Line: 60}}
	results, err := FormatPaths(context.Background(), []string{p}, Options{Format: format.Options{Range: &rng}})
	require.NoError(t, err)
	require.Len(t, results, 1)

	var fe *FileError
	require.True(t, errors.As(results[0].Err, &fe))
	assert.Equal(t, "format", fe.Op)
	assert.ErrorIs(t, results[0].Err, format.ErrInvalidRange)
	assert.Contains(t, fe.Error(), "Cannot format file ")
}

func TestFormatPathsUsesCache(t *testing.T) {
	root := t.TempDir()
	p := filepath.Join(root, "x.tolk")
	writeTree(t, root, map[string]string{"x.tolk": messy})
	cache, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	require.NoError(t, err)

	first, err := FormatPaths(context.Background(), []string{p}, Options{Cache: cache})
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.False(t, first[0].Cached)

	second, err := FormatPaths(context.Background(), []string{p}, Options{Cache: cache})
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.True(t, second[0].Cached)
	assert.Equal(t, first[0].Formatted, second[0].Formatted)
	assert.True(t, second[0].Changed)
}

func TestFormatPathsReportsProgress(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.tolk": messy, "b.tolk": tidy})

	var mu sync.Mutex
	final := map[string]Status{}
	sink := FuncSink(func(ev Event) {
		mu.Lock()
		defer mu.Unlock()
		if ev.Status == StatusDone || ev.Status == StatusChanged || ev.Status == StatusError {
			final[filepath.Base(ev.File)] = ev.Status
		}
	})

	_, err := FormatPaths(context.Background(), []string{root}, Options{Progress: sink})
	require.NoError(t, err)
	assert.Equal(t, map[string]Status{"a.tolk": StatusChanged, "b.tolk": StatusDone}, final)
}

func TestFormatPathsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := FormatPaths(ctx, []string{t.TempDir()}, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWatchReformatsChangedFile(t *testing.T) {
	root := t.TempDir()
	p := filepath.Join(root, "w.tolk")
	writeTree(t, root, map[string]string{"w.tolk": tidy})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	got := make(chan Result, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, []string{root}, Options{Write: true}, func(r Result) { got <- r })
	}()

	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(p, []byte(messy), 0o644))

	select {
	case r := <-got:
		require.NoError(t, r.Err)
		assert.Equal(t, filepath.Clean(p), r.Path)
		assert.True(t, r.Changed)
	case <-time.After(5 * time.Second):
		t.Fatal("no watch result")
	}

	cancel()
	assert.NoError(t, <-done)
	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, tidy, string(data))
}

func TestFormatPathsVerify(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.tolk": messy, "bad.tolk": broken})

	results, err := FormatPaths(context.Background(), []string{root}, Options{Verify: true})
	require.NoError(t, err)
	got := byPath(results)
	a := got[filepath.ToSlash(filepath.Join(root, "a.tolk"))]
	assert.NoError(t, a.Err)
	assert.True(t, a.Changed)
	assert.Equal(t, tidy, string(a.Formatted))

	bad := got[filepath.ToSlash(filepath.Join(root, "bad.tolk"))]
	assert.NoError(t, bad.Err)
	assert.NotNil(t, bad.Syntax)
}
