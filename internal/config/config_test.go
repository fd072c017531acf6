package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, p, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "tolkfmt.toml"), "max_width = 80\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	got, err := Find(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "tolkfmt.toml"), got)
}

func TestFindFromFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".tolkfmt.yml"), "jobs: 2\n")
	file := filepath.Join(root, "src", "main.tolk")
	writeFile(t, file, "fun main() {}\n")

	got, err := Find(file)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, ".tolkfmt.yml"), got)
}

func TestLoadTOML(t *testing.T) {
	p := filepath.Join(t.TempDir(), "tolkfmt.toml")
	writeFile(t, p, "max_width = 80\nsort_imports = true\nexclude = [\"gen/*.tolk\"]\ncache = false\n")

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, 80, cfg.MaxWidthOr(100))
	assert.True(t, cfg.SortImportsOr(false))
	assert.Equal(t, 4, cfg.JobsOr(4))
	assert.False(t, cfg.CacheOr(true))
	assert.Equal(t, []string{"gen/*.tolk"}, cfg.Exclude)
}

func TestLoadYAML(t *testing.T) {
	p := filepath.Join(t.TempDir(), ".tolkfmt.yaml")
	writeFile(t, p, "max_width: 120\njobs: 3\nexclude:\n  - vendor/*\n")

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.MaxWidthOr(100))
	assert.Equal(t, 3, cfg.JobsOr(0))
	assert.False(t, cfg.SortImportsOr(false))
	assert.True(t, cfg.CacheOr(true))
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"zero width", "tolkfmt.toml", "max_width = 0\n"},
		{"negative jobs", ".tolkfmt.yaml", "jobs: -1\n"},
		{"bad pattern", "tolkfmt.toml", "exclude = [\"[\"]\n"},
		{"broken toml", "tolkfmt.toml", "max_width = \n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := filepath.Join(t.TempDir(), tt.file)
			writeFile(t, p, tt.content)
			_, err := Load(p)
			assert.Error(t, err)
		})
	}
}

func TestDiscoverWithoutFile(t *testing.T) {
	cfg, err := Discover(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.MaxWidthOr(100))
	assert.Equal(t, ".", cfg.Dir())
}

func TestExcluded(t *testing.T) {
	cfg := &Config{Exclude: []string{"gen/*.tolk", "*_test.tolk"}}
	tests := []struct {
		rel  string
		want bool
	}{
		{"gen/a.tolk", true},
		{"contracts/gen/a.tolk", true},
		{"contracts/a_test.tolk", true},
		{"contracts/a.tolk", false},
		{"generated/a.tolk", false},
	}
	for _, tt := range tests {
		t.Run(tt.rel, func(t *testing.T) {
			assert.Equal(t, tt.want, cfg.Excluded(tt.rel))
		})
	}

	var none *Config
	assert.False(t, none.Excluded("gen/a.tolk"))
}
