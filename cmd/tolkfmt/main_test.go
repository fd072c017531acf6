package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	messySrc = "fun   main(  ) {\nreturn    1+2;\n}"
	tidySrc  = "fun main() {\n    return 1 + 2;\n}\n"
)

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--color", "off"}, args...))
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	if err != nil {
		return -1
	}
	return 0
}

func writeSources(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestWriteMode(t *testing.T) {
	dir := writeSources(t, map[string]string{"messy.tolk": messySrc, "tidy.tolk": tidySrc})

	out, _, err := run(t, "--ui", "off", "-w", dir)
	require.NoError(t, err)
	assert.Regexp(t, `messy\.tolk \d+ms \(reformatted\)`, out)
	assert.Regexp(t, `tidy\.tolk \d+ms \(unchanged\)`, out)

	data, err := os.ReadFile(filepath.Join(dir, "messy.tolk"))
	require.NoError(t, err)
	assert.Equal(t, tidySrc, string(data))
}

func TestCheckMode(t *testing.T) {
	dir := writeSources(t, map[string]string{"messy.tolk": messySrc, "tidy.tolk": tidySrc})

	out, _, err := run(t, "--ui", "off", "--check", dir)
	assert.Equal(t, 1, exitCode(err))
	assert.Contains(t, out, "Checking formatting...\n")
	assert.Contains(t, out, "[warn] messy.tolk\n")
	assert.NotContains(t, out, "tidy.tolk")
	assert.Contains(t, out, "Code style issues found in the above files. Run tolkfmt with --write to fix.")

	clean := writeSources(t, map[string]string{"tidy.tolk": tidySrc})
	out, _, err = run(t, "--ui", "off", "-c", clean)
	require.NoError(t, err)
	assert.Contains(t, out, "All Tolk files are properly formatted!")
}

func TestCheckModeDiff(t *testing.T) {
	dir := writeSources(t, map[string]string{"messy.tolk": messySrc})

	out, _, err := run(t, "--ui", "off", "--check", "--diff", dir)
	assert.Equal(t, 1, exitCode(err))
	assert.Contains(t, out, "@@")
	assert.Contains(t, out, "+    return 1 + 2;")
	assert.Contains(t, out, "-return    1+2;")
}

func TestStdoutMode(t *testing.T) {
	dir := writeSources(t, map[string]string{"messy.tolk": messySrc})

	out, _, err := run(t, filepath.Join(dir, "messy.tolk"))
	require.NoError(t, err)
	assert.Equal(t, tidySrc, out)
}

func TestFlagErrors(t *testing.T) {
	dir := writeSources(t, map[string]string{"a.tolk": tidySrc})
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"write and check", []string{"-w", "-c", dir}, "Cannot use both --write and --check options together"},
		{"bad range", []string{"-r", "1-2", dir}, "Invalid range format"},
		{"diff without check", []string{"--diff", dir}, "--diff requires --check"},
		{"bad ui", []string{"--ui", "maybe", dir}, "invalid --ui value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, err := run(t, tt.args...)
			assert.Equal(t, 1, exitCode(err))
			assert.Contains(t, stderr, tt.want)
		})
	}
}

func TestNoFiles(t *testing.T) {
	dir := writeSources(t, map[string]string{"notes.txt": "x"})
	missing := filepath.Join(dir, "missing")

	_, stderr, err := run(t, dir, missing)
	assert.Equal(t, 1, exitCode(err))
	assert.Contains(t, stderr, "Path not found: "+missing)
	assert.Contains(t, stderr, "No .tolk files found")
}

func TestRangeFlag(t *testing.T) {
	dir := writeSources(t, map[string]string{"r.tolk": "fun a(  ) {}\nfun b(  ) {}\n"})

	out, _, err := run(t, "-r", "2:1-2:4", filepath.Join(dir, "r.tolk"))
	require.NoError(t, err)
	assert.Equal(t, "fun a(  ) {}\nfun b() {}\n", out)
}

func TestConfigFileAndOverride(t *testing.T) {
	long := "fun f() {\n    foo(aaaaaaaaaa, bbbbbbbbbb, cccccccccc);\n}\n"
	dir := writeSources(t, map[string]string{
		"tolkfmt.toml": "max_width = 30\n",
		"long.tolk":    long,
	})
	file := filepath.Join(dir, "long.tolk")

	out, _, err := run(t, file)
	require.NoError(t, err)
	assert.Equal(t, "fun f() {\n    foo(\n        aaaaaaaaaa,\n        bbbbbbbbbb,\n        cccccccccc\n    );\n}\n", out)

	out, _, err = run(t, "--max-width", "100", file)
	require.NoError(t, err)
	assert.Equal(t, long, out)
}

func TestStatsTable(t *testing.T) {
	dir := writeSources(t, map[string]string{"messy.tolk": messySrc})

	out, _, err := run(t, "--ui", "off", "--no-cache", "-w", "--stats", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "FILE")
	assert.Contains(t, out, "CHANGED")
	assert.Contains(t, out, filepath.Join(dir, "messy.tolk"))
	assert.Contains(t, out, "1 CHANGED")
}

func TestVersionCommand(t *testing.T) {
	out, _, err := run(t, "version", "--format", "json", "--hash")
	require.NoError(t, err)
	assert.Contains(t, out, `"tool": "tolkfmt"`)
	assert.Contains(t, out, `"git_commit": "unknown"`)

	out, _, err = run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "tolkfmt ")

	_, _, err = run(t, "version", "--format", "xml")
	assert.Error(t, err)
}

func TestCacheClean(t *testing.T) {
	out, _, err := run(t, "cache", "clean")
	require.NoError(t, err)
	assert.Contains(t, out, "Cache cleaned: ")
}

func TestVerboseReportsSkippedFile(t *testing.T) {
	dir := writeSources(t, map[string]string{"bad.tolk": "fun main( {"})

	_, errOut, err := run(t, "--ui", "off", "--check", "--verbose", dir)
	require.NoError(t, err)
	assert.Contains(t, errOut, "[skip] ")
	assert.Contains(t, errOut, "bad.tolk:")
	assert.Contains(t, errOut, " ERROR SYN")
	assert.Contains(t, errOut, "1 | fun main( {\n")
}

func TestVerifyFlag(t *testing.T) {
	dir := writeSources(t, map[string]string{"messy.tolk": messySrc})

	out, _, err := run(t, "--ui", "off", "--verify", "-w", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "messy.tolk")
	assert.Contains(t, out, "(reformatted)")
}
