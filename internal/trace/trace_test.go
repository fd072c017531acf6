package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
		err  bool
	}{
		{"off", LevelOff, false},
		{"PHASE", LevelPhase, false},
		{"detail", LevelDetail, false},
		{"debug", LevelDebug, false},
		{"loud", LevelOff, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.err {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestShouldEmit(t *testing.T) {
	assert.True(t, LevelPhase.ShouldEmit(ScopePass))
	assert.False(t, LevelPhase.ShouldEmit(ScopeFile))
	assert.True(t, LevelDetail.ShouldEmit(ScopeFile))
	assert.False(t, LevelDetail.ShouldEmit(ScopeNode))
	assert.True(t, LevelDebug.ShouldEmit(ScopeNode))
	assert.False(t, LevelError.ShouldEmit(ScopeDriver))
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatNDJSON)

	span := Begin(tr, ScopePass, "parse", 0)
	Point(tr, ScopeFile, "file:a.tolk", "unchanged", span.ID(), nil)
	Point(tr, ScopeNode, "comment:fallback", "dropped at detail", span.ID(), nil)
	span.WithExtra("nodes", "12").End("ok")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)

	var first, last map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	require.NoError(t, json.Unmarshal([]byte(lines[2]), &last))
	assert.Equal(t, "begin", first["kind"])
	assert.Equal(t, "parse", first["name"])
	assert.Equal(t, "end", last["kind"])
	assert.Equal(t, "ok", last["detail"])
	assert.Equal(t, map[string]any{"nodes": "12"}, last["extra"])
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatText)
	Point(tr, ScopeNode, "comment:leftover", "// lost", 0, map[string]string{"b": "2", "a": "1"})
	out := buf.String()
	assert.Contains(t, out, "• comment:leftover (// lost) {a=1, b=2}")
}

func TestRingKeepsFileEventsAtErrorLevel(t *testing.T) {
	ring := NewRingTracer(2, LevelError)
	Point(ring, ScopeFile, "one", "", 0, nil)
	Point(ring, ScopeNode, "skipped", "", 0, nil)
	Point(ring, ScopeFile, "two", "", 0, nil)
	Point(ring, ScopeFile, "three", "", 0, nil)

	events := ring.Snapshot()
	require.Len(t, events, 2)
	assert.Equal(t, "two", events[0].Name)
	assert.Equal(t, "three", events[1].Name)

	var buf bytes.Buffer
	require.NoError(t, ring.Dump(&buf, FormatText))
	assert.Contains(t, buf.String(), "three")
}

func TestMultiTracerRing(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf})
	require.NoError(t, err)
	multi, ok := tr.(*MultiTracer)
	require.True(t, ok)
	Begin(tr, ScopeDriver, "run", 0).End("")
	assert.Len(t, multi.Ring().Snapshot(), 2)
	assert.Equal(t, 2, strings.Count(buf.String(), "\n"))
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	require.NoError(t, err)
	assert.False(t, tr.Enabled())
	assert.Zero(t, Begin(tr, ScopeDriver, "x", 0).End(""))
}

func TestContext(t *testing.T) {
	assert.Equal(t, Nop, FromContext(context.Background()))
	ring := NewRingTracer(4, LevelDebug)
	ctx := WithTracer(context.Background(), ring)
	assert.Same(t, ring, FromContext(ctx))
}

func TestRingFindAndDropped(t *testing.T) {
	ring := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"comment:fallback", "parse", "comment:fallback", "print"} {
		Point(ring, ScopeNode, name, "", 0, nil)
	}

	assert.Equal(t, 1, ring.Dropped())
	found := ring.Find("comment:fallback")
	require.Len(t, found, 1)
	assert.Len(t, ring.Find("parse"), 1)
	assert.Empty(t, ring.Find("render"))

	var buf bytes.Buffer
	require.NoError(t, ring.Dump(&buf, FormatText))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "... 1 earlier events dropped", lines[0])
	assert.Contains(t, lines[3], "• print")
}

func TestParseMode(t *testing.T) {
	for _, in := range []string{"stream", "RING", "both"} {
		m, err := ParseMode(in)
		require.NoError(t, err)
		assert.Equal(t, strings.ToLower(in), m.String())
	}
	for _, bad := range []string{"", "disk"} {
		_, err := ParseMode(bad)
		assert.Error(t, err, "input %q", bad)
	}
}
