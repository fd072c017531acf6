package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tolkfmt/internal/driver"
)

func TestProgressModelTracksFiles(t *testing.T) {
	model := NewProgressModel("tolkfmt", []string{"a.tolk", "b.tolk", "c.tolk"}, nil)
	m, ok := model.(*progressModel)
	require.True(t, ok)

	for _, ev := range []driver.Event{
		{File: "a.tolk", Stage: driver.StageFormat, Status: driver.StatusWorking},
		{File: "b.tolk", Stage: driver.StageFormat, Status: driver.StatusDone},
		{File: "c.tolk", Stage: driver.StageFormat, Status: driver.StatusError},
		{File: "unknown.tolk", Stage: driver.StageFormat, Status: driver.StatusDone},
	} {
		m.Update(eventMsg(ev))
	}

	assert.Equal(t, "formatting", m.items[0].status)
	assert.False(t, m.items[0].finished)
	assert.Equal(t, "unchanged", m.items[1].status)
	assert.True(t, m.items[1].finished)
	assert.Equal(t, "error", m.items[2].status)

	m.Update(eventMsg(driver.Event{File: "a.tolk", Stage: driver.StageFormat, Status: driver.StatusChanged}))
	m.Update(doneMsg{})
	assert.True(t, m.done)
	view := m.View()
	assert.Contains(t, view, "done: tolkfmt")
	assert.Contains(t, view, "1 reformatted, 1 unchanged, 1 failed")
}

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		stage  driver.Stage
		status driver.Status
		want   string
	}{
		{driver.StageRead, driver.StatusQueued, "queued"},
		{driver.StageRead, driver.StatusWorking, "reading"},
		{driver.StageWrite, driver.StatusWorking, "writing"},
		{driver.StageFormat, driver.StatusChanged, "reformatted"},
		{driver.StageFormat, driver.Status("other"), ""},
	}
	for _, tt := range tests {
		t.Run(string(tt.stage)+"/"+string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, statusLabel(tt.stage, tt.status))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short.tolk", truncate("short.tolk", 20))
	assert.Equal(t, "contrac...", truncate("contracts/very/long/path.tolk", 13))
	assert.Equal(t, "abc", truncate("abcdef", 3))
}
