package observ

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportGroupsByName(t *testing.T) {
	tm := NewTimer()
	for range 3 {
		tm.End(tm.Begin("parse"), "")
		tm.End(tm.Begin("print"), "")
	}
	tm.End(tm.Begin("render"), "width 100")

	r := tm.Report()
	require.Len(t, r.Phases, 3)
	assert.Equal(t, "parse", r.Phases[0].Name)
	assert.Equal(t, 3, r.Phases[0].Count)
	assert.Equal(t, "print", r.Phases[1].Name)
	assert.Equal(t, "width 100", r.Phases[2].Note)
	assert.GreaterOrEqual(t, r.TotalMS, 0.0)

	s := tm.Summary()
	assert.Contains(t, s, "timings:")
	assert.Contains(t, s, "x3")
	assert.Contains(t, s, "// width 100")
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	tm.End(tm.Begin("parse"), "")
	assert.Empty(t, tm.Report().Phases)
}

func TestConcurrentUse(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.End(tm.Begin("bind"), "")
		}()
	}
	wg.Wait()
	r := tm.Report()
	require.Len(t, r.Phases, 1)
	assert.Equal(t, 8, r.Phases[0].Count)
}

func TestEndOutOfRange(t *testing.T) {
	tm := NewTimer()
	tm.End(5, "ignored")
	assert.Equal(t, Report{}, tm.Report())
}
