package timing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimer_Phases(t *testing.T) {
	timer := NewTimer()

	time.Sleep(10 * time.Millisecond)
	first := timer.Mark("split")

	time.Sleep(10 * time.Millisecond)
	timer.Mark("resolve")

	assert.GreaterOrEqual(t, first, 10*time.Millisecond)
	assert.GreaterOrEqual(t, timer.Elapsed(), 20*time.Millisecond)

	d, ok := timer.Get("resolve")
	require.True(t, ok)
	// Phases are relative to the previous mark, not to the start.
	assert.GreaterOrEqual(t, d, 10*time.Millisecond)
	assert.Less(t, d, timer.Elapsed())

	_, ok = timer.Get("missing")
	assert.False(t, ok)

	phases := timer.Phases()
	require.Len(t, phases, 2)
	assert.Equal(t, "split", phases[0].Label)
	assert.Equal(t, "resolve", phases[1].Label)
}

func TestTimer_Summary(t *testing.T) {
	timer := NewTimer()
	assert.NotContains(t, timer.Summary(), "(")

	timer.Mark("step1")
	timer.Mark("step2")
	summary := timer.Summary()
	assert.Contains(t, summary, "Total:")
	assert.Contains(t, summary, "step1:")
	assert.Contains(t, summary, "step2:")
}
