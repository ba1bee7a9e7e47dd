// Package timing measures the phases of a pipeline run.
package timing

import (
	"fmt"
	"strings"
	"time"
)

// Phase is the duration between two consecutive marks.
type Phase struct {
	Label    string
	Duration time.Duration
}

// Timer records phases relative to its start. Not safe for concurrent use;
// create one per run.
type Timer struct {
	start  time.Time
	last   time.Time
	phases []Phase
}

// NewTimer creates a new timer
func NewTimer() *Timer {
	now := time.Now()
	return &Timer{start: now, last: now}
}

// Mark closes the current phase under label and returns its duration.
func (t *Timer) Mark(label string) time.Duration {
	now := time.Now()
	d := now.Sub(t.last)
	t.last = now
	t.phases = append(t.phases, Phase{Label: label, Duration: d})
	return d
}

// Elapsed returns total elapsed time since timer creation
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// Get returns the duration of the phase with that label.
func (t *Timer) Get(label string) (time.Duration, bool) {
	for _, p := range t.phases {
		if p.Label == label {
			return p.Duration, true
		}
	}
	return 0, false
}

// Phases returns the recorded phases in order.
func (t *Timer) Phases() []Phase {
	return append([]Phase(nil), t.phases...)
}

func ms(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}

// Summary formats the total and every phase.
func (t *Timer) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total: %.3fms", ms(t.Elapsed()))
	if len(t.phases) == 0 {
		return b.String()
	}
	b.WriteString(" (")
	for i, p := range t.phases {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %.3fms", p.Label, ms(p.Duration))
	}
	b.WriteString(")")
	return b.String()
}
