package logger

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level string
		want  string
	}{
		{"debug", "debug"},
		{"INFO", "info"},
		{" error ", "error"},
		{"", DefaultLevel},
		{"verbose", DefaultLevel},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.level).String())
		})
	}
}

func TestNew_NilOutput(t *testing.T) {
	l := New("info", nil)
	assert.NotNil(t, l.log)
	assert.Equal(t, "info", l.Level())
}

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		log       func(*Logger)
		shouldLog bool
	}{
		{"debug at debug", "debug", func(l *Logger) { l.Debug().Msg("m") }, true},
		{"debug at info", "info", func(l *Logger) { l.Debug().Msg("m") }, false},
		{"info at default", "", func(l *Logger) { l.Info().Msg("m") }, false},
		{"warn at default", "", func(l *Logger) { l.Warn().Msg("m") }, true},
		{"error at error", "error", func(l *Logger) { l.Error().Msg("m") }, true},
		{"msgf filtered", "error", func(l *Logger) { l.Warn().Msgf("%d", 1) }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			tt.log(New(tt.level, buf))
			assert.Equal(t, tt.shouldLog, buf.Len() > 0, buf.String())
		})
	}
}

func TestEntry_Fields(t *testing.T) {
	buf := &bytes.Buffer{}
	l := New("debug", buf, WithColors(false))

	l.Info().
		Str("line", "a/b cmd").
		Int("count", 42).
		Bool("ok", true).
		Strs("tokens", []string{"x", "y"}).
		Dur("took", 1500*time.Microsecond).
		Err(errors.New("boom")).
		Msg("resolved")

	out := buf.String()
	assert.Contains(t, out, "resolved")
	assert.Contains(t, out, "count=42")
	assert.Contains(t, out, "ok=true")
	assert.Contains(t, out, "took=1.5")
	assert.Contains(t, out, "boom")
	assert.Contains(t, out, `tokens="x y"`)
}

func TestEntry_NilErrAndStringer(t *testing.T) {
	buf := &bytes.Buffer{}
	l := New("info", buf, WithColors(false))
	l.Info().Err(nil).Stringer("s", nil).Msgf("value %d", 7)
	assert.Contains(t, buf.String(), "value 7")
	assert.NotContains(t, buf.String(), "error=")
}

func TestSetLevelAndDiscard(t *testing.T) {
	buf := &bytes.Buffer{}
	l := New("error", buf)
	assert.False(t, l.DebugEnabled())
	l.SetLevel("debug")
	assert.True(t, l.DebugEnabled())

	d := Discard()
	d.Error().Msg("nothing")
	assert.False(t, d.DebugEnabled())
}
