// Package logger provides structured logging for dirsh.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultLevel keeps an interactive console quiet.
const DefaultLevel = "warn"

// Logger wraps logrus logger
type Logger struct {
	log *logrus.Logger
}

// Entry accumulates fields until Msg is called.
type Entry struct {
	level logrus.Level
	entry *logrus.Entry
}

// Option customizes a Logger.
type Option func(*logrus.TextFormatter)

// WithColors forces colored or plain level labels.
func WithColors(enabled bool) Option {
	return func(f *logrus.TextFormatter) {
		f.ForceColors = enabled
		f.DisableColors = !enabled
	}
}

// WithTimestamps prints a timestamp on every line.
func WithTimestamps() Option {
	return func(f *logrus.TextFormatter) {
		f.DisableTimestamp = false
		f.FullTimestamp = true
	}
}

// New creates a logger. An unknown level falls back to DefaultLevel.
func New(level string, output io.Writer, opts ...Option) *Logger {
	if output == nil {
		output = os.Stderr
	}

	log := logrus.New()
	log.SetOutput(output)
	log.SetLevel(ParseLevel(level))

	formatter := &logrus.TextFormatter{
		ForceColors:      true,
		DisableTimestamp: true,
		PadLevelText:     true,
	}
	for _, opt := range opts {
		opt(formatter)
	}
	log.SetFormatter(formatter)

	return &Logger{log: log}
}

// Discard returns a logger that writes nothing.
func Discard() *Logger {
	return New("panic", io.Discard)
}

// ParseLevel maps a level name to a logrus level, case-insensitively.
func ParseLevel(level string) logrus.Level {
	lvl, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		lvl, _ = logrus.ParseLevel(DefaultLevel)
	}
	return lvl
}

// SetLevel changes the level at runtime.
func (l *Logger) SetLevel(level string) {
	l.log.SetLevel(ParseLevel(level))
}

// Level returns the current level name.
func (l *Logger) Level() string {
	return l.log.GetLevel().String()
}

// DebugEnabled avoids building expensive fields when they would be dropped.
func (l *Logger) DebugEnabled() bool {
	return l.log.IsLevelEnabled(logrus.DebugLevel)
}

func (l *Logger) at(level logrus.Level) *Entry {
	return &Entry{level: level, entry: logrus.NewEntry(l.log)}
}

// Debug starts a debug entry
func (l *Logger) Debug() *Entry { return l.at(logrus.DebugLevel) }

// Info starts an info entry
func (l *Logger) Info() *Entry { return l.at(logrus.InfoLevel) }

// Warn starts a warning entry
func (l *Logger) Warn() *Entry { return l.at(logrus.WarnLevel) }

// Error starts an error entry
func (l *Logger) Error() *Entry { return l.at(logrus.ErrorLevel) }

// Str adds a string field
func (e *Entry) Str(key, value string) *Entry {
	e.entry = e.entry.WithField(key, value)
	return e
}

// Int adds an int field
func (e *Entry) Int(key string, value int) *Entry {
	e.entry = e.entry.WithField(key, value)
	return e
}

// Bool adds a bool field
func (e *Entry) Bool(key string, value bool) *Entry {
	e.entry = e.entry.WithField(key, value)
	return e
}

// Strs adds a string slice field, joined with spaces.
func (e *Entry) Strs(key string, values []string) *Entry {
	e.entry = e.entry.WithField(key, strings.Join(values, " "))
	return e
}

// Stringer adds a field rendered through its String method.
func (e *Entry) Stringer(key string, value fmt.Stringer) *Entry {
	if value != nil {
		e.entry = e.entry.WithField(key, value.String())
	}
	return e
}

// Err adds an error field
func (e *Entry) Err(err error) *Entry {
	if err != nil {
		e.entry = e.entry.WithError(err)
	}
	return e
}

// Dur adds a duration field in milliseconds
func (e *Entry) Dur(key string, duration time.Duration) *Entry {
	ms := float64(duration.Microseconds()) / 1000.0
	e.entry = e.entry.WithField(key, ms)
	return e
}

// Msg logs the message with accumulated fields
func (e *Entry) Msg(msg string) {
	e.entry.Log(e.level, msg)
}

// Msgf logs a formatted message with accumulated fields
func (e *Entry) Msgf(format string, args ...any) {
	if !e.entry.Logger.IsLevelEnabled(e.level) {
		return
	}
	e.entry.Log(e.level, fmt.Sprintf(format, args...))
}
