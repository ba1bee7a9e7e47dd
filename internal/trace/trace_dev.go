//go:build dev

// Package trace records console lines as runtime/trace tasks in
// development builds.
//
// Usage:
//
//	dirsh --trace trace.out exec net/ping alpha
//	go tool trace trace.out
package trace

import (
	"context"
	"fmt"
	"os"
	"runtime/trace"
	"sync"
)

var (
	mu     sync.Mutex
	out    *os.File
	active bool
)

// Init starts writing a trace to path. An empty path leaves tracing off.
// The returned function stops the trace and closes the file.
func Init(path string) (func(), error) {
	if path == "" {
		return func() {}, nil
	}

	mu.Lock()
	defer mu.Unlock()
	if active {
		return nil, fmt.Errorf("trace already started")
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace file %s: %w", path, err)
	}
	if err := trace.Start(f); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to start trace: %w", err)
	}
	out, active = f, true

	return func() {
		mu.Lock()
		defer mu.Unlock()
		if !active {
			return
		}
		trace.Stop()
		_ = out.Close()
		out, active = nil, false
	}, nil
}

// Task groups everything done for one console line.
func Task(ctx context.Context, line string) (context.Context, func()) {
	if !Enabled() {
		return ctx, func() {}
	}
	ctx, task := trace.NewTask(ctx, "line")
	trace.Log(ctx, "line", line)
	return ctx, task.End
}

// Region marks one pipeline step (resolve, run) inside the current task.
func Region(ctx context.Context, step string) func() {
	if !Enabled() {
		return func() {}
	}
	return trace.StartRegion(ctx, step).End
}

// Log attaches a message to the current task.
func Log(ctx context.Context, category, message string) {
	if Enabled() {
		trace.Log(ctx, category, message)
	}
}

// Enabled reports whether a trace is being written.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return active
}
