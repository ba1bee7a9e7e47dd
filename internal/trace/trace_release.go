//go:build !dev

// Package trace records console lines as runtime/trace tasks. Release
// builds carry no tracing.
package trace

import (
	"context"
	"errors"
)

// ErrUnavailable is returned when a trace is requested from a release build.
var ErrUnavailable = errors.New("tracing requires a build with the dev tag")

// Init fails for any non-empty path.
func Init(path string) (func(), error) {
	if path != "" {
		return nil, ErrUnavailable
	}
	return func() {}, nil
}

// Task returns ctx unchanged.
func Task(ctx context.Context, _ string) (context.Context, func()) {
	return ctx, func() {}
}

func Region(_ context.Context, _ string) func() {
	return func() {}
}

func Log(_ context.Context, _, _ string) {}

// Enabled is always false.
func Enabled() bool {
	return false
}
