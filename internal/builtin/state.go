package builtin

import "sync/atomic"

// State is an in-memory StateAccessor, safe for concurrent use.
type State struct {
	v atomic.Bool
}

// NewState creates a state holding initial.
func NewState(initial bool) *State {
	s := &State{}
	s.v.Store(initial)
	return s
}

func (s *State) Get() bool  { return s.v.Load() }
func (s *State) Set(v bool) { s.v.Store(v) }
