package hierarchy

import (
	"strings"
	"sync"

	"github.com/NikitaCOEUR/dirsh/internal/derrors"
	"github.com/NikitaCOEUR/dirsh/internal/param"
	"github.com/NikitaCOEUR/dirsh/internal/suggest"
)

// PathResult is a successfully resolved path.
type PathResult struct {
	// Path lists the directories walked, starting at the origin.
	Path  []*Directory
	Entry Entry
}

// Directory returns the resolved entry as a directory, or nil.
func (r *PathResult) Directory() *Directory {
	d, _ := r.Entry.(*Directory)
	return d
}

// Command returns the resolved entry as a command, or nil.
func (r *PathResult) Command() *Command {
	c, _ := r.Entry.(*Command)
	return c
}

// Resolver resolves path tokens against a hierarchy, relative to a working
// directory. The working directory and the global registry are the only
// mutable state; they are guarded so a console can change directory while
// completions run.
type Resolver struct {
	root    *Directory
	globals *GlobalCommands

	mu  sync.RWMutex
	cwd *Directory
}

// NewResolver creates a resolver positioned at root.
func NewResolver(root *Directory, globals *GlobalCommands) *Resolver {
	if globals == nil {
		globals, _ = NewGlobalCommands()
	}
	return &Resolver{root: root, globals: globals, cwd: root}
}

// Root returns the root directory.
func (r *Resolver) Root() *Directory {
	return r.root
}

// Globals returns the global command registry.
func (r *Resolver) Globals() *GlobalCommands {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.globals
}

// AddGlobals registers more global commands. It is meant for setup, when
// the commands themselves need the resolver.
func (r *Resolver) AddGlobals(commands ...*Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	merged, err := NewGlobalCommands(append(r.globals.Commands(), commands...)...)
	if err != nil {
		return err
	}
	r.globals = merged
	return nil
}

// Cwd returns the working directory.
func (r *Resolver) Cwd() *Directory {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cwd
}

// SetCwd changes the working directory.
func (r *Resolver) SetCwd(dir *Directory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cwd = dir
}

// SplitPath splits a path token into segments. A leading separator makes
// the path absolute.
func SplitPath(raw string) (segments []string, absolute bool) {
	absolute = strings.HasPrefix(raw, PathSeparator)
	return strings.Split(strings.TrimPrefix(raw, PathSeparator), PathSeparator), absolute
}

func (r *Resolver) origin(absolute bool) *Directory {
	if absolute {
		return r.root
	}
	return r.Cwd()
}

// walk follows segments as directories. Empty segments (doubled or
// trailing separators) are skipped.
func (r *Resolver) walk(start *Directory, segments []string) (*Directory, []*Directory, error) {
	current := start
	visited := []*Directory{start}
	for i, segment := range segments {
		switch segment {
		case "", CurrentDir:
			continue
		case ParentDir:
			if current.Parent() == nil {
				return nil, nil, derrors.NewNoSuchEntry(current.Path(), ParentDir, true).WithResolved(i)
			}
			current = current.Parent()
		default:
			next, err := current.ParseDirectory(segment)
			if err != nil {
				return nil, nil, withResolved(err, i)
			}
			current = next
		}
		visited = append(visited, current)
	}
	return current, visited, nil
}

func withResolved(err error, n int) error {
	if pe, ok := derrors.AsParseError(err); ok {
		return pe.WithResolved(n)
	}
	return err
}

// ParsePathToCommand resolves raw to a command. A token starting with ':'
// names a global command.
func (r *Resolver) ParsePathToCommand(raw string) (*PathResult, error) {
	if name, ok := strings.CutPrefix(raw, GlobalPrefix); ok {
		cmd, err := r.Globals().Parse(name)
		if err != nil {
			return nil, err
		}
		return &PathResult{Entry: cmd}, nil
	}

	segments, absolute := SplitPath(raw)
	last := len(segments) - 1
	dir, visited, err := r.walk(r.origin(absolute), segments[:last])
	if err != nil {
		return nil, err
	}
	cmd, err := dir.ParseCommand(segments[last])
	if err != nil {
		return nil, withResolved(err, last)
	}
	return &PathResult{Path: visited, Entry: cmd}, nil
}

// ParsePathToDirectory resolves raw to a directory.
func (r *Resolver) ParsePathToDirectory(raw string) (*PathResult, error) {
	segments, absolute := SplitPath(raw)
	dir, visited, err := r.walk(r.origin(absolute), segments)
	if err != nil {
		return nil, err
	}
	return &PathResult{Path: visited, Entry: dir}, nil
}

// AutoCompletePath completes the last segment of raw with directories and
// commands, or completes a global command name.
func (r *Resolver) AutoCompletePath(raw string) (*suggest.AutoComplete, error) {
	if name, ok := strings.CutPrefix(raw, GlobalPrefix); ok {
		return r.Globals().AutoComplete(name)
	}
	return r.autoComplete(raw, AnyEntry)
}

// AutoCompletePathToDirectory completes the last segment of raw with
// directories only.
func (r *Resolver) AutoCompletePathToDirectory(raw string) (*suggest.AutoComplete, error) {
	return r.autoComplete(raw, DirectoryEntry)
}

func (r *Resolver) autoComplete(raw string, kind EntryKind) (*suggest.AutoComplete, error) {
	segments, absolute := SplitPath(raw)
	last := len(segments) - 1
	dir, _, err := r.walk(r.origin(absolute), segments[:last])
	if err != nil {
		return nil, err
	}
	ac, err := dir.AutoCompleteChild(segments[last], kind)
	if err != nil {
		return nil, withResolved(err, last)
	}
	return ac, nil
}

// The methods below let path-typed parameters use the resolver.

func (r *Resolver) ResolveDirectory(path string) (param.Entry, error) {
	res, err := r.ParsePathToDirectory(path)
	if err != nil {
		return nil, err
	}
	return res.Directory(), nil
}

func (r *Resolver) ResolveCommand(path string) (param.Entry, error) {
	res, err := r.ParsePathToCommand(path)
	if err != nil {
		return nil, err
	}
	return res.Command(), nil
}

func (r *Resolver) CompleteDirectory(prefix string) (*suggest.AutoComplete, error) {
	return r.AutoCompletePathToDirectory(prefix)
}

func (r *Resolver) CompletePath(prefix string) (*suggest.AutoComplete, error) {
	return r.AutoCompletePath(prefix)
}
