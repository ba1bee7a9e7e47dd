// Package hierarchy models the tree of directories and commands a console
// navigates, and resolves typed paths against it.
//
// The tree is built once, bottom-up, and is immutable afterwards. Every
// directory indexes its children in a case-insensitive trie, so lookups
// and prefix completion share the same structure.
package hierarchy

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/NikitaCOEUR/dirsh/internal/derrors"
	"github.com/NikitaCOEUR/dirsh/internal/param"
)

const (
	// PathSeparator separates the segments of a path.
	PathSeparator = "/"
	// GlobalPrefix marks a token as a global command name.
	GlobalPrefix = ":"
	// CurrentDir and ParentDir are the relative path segments.
	CurrentDir = "."
	ParentDir  = ".."
)

// Entry is a node of the hierarchy: a *Directory or a *Command.
type Entry interface {
	Name() string
	Description() string
	IsDirectory() bool
	Path() string
	Parent() *Directory
	setParent(parent *Directory) error
}

// EntryKind is what ParseChild and AutoCompleteChild look for.
type EntryKind int

const (
	// AnyEntry matches directories and commands.
	AnyEntry EntryKind = iota
	// DirectoryEntry matches directories only.
	DirectoryEntry
	// CommandEntry matches commands only.
	CommandEntry
)

// Output is where commands write. The console renders it; tests record it.
type Output interface {
	Message(format string, args ...any)
	Error(format string, args ...any)
	// SetWorkingDirectory asks the console to change directory.
	SetWorkingDirectory(dir *Directory)
	PrintDirectory(dir *Directory, recursive bool)
	PrintCommand(cmd *Command)
}

// Executor runs a command with its bound arguments.
type Executor func(ctx context.Context, args *param.Args, out Output) error

// ValidateName rejects names that could not be typed back as a path segment
// or that collide with the line syntax.
func ValidateName(name string) error {
	switch {
	case name == "":
		return derrors.NewValidationError("name", "name must not be empty", nil)
	case name == CurrentDir || name == ParentDir:
		return derrors.NewValidationError("name", fmt.Sprintf("'%s' is reserved", name), nil)
	case strings.Contains(name, PathSeparator):
		return derrors.NewValidationError("name", fmt.Sprintf("'%s' must not contain '%s'", name, PathSeparator), nil)
	case strings.HasPrefix(name, GlobalPrefix), strings.HasPrefix(name, param.NamedPrefix):
		return derrors.NewValidationError("name", fmt.Sprintf("'%s' must not start with '%s' or '%s'", name, GlobalPrefix, param.NamedPrefix), nil)
	case strings.IndexFunc(name, unicode.IsSpace) >= 0:
		return derrors.NewValidationError("name", fmt.Sprintf("'%s' must not contain whitespace", name), nil)
	}
	return nil
}

// parentLink implements the set-once parent reference.
type parentLink struct {
	parent *Directory
}

func (l *parentLink) Parent() *Directory {
	return l.parent
}

func (l *parentLink) setParent(parent *Directory) error {
	if l.parent != nil {
		return derrors.NewValidationError("parent", fmt.Sprintf("entry is already a child of '%s'", l.parent.Path()), nil)
	}
	l.parent = parent
	return nil
}

func childPath(parent *Directory, name string) string {
	if parent == nil {
		return PathSeparator + name
	}
	p := parent.Path()
	if p == PathSeparator {
		return p + name
	}
	return p + PathSeparator + name
}
