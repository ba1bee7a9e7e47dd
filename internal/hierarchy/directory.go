package hierarchy

import (
	"fmt"
	"slices"
	"strings"

	"github.com/NikitaCOEUR/dirsh/internal/derrors"
	"github.com/NikitaCOEUR/dirsh/internal/suggest"
	"github.com/NikitaCOEUR/dirsh/internal/trie"
)

// Directory is a named container of directories and commands.
type Directory struct {
	parentLink
	name        string
	description string
	root        bool
	children    *trie.Trie[Entry]
}

// NewDirectory creates a directory owning children. Children names must be
// unique (case-insensitively) and a child can belong to one directory only.
func NewDirectory(name, description string, children ...Entry) (*Directory, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	return newDirectory(name, description, false, children)
}

// NewRoot creates the root directory. Its name is the path separator.
func NewRoot(description string, children ...Entry) (*Directory, error) {
	return newDirectory(PathSeparator, description, true, children)
}

func newDirectory(name, description string, root bool, children []Entry) (*Directory, error) {
	d := &Directory{name: name, description: description, root: root}

	b := trie.NewBuilder[Entry]()
	seen := make(map[string]string, len(children))
	for _, child := range children {
		key := strings.ToLower(child.Name())
		if prev, ok := seen[key]; ok {
			return nil, derrors.NewValidationError("children",
				fmt.Sprintf("directory '%s' has two children named '%s' and '%s'", name, prev, child.Name()), nil)
		}
		seen[key] = child.Name()
		if dir, ok := child.(*Directory); ok && dir.root {
			return nil, derrors.NewValidationError("children",
				fmt.Sprintf("the root directory cannot be added to '%s'", name), nil)
		}
		if parent := child.Parent(); parent != nil {
			return nil, derrors.NewValidationError("children",
				fmt.Sprintf("cannot add '%s' to '%s': already a child of '%s'", child.Name(), name, parent.Path()), nil)
		}
		b.Add(child.Name(), child)
	}
	// Parents are only assigned once every child is known to be valid.
	for _, child := range children {
		if err := child.setParent(d); err != nil {
			panic(fmt.Sprintf("hierarchy: %v", err))
		}
	}
	d.children = b.Build()
	return d, nil
}

func (d *Directory) Name() string        { return d.name }
func (d *Directory) Description() string { return d.description }
func (d *Directory) IsDirectory() bool   { return true }

// IsRoot is true for the directory without a parent created by NewRoot.
func (d *Directory) IsRoot() bool {
	return d.root
}

func (d *Directory) setParent(parent *Directory) error {
	if d.root {
		return derrors.NewValidationError("parent", "the root directory cannot have a parent", nil)
	}
	return d.parentLink.setParent(parent)
}

// Path returns the absolute path, "/" for the root.
func (d *Directory) Path() string {
	if d.root {
		return PathSeparator
	}
	return childPath(d.parent, d.name)
}

// IsEmpty is true when the directory has no children.
func (d *Directory) IsEmpty() bool {
	return d.children.IsEmpty()
}

// Children returns the children sorted by name.
func (d *Directory) Children() []Entry {
	entries := d.children.Values()
	slices.SortFunc(entries, func(a, b Entry) int {
		return strings.Compare(strings.ToLower(a.Name()), strings.ToLower(b.Name()))
	})
	return entries
}

// Directories returns the child directories sorted by name.
func (d *Directory) Directories() []*Directory {
	var dirs []*Directory
	for _, e := range d.Children() {
		if dir, ok := e.(*Directory); ok {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// Commands returns the child commands sorted by name.
func (d *Directory) Commands() []*Command {
	var cmds []*Command
	for _, e := range d.Children() {
		if cmd, ok := e.(*Command); ok {
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}

func matches(e Entry, kind EntryKind) bool {
	switch kind {
	case DirectoryEntry:
		return e.IsDirectory()
	case CommandEntry:
		return !e.IsDirectory()
	default:
		return true
	}
}

// ParseChild returns the child named raw, which must be of the given kind.
func (d *Directory) ParseChild(raw string, kind EntryKind) (Entry, error) {
	wantDirectory := kind == DirectoryEntry
	if d.IsEmpty() {
		return nil, derrors.NewEmptyDirectory(d.Path())
	}
	child, ok := d.children.Get(raw)
	if !ok {
		return nil, derrors.NewNoSuchEntry(d.Path(), raw, wantDirectory)
	}
	if !matches(child, kind) {
		return nil, derrors.NewWrongEntryKind(d.Path(), child.Name(), wantDirectory)
	}
	return child, nil
}

// ParseDirectory returns the child directory named raw.
func (d *Directory) ParseDirectory(raw string) (*Directory, error) {
	e, err := d.ParseChild(raw, DirectoryEntry)
	if err != nil {
		return nil, err
	}
	return e.(*Directory), nil
}

// ParseCommand returns the child command named raw.
func (d *Directory) ParseCommand(raw string) (*Command, error) {
	e, err := d.ParseChild(raw, CommandEntry)
	if err != nil {
		return nil, err
	}
	return e.(*Command), nil
}

// AutoCompleteChild suggests the children of the given kind starting with
// prefix. No match is not an error; only a directory with nothing of the
// requested kind fails, with EmptyDirectory.
func (d *Directory) AutoCompleteChild(prefix string, kind EntryKind) (*suggest.AutoComplete, error) {
	candidates := d.children
	if kind != AnyEntry {
		candidates = candidates.Filter(func(e Entry) bool { return matches(e, kind) })
	}
	if candidates.IsEmpty() {
		return nil, derrors.NewEmptyDirectory(d.Path())
	}
	typed := trie.Map(candidates.SubTrie(prefix), func(e Entry) (suggest.Type, bool) {
		if e.IsDirectory() {
			return suggest.Directory, true
		}
		return suggest.Command, true
	})
	return suggest.New(prefix, typed), nil
}

// Walk calls visit for d and every directory and command below it,
// depth-first, children in name order.
func (d *Directory) Walk(visit func(e Entry, depth int)) {
	d.walk(visit, 0)
}

func (d *Directory) walk(visit func(Entry, int), depth int) {
	visit(d, depth)
	for _, child := range d.Children() {
		if dir, ok := child.(*Directory); ok {
			dir.walk(visit, depth+1)
			continue
		}
		visit(child, depth+1)
	}
}
