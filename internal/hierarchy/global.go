package hierarchy

import (
	"fmt"
	"slices"
	"strings"

	"github.com/NikitaCOEUR/dirsh/internal/derrors"
	"github.com/NikitaCOEUR/dirsh/internal/suggest"
	"github.com/NikitaCOEUR/dirsh/internal/trie"
)

// GlobalCommands is the registry of commands reachable from any directory
// through the ':' prefix.
type GlobalCommands struct {
	commands *trie.Trie[*Command]
}

// NewGlobalCommands creates the registry. Names must be unique.
func NewGlobalCommands(commands ...*Command) (*GlobalCommands, error) {
	b := trie.NewBuilder[*Command]()
	seen := make(map[string]bool, len(commands))
	for _, c := range commands {
		key := strings.ToLower(c.Name())
		if seen[key] {
			return nil, derrors.NewValidationError("globals", fmt.Sprintf("two global commands named '%s'", c.Name()), nil)
		}
		seen[key] = true
		b.Add(c.Name(), c)
	}
	return &GlobalCommands{commands: b.Build()}, nil
}

// Parse returns the global command named name, without the prefix.
func (g *GlobalCommands) Parse(name string) (*Command, error) {
	c, ok := g.commands.Get(name)
	if !ok {
		return nil, derrors.NewInvalidGlobalCommand(name)
	}
	return c, nil
}

// AutoComplete suggests global command names starting with prefix.
func (g *GlobalCommands) AutoComplete(prefix string) (*suggest.AutoComplete, error) {
	matches := g.commands.SubTrie(prefix)
	if matches.IsEmpty() {
		return nil, derrors.NewNoPossibleValuesForPrefix("global commands", prefix)
	}
	return suggest.New(prefix, suggest.Tag(matches, suggest.GlobalCommand)), nil
}

// Commands returns the registered commands sorted by name.
func (g *GlobalCommands) Commands() []*Command {
	cmds := g.commands.Values()
	slices.SortFunc(cmds, func(a, b *Command) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return cmds
}
