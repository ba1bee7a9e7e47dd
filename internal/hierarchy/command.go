package hierarchy

import (
	"context"
	"fmt"
	"strings"

	"github.com/NikitaCOEUR/dirsh/internal/derrors"
	"github.com/NikitaCOEUR/dirsh/internal/param"
	"github.com/NikitaCOEUR/dirsh/internal/trie"
)

// Command is a leaf of the hierarchy: parameters plus an executor.
type Command struct {
	parentLink
	name        string
	description string
	params      []param.Param
	names       *trie.Trie[param.Param]
	executor    Executor
}

// NewCommand creates a command. Parameter names are validated like entry
// names and must be unique.
func NewCommand(name, description string, executor Executor, params ...param.Param) (*Command, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if executor == nil {
		return nil, derrors.NewValidationError("executor", fmt.Sprintf("command '%s' has no executor", name), nil)
	}

	seen := make(map[string]bool, len(params))
	for _, p := range params {
		if err := ValidateName(p.Name()); err != nil {
			return nil, derrors.NewValidationError("params", fmt.Sprintf("command '%s'", name), err)
		}
		key := strings.ToLower(p.Name())
		if seen[key] {
			return nil, derrors.NewValidationError("params",
				fmt.Sprintf("command '%s' has two parameters named '%s'", name, p.Name()), nil)
		}
		seen[key] = true
	}

	return &Command{
		name:        name,
		description: description,
		params:      append([]param.Param(nil), params...),
		names:       param.IndexByName(params),
		executor:    executor,
	}, nil
}

func (c *Command) Name() string        { return c.name }
func (c *Command) Description() string { return c.description }
func (c *Command) IsDirectory() bool   { return false }

// Path returns the absolute path, or the prefixed name of a global command.
func (c *Command) Path() string {
	if c.parent == nil {
		return GlobalPrefix + c.name
	}
	return childPath(c.parent, c.name)
}

// Params returns the declared parameters in order.
func (c *Command) Params() []param.Param {
	return append([]param.Param(nil), c.params...)
}

// NewParamManager creates the per-invocation binding state.
func (c *Command) NewParamManager(resolver param.PathResolver) *param.Manager {
	return param.NewManager(c.name, c.params, c.names, resolver)
}

// Execute runs the executor.
func (c *Command) Execute(ctx context.Context, args *param.Args, out Output) error {
	return c.executor(ctx, args, out)
}

// Usage renders the synopsis: name, <mandatory> and [optional] params.
func (c *Command) Usage() string {
	var b strings.Builder
	b.WriteString(c.name)
	for _, p := range c.params {
		if p.Kind() == param.Optional {
			fmt.Fprintf(&b, " [%s]", p.Name())
			continue
		}
		fmt.Fprintf(&b, " <%s>", p.Name())
	}
	return b.String()
}
