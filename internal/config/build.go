package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/NikitaCOEUR/dirsh/internal/builtin"
	"github.com/NikitaCOEUR/dirsh/internal/derrors"
	"github.com/NikitaCOEUR/dirsh/internal/hierarchy"
	"github.com/NikitaCOEUR/dirsh/internal/param"
)

// StateFunc supplies the state behind a toggle, keyed by the toggle's path.
type StateFunc func(key string, initial bool) builtin.StateAccessor

// BuildOption customizes Build.
type BuildOption func(*builder)

// WithStates backs toggles with fn instead of in-memory states.
func WithStates(fn StateFunc) BuildOption {
	return func(b *builder) {
		b.states = fn
	}
}

func memoryState(_ string, initial bool) builtin.StateAccessor {
	return builtin.NewState(initial)
}

// Build turns a definition into a resolver positioned at the root, with the
// definition's global commands registered. Built-in commands are not added.
func (d *Definition) Build(opts ...BuildOption) (*hierarchy.Resolver, error) {
	b := &builder{states: memoryState}
	for _, opt := range opts {
		opt(b)
	}

	children, err := b.children(d.Directories, d.Commands, d.Toggles, "")
	if err != nil {
		return nil, err
	}
	root, err := hierarchy.NewRoot(d.Description, children...)
	if err != nil {
		return nil, err
	}

	globals := make([]*hierarchy.Command, 0, len(d.Globals))
	for _, def := range d.Globals {
		cmd, err := b.command(def, "globals")
		if err != nil {
			return nil, err
		}
		globals = append(globals, cmd)
	}

	b.resolver = hierarchy.NewResolver(root, nil)
	if err := b.resolver.AddGlobals(globals...); err != nil {
		return nil, err
	}

	// Path defaults can only be checked once the tree exists.
	for _, check := range b.pathDefaults {
		if err := check(); err != nil {
			return nil, err
		}
	}
	return b.resolver, nil
}

type builder struct {
	// resolver is set once the tree is built; path defaults resolve through
	// it lazily.
	resolver     *hierarchy.Resolver
	pathDefaults []func() error
	states       StateFunc
}

func (b *builder) children(dirs []DirectoryDef, cmds []CommandDef, toggles []ToggleDef, at string) ([]hierarchy.Entry, error) {
	entries := make([]hierarchy.Entry, 0, len(dirs)+len(cmds)+len(toggles))
	for _, def := range dirs {
		dir, err := b.directory(def, at)
		if err != nil {
			return nil, err
		}
		entries = append(entries, dir)
	}
	for _, def := range cmds {
		cmd, err := b.command(def, at)
		if err != nil {
			return nil, err
		}
		entries = append(entries, cmd)
	}
	for _, def := range toggles {
		path := at + "/" + def.Name
		description := def.Description
		if description == "" {
			description = "Toggle " + def.Name
		}
		toggle, err := builtin.NewToggleCommand(def.Name, description, b.states(path, def.Initial))
		if err != nil {
			return nil, field(path, err)
		}
		entries = append(entries, toggle)
	}
	return entries, nil
}

func (b *builder) directory(def DirectoryDef, at string) (*hierarchy.Directory, error) {
	path := at + "/" + def.Name
	children, err := b.children(def.Directories, def.Commands, def.Toggles, path)
	if err != nil {
		return nil, err
	}
	dir, err := hierarchy.NewDirectory(def.Name, def.Description, children...)
	if err != nil {
		return nil, field(path, err)
	}
	return dir, nil
}

func (b *builder) command(def CommandDef, at string) (*hierarchy.Command, error) {
	path := at + "/" + def.Name

	params := make([]param.Param, 0, len(def.Params))
	for _, pd := range def.Params {
		p, err := b.param(pd, path)
		if err != nil {
			return nil, err
		}
		params = append(params, p)
	}

	exec, err := outputExecutor(def.Name, def.Output)
	if err != nil {
		return nil, derrors.NewValidationError(path+"/output", "invalid output template", err)
	}

	cmd, err := hierarchy.NewCommand(def.Name, def.Description, exec, params...)
	if err != nil {
		return nil, field(path, err)
	}
	return cmd, nil
}

type paramFactory func(opts ...param.Option) param.Param

func (b *builder) param(def ParamDef, at string) (param.Param, error) {
	path := at + "/" + def.Name

	var factory paramFactory
	switch strings.ToLower(def.Type) {
	case "", "string":
		factory = func(opts ...param.Option) param.Param { return param.NewString(def.Name, opts...) }
	case "int":
		factory = func(opts ...param.Option) param.Param { return param.NewInt(def.Name, opts...) }
	case "float":
		factory = func(opts ...param.Option) param.Param { return param.NewFloat(def.Name, opts...) }
	case "bool":
		factory = func(opts ...param.Option) param.Param { return param.NewBool(def.Name, opts...) }
	case "enum":
		if len(def.Values) == 0 {
			return nil, derrors.NewValidationError(path, "enum parameter needs values", nil)
		}
		factory = func(opts ...param.Option) param.Param { return param.NewEnum(def.Name, def.Values, opts...) }
	case "directory":
		return b.pathParam(def, path, true, param.NewDirectory, func(raw string) (param.Entry, error) {
			return b.resolver.ResolveDirectory(raw)
		})
	case "command":
		return b.pathParam(def, path, false, param.NewCommandPath, func(raw string) (param.Entry, error) {
			return b.resolver.ResolveCommand(raw)
		})
	default:
		return nil, derrors.NewValidationError(path, fmt.Sprintf("unknown parameter type '%s'", def.Type), nil)
	}

	opts := []param.Option{param.WithDescription(def.Description)}
	if !def.Optional && def.Default == nil {
		return factory(opts...), nil
	}

	// Defaults are converted with the parameter's own parser.
	probe := factory()
	raw := ""
	if def.Default != nil {
		raw = fmt.Sprint(def.Default)
	}
	if def.Default == nil && probe.ValueType() != param.String {
		return factory(append(opts, param.WithDefaultValue(zero(probe.ValueType())))...), nil
	}
	value, err := probe.Parse(raw, nil)
	if err != nil {
		return nil, derrors.NewValidationError(path+"/default", "invalid default", err)
	}
	return factory(append(opts, param.WithDefaultValue(value))...), nil
}

// pathParam builds a directory or command parameter. An explicit default
// is checked once the hierarchy is built. Only directory parameters may
// omit it, falling back to the working directory.
func (b *builder) pathParam(def ParamDef, path string, cwdDefault bool,
	newParam func(string, ...param.Option) param.Param,
	resolve func(string) (param.Entry, error)) (param.Param, error) {
	opts := []param.Option{param.WithDescription(def.Description)}
	if !def.Optional && def.Default == nil {
		return newParam(def.Name, opts...), nil
	}

	if def.Default == nil {
		if !cwdDefault {
			return nil, derrors.NewValidationError(path+"/default", "optional command parameter needs a default", nil)
		}
		opts = append(opts, param.WithDefault(func() param.Entry {
			entry, err := resolve(hierarchy.CurrentDir)
			if err != nil {
				panic(fmt.Sprintf("config: working directory does not resolve: %v", err))
			}
			return entry
		}))
		return newParam(def.Name, opts...), nil
	}

	// Explicit defaults are absolute so they resolve the same from any
	// working directory. The hierarchy is immutable, so one resolution holds.
	raw := fmt.Sprint(def.Default)
	if !strings.HasPrefix(raw, hierarchy.PathSeparator) {
		raw = hierarchy.PathSeparator + raw
	}
	var resolved param.Entry
	b.pathDefaults = append(b.pathDefaults, func() error {
		entry, err := resolve(raw)
		if err != nil {
			return derrors.NewValidationError(path+"/default", fmt.Sprintf("default path '%s' does not resolve", raw), err)
		}
		resolved = entry
		return nil
	})
	opts = append(opts, param.WithDefault(func() param.Entry { return resolved }))
	return newParam(def.Name, opts...), nil
}

func zero(t param.ValueType) any {
	switch t {
	case param.Int:
		return 0
	case param.Float:
		return 0.0
	case param.Bool:
		return false
	default:
		return ""
	}
}

// outputExecutor renders the template over the bound arguments. Entries
// are exposed as their absolute path.
func outputExecutor(name, text string) (hierarchy.Executor, error) {
	if strings.TrimSpace(text) == "" {
		return func(context.Context, *param.Args, hierarchy.Output) error { return nil }, nil
	}

	tmpl, err := template.New(name).Funcs(sprig.TxtFuncMap()).Option("missingkey=zero").Parse(text)
	if err != nil {
		return nil, err
	}

	return func(_ context.Context, args *param.Args, out hierarchy.Output) error {
		data := args.Map()
		for k, v := range data {
			if entry, ok := v.(param.Entry); ok {
				data[k] = entry.Path()
			}
		}
		var sb strings.Builder
		if err := tmpl.Execute(&sb, data); err != nil {
			return err
		}
		out.Message("%s", strings.TrimRight(sb.String(), "\n"))
		return nil
	}, nil
}

// field rewrites a validation error so it names the offending definition.
func field(path string, err error) error {
	var verr *derrors.ValidationError
	if errors.As(err, &verr) {
		return derrors.NewValidationError(path, verr.Error(), nil)
	}
	return err
}
