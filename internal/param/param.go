// Package param defines command parameters and binds raw tokens to them.
//
// A Param is an immutable description (name, value type, optional default).
// A Manager is created for every invocation and tracks which parameters are
// bound, so the same command can be parsed concurrently.
package param

import (
	"strconv"
	"strings"

	"github.com/NikitaCOEUR/dirsh/internal/derrors"
	"github.com/NikitaCOEUR/dirsh/internal/suggest"
	"github.com/NikitaCOEUR/dirsh/internal/trie"
)

// Kind is whether a parameter must receive a value.
type Kind int

const (
	// Mandatory parameters fail the parse when left unbound.
	Mandatory Kind = iota
	// Optional parameters fall back to their default.
	Optional
)

// ValueType is the type a raw token is converted to.
type ValueType int

const (
	String ValueType = iota
	Int
	Float
	Bool
	DirectoryPath
	CommandPath
	DynamicString
)

func (v ValueType) String() string {
	switch v {
	case String, DynamicString:
		return "string"
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "boolean"
	case DirectoryPath:
		return "directory"
	case CommandPath:
		return "command"
	default:
		return "unknown"
	}
}

// Entry is the view a path parameter gets of a resolved hierarchy entry.
type Entry interface {
	Name() string
	Description() string
	IsDirectory() bool
	Path() string
}

// PathResolver resolves and completes paths for path-typed parameters.
type PathResolver interface {
	ResolveDirectory(path string) (Entry, error)
	ResolveCommand(path string) (Entry, error)
	CompleteDirectory(prefix string) (*suggest.AutoComplete, error)
	CompletePath(prefix string) (*suggest.AutoComplete, error)
}

// Param describes one parameter of a command.
type Param interface {
	Name() string
	Description() string
	Kind() Kind
	ValueType() ValueType
	// Parse converts a raw token. Failures are *derrors.ParseError.
	Parse(raw string, resolver PathResolver) (any, error)
	// AutoComplete suggests values for a partially typed token.
	AutoComplete(prefix string, resolver PathResolver) (*suggest.AutoComplete, error)
	// Default evaluates the default value. Only meaningful for optional params.
	Default() any
}

// Option customizes a parameter at construction.
type Option func(*base)

// WithDescription sets the help text.
func WithDescription(description string) Option {
	return func(s *base) {
		s.description = description
	}
}

// WithDefault makes the parameter optional. fn is evaluated each time the
// parameter is left unbound, at the end of the parse.
func WithDefault[T any](fn func() T) Option {
	return func(s *base) {
		s.defaultFn = func() any { return fn() }
	}
}

// WithDefaultValue makes the parameter optional with a constant default.
func WithDefaultValue(value any) Option {
	return func(s *base) {
		s.defaultFn = func() any { return value }
	}
}

type base struct {
	name        string
	description string
	valueType   ValueType
	defaultFn   func() any
	parse       func(s *base, raw string, r PathResolver) (any, error)
	complete    func(s *base, prefix string, r PathResolver) (*suggest.AutoComplete, error)
}

func newBase(name string, valueType ValueType, opts []Option) *base {
	s := &base{name: name, valueType: valueType, complete: notCompletable}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *base) Name() string         { return s.name }
func (s *base) Description() string  { return s.description }
func (s *base) ValueType() ValueType { return s.valueType }

func (s *base) Kind() Kind {
	if s.defaultFn != nil {
		return Optional
	}
	return Mandatory
}

func (s *base) Parse(raw string, resolver PathResolver) (any, error) {
	return s.parse(s, raw, resolver)
}

func (s *base) AutoComplete(prefix string, resolver PathResolver) (*suggest.AutoComplete, error) {
	return s.complete(s, prefix, resolver)
}

func (s *base) Default() any {
	if s.defaultFn == nil {
		return nil
	}
	return s.defaultFn()
}

func notCompletable(s *base, _ string, _ PathResolver) (*suggest.AutoComplete, error) {
	return nil, derrors.NewParamTypeNotCompletable(s.name, s.valueType.String())
}

func invalid(s *base, raw string, cause error) error {
	e := derrors.NewInvalidParamValue(s.name, raw)
	if cause != nil {
		e = e.WithCause(cause)
	}
	return e
}

// NewString creates a free-form string parameter.
func NewString(name string, opts ...Option) Param {
	s := newBase(name, String, opts)
	s.parse = func(_ *base, raw string, _ PathResolver) (any, error) {
		return raw, nil
	}
	return s
}

// NewInt creates an integer parameter.
func NewInt(name string, opts ...Option) Param {
	s := newBase(name, Int, opts)
	s.parse = func(s *base, raw string, _ PathResolver) (any, error) {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, invalid(s, raw, nil)
		}
		return v, nil
	}
	return s
}

// NewFloat creates a floating-point parameter.
func NewFloat(name string, opts ...Option) Param {
	s := newBase(name, Float, opts)
	s.parse = func(s *base, raw string, _ PathResolver) (any, error) {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, invalid(s, raw, nil)
		}
		return v, nil
	}
	return s
}

// NewBool creates a boolean parameter. Accepted tokens are those of
// strconv.ParseBool, case-insensitively.
func NewBool(name string, opts ...Option) Param {
	s := newBase(name, Bool, opts)
	s.parse = func(s *base, raw string, _ PathResolver) (any, error) {
		v, err := strconv.ParseBool(strings.ToLower(raw))
		if err != nil {
			return nil, invalid(s, raw, nil)
		}
		return v, nil
	}
	return s
}

// NewDirectory creates a parameter whose value is a directory path.
func NewDirectory(name string, opts ...Option) Param {
	s := newBase(name, DirectoryPath, opts)
	s.parse = func(s *base, raw string, r PathResolver) (any, error) {
		dir, err := r.ResolveDirectory(raw)
		if err != nil {
			return nil, invalid(s, raw, err)
		}
		return dir, nil
	}
	s.complete = func(_ *base, prefix string, r PathResolver) (*suggest.AutoComplete, error) {
		return r.CompleteDirectory(prefix)
	}
	return s
}

// NewCommandPath creates a parameter whose value is a command path.
func NewCommandPath(name string, opts ...Option) Param {
	s := newBase(name, CommandPath, opts)
	s.parse = func(s *base, raw string, r PathResolver) (any, error) {
		cmd, err := r.ResolveCommand(raw)
		if err != nil {
			return nil, invalid(s, raw, err)
		}
		return cmd, nil
	}
	s.complete = func(_ *base, prefix string, r PathResolver) (*suggest.AutoComplete, error) {
		return r.CompletePath(prefix)
	}
	return s
}

// NewDynamicString creates a string parameter restricted to the values
// returned by values, queried on every parse and completion. An empty list
// accepts any token.
func NewDynamicString(name string, values func() []string, opts ...Option) Param {
	s := newBase(name, DynamicString, opts)
	candidates := func() *trie.Trie[string] {
		b := trie.NewBuilder[string]()
		for _, v := range values() {
			b.Add(v, v)
		}
		return b.Build()
	}
	s.parse = func(s *base, raw string, _ PathResolver) (any, error) {
		known := candidates()
		if known.IsEmpty() {
			return raw, nil
		}
		v, ok := known.Get(raw)
		if !ok {
			return nil, invalid(s, raw, nil)
		}
		return v, nil
	}
	s.complete = func(s *base, prefix string, _ PathResolver) (*suggest.AutoComplete, error) {
		known := candidates()
		if known.IsEmpty() {
			return suggest.None(prefix), nil
		}
		matches := known.SubTrie(prefix)
		if matches.IsEmpty() {
			return nil, derrors.NewNoPossibleValuesForPrefix("values for parameter '"+s.name+"'", prefix)
		}
		return suggest.New(prefix, suggest.Tag(matches, suggest.ParamValue)), nil
	}
	return s
}

// NewEnum is a DynamicString over a fixed list.
func NewEnum(name string, values []string, opts ...Option) Param {
	fixed := append([]string(nil), values...)
	return NewDynamicString(name, func() []string { return fixed }, opts...)
}
