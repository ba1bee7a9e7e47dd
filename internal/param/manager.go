package param

import (
	"fmt"
	"strings"

	"github.com/NikitaCOEUR/dirsh/internal/derrors"
	"github.com/NikitaCOEUR/dirsh/internal/suggest"
	"github.com/NikitaCOEUR/dirsh/internal/trie"
)

// NamedPrefix introduces a named argument: --name value.
const NamedPrefix = "--"

type binding struct {
	raw   string
	value any
}

// Manager binds the arguments of a single invocation. It is created fresh
// for every parse or completion and is not safe for concurrent use.
type Manager struct {
	command  string
	params   []Param
	names    *trie.Trie[Param]
	resolver PathResolver

	bound   map[string]binding
	current Param
}

// NewManager creates a manager for the given command. names indexes params
// by name.
func NewManager(command string, params []Param, names *trie.Trie[Param], resolver PathResolver) *Manager {
	return &Manager{
		command:  command,
		params:   params,
		names:    names,
		resolver: resolver,
		bound:    make(map[string]binding, len(params)),
	}
}

// IndexByName builds the name lookup trie for params.
func IndexByName(params []Param) *trie.Trie[Param] {
	b := trie.NewBuilder[Param]()
	for _, p := range params {
		b.Add(p.Name(), p)
	}
	return b.Build()
}

func namedToken(arg string) (string, bool) {
	if !strings.HasPrefix(arg, NamedPrefix) {
		return "", false
	}
	return arg[len(NamedPrefix):], true
}

func (m *Manager) isBound(p Param) bool {
	_, ok := m.bound[p.Name()]
	return ok
}

// nextPositional returns the first unbound mandatory parameter in declared
// order, then the first unbound optional one.
func (m *Manager) nextPositional() Param {
	for _, p := range m.params {
		if p.Kind() == Mandatory && !m.isBound(p) {
			return p
		}
	}
	for _, p := range m.params {
		if p.Kind() == Optional && !m.isBound(p) {
			return p
		}
	}
	return nil
}

func (m *Manager) lookup(name string) (Param, error) {
	p, ok := m.names.Get(name)
	if !ok {
		return nil, derrors.NewInvalidParamName(m.command, name)
	}
	if b, ok := m.bound[p.Name()]; ok {
		m.current = p
		return nil, derrors.NewParamAlreadyBound(p.Name(), b.raw)
	}
	return p, nil
}

func (m *Manager) bind(p Param, raw string) error {
	m.current = p
	value, err := p.Parse(raw, m.resolver)
	if err != nil {
		return err
	}
	m.bound[p.Name()] = binding{raw: raw, value: value}
	return nil
}

// fail attaches the binding state to err.
func (m *Manager) fail(err error) error {
	if pe, ok := derrors.AsParseError(err); ok {
		return pe.WithCommandInfo(m.Snapshot())
	}
	return err
}

// consume binds the tokens of args. When the last token is a parameter name
// and stopAtName is set, that parameter is returned unbound.
func (m *Manager) consume(args []string, stopAtName bool) (Param, error) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if name, ok := namedToken(arg); ok {
			p, err := m.lookup(name)
			if err != nil {
				return nil, err
			}
			m.current = p
			if i+1 >= len(args) {
				if stopAtName {
					return p, nil
				}
				// A trailing boolean name is a flag.
				if p.ValueType() == Bool {
					m.bound[p.Name()] = binding{raw: "true", value: true}
					continue
				}
				return nil, derrors.NewParamNotBound(p.Name())
			}
			i++
			if err := m.bind(p, args[i]); err != nil {
				return nil, err
			}
			continue
		}

		p := m.nextPositional()
		if p == nil {
			m.current = nil
			return nil, derrors.NewExcessParam(m.command, arg)
		}
		if err := m.bind(p, arg); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

// Parse binds args and returns the values in declared order. Defaults of
// unbound optional parameters are evaluated only once every mandatory
// parameter is known to be bound.
func (m *Manager) Parse(args []string) (*Args, error) {
	if _, err := m.consume(args, false); err != nil {
		return nil, m.fail(err)
	}

	for _, p := range m.params {
		if p.Kind() == Mandatory && !m.isBound(p) {
			m.current = p
			return nil, m.fail(derrors.NewParamNotBound(p.Name()))
		}
	}
	m.current = nil

	values := make([]any, len(m.params))
	for i, p := range m.params {
		if b, ok := m.bound[p.Name()]; ok {
			values[i] = b.value
			continue
		}
		values[i] = p.Default()
	}
	return newArgs(m.params, values), nil
}

// AutoCompleteLast binds every token but the last, then completes the last
// one: a parameter name after "--", the value of a pending named parameter,
// or the value of the next positional parameter.
func (m *Manager) AutoCompleteLast(args []string) (*suggest.AutoComplete, error) {
	if len(args) == 0 {
		args = []string{""}
	}
	head, last := args[:len(args)-1], args[len(args)-1]

	pending, err := m.consume(head, true)
	if err != nil {
		return nil, m.fail(err)
	}

	if pending != nil {
		m.current = pending
		return m.complete(pending, last)
	}

	if name, ok := namedToken(last); ok {
		m.current = m.nextPositional()
		unbound := m.names.Filter(func(p Param) bool { return !m.isBound(p) })
		matches := unbound.SubTrie(name)
		if matches.IsEmpty() {
			return nil, m.fail(derrors.NewNoPossibleValuesForPrefix("parameters", name))
		}
		return suggest.New(name, suggest.Tag(matches, suggest.ParamName)), nil
	}

	p := m.nextPositional()
	if p == nil {
		m.current = nil
		return nil, m.fail(derrors.NewExcessParam(m.command, last))
	}
	m.current = p
	return m.complete(p, last)
}

func (m *Manager) complete(p Param, prefix string) (*suggest.AutoComplete, error) {
	ac, err := p.AutoComplete(prefix, m.resolver)
	if err != nil {
		return nil, m.fail(err)
	}
	return ac, nil
}

// Snapshot describes the current binding state. CurrentParam is -1 when no
// parameter is being worked on.
func (m *Manager) Snapshot() *derrors.CommandInfo {
	info := &derrors.CommandInfo{
		Command:      m.command,
		Params:       make([]derrors.ParamState, len(m.params)),
		CurrentParam: -1,
	}
	for i, p := range m.params {
		b, bound := m.bound[p.Name()]
		info.Params[i] = derrors.ParamState{
			Name:        p.Name(),
			Description: p.Description(),
			Optional:    p.Kind() == Optional,
			Bound:       bound,
			RawValue:    b.raw,
		}
		if p == m.current {
			info.CurrentParam = i
		}
	}
	if m.current != nil && info.CurrentParam < 0 {
		panic(fmt.Sprintf("param: current parameter '%s' does not belong to '%s'", m.current.Name(), m.command))
	}
	return info
}
