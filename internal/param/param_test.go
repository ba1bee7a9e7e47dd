package param

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikitaCOEUR/dirsh/internal/derrors"
	"github.com/NikitaCOEUR/dirsh/internal/suggest"
	"github.com/NikitaCOEUR/dirsh/internal/trie"
)

type fakeEntry struct {
	name string
	dir  bool
}

func (e fakeEntry) Name() string        { return e.name }
func (e fakeEntry) Description() string { return "" }
func (e fakeEntry) IsDirectory() bool   { return e.dir }
func (e fakeEntry) Path() string        { return "/" + e.name }

// fakeResolver knows the directories "net" and "sys" and the command "ping".
type fakeResolver struct{}

func (fakeResolver) ResolveDirectory(path string) (Entry, error) {
	if path == "net" || path == "sys" {
		return fakeEntry{name: path, dir: true}, nil
	}
	return nil, derrors.NewNoSuchEntry("/", path, true)
}

func (fakeResolver) ResolveCommand(path string) (Entry, error) {
	if path == "ping" {
		return fakeEntry{name: path}, nil
	}
	return nil, derrors.NewNoSuchEntry("/", path, false)
}

func (fakeResolver) CompleteDirectory(prefix string) (*suggest.AutoComplete, error) {
	dirs := suggest.Tag(trie.FromWords("net", "sys"), suggest.Directory)
	return suggest.New(prefix, dirs.SubTrie(prefix)), nil
}

func (fakeResolver) CompletePath(prefix string) (*suggest.AutoComplete, error) {
	all := trie.FromMap(map[string]suggest.Type{"net": suggest.Directory, "ping": suggest.Command})
	return suggest.New(prefix, all.SubTrie(prefix)), nil
}

func newManager(params ...Param) *Manager {
	return NewManager("cmd", params, IndexByName(params), fakeResolver{})
}

func requireKind(t *testing.T, err error, kind derrors.Kind) *derrors.ParseError {
	t.Helper()
	require.Error(t, err)
	pe, ok := derrors.AsParseError(err)
	require.True(t, ok, "expected a parse error, got %v", err)
	require.Equal(t, kind, pe.Kind, pe.Error())
	return pe
}

func TestPrimitiveParse(t *testing.T) {
	tests := []struct {
		name    string
		param   Param
		raw     string
		want    any
		wantErr bool
	}{
		{"string", NewString("s"), "hello", "hello", false},
		{"int", NewInt("i"), "42", 42, false},
		{"negative int", NewInt("i"), "-3", -3, false},
		{"bad int", NewInt("i"), "4x", nil, true},
		{"float", NewFloat("f"), "1.5", 1.5, false},
		{"bad float", NewFloat("f"), "one", nil, true},
		{"bool", NewBool("b"), "TRUE", true, false},
		{"bool short", NewBool("b"), "0", false, false},
		{"bad bool", NewBool("b"), "maybe", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.param.Parse(tt.raw, fakeResolver{})
			if tt.wantErr {
				pe := requireKind(t, err, derrors.InvalidParamValue)
				assert.Equal(t, tt.raw, pe.RawValue)
				assert.Equal(t, tt.param.Name(), pe.Param)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPathParse(t *testing.T) {
	dir, err := NewDirectory("d").Parse("net", fakeResolver{})
	require.NoError(t, err)
	assert.True(t, dir.(Entry).IsDirectory())

	_, err = NewDirectory("d").Parse("nope", fakeResolver{})
	pe := requireKind(t, err, derrors.InvalidParamValue)
	assert.True(t, derrors.IsKind(pe.Unwrap(), derrors.NoSuchEntry))

	cmd, err := NewCommandPath("c").Parse("ping", fakeResolver{})
	require.NoError(t, err)
	assert.Equal(t, "ping", cmd.(Entry).Name())
}

func TestDynamicString(t *testing.T) {
	values := []string{"Alpha", "beta"}
	p := NewDynamicString("v", func() []string { return values })

	got, err := p.Parse("alpha", nil)
	require.NoError(t, err)
	assert.Equal(t, "Alpha", got)

	_, err = p.Parse("gamma", nil)
	requireKind(t, err, derrors.InvalidParamValue)

	ac, err := p.AutoComplete("b", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"beta"}, ac.Words())

	_, err = p.AutoComplete("z", nil)
	requireKind(t, err, derrors.NoPossibleValuesForPrefix)

	// Values are queried every time.
	values = nil
	got, err = p.Parse("anything", nil)
	require.NoError(t, err)
	assert.Equal(t, "anything", got)

	ac, err = p.AutoComplete("", nil)
	require.NoError(t, err)
	assert.True(t, ac.IsEmpty())
}

func TestNotCompletable(t *testing.T) {
	for _, p := range []Param{NewString("s"), NewInt("i"), NewFloat("f"), NewBool("b")} {
		_, err := p.AutoComplete("", fakeResolver{})
		pe := requireKind(t, err, derrors.ParamTypeNotCompletable)
		assert.Equal(t, p.Name(), pe.Param)
	}
}

func TestKindAndDefaults(t *testing.T) {
	assert.Equal(t, Mandatory, NewInt("x").Kind())
	opt := NewInt("y", WithDefaultValue(5), WithDescription("why"))
	assert.Equal(t, Optional, opt.Kind())
	assert.Equal(t, 5, opt.Default())
	assert.Equal(t, "why", opt.Description())
	assert.Equal(t, "int", opt.ValueType().String())
}

func TestManagerParse_PositionalAndDefault(t *testing.T) {
	params := []Param{NewInt("x"), NewInt("y", WithDefaultValue(5))}

	args, err := newManager(params...).Parse([]string{"3"})
	require.NoError(t, err)
	assert.Equal(t, []any{3, 5}, args.Values())
	assert.Equal(t, 3, args.Int("x"))
	assert.Equal(t, 5, args.Int("y"))

	_, err = newManager(params...).Parse(nil)
	pe := requireKind(t, err, derrors.ParamNotBound)
	assert.Equal(t, "x", pe.Param)
	require.NotNil(t, pe.CommandInfo)
	assert.Equal(t, 0, pe.CommandInfo.CurrentParam)
}

func TestManagerParse_MandatoryBeforeOptional(t *testing.T) {
	params := []Param{
		NewString("opt", WithDefaultValue("d")),
		NewString("req"),
	}
	args, err := newManager(params...).Parse([]string{"first"})
	require.NoError(t, err)
	assert.Equal(t, "d", args.String("opt"))
	assert.Equal(t, "first", args.String("req"))

	args, err = newManager(params...).Parse([]string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []any{"b", "a"}, args.Values())
}

func TestManagerParse_DefaultsAreLazy(t *testing.T) {
	calls := 0
	params := []Param{
		NewInt("y", WithDefault(func() int { calls++; return calls })),
		NewInt("x"),
	}

	_, err := newManager(params...).Parse(nil)
	requireKind(t, err, derrors.ParamNotBound)
	assert.Equal(t, 0, calls)

	args, err := newManager(params...).Parse([]string{"1"})
	require.NoError(t, err)
	assert.Equal(t, 1, args.Int("y"))

	args, err = newManager(params...).Parse([]string{"1"})
	require.NoError(t, err)
	assert.Equal(t, 2, args.Int("y"))

	_, err = newManager(params...).Parse([]string{"1", "9"})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestManagerParse_Named(t *testing.T) {
	params := []Param{NewString("a"), NewString("b"), NewBool("verbose", WithDefaultValue(false))}

	args, err := newManager(params...).Parse([]string{"--b", "bee", "ay"})
	require.NoError(t, err)
	assert.Equal(t, "ay", args.String("a"))
	assert.Equal(t, "bee", args.String("b"))
	assert.False(t, args.Bool("verbose"))

	args, err = newManager(params...).Parse([]string{"x", "y", "--VERBOSE"})
	require.NoError(t, err)
	assert.True(t, args.Bool("verbose"))

	_, err = newManager(params...).Parse([]string{"--c", "1"})
	pe := requireKind(t, err, derrors.InvalidParamName)
	assert.Equal(t, "c", pe.Param)

	_, err = newManager(params...).Parse([]string{"x", "--a", "y"})
	pe = requireKind(t, err, derrors.ParamAlreadyBound)
	assert.Equal(t, "x", pe.RawValue)
	assert.Equal(t, 0, pe.CommandInfo.CurrentParam)

	_, err = newManager(params...).Parse([]string{"x", "--b"})
	requireKind(t, err, derrors.ParamNotBound)
}

func TestManagerParse_Failures(t *testing.T) {
	params := []Param{NewInt("n")}

	_, err := newManager(params...).Parse([]string{"1", "2"})
	pe := requireKind(t, err, derrors.ExcessParam)
	assert.Equal(t, "2", pe.RawValue)
	assert.Equal(t, -1, pe.CommandInfo.CurrentParam)

	_, err = newManager(params...).Parse([]string{"x"})
	pe = requireKind(t, err, derrors.InvalidParamValue)
	assert.Equal(t, 0, pe.CommandInfo.CurrentParam)
	assert.False(t, pe.CommandInfo.Params[0].Bound)
}

func TestManagerAutoComplete(t *testing.T) {
	params := []Param{
		NewDirectory("dir"),
		NewEnum("mode", []string{"fast", "full", "slow"}, WithDefaultValue("fast")),
		NewInt("count", WithDefaultValue(1)),
	}

	t.Run("first positional", func(t *testing.T) {
		m := newManager(params...)
		ac, err := m.AutoCompleteLast([]string{"n"})
		require.NoError(t, err)
		assert.Equal(t, []string{"net"}, ac.Words())
		assert.Equal(t, "et/", ac.Addition())
		assert.Equal(t, 0, m.Snapshot().CurrentParam)
	})

	t.Run("next positional after binding", func(t *testing.T) {
		ac, err := newManager(params...).AutoCompleteLast([]string{"net", "f"})
		require.NoError(t, err)
		assert.Equal(t, []string{"fast", "full"}, ac.Words())
		assert.Equal(t, "", ac.Addition())
	})

	t.Run("parameter names", func(t *testing.T) {
		ac, err := newManager(params...).AutoCompleteLast([]string{"net", "--"})
		require.NoError(t, err)
		assert.Equal(t, []string{"count", "mode"}, ac.Words())
		assert.Contains(t, ac.ByType(), suggest.ParamName)
	})

	t.Run("bound names are not offered", func(t *testing.T) {
		ac, err := newManager(params...).AutoCompleteLast([]string{"--mode", "slow", "--"})
		require.NoError(t, err)
		assert.Equal(t, []string{"count", "dir"}, ac.Words())
	})

	t.Run("value of a named parameter", func(t *testing.T) {
		m := newManager(params...)
		ac, err := m.AutoCompleteLast([]string{"--mode", "s"})
		require.NoError(t, err)
		assert.Equal(t, []string{"slow"}, ac.Words())
		assert.Equal(t, "low ", ac.Addition())
		assert.Equal(t, 1, m.Snapshot().CurrentParam)
	})

	t.Run("unknown name prefix", func(t *testing.T) {
		_, err := newManager(params...).AutoCompleteLast([]string{"--x"})
		requireKind(t, err, derrors.NoPossibleValuesForPrefix)
	})

	t.Run("int is not completable", func(t *testing.T) {
		_, err := newManager(params...).AutoCompleteLast([]string{"net", "fast", ""})
		pe := requireKind(t, err, derrors.ParamTypeNotCompletable)
		assert.Equal(t, 2, pe.CommandInfo.CurrentParam)
	})

	t.Run("nothing left", func(t *testing.T) {
		_, err := newManager(params...).AutoCompleteLast([]string{"net", "fast", "1", ""})
		requireKind(t, err, derrors.ExcessParam)
	})

	t.Run("earlier token fails", func(t *testing.T) {
		_, err := newManager(params...).AutoCompleteLast([]string{"nowhere", ""})
		requireKind(t, err, derrors.InvalidParamValue)
	})
}

func TestSnapshot(t *testing.T) {
	params := []Param{NewString("a", WithDescription("first")), NewString("b", WithDefaultValue("z"))}
	m := newManager(params...)
	_, err := m.AutoCompleteLast([]string{"one", ""})
	require.Error(t, err)

	info := m.Snapshot()
	assert.Equal(t, "cmd", info.Command)
	require.Len(t, info.Params, 2)
	assert.Equal(t, derrors.ParamState{Name: "a", Description: "first", Bound: true, RawValue: "one"}, info.Params[0])
	assert.Equal(t, derrors.ParamState{Name: "b", Optional: true}, info.Params[1])
	assert.Equal(t, 1, info.CurrentParam)
}

func TestArgs(t *testing.T) {
	params := []Param{NewString("s"), NewInt("i"), NewFloat("f")}
	args, err := newManager(params...).Parse([]string{"str", "7", "2.5"})
	require.NoError(t, err)

	assert.Equal(t, 3, args.Len())
	assert.Equal(t, map[string]any{"s": "str", "i": 7, "f": 2.5}, args.Map())
	assert.Equal(t, "str", args.Pop())
	assert.Equal(t, 7, args.Pop())
	assert.Equal(t, 2.5, args.Pop())
	assert.Panics(t, func() { args.Pop() })

	_, ok := args.Get("missing")
	assert.False(t, ok)
	assert.Panics(t, func() { args.Int("s") })
	assert.Panics(t, func() { args.String("missing") })
}
