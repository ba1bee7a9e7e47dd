package config

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikitaCOEUR/dirsh/internal/builtin"
	"github.com/NikitaCOEUR/dirsh/internal/derrors"
	"github.com/NikitaCOEUR/dirsh/internal/engine"
	"github.com/NikitaCOEUR/dirsh/internal/hierarchy"
)

type recordingOutput struct {
	messages []string
}

func (o *recordingOutput) Message(format string, args ...any) {
	o.messages = append(o.messages, fmt.Sprintf(format, args...))
}

func (o *recordingOutput) Error(string, ...any)                      {}
func (o *recordingOutput) SetWorkingDirectory(*hierarchy.Directory)  {}
func (o *recordingOutput) PrintDirectory(*hierarchy.Directory, bool) {}
func (o *recordingOutput) PrintCommand(*hierarchy.Command)           {}

func buildEngine(t *testing.T, content string) *engine.Engine {
	t.Helper()
	def, err := Parse(".dirsh.yml", []byte(content))
	require.NoError(t, err)
	resolver, err := def.Build()
	require.NoError(t, err)
	return engine.New(resolver)
}

func execute(t *testing.T, e *engine.Engine, line string) []string {
	t.Helper()
	out := &recordingOutput{}
	require.NoError(t, e.Execute(context.Background(), line, out))
	return out.messages
}

func TestBuild_Sample(t *testing.T) {
	e := buildEngine(t, sampleYAML)
	root := e.Resolver().Root()
	assert.Equal(t, "Lab console", root.Description())

	assert.Equal(t, []string{"ping alpha x4"}, execute(t, e, "net/ping alpha"))
	assert.Equal(t, []string{"ping beta x2"}, execute(t, e, "net/ping --count 2 beta"))
	assert.Equal(t, []string{"hello"}, execute(t, e, "hello"))

	// Toggles start from their initial value.
	assert.Equal(t, []string{"verbose: off"}, execute(t, e, "net/verbose"))

	assist, err := e.ResolveForAutocomplete("net/ping a")
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha"}, assist.AutoComplete.Words())

	err = e.Execute(context.Background(), "net/ping gamma", &recordingOutput{})
	assert.True(t, derrors.IsKind(err, derrors.InvalidParamValue))
}

func TestBuild_Globals(t *testing.T) {
	e := buildEngine(t, `
directories:
  - name: net
globals:
  - name: where
    params:
      - name: dir
        type: directory
        optional: true
    output: "{{ .dir }}"
  - name: home
    params:
      - name: dir
        type: directory
        default: net
    output: "{{ .dir | upper }}"
`)
	assert.Equal(t, []string{"/"}, execute(t, e, ":where"))
	assert.Equal(t, []string{"/net"}, execute(t, e, ":where net"))
	assert.Equal(t, []string{"/NET"}, execute(t, e, ":home"))
}

func TestBuild_OptionalCommandParam(t *testing.T) {
	def := &Definition{Commands: []CommandDef{
		{Name: "ping"},
		{Name: "show", Params: []ParamDef{{Name: "target", Type: "command", Optional: true}}},
	}}
	_, err := def.Build()
	require.Error(t, err)
	var verr *derrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "/show/target/default", verr.Field)

	e := buildEngine(t, `
commands:
  - name: ping
  - name: show
    params:
      - name: target
        type: command
        optional: true
        default: ping
    output: "{{ .target }}"
`)
	assert.Equal(t, []string{"/ping"}, execute(t, e, "show"))
	assert.Equal(t, []string{"/show"}, execute(t, e, "show show"))
}

func TestBuild_OptionalZeroValues(t *testing.T) {
	e := buildEngine(t, `
commands:
  - name: show
    params:
      - name: n
        type: int
        optional: true
      - name: f
        type: bool
        optional: true
      - name: s
        optional: true
    output: "n={{ .n }} f={{ .f }} s={{ .s }}"
`)
	assert.Equal(t, []string{"n=0 f=false s="}, execute(t, e, "show"))
	assert.Equal(t, []string{"n=3 f=true s=x"}, execute(t, e, "show 3 --f true x"))
}

func TestBuild_NoOutput(t *testing.T) {
	e := buildEngine(t, `commands: [{name: quiet}]`)
	assert.Empty(t, execute(t, e, "quiet"))
}

func TestBuild_Errors(t *testing.T) {
	tests := map[string]string{
		"unknown type": `commands: [{name: c, params: [{name: p, type: nope}]}]`,
		"enum values":  `commands: [{name: c, params: [{name: p, type: enum}]}]`,
		"bad name":     `commands: [{name: "a/b"}]`,
		"duplicate":    `commands: [{name: c}, {name: C}]`,
		"global dup":   `globals: [{name: g}, {name: g}]`,
		"command path": `globals: [{name: g, params: [{name: p, type: command, default: /nope}]}]`,
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			def, err := Parse(".dirsh.yml", []byte(content))
			require.NoError(t, err)
			_, err = def.Build()
			assert.Error(t, err)
		})
	}
}

type keyedState struct {
	keys []string
}

func (k *keyedState) accessor(key string, initial bool) builtin.StateAccessor {
	k.keys = append(k.keys, key)
	return builtin.NewState(initial)
}

func TestBuild_WithStates(t *testing.T) {
	def, err := Parse(".dirsh.yml", []byte(sampleYAML))
	require.NoError(t, err)

	states := &keyedState{}
	_, err = def.Build(WithStates(states.accessor))
	require.NoError(t, err)
	assert.Equal(t, []string{"/net/verbose"}, states.keys)
}
