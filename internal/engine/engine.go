// Package engine turns raw command lines into executions and completions.
//
// A line is split on whitespace. Its first token is a path to a command
// (or a ':' global command name); the remaining tokens are arguments bound
// by a fresh param.Manager. Resolution never panics on user input: every
// failure is a *derrors.ParseError carrying enough context to render help.
package engine

import (
	"context"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/NikitaCOEUR/dirsh/internal/derrors"
	"github.com/NikitaCOEUR/dirsh/internal/hierarchy"
	"github.com/NikitaCOEUR/dirsh/internal/logger"
	"github.com/NikitaCOEUR/dirsh/internal/param"
	"github.com/NikitaCOEUR/dirsh/internal/suggest"
	"github.com/NikitaCOEUR/dirsh/internal/timing"
	"github.com/NikitaCOEUR/dirsh/internal/trace"
)

// Operation names reported to the Recorder.
const (
	OpResolve  = "resolve"
	OpComplete = "complete"
	OpRun      = "run"
)

// Recorder observes pipeline operations. *metrics.Recorder implements it.
type Recorder interface {
	Observe(operation string, err error, took time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) Observe(string, error, time.Duration) {}

// Invocation is a command ready to run.
type Invocation struct {
	Path    []*hierarchy.Directory
	Command *hierarchy.Command
	Args    *param.Args
}

// Assist is the outcome of a completion request.
type Assist struct {
	// CommandInfo is nil while the command path itself is being completed.
	CommandInfo  *derrors.CommandInfo
	AutoComplete *suggest.AutoComplete
}

// Engine runs the pipeline against one resolver. It shares the resolver's
// working directory, so a console should drive it from one goroutine.
type Engine struct {
	resolver *hierarchy.Resolver
	log      *logger.Logger
	recorder Recorder
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. Resolutions are logged at debug level.
func WithLogger(l *logger.Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) {
		e.recorder = r
	}
}

// New creates an engine over resolver.
func New(resolver *hierarchy.Resolver, opts ...Option) *Engine {
	e := &Engine{
		resolver: resolver,
		log:      logger.Discard(),
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Resolver returns the resolver the engine works against.
func (e *Engine) Resolver() *hierarchy.Resolver {
	return e.resolver
}

// SplitForExecute splits a line into tokens.
func SplitForExecute(line string) []string {
	return strings.Fields(line)
}

// SplitForAutoComplete splits a line into tokens. The last token is the one
// being completed, so a line that is empty or ends in whitespace gets an
// empty trailing token.
func SplitForAutoComplete(line string) []string {
	tokens := strings.Fields(line)
	last, _ := utf8.DecodeLastRuneInString(line)
	if len(tokens) == 0 || unicode.IsSpace(last) {
		tokens = append(tokens, "")
	}
	return tokens
}

// ResolveForExecution resolves the command path and binds every argument.
func (e *Engine) ResolveForExecution(line string) (*Invocation, error) {
	timer := timing.NewTimer()
	inv, err := e.resolveForExecution(SplitForExecute(line), timer)
	e.finish(OpResolve, line, timer, err)
	return inv, err
}

func (e *Engine) resolveForExecution(tokens []string, timer *timing.Timer) (*Invocation, error) {
	if len(tokens) == 0 {
		return nil, derrors.NewEmptyCommandLine()
	}

	path, err := e.resolver.ParsePathToCommand(tokens[0])
	timer.Mark("path")
	if err != nil {
		return nil, err
	}

	cmd := path.Command()
	args, err := cmd.NewParamManager(e.resolver).Parse(tokens[1:])
	timer.Mark("params")
	if err != nil {
		return nil, err
	}
	return &Invocation{Path: path.Path, Command: cmd, Args: args}, nil
}

// ResolveForAutocomplete completes the last token of line. A single token
// is a command path; after that, the command must resolve and the
// parameter manager completes the last argument.
func (e *Engine) ResolveForAutocomplete(line string) (*Assist, error) {
	timer := timing.NewTimer()
	assist, err := e.resolveForAutocomplete(SplitForAutoComplete(line), timer)
	e.finish(OpComplete, line, timer, err)
	return assist, err
}

func (e *Engine) resolveForAutocomplete(tokens []string, timer *timing.Timer) (*Assist, error) {
	if len(tokens) == 1 {
		ac, err := e.resolver.AutoCompletePath(tokens[0])
		timer.Mark("path")
		if err != nil {
			return nil, err
		}
		return &Assist{AutoComplete: ac}, nil
	}

	path, err := e.resolver.ParsePathToCommand(tokens[0])
	timer.Mark("path")
	if err != nil {
		return nil, err
	}

	manager := path.Command().NewParamManager(e.resolver)
	ac, err := manager.AutoCompleteLast(tokens[1:])
	timer.Mark("params")
	if err != nil {
		return nil, err
	}
	return &Assist{CommandInfo: manager.Snapshot(), AutoComplete: ac}, nil
}

// Execute resolves line and runs the command. Resolution failures are
// returned as is; executor failures are wrapped in a *derrors.ExecutionError.
func (e *Engine) Execute(ctx context.Context, line string, out hierarchy.Output) error {
	ctx, endTask := trace.Task(ctx, line)
	defer endTask()

	endResolve := trace.Region(ctx, OpResolve)
	inv, err := e.ResolveForExecution(line)
	endResolve()
	if err != nil {
		if pe, ok := derrors.AsParseError(err); ok {
			trace.Log(ctx, "failure", pe.Kind.Code())
		}
		return err
	}

	trace.Log(ctx, "command", inv.Command.Path())
	endRun := trace.Region(ctx, OpRun)
	start := time.Now()
	err = inv.Command.Execute(ctx, inv.Args, &cwdOutput{Output: out, resolver: e.resolver})
	took := time.Since(start)
	endRun()
	e.recorder.Observe(OpRun, err, took)

	entry := e.log.Debug()
	if id := InvocationID(ctx); id != "" {
		entry.Str("id", id)
	}
	entry.Str("command", inv.Command.Path()).Dur("duration_ms", took)
	if err != nil {
		entry.Err(err).Msg("command failed")
		return derrors.NewExecutionError(inv.Command.Path(), "command '"+inv.Command.Name()+"' failed", err)
	}
	entry.Msg("command executed")
	return nil
}

func (e *Engine) finish(op, line string, timer *timing.Timer, err error) {
	e.recorder.Observe(op, err, timer.Elapsed())
	if !e.log.DebugEnabled() {
		return
	}

	entry := e.log.Debug().
		Str("op", op).
		Str("line", line).
		Str("cwd", e.resolver.Cwd().Path()).
		Str("timing", timer.Summary())
	if pe, ok := derrors.AsParseError(err); ok {
		entry.Str("kind", pe.Kind.Code()).Int("resolved", pe.ResolvedSegments).Msg(pe.Message())
		return
	}
	entry.Msg("resolved")
}

// cwdOutput applies working directory changes to the resolver before
// forwarding them.
type cwdOutput struct {
	hierarchy.Output
	resolver *hierarchy.Resolver
}

func (o *cwdOutput) SetWorkingDirectory(dir *hierarchy.Directory) {
	o.resolver.SetCwd(dir)
	o.Output.SetWorkingDirectory(dir)
}

type invocationKey struct{}

// WithInvocationID tags ctx with an id that Execute adds to its logs.
func WithInvocationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, invocationKey{}, id)
}

// InvocationID returns the id set by WithInvocationID.
func InvocationID(ctx context.Context) string {
	id, _ := ctx.Value(invocationKey{}).(string)
	return id
}
