package derrors

import "fmt"

// Kind classifies an expected user-input failure.
type Kind int

const (
	// EmptyDirectory means the directory has no children at all.
	EmptyDirectory Kind = iota + 1
	// NoSuchEntry means the directory has no child with that name.
	NoSuchEntry
	// WrongEntryKind means the name is a command where a directory was wanted, or vice versa.
	WrongEntryKind
	// InvalidGlobalCommand means no global command has that name.
	InvalidGlobalCommand
	// ParamNotBound means a mandatory parameter received no value.
	ParamNotBound
	// ParamAlreadyBound means a parameter was given a value twice.
	ParamAlreadyBound
	// InvalidParamName means a named argument matches no parameter.
	InvalidParamName
	// InvalidParamValue means a raw token could not be converted.
	InvalidParamValue
	// ParamTypeNotCompletable means the parameter's value space cannot be enumerated.
	ParamTypeNotCompletable
	// NoPossibleValuesForPrefix means nothing matches the typed prefix.
	NoPossibleValuesForPrefix
	// ExcessParam means a positional token arrived after every parameter was bound.
	ExcessParam
	// EmptyCommandLine means there was nothing to resolve.
	EmptyCommandLine
)

var kindCodes = map[Kind]string{
	EmptyDirectory:            "EMPTY_DIRECTORY",
	NoSuchEntry:               "NO_SUCH_ENTRY",
	WrongEntryKind:            "WRONG_ENTRY_KIND",
	InvalidGlobalCommand:      "INVALID_GLOBAL_COMMAND",
	ParamNotBound:             "PARAM_NOT_BOUND",
	ParamAlreadyBound:         "PARAM_ALREADY_BOUND",
	InvalidParamName:          "INVALID_PARAM_NAME",
	InvalidParamValue:         "INVALID_PARAM_VALUE",
	ParamTypeNotCompletable:   "PARAM_TYPE_NOT_COMPLETABLE",
	NoPossibleValuesForPrefix: "NO_POSSIBLE_VALUES_FOR_PREFIX",
	ExcessParam:               "EXCESS_PARAM",
	EmptyCommandLine:          "EMPTY_COMMAND_LINE",
}

// Code returns the stable upper-snake code for the kind.
func (k Kind) Code() string {
	if code, ok := kindCodes[k]; ok {
		return code
	}
	return "UNKNOWN"
}

func (k Kind) String() string {
	return k.Code()
}

// ParamState is the binding state of one parameter of a command in progress.
type ParamState struct {
	Name        string
	Description string
	Optional    bool
	Bound       bool
	RawValue    string
}

// CommandInfo describes the command being resolved when a result was produced.
type CommandInfo struct {
	Command string
	Params  []ParamState

	// CurrentParam is the index of the parameter being completed, or -1.
	CurrentParam int
}

// ParseError is the failure side of every resolution step.
type ParseError struct {
	baseError
	Kind Kind

	// Directory is the directory in which resolution failed, if any.
	Directory string
	// Entry is the offending path segment or command name.
	Entry string
	// Param is the offending parameter name.
	Param string
	// RawValue is the offending raw token.
	RawValue string
	// ResolvedSegments counts the path segments resolved before the failure.
	ResolvedSegments int

	CommandInfo *CommandInfo
}

// NewParseError creates a parse error of the given kind.
func NewParseError(kind Kind, format string, args ...any) *ParseError {
	return &ParseError{
		baseError: baseError{
			code:    kind.Code(),
			message: fmt.Sprintf(format, args...),
		},
		Kind: kind,
	}
}

// Message returns the message without any wrapped cause.
func (e *ParseError) Message() string {
	return e.message
}

func (e *ParseError) clone() *ParseError {
	c := *e
	return &c
}

// WithCommandInfo returns a copy of e enriched with the command in progress.
func (e *ParseError) WithCommandInfo(info *CommandInfo) *ParseError {
	c := e.clone()
	c.CommandInfo = info
	return c
}

// WithResolved returns a copy of e recording how many path segments resolved.
func (e *ParseError) WithResolved(n int) *ParseError {
	c := e.clone()
	c.ResolvedSegments = n
	return c
}

// WithCause returns a copy of e wrapping cause.
func (e *ParseError) WithCause(cause error) *ParseError {
	c := e.clone()
	c.cause = cause
	return c
}

// Constructors for the taxonomy. Each sets the context fields relevant to its kind.

// NewEmptyDirectory reports that dir has no children.
func NewEmptyDirectory(dir string) *ParseError {
	e := NewParseError(EmptyDirectory, "Directory '%s' is empty.", dir)
	e.Directory = dir
	return e
}

// NewNoSuchEntry reports that dir has no child named entry.
func NewNoSuchEntry(dir, entry string, wantDirectory bool) *ParseError {
	e := NewParseError(NoSuchEntry, "Directory '%s' doesn't contain %s '%s'.", dir, entryType(wantDirectory), entry)
	e.Directory = dir
	e.Entry = entry
	return e
}

// NewWrongEntryKind reports that entry exists but is of the other kind.
func NewWrongEntryKind(dir, entry string, wantDirectory bool) *ParseError {
	e := NewParseError(WrongEntryKind, "'%s' is a %s, not a %s!", entry, entryType(!wantDirectory), entryType(wantDirectory))
	e.Directory = dir
	e.Entry = entry
	return e
}

// NewInvalidGlobalCommand reports an unknown global command.
func NewInvalidGlobalCommand(name string) *ParseError {
	e := NewParseError(InvalidGlobalCommand, "Invalid global command: '%s'", name)
	e.Entry = name
	return e
}

// NewParamNotBound reports a mandatory parameter without a value.
func NewParamNotBound(param string) *ParseError {
	e := NewParseError(ParamNotBound, "Parameter '%s' is not bound!", param)
	e.Param = param
	return e
}

// NewParamAlreadyBound reports a parameter bound twice.
func NewParamAlreadyBound(param, raw string) *ParseError {
	e := NewParseError(ParamAlreadyBound, "Parameter '%s' is already bound a value: '%s'", param, raw)
	e.Param = param
	e.RawValue = raw
	return e
}

// NewInvalidParamName reports a named argument that matches no parameter.
func NewInvalidParamName(command, name string) *ParseError {
	e := NewParseError(InvalidParamName, "Command '%s' has no parameter named '%s'.", command, name)
	e.Param = name
	return e
}

// NewInvalidParamValue reports a raw token that could not be converted.
func NewInvalidParamValue(param, raw string) *ParseError {
	e := NewParseError(InvalidParamValue, "Invalid value for parameter '%s': '%s'", param, raw)
	e.Param = param
	e.RawValue = raw
	return e
}

// NewParamTypeNotCompletable reports a parameter whose values cannot be suggested.
func NewParamTypeNotCompletable(param, valueType string) *ParseError {
	e := NewParseError(ParamTypeNotCompletable, "Cannot autoComplete %s parameter: '%s'!", valueType, param)
	e.Param = param
	return e
}

// NewNoPossibleValuesForPrefix reports that nothing matches prefix.
func NewNoPossibleValuesForPrefix(what, prefix string) *ParseError {
	e := NewParseError(NoPossibleValuesForPrefix, "No %s with prefix '%s'", what, prefix)
	e.RawValue = prefix
	return e
}

// NewExcessParam reports a positional token with no parameter left to bind.
func NewExcessParam(command, raw string) *ParseError {
	e := NewParseError(ExcessParam, "Excess argument for command '%s': '%s'", command, raw)
	e.RawValue = raw
	return e
}

// NewEmptyCommandLine reports that there was nothing to resolve.
func NewEmptyCommandLine() *ParseError {
	return NewParseError(EmptyCommandLine, "Command line is empty.")
}

func entryType(directory bool) string {
	if directory {
		return "directory"
	}
	return "command"
}
