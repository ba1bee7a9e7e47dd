package render

import (
	"fmt"
	"io"

	"github.com/NikitaCOEUR/dirsh/internal/hierarchy"
)

// Output is a hierarchy.Output writing rendered text to a pair of writers.
type Output struct {
	r      *Renderer
	out    io.Writer
	errOut io.Writer
	onCwd  func(*hierarchy.Directory)
}

// NewOutput creates an Output. Errors go to errOut.
func NewOutput(r *Renderer, out, errOut io.Writer) *Output {
	return &Output{r: r, out: out, errOut: errOut}
}

// OnWorkingDirectory registers fn to be told about working directory changes.
func (o *Output) OnWorkingDirectory(fn func(*hierarchy.Directory)) {
	o.onCwd = fn
}

func (o *Output) Message(format string, args ...any) {
	fmt.Fprintf(o.out, format+"\n", args...)
}

func (o *Output) Error(format string, args ...any) {
	fmt.Fprintln(o.errOut, o.r.style(errorStyle, fmt.Sprintf(format, args...)))
}

func (o *Output) SetWorkingDirectory(dir *hierarchy.Directory) {
	if o.onCwd != nil {
		o.onCwd(dir)
	}
}

func (o *Output) PrintDirectory(dir *hierarchy.Directory, recursive bool) {
	fmt.Fprintln(o.out, o.r.Directory(dir, recursive))
}

func (o *Output) PrintCommand(cmd *hierarchy.Command) {
	fmt.Fprintln(o.out, o.r.Command(cmd))
}

// Failure prints err the way Error renders it.
func (o *Output) Failure(err error) {
	fmt.Fprintln(o.errOut, o.r.Error(err))
}

// Assist prints completion candidates, if there is anything to show.
func (o *Output) Assist(text string) {
	if text != "" {
		fmt.Fprintln(o.out, text)
	}
}
