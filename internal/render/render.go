// Package render formats console results for a terminal.
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/NikitaCOEUR/dirsh/internal/derrors"
	"github.com/NikitaCOEUR/dirsh/internal/engine"
	"github.com/NikitaCOEUR/dirsh/internal/hierarchy"
	"github.com/NikitaCOEUR/dirsh/internal/param"
	"github.com/NikitaCOEUR/dirsh/internal/suggest"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15"))

	directoryStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// suggestion groups in display order
var typeOrder = []suggest.Type{
	suggest.Directory,
	suggest.Command,
	suggest.GlobalCommand,
	suggest.ParamName,
	suggest.ParamValue,
}

var typeTitles = map[suggest.Type]string{
	suggest.Directory:     "Directories",
	suggest.Command:       "Commands",
	suggest.GlobalCommand: "Global commands",
	suggest.ParamName:     "Parameters",
	suggest.ParamValue:    "Values",
}

// Renderer turns results into text. Without color it emits no escape
// sequences at all.
type Renderer struct {
	color bool
}

// New creates a renderer.
func New(color bool) *Renderer {
	return &Renderer{color: color}
}

func (r *Renderer) style(s lipgloss.Style, text string) string {
	if !r.color {
		return text
	}
	return s.Render(text)
}

// Assist renders completion candidates grouped by kind, followed by the
// usage of the command being completed.
func (r *Renderer) Assist(a *engine.Assist) string {
	var b strings.Builder

	if a.AutoComplete != nil && !a.AutoComplete.IsEmpty() {
		groups := a.AutoComplete.ByType()
		for _, typ := range typeOrder {
			words, ok := groups[typ]
			if !ok {
				continue
			}
			decorated := make([]string, len(words))
			for i, w := range words {
				decorated[i] = r.word(typ, w)
			}
			b.WriteString(r.style(sectionStyle, typeTitles[typ]+":") + " " + strings.Join(decorated, "  ") + "\n")
		}
	}

	if a.CommandInfo != nil {
		b.WriteString(r.CommandInfo(a.CommandInfo))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (r *Renderer) word(typ suggest.Type, w string) string {
	switch typ {
	case suggest.Directory:
		return r.style(directoryStyle, w+suggest.Separator)
	case suggest.GlobalCommand:
		return r.style(valueStyle, hierarchy.GlobalPrefix+w)
	case suggest.ParamName:
		return r.style(keyStyle, param.NamedPrefix+w)
	default:
		return r.style(valueStyle, w)
	}
}

// CommandInfo renders the usage of a command in progress. Bound parameters
// show their value; the current one is highlighted.
func (r *Renderer) CommandInfo(info *derrors.CommandInfo) string {
	var b strings.Builder
	b.WriteString(r.style(titleStyle, "Usage:") + " " + info.Command)

	for i, p := range info.Params {
		text := "<" + p.Name + ">"
		if p.Optional {
			text = "[" + p.Name + "]"
		}
		switch {
		case i == info.CurrentParam:
			text = r.style(warningStyle, text)
		case p.Bound:
			text = r.style(successStyle, p.Name+"="+p.RawValue)
		default:
			text = r.style(subtleStyle, text)
		}
		b.WriteString(" " + text)
	}

	if info.CurrentParam >= 0 && info.CurrentParam < len(info.Params) {
		if desc := info.Params[info.CurrentParam].Description; desc != "" {
			b.WriteString("\n   " + r.style(subtleStyle, desc))
		}
	}
	return b.String()
}

// Error renders an error. Parse errors carrying a command in progress also
// show its usage.
func (r *Renderer) Error(err error) string {
	if pe, ok := derrors.AsParseError(err); ok {
		text := r.style(errorStyle, "✗ "+pe.Message())
		if pe.CommandInfo != nil {
			text += "\n" + r.CommandInfo(pe.CommandInfo)
		}
		return text
	}

	var execErr *derrors.ExecutionError
	if errors.As(err, &execErr) {
		return r.style(errorStyle, "✗ "+execErr.Error())
	}
	return r.style(errorStyle, "✗ "+err.Error())
}

// Directory renders the children of dir, or its whole subtree.
func (r *Renderer) Directory(dir *hierarchy.Directory, recursive bool) string {
	var b strings.Builder
	b.WriteString(r.style(titleStyle, "📂 "+dir.Path()) + "\n")

	if dir.IsEmpty() {
		b.WriteString("   " + r.style(subtleStyle, "(empty)"))
		return b.String()
	}

	if !recursive {
		for _, child := range dir.Children() {
			b.WriteString("   " + r.entry(child) + "\n")
		}
		return strings.TrimSuffix(b.String(), "\n")
	}

	dir.Walk(func(e hierarchy.Entry, depth int) {
		if depth == 0 {
			return
		}
		b.WriteString(strings.Repeat("   ", depth) + r.entry(e) + "\n")
	})
	return strings.TrimSuffix(b.String(), "\n")
}

func (r *Renderer) entry(e hierarchy.Entry) string {
	name := r.style(valueStyle, e.Name())
	if e.IsDirectory() {
		name = r.style(directoryStyle, e.Name()+suggest.Separator)
	}
	if e.Description() == "" {
		return name
	}
	return name + "  " + r.style(subtleStyle, e.Description())
}

// Command renders the help of a command: usage, description, parameters.
func (r *Renderer) Command(cmd *hierarchy.Command) string {
	var b strings.Builder
	b.WriteString(r.style(titleStyle, "Usage:") + " " + r.style(valueStyle, cmd.Usage()) + "\n")
	b.WriteString("   " + r.style(keyStyle, "Path: ") + r.style(subtleStyle, cmd.Path()))
	if cmd.Description() != "" {
		b.WriteString("\n   " + cmd.Description())
	}

	params := cmd.Params()
	if len(params) == 0 {
		return b.String()
	}

	b.WriteString("\n" + r.style(sectionStyle, "Parameters:"))
	for _, p := range params {
		line := fmt.Sprintf("%s (%s", p.Name(), p.ValueType())
		if p.Kind() == param.Optional {
			line += ", optional"
		}
		line += ")"
		b.WriteString("\n   " + r.style(keyStyle, line))
		if p.Description() != "" {
			b.WriteString("  " + p.Description())
		}
	}
	return b.String()
}

// Banner is printed when the console starts.
func (r *Renderer) Banner(version, source string) string {
	var b strings.Builder
	b.WriteString(r.style(titleStyle, "dirsh "+version) + "\n")
	if source != "" {
		b.WriteString(r.style(keyStyle, "Hierarchy: ") + r.style(subtleStyle, source) + "\n")
	}
	b.WriteString(r.style(subtleStyle, "Type :help for the list of global commands, Tab to complete."))
	return b.String()
}
