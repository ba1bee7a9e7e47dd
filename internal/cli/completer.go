package cli

import (
	"fmt"
	"io"

	"github.com/NikitaCOEUR/dirsh/internal/engine"
	"github.com/NikitaCOEUR/dirsh/internal/render"
)

// completer adapts the engine to readline's AutoCompleter
type completer struct {
	engine   *engine.Engine
	renderer *render.Renderer
	out      io.Writer
}

// Do returns what to insert at the cursor. Ambiguous completions are listed
// above the prompt and only their common part is inserted.
func (c *completer) Do(line []rune, pos int) ([][]rune, int) {
	assist, err := c.engine.ResolveForAutocomplete(string(line[:pos]))
	if err != nil {
		return nil, 0
	}

	ac := assist.AutoComplete
	if ac.Size() > 1 {
		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, c.renderer.Assist(assist))
	}

	addition := ac.Addition()
	if addition == "" {
		return nil, 0
	}
	return [][]rune{[]rune(addition)}, len([]rune(ac.Prefix))
}

// help prints candidates and usage for the line before pos, or the error
// resolving it.
func (c *completer) help(line []rune, pos int) {
	fmt.Fprintln(c.out)
	assist, err := c.engine.ResolveForAutocomplete(string(line[:pos]))
	if err != nil {
		fmt.Fprintln(c.out, c.renderer.Error(err))
		return
	}
	if text := c.renderer.Assist(assist); text != "" {
		fmt.Fprintln(c.out, text)
		return
	}
	fmt.Fprintln(c.out, c.renderer.Error(fmt.Errorf("no suggestions")))
}

// onKey shows help when '?' is typed. readline has already inserted the
// '?' at pos-1; it is removed again.
func (c *completer) onKey(line []rune, pos int, key rune) ([]rune, int, bool) {
	if key != '?' || pos < 1 {
		return line, pos, false
	}
	clean := make([]rune, 0, len(line)-1)
	clean = append(clean, line[:pos-1]...)
	clean = append(clean, line[pos:]...)
	c.help(clean, pos-1)
	return clean, pos - 1, true
}
