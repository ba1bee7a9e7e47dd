package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/NikitaCOEUR/dirsh/internal/suggest"
	"github.com/NikitaCOEUR/dirsh/internal/trace"
)

// CompleteParams contains parameters for the Complete command
type CompleteParams struct {
	Options
	// Line is the partial command line. A trailing space starts a new token.
	Line string
	// Describe prints grouped candidates and usage instead of bare words.
	Describe bool
}

// Complete prints the completions of the last token of a line, one per
// line, ready to be appended to what was typed
func Complete(ctx context.Context, params CompleteParams) error {
	defer trace.Region(ctx, "complete")()

	s, err := openSession(params.Options)
	if err != nil {
		return err
	}

	assist, err := s.engine.ResolveForAutocomplete(params.Line)
	if err != nil {
		s.output.Failure(err)
		return ErrReported
	}

	if params.Describe {
		s.output.Assist(s.renderer.Assist(assist))
		return nil
	}

	out := params.stdout()
	groups := assist.AutoComplete.ByType()
	for _, word := range assist.AutoComplete.Words() {
		if slices.Contains(groups[suggest.Directory], word) {
			word += suggest.Separator
		}
		fmt.Fprintln(out, word)
	}
	return nil
}
