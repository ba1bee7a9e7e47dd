package cli

import (
	"context"
	"strings"

	"github.com/NikitaCOEUR/dirsh/internal/trace"
)

// ExecParams contains parameters for the Exec command
type ExecParams struct {
	Options
	// Line is the command line, e.g. "net/ping alpha --count 2".
	Line string
}

// Exec runs a single command line against the hierarchy
func Exec(ctx context.Context, params ExecParams) error {
	defer trace.Region(ctx, "exec")()

	s, err := openSession(params.Options)
	if err != nil {
		return err
	}
	return s.run(ctx, strings.TrimSpace(params.Line))
}
