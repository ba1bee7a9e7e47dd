package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/chzyer/readline"

	"github.com/NikitaCOEUR/dirsh/internal/hierarchy"
	"github.com/NikitaCOEUR/dirsh/internal/param"
	"github.com/NikitaCOEUR/dirsh/internal/render"
	"github.com/NikitaCOEUR/dirsh/pkg/version"
)

// ConsoleParams contains parameters for the Console command
type ConsoleParams struct {
	Options
}

// prompt renders the settings prompt template
type prompt struct {
	tmpl *template.Template
}

func newPrompt(text string) (*prompt, error) {
	tmpl, err := template.New("prompt").Funcs(sprig.TxtFuncMap()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("invalid prompt template: %w", err)
	}
	return &prompt{tmpl: tmpl}, nil
}

func (p *prompt) render(cwd *hierarchy.Directory) string {
	var b strings.Builder
	if err := p.tmpl.Execute(&b, map[string]any{"Cwd": cwd.Path(), "Name": cwd.Name()}); err != nil {
		return cwd.Path() + "> "
	}
	return b.String()
}

// exitCommand ends the console loop when run
func exitCommand(done *bool) (*hierarchy.Command, error) {
	return hierarchy.NewCommand("exit", "Leave the console.",
		func(context.Context, *param.Args, hierarchy.Output) error {
			*done = true
			return nil
		})
}

// Console runs the interactive loop until EOF or :exit
func Console(ctx context.Context, params ConsoleParams) error {
	s, err := openSession(params.Options)
	if err != nil {
		return err
	}

	p, err := newPrompt(s.settings.Prompt)
	if err != nil {
		return err
	}

	done := false
	exit, err := exitCommand(&done)
	if err != nil {
		return err
	}
	resolver := s.engine.Resolver()
	if err := resolver.AddGlobals(exit); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if addr := s.settings.MetricsAddr; addr != "" {
		go func() {
			if err := s.recorder.Serve(ctx, addr); err != nil {
				s.log.Warn().Str("addr", addr).Err(err).Msg("Metrics server stopped")
			}
		}()
	}

	c := &completer{engine: s.engine, renderer: s.renderer, out: params.stdout()}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          p.render(resolver.Cwd()),
		HistoryFile:     s.settings.HistoryPath(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    c,
		Listener:        readline.FuncListener(c.onKey),
		Stdout:          params.stdout(),
		Stderr:          params.stderr(),
	})
	if err != nil {
		return fmt.Errorf("readline init: %w", err)
	}
	defer rl.Close()

	c.out = rl.Stdout()
	s.output = render.NewOutput(s.renderer, rl.Stdout(), rl.Stderr())
	s.output.OnWorkingDirectory(func(dir *hierarchy.Directory) {
		rl.SetPrompt(p.render(dir))
	})

	fmt.Fprintln(rl.Stdout(), s.renderer.Banner(version.String(), s.source))
	s.log.Debug().Str("history", s.settings.HistoryPath()).Msg("Console started")

	for !done {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		// Failures are printed by run.
		_ = s.run(ctx, line)
	}
	return nil
}
