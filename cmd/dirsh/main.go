// Package main is the entry point for the dirsh CLI application.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	dircli "github.com/NikitaCOEUR/dirsh/internal/cli"
	"github.com/NikitaCOEUR/dirsh/internal/trace"
	"github.com/NikitaCOEUR/dirsh/pkg/version"
)

func options(cmd *cli.Command) dircli.Options {
	return dircli.Options{
		LogLevel:     cmd.String("log-level"),
		ConfigPath:   cmd.String("config"),
		SettingsPath: cmd.String("settings"),
	}
}

func main() {
	stopTrace := func() {}

	app := &cli.Command{
		Name:                  "dirsh",
		Usage:                 "Interactive console over a hierarchy of directories and commands",
		Version:               version.String(),
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error). Overrides the settings file",
				Sources: cli.EnvVars("DIRSH_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Hierarchy file (default: nearest .dirsh.{yml,yaml,toml,json})",
				Sources: cli.EnvVars("DIRSH_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "settings",
				Usage:   "User settings file (default: $XDG_CONFIG_HOME/dirsh/config.yml)",
				Sources: cli.EnvVars("DIRSH_SETTINGS"),
			},
			&cli.StringFlag{
				Name:    "trace",
				Usage:   "Write a runtime trace to this file (dev builds only)",
				Sources: cli.EnvVars("DIRSH_TRACE"),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			stop, err := trace.Init(cmd.String("trace"))
			if err != nil {
				return ctx, err
			}
			stopTrace = stop
			return ctx, nil
		},
		// Without a subcommand, start the console.
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return dircli.Console(ctx, dircli.ConsoleParams{Options: options(cmd)})
		},
		Commands: []*cli.Command{
			{
				Name:  "console",
				Usage: "Start the interactive console",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return dircli.Console(ctx, dircli.ConsoleParams{Options: options(cmd)})
				},
			},
			{
				Name:      "exec",
				Usage:     "Run a single command line",
				ArgsUsage: "<path> [args...]",
				// Arguments such as --count belong to the command line, not to dirsh.
				SkipFlagParsing: true,
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() == 0 {
						return fmt.Errorf("command line required")
					}
					return dircli.Exec(ctx, dircli.ExecParams{
						Options: options(cmd),
						Line:    strings.Join(cmd.Args().Slice(), " "),
					})
				},
			},
			{
				Name:      "complete",
				Usage:     "Print completions for a partial command line",
				ArgsUsage: "<line>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "describe",
						Usage: "Show grouped candidates and usage",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return dircli.Complete(ctx, dircli.CompleteParams{
						Options:  options(cmd),
						Line:     strings.Join(cmd.Args().Slice(), " "),
						Describe: cmd.Bool("describe"),
					})
				},
			},
			{
				Name:      "tree",
				Usage:     "Print the hierarchy",
				ArgsUsage: "[path]",
				Action: func(_ context.Context, cmd *cli.Command) error {
					return dircli.Tree(dircli.TreeParams{
						Options: options(cmd),
						Path:    cmd.Args().First(),
					})
				},
			},
			{
				Name:      "validate",
				Usage:     "Validate a hierarchy file",
				ArgsUsage: "[file]",
				Action: func(_ context.Context, cmd *cli.Command) error {
					path := cmd.Args().First()
					if path == "" {
						path = cmd.String("config")
					}
					return dircli.Validate(path, nil)
				},
			},
			{
				Name:  "schema",
				Usage: "Print or export the JSON Schema for hierarchy files",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write the schema to a file instead of stdout",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					return dircli.Schema(cmd.String("output"), nil)
				},
			},
		},
	}

	err := app.Run(context.Background(), os.Args)
	stopTrace()
	if err != nil {
		if !errors.Is(err, dircli.ErrReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
