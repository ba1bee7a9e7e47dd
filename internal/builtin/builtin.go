// Package builtin provides the global commands every console gets:
// :cd, :ls, :describe, :pwd and :help. It also builds toggle commands.
package builtin

import (
	"context"
	"fmt"

	"github.com/NikitaCOEUR/dirsh/internal/hierarchy"
	"github.com/NikitaCOEUR/dirsh/internal/param"
)

// Register adds the built-in commands, and extra, to the resolver's global
// registry. Defaults that depend on the working directory read it when the
// command runs, not when it is registered.
func Register(resolver *hierarchy.Resolver, extra ...*hierarchy.Command) error {
	builders := []func(*hierarchy.Resolver) (*hierarchy.Command, error){
		newCd, newLs, newDescribe, newPwd, newHelp,
	}
	commands := make([]*hierarchy.Command, 0, len(builders)+len(extra))
	for _, build := range builders {
		cmd, err := build(resolver)
		if err != nil {
			return err
		}
		commands = append(commands, cmd)
	}
	return resolver.AddGlobals(append(commands, extra...)...)
}

func cwdDefault(resolver *hierarchy.Resolver) param.Option {
	return param.WithDefault(func() param.Entry { return resolver.Cwd() })
}

func newCd(*hierarchy.Resolver) (*hierarchy.Command, error) {
	return hierarchy.NewCommand("cd", "Change the working directory.",
		func(_ context.Context, args *param.Args, out hierarchy.Output) error {
			out.SetWorkingDirectory(args.Entry("dir").(*hierarchy.Directory))
			return nil
		},
		param.NewDirectory("dir", param.WithDescription("Directory to change to.")),
	)
}

func newLs(resolver *hierarchy.Resolver) (*hierarchy.Command, error) {
	return hierarchy.NewCommand("ls", "List the contents of a directory.",
		func(_ context.Context, args *param.Args, out hierarchy.Output) error {
			out.PrintDirectory(args.Entry("dir").(*hierarchy.Directory), args.Bool("recursive"))
			return nil
		},
		param.NewDirectory("dir", cwdDefault(resolver),
			param.WithDescription("Directory to list. Defaults to the working directory.")),
		param.NewBool("recursive", param.WithDefaultValue(false),
			param.WithDescription("List sub-directories too.")),
	)
}

func newDescribe(*hierarchy.Resolver) (*hierarchy.Command, error) {
	return hierarchy.NewCommand("describe", "Describe a command and its parameters.",
		func(_ context.Context, args *param.Args, out hierarchy.Output) error {
			out.PrintCommand(args.Entry("command").(*hierarchy.Command))
			return nil
		},
		param.NewCommandPath("command", param.WithDescription("Path of the command.")),
	)
}

func newPwd(resolver *hierarchy.Resolver) (*hierarchy.Command, error) {
	return hierarchy.NewCommand("pwd", "Print the working directory.",
		func(_ context.Context, _ *param.Args, out hierarchy.Output) error {
			out.Message("%s", resolver.Cwd().Path())
			return nil
		},
	)
}

func newHelp(resolver *hierarchy.Resolver) (*hierarchy.Command, error) {
	return hierarchy.NewCommand("help", "Show the line syntax and the global commands.",
		func(_ context.Context, _ *param.Args, out hierarchy.Output) error {
			out.Message("Type a path to a command followed by its arguments: dir/cmd arg1 arg2")
			out.Message("Named arguments: --name value. Paths: '/' root, '..' parent, '.' current.")
			out.Message("Global commands start with '%s':", hierarchy.GlobalPrefix)
			for _, cmd := range resolver.Globals().Commands() {
				out.Message("  %s%-24s %s", hierarchy.GlobalPrefix, cmd.Usage(), cmd.Description())
			}
			return nil
		},
	)
}

// StateAccessor reads and writes the boolean behind a toggle command.
type StateAccessor interface {
	Get() bool
	Set(bool)
}

// NewToggleCommand creates a command with a single optional boolean
// 'state'. Left unbound, state defaults to the negation of the current
// value, so running the bare command flips it.
func NewToggleCommand(name, description string, accessor StateAccessor) (*hierarchy.Command, error) {
	return hierarchy.NewCommand(name, description,
		func(_ context.Context, args *param.Args, out hierarchy.Output) error {
			state := args.Bool("state")
			accessor.Set(state)
			out.Message("%s: %s", name, onOff(state))
			return nil
		},
		param.NewBool("state",
			param.WithDefault(func() bool { return !accessor.Get() }),
			param.WithDescription(fmt.Sprintf("New state of %s. Toggles when omitted.", name))),
	)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
