// Package cli implements the dirsh subcommands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/NikitaCOEUR/dirsh/internal/builtin"
	"github.com/NikitaCOEUR/dirsh/internal/config"
	"github.com/NikitaCOEUR/dirsh/internal/engine"
	"github.com/NikitaCOEUR/dirsh/internal/logger"
	"github.com/NikitaCOEUR/dirsh/internal/metrics"
	"github.com/NikitaCOEUR/dirsh/internal/render"
	"github.com/NikitaCOEUR/dirsh/internal/store"
)

// ErrReported is returned once a failure has already been printed.
var ErrReported = errors.New("failure reported")

// Options are shared by every command that loads a hierarchy.
type Options struct {
	// LogLevel overrides the settings file when set.
	LogLevel string
	// ConfigPath is the hierarchy file. When empty it is searched from the
	// working directory upwards.
	ConfigPath   string
	SettingsPath string

	Stdout io.Writer
	Stderr io.Writer
}

func (o Options) stdout() io.Writer {
	if o.Stdout == nil {
		return os.Stdout
	}
	return o.Stdout
}

func (o Options) stderr() io.Writer {
	if o.Stderr == nil {
		return os.Stderr
	}
	return o.Stderr
}

// session holds the components built for one invocation of dirsh
type session struct {
	settings config.Settings
	source   string
	log      *logger.Logger
	recorder *metrics.Recorder
	engine   *engine.Engine
	renderer *render.Renderer
	output   *render.Output
}

func loadSettings(opts Options) (config.Settings, error) {
	path := opts.SettingsPath
	if path == "" {
		var err error
		if path, err = config.SettingsPath(); err != nil {
			return config.DefaultSettings(), err
		}
	}
	return config.LoadSettings(path)
}

func findHierarchy(opts Options) (string, error) {
	if opts.ConfigPath != "" {
		return opts.ConfigPath, nil
	}
	currentDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}
	return config.FindHierarchyFile(currentDir)
}

// openSession loads settings and the hierarchy, then wires the engine.
func openSession(opts Options) (*session, error) {
	settings, err := loadSettings(opts)
	if err != nil {
		return nil, err
	}

	level := settings.LogLevel
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}
	color := settings.Color && os.Getenv("NO_COLOR") == ""
	log := logger.New(level, opts.stderr(), logger.WithColors(color))

	source, err := findHierarchy(opts)
	if err != nil {
		return nil, err
	}

	def := &config.Definition{}
	if source != "" {
		if def, err = config.Load(source); err != nil {
			return nil, err
		}
	}
	log.Debug().Str("hierarchy", source).Msg("Loading hierarchy")

	states, err := store.New(settings.StatePath())
	if err != nil {
		return nil, fmt.Errorf("failed to open state file: %w", err)
	}
	states.OnError(func(err error) {
		log.Warn().Err(err).Msg("Failed to persist toggle state")
	})

	resolver, err := def.Build(config.WithStates(func(key string, initial bool) builtin.StateAccessor {
		return states.Accessor(key, initial)
	}))
	if err != nil {
		return nil, err
	}
	if err := builtin.Register(resolver); err != nil {
		return nil, err
	}

	recorder := metrics.New()
	renderer := render.New(color)
	return &session{
		settings: settings,
		source:   source,
		log:      log,
		recorder: recorder,
		engine:   engine.New(resolver, engine.WithLogger(log), engine.WithRecorder(recorder)),
		renderer: renderer,
		output:   render.NewOutput(renderer, opts.stdout(), opts.stderr()),
	}, nil
}

// run executes one line under a fresh invocation id. Failures are printed.
func (s *session) run(ctx context.Context, line string) error {
	ctx = engine.WithInvocationID(ctx, uuid.NewString())
	if err := s.engine.Execute(ctx, line, s.output); err != nil {
		s.output.Failure(err)
		return ErrReported
	}
	return nil
}
