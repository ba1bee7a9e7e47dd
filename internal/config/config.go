// Package config loads dirsh hierarchy files and application settings.
//
// A hierarchy file describes directories, commands, parameters and toggles.
// It may be written in YAML, TOML or JSON; the format is picked from the
// file extension.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/NikitaCOEUR/dirsh/internal/derrors"
)

// SupportedConfigNames contains supported hierarchy file names (in order of preference)
var SupportedConfigNames = []string{
	".dirsh.yml",
	".dirsh.yaml",
	".dirsh.toml",
	".dirsh.json",
}

// Definition is the root of a hierarchy file.
type Definition struct {
	Description string         `koanf:"description"`
	Directories []DirectoryDef `koanf:"directories"`
	Commands    []CommandDef   `koanf:"commands"`
	Toggles     []ToggleDef    `koanf:"toggles"`

	// Globals are reachable from anywhere with the ':' prefix.
	Globals []CommandDef `koanf:"globals"`
}

// DirectoryDef describes a directory and its children.
type DirectoryDef struct {
	Name        string         `koanf:"name"`
	Description string         `koanf:"description"`
	Directories []DirectoryDef `koanf:"directories"`
	Commands    []CommandDef   `koanf:"commands"`
	Toggles     []ToggleDef    `koanf:"toggles"`
}

// CommandDef describes a command. Output is a text/template rendered with
// the bound arguments and printed when the command runs.
type CommandDef struct {
	Name        string     `koanf:"name"`
	Description string     `koanf:"description"`
	Params      []ParamDef `koanf:"params"`
	Output      string     `koanf:"output"`
}

// ParamDef describes a parameter.
type ParamDef struct {
	Name        string   `koanf:"name"`
	Description string   `koanf:"description"`
	Type        string   `koanf:"type"` // string, int, float, bool, directory, command, enum
	Optional    bool     `koanf:"optional"`
	Default     any      `koanf:"default"`
	Values      []string `koanf:"values"` // enum only
}

// ToggleDef describes an on/off switch command.
type ToggleDef struct {
	Name        string `koanf:"name"`
	Description string `koanf:"description"`
	Initial     bool   `koanf:"initial"`
}

func parserFor(path string) (koanf.Parser, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yml", ".yaml":
		return yaml.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
}

// Load reads and parses a hierarchy file
func Load(path string) (*Definition, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, derrors.NewConfigurationError(path, "failed to read hierarchy file", err)
	}
	return Parse(path, content)
}

// Parse parses hierarchy file content. path only selects the format and
// names the file in errors.
func Parse(path string, content []byte) (*Definition, error) {
	parser, err := parserFor(path)
	if err != nil {
		return nil, derrors.NewConfigurationError(path, "cannot parse hierarchy file", err)
	}

	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(content), parser); err != nil {
		return nil, derrors.NewConfigurationError(path, "failed to load hierarchy file", err)
	}

	def := &Definition{}
	if err := k.Unmarshal("", def); err != nil {
		return nil, derrors.NewConfigurationError(path, "failed to unmarshal hierarchy file", err)
	}
	return def, nil
}

// FindHierarchyFile searches startDir and its parents for a hierarchy file.
// It returns "" when there is none.
func FindHierarchyFile(startDir string) (string, error) {
	currentDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		for _, name := range SupportedConfigNames {
			path := filepath.Join(currentDir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}

		parent := filepath.Dir(currentDir)
		if parent == currentDir {
			return "", nil
		}
		currentDir = parent
	}
}
