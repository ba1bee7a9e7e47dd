package config

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var schemaJSON string

// GetSchemaJSON returns the JSON Schema for hierarchy files
func GetSchemaJSON() string {
	return schemaJSON
}

var errUnsupportedFormat = errors.New("unsupported config format")

// decode turns file content into a JSON-compatible structure
func decode(path string, content []byte) (any, error) {
	var data any
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yml", ".yaml":
		if err := yaml.Unmarshal(content, &data); err != nil {
			return nil, fmt.Errorf("invalid YAML syntax: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(content, &data); err != nil {
			return nil, fmt.Errorf("invalid JSON syntax: %w", err)
		}
	case ".toml":
		m, err := toml.Parser().Unmarshal(content)
		if err != nil {
			return nil, fmt.Errorf("invalid TOML syntax: %w", err)
		}
		data = m
	default:
		return nil, fmt.Errorf("%w: %s", errUnsupportedFormat, ext)
	}
	return data, nil
}

// ValidateWithSchema validates hierarchy file content against the JSON Schema
func ValidateWithSchema(path string, content []byte) (*ValidationResult, error) {
	result := &ValidationResult{
		Valid:  true,
		Errors: []ValidationError{},
	}

	data, err := decode(path, content)
	if err != nil {
		if errors.Is(err, errUnsupportedFormat) {
			return nil, err
		}
		result.add("syntax", err.Error())
		return result, nil
	}
	if data == nil {
		// An empty file is an empty hierarchy.
		data = map[string]any{}
	}

	schemaLoader := gojsonschema.NewStringLoader(GetSchemaJSON())
	documentLoader := gojsonschema.NewGoLoader(data)

	validationResult, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("schema validation error: %w", err)
	}

	for _, verr := range validationResult.Errors() {
		result.add(verr.Field(), verr.Description())
	}
	return result, nil
}
