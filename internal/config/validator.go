package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/NikitaCOEUR/dirsh/internal/derrors"
)

// ValidationError represents a validation error with details
type ValidationError struct {
	Field   string
	Message string
}

// ValidationResult contains the results of hierarchy file validation
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

func (r *ValidationResult) add(field, message string) {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: message})
}

// Validate checks a hierarchy file: syntax, schema, then that the tree
// actually builds (unique names, resolvable defaults, valid templates).
func Validate(path string) (*ValidationResult, error) {
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("hierarchy file not found: %s", path)
	}
	if err != nil {
		return nil, err
	}

	result, err := ValidateWithSchema(path, content)
	if err != nil || !result.Valid {
		return result, err
	}

	def, err := Parse(path, content)
	if err != nil {
		result.add("syntax", err.Error())
		return result, nil
	}

	if _, err := def.Build(); err != nil {
		var verr *derrors.ValidationError
		if errors.As(err, &verr) {
			result.add(verr.Field, verr.Error())
		} else {
			result.add("hierarchy", err.Error())
		}
	}
	return result, nil
}
