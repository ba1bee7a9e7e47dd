package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/NikitaCOEUR/dirsh/internal/config"
)

// Validate validates a dirsh hierarchy file
func Validate(configPath string, out io.Writer) error {
	if out == nil {
		out = os.Stdout
	}

	// If no path provided, look for a hierarchy file from the current directory up
	if configPath == "" {
		var err error
		if configPath, err = findHierarchy(Options{}); err != nil {
			return err
		}
		if configPath == "" {
			return fmt.Errorf("no hierarchy file found")
		}
	}

	fmt.Fprintf(out, "Validating: %s\n\n", configPath)

	result, err := config.Validate(configPath)
	if err != nil {
		return err
	}

	if result.Valid {
		fmt.Fprintln(out, "✅ Hierarchy is valid!")
		return nil
	}

	fmt.Fprintln(out, "❌ Hierarchy has errors:")
	for i, validationErr := range result.Errors {
		fmt.Fprintf(out, "%d. [%s] %s\n", i+1, validationErr.Field, validationErr.Message)
	}

	fmt.Fprintf(out, "\nFound %d error(s)\n", len(result.Errors))

	// Return non-zero exit code
	return fmt.Errorf("validation failed")
}
