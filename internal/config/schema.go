package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/document.schema.json
var documentSchemaBytes []byte

// validateSchema checks a decoded YAML tree against the request
// document schema.
func validateSchema(doc any) error {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	if err := compiler.AddResource("document.schema.json", bytes.NewReader(documentSchemaBytes)); err != nil {
		return fmt.Errorf("failed to add document schema resource: %w", err)
	}

	schema, err := compiler.Compile("document.schema.json")
	if err != nil {
		return fmt.Errorf("failed to compile document schema: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		if validationErr, ok := err.(*jsonschema.ValidationError); ok {
			return formatSchemaValidationError(validationErr)
		}
		return fmt.Errorf("document validation failed: %w", err)
	}

	return nil
}

// formatSchemaValidationError flattens a JSON Schema validation error
// tree into a readable message.
func formatSchemaValidationError(err *jsonschema.ValidationError) error {
	var messages []string

	var collect func(*jsonschema.ValidationError)
	collect = func(e *jsonschema.ValidationError) {
		if e.Message != "" && len(e.Causes) == 0 {
			location := e.InstanceLocation
			if location == "" {
				location = "(root)"
			}
			messages = append(messages, fmt.Sprintf("%s: %s", location, e.Message))
		}

		for _, cause := range e.Causes {
			collect(cause)
		}
	}
	collect(err)

	if len(messages) == 0 {
		messages = append(messages, err.Message)
	}

	return fmt.Errorf("document schema validation failed:\n  - %s", strings.Join(messages, "\n  - "))
}
