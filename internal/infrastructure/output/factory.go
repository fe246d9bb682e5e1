// Package output renders batch outcomes for humans and machines.
package output

import (
	"fmt"
	"io"

	"github.com/keygate-dev/keygate/internal/application/dto"
)

// Formatter renders a set of request outcomes.
type Formatter interface {
	Format(outcomes []dto.Outcome) error
}

// NewFormatter returns a formatter for the given format name.
func NewFormatter(format string, writer io.Writer) (Formatter, error) {
	switch format {
	case "table":
		return NewTableFormatter(writer), nil
	case "json":
		return NewJSONFormatter(writer, true), nil
	case "yaml":
		return NewYAMLFormatter(writer), nil
	default:
		return nil, fmt.Errorf(
			"unknown format: %s (supported: %v)",
			format, SupportedFormats(),
		)
	}
}

// SupportedFormats returns the list of available format names.
func SupportedFormats() []string {
	return []string{"table", "json", "yaml"}
}
