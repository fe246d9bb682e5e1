package output

import (
	"io"

	"github.com/goccy/go-yaml"

	"github.com/keygate-dev/keygate/internal/application/dto"
)

// YAMLFormatter formats outcomes as YAML.
type YAMLFormatter struct {
	writer io.Writer
}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter(w io.Writer) *YAMLFormatter {
	return &YAMLFormatter{writer: w}
}

// Format writes the outcomes as YAML.
func (f *YAMLFormatter) Format(outcomes []dto.Outcome) error {
	encoder := yaml.NewEncoder(f.writer, yaml.Indent(2))

	if err := encoder.Encode(report(outcomes)); err != nil {
		return err
	}

	return encoder.Close()
}
