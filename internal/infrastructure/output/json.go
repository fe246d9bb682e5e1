package output

import (
	"encoding/json"
	"io"

	"github.com/keygate-dev/keygate/internal/application/dto"
)

// JSONFormatter formats outcomes as JSON.
type JSONFormatter struct {
	writer io.Writer
	indent bool
}

// NewJSONFormatter creates a new JSON formatter.
// If indent is true, the output will be pretty-printed with indentation.
func NewJSONFormatter(w io.Writer, indent bool) *JSONFormatter {
	return &JSONFormatter{
		writer: w,
		indent: indent,
	}
}

// Format writes the outcomes as JSON.
func (f *JSONFormatter) Format(outcomes []dto.Outcome) error {
	var data []byte
	var err error

	if f.indent {
		data, err = json.MarshalIndent(report(outcomes), "", "  ")
	} else {
		data, err = json.Marshal(report(outcomes))
	}

	if err != nil {
		return err
	}

	if _, err := f.writer.Write(data); err != nil {
		return err
	}

	// Add newline for better terminal output
	_, err = f.writer.Write([]byte("\n"))
	return err
}
