package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/keygate-dev/keygate/internal/application/dto"
)

const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorGreen = "\033[32m"
	colorGray  = "\033[90m"
	colorBold  = "\033[1m"
)

// TableFormatter formats outcomes as a human-readable report.
type TableFormatter struct {
	writer      io.Writer
	EnableColor bool
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{
		writer:      w,
		EnableColor: true, // Default to true, caller can disable
	}
}

// colorize returns the string wrapped in ANSI color codes if enabled.
func (f *TableFormatter) colorize(text, code string) string {
	if !f.EnableColor {
		return text
	}
	return code + text + colorReset
}

// Format writes the outcomes as a report.
//
//nolint:errcheck // Table formatting errors are non-critical (best-effort terminal output)
func (f *TableFormatter) Format(outcomes []dto.Outcome) error {
	if len(outcomes) == 0 {
		fmt.Fprintln(f.writer, "No requests executed.")
		return nil
	}

	fmt.Fprintln(f.writer, f.colorize(strings.Repeat("─", 80), colorGray))

	succeeded := 0
	for _, outcome := range outcomes {
		f.formatOutcome(outcome)
		if outcome.Err == nil {
			succeeded++
		}
	}

	fmt.Fprintln(f.writer, f.colorize(strings.Repeat("─", 80), colorGray))
	fmt.Fprintf(f.writer, "%s %d/%d requests succeeded\n",
		f.colorize("Summary:", colorBold), succeeded, len(outcomes))

	return nil
}

// formatOutcome formats a single outcome.
//
//nolint:errcheck // Best-effort terminal output
func (f *TableFormatter) formatOutcome(outcome dto.Outcome) {
	if outcome.Err != nil {
		fmt.Fprintf(f.writer, "%s %s\n", f.colorize("✗", colorRed), f.colorize(outcome.Name, colorRed))
		fmt.Fprintf(f.writer, "  Error: %s\n", outcome.Error)
		return
	}

	result := outcome.Result
	fmt.Fprintf(f.writer, "%s %s\n", f.colorize("✓", colorGreen), f.colorize(outcome.Name, colorGreen))
	fmt.Fprintf(f.writer, "  URL: %s\n", result.URL)
	fmt.Fprintf(f.writer, "  Status: %s\n", result.Status)
	fmt.Fprintf(f.writer, "  Duration: %s\n", result.Duration.Round(time.Millisecond))

	if len(result.Body) > 0 {
		fmt.Fprintln(f.writer, "  Body:")
		for _, line := range strings.Split(strings.TrimRight(result.Body, "\n"), "\n") {
			fmt.Fprintf(f.writer, "    %s\n", line)
		}
		if result.Truncated {
			fmt.Fprintln(f.writer, "    … (truncated)")
		}
	}
}
