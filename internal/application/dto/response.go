package dto

import (
	"time"
)

// Result is the redacted outcome of a dispatched request. Everything in
// it is safe to print: headers and body have already been scrubbed of
// sensitive values.
type Result struct {
	// ID uniquely identifies this execution.
	ID string `json:"id" yaml:"id"`

	// Name echoes the request name.
	Name string `json:"name" yaml:"name"`

	// URL is the final URL the request was sent to, redacted.
	URL string `json:"url" yaml:"url"`

	StatusCode int    `json:"status_code" yaml:"status_code"`
	Status     string `json:"status" yaml:"status"`
	Proto      string `json:"proto,omitempty" yaml:"proto,omitempty"`

	Headers map[string][]string `json:"headers,omitempty" yaml:"headers,omitempty"`

	Body string `json:"body,omitempty" yaml:"body,omitempty"`

	// Truncated reports that the response body exceeded the configured
	// size cap and was cut off.
	Truncated bool `json:"truncated,omitempty" yaml:"truncated,omitempty"`

	Duration time.Duration `json:"duration_ns" yaml:"duration_ns"`
}

// Outcome pairs a request with either its result or its (redacted)
// failure. A batch run produces one Outcome per request regardless of
// individual failures.
type Outcome struct {
	ID     string  `json:"id" yaml:"id"`
	Name   string  `json:"name" yaml:"name"`
	Result *Result `json:"result,omitempty" yaml:"result,omitempty"`
	Err    error   `json:"-" yaml:"-"`
	Error  string  `json:"error,omitempty" yaml:"error,omitempty"`
}
