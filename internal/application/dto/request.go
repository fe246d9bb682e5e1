// Package dto contains data transfer objects for application layer use cases.
package dto

import (
	"github.com/keygate-dev/keygate/internal/infrastructure/authapply"
)

// Request describes a single outbound HTTP request before any template
// resolution has taken place. Every string field may contain
// {secrets.<key>} placeholders.
type Request struct {
	// Name identifies the request in output and logs.
	Name string `yaml:"name" json:"name"`

	// Method defaults to GET when empty.
	Method string `yaml:"method,omitempty" json:"method,omitempty"`

	URL string `yaml:"url" json:"url"`

	Headers map[string]string `yaml:"headers,omitempty" json:"headers,omitempty"`

	// Query parameters are merged into any query string already present
	// on the URL.
	Query map[string]string `yaml:"query,omitempty" json:"query,omitempty"`

	// Body is either a string or a structured value (map/list). A
	// structured body is serialized as JSON after substitution.
	Body any `yaml:"body,omitempty" json:"body,omitempty"`

	Auth *authapply.Descriptor `yaml:"auth,omitempty" json:"auth,omitempty"`
}

// ExecutionOptions controls batch execution behavior.
type ExecutionOptions struct {
	// Concurrency limits how many requests run at once (0 = sequential).
	Concurrency int

	// Interactive allows prompting the operator when a URL is denied.
	Interactive bool
}
