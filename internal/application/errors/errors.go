// Package apperrors defines application-level error types.
package apperrors

import "fmt"

// RestrictionError indicates a secret was referenced for a URL outside
// its allowed scope. This is a hard failure: the substitution that
// raised it returns no partial result.
type RestrictionError struct {
	Key string // Template key of the offending secret
	URL string // Destination URL that failed every allowed pattern
}

func (e *RestrictionError) Error() string {
	return fmt.Sprintf("secret %q is not allowed for URL %s", e.Key, e.URL)
}

// NewRestrictionError creates a new restriction error.
func NewRestrictionError(key, url string) *RestrictionError {
	return &RestrictionError{Key: key, URL: url}
}

// FilterDeniedError indicates the global URL filter refused a request
// before dispatch. Reason names the pattern set that produced the verdict.
type FilterDeniedError struct {
	URL    string
	Reason string
}

func (e *FilterDeniedError) Error() string {
	return fmt.Sprintf("request to %s refused: %s", e.URL, e.Reason)
}

// NewFilterDeniedError creates a new filter denial error.
func NewFilterDeniedError(url, reason string) *FilterDeniedError {
	return &FilterDeniedError{URL: url, Reason: reason}
}

// ValidationError indicates a request document or config value failed
// validation.
type ValidationError struct {
	Field   string   // Field that failed validation
	Message string   // Error message
	Details []string // Additional details
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s: %s (%d issues)", e.Field, e.Message, len(e.Details))
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string, details ...string) *ValidationError {
	return &ValidationError{Field: field, Message: message, Details: details}
}

// ConfigurationError indicates a system config or setup issue.
type ConfigurationError struct {
	Cause   error
	Aspect  string
	Message string
}

func (e *ConfigurationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("configuration error (%s): %s: %v", e.Aspect, e.Message, e.Cause)
	}
	return fmt.Sprintf("configuration error (%s): %s", e.Aspect, e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// NewConfigurationError creates a new configuration error.
func NewConfigurationError(aspect, message string, cause error) *ConfigurationError {
	return &ConfigurationError{Aspect: aspect, Message: message, Cause: cause}
}

// TransportError indicates the outbound request itself failed after the
// pipeline cleared it for dispatch.
type TransportError struct {
	Cause  error
	URL    string
	Detail string
}

func (e *TransportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("request to %s failed: %s: %v", e.URL, e.Detail, e.Cause)
	}
	return fmt.Sprintf("request to %s failed: %s", e.URL, e.Detail)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// NewTransportError creates a new transport error.
func NewTransportError(url, detail string, cause error) *TransportError {
	return &TransportError{URL: url, Detail: detail, Cause: cause}
}
