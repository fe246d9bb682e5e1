// Package redaction handles secret redaction
package redaction

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/viper"
	"github.com/zricethezav/gitleaks/v8/config"
	"github.com/zricethezav/gitleaks/v8/detect"

	apperrors "github.com/keygate-dev/keygate/internal/application/errors"
)

// Sentinel is the fixed token emitted in place of any sensitive value.
const Sentinel = "[REDACTED]"

// Redactor handles sanitization of sensitive data in outbound text.
// All fields are read-only after construction, making it safe for
// concurrent use across requests.
type Redactor struct {
	// values are the statically loaded secret values, scrubbed from
	// every piece of text regardless of which request produced it.
	values   []string
	patterns []*regexp.Regexp

	// Gitleaks detector for secret detection (222+ patterns).
	// If nil, falls back to the literal and regex passes only.
	gitleaksDetector *detect.Detector
}

// Config holds the configuration for the Redactor.
type Config struct {
	// Values are literal strings to always scrub (the loaded secret values).
	Values []string
	// Patterns are custom regexes to redact (e.g. "INT-[A-Z0-9]{16}")
	Patterns []string
	// DisableGitleaks disables the gitleaks detector phase.
	// Default: false (gitleaks enabled for comprehensive pattern coverage).
	DisableGitleaks bool
}

// New creates a new Redactor with the given configuration.
func New(cfg Config) (*Redactor, error) {
	r := &Redactor{
		patterns: make([]*regexp.Regexp, 0, len(cfg.Patterns)),
	}

	for _, v := range cfg.Values {
		if v != "" {
			r.values = append(r.values, v)
		}
	}

	// Initialize gitleaks detector (unless disabled)
	if !cfg.DisableGitleaks {
		detector, err := newGitleaksDetector()
		if err == nil {
			r.gitleaksDetector = detector
		}
		// On error fall back to the literal and regex passes.
	}

	for _, p := range cfg.Patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, apperrors.NewConfigurationError("redaction", fmt.Sprintf("cannot compile pattern %q", p), err)
		}
		r.patterns = append(r.patterns, re)
	}

	return r, nil
}

// newGitleaksDetector creates a new gitleaks detector with default configuration.
func newGitleaksDetector() (*detect.Detector, error) {
	// Load gitleaks default config (222+ patterns)
	v := viper.New()
	v.SetConfigType("toml")
	if err := v.ReadConfig(strings.NewReader(config.DefaultConfig)); err != nil {
		return nil, fmt.Errorf("failed to read gitleaks config: %w", err)
	}

	var vc config.ViperConfig
	if err := v.Unmarshal(&vc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal gitleaks config: %w", err)
	}

	cfg, err := vc.Translate()
	if err != nil {
		return nil, fmt.Errorf("failed to translate gitleaks config: %w", err)
	}

	return detect.NewDetector(cfg), nil
}

// Redact replaces every literal occurrence of a known sensitive value
// in text with the sentinel. Known values are the statically loaded
// secret values plus any per-request extras (dynamic auth values and
// their derived encodings). The gitleaks and custom-pattern phases run
// afterwards. Redacting already-clean text returns it unchanged.
func (r *Redactor) Redact(text string, extra []string) string {
	if text == "" {
		return ""
	}

	result := text

	// Phase 1: literal values. Order across values does not matter;
	// a value whose redaction uncovers a new accidental match is a
	// known limitation.
	for _, v := range r.values {
		result = strings.ReplaceAll(result, v, Sentinel)
	}
	for _, v := range extra {
		if v != "" {
			result = strings.ReplaceAll(result, v, Sentinel)
		}
	}

	// Phase 2: gitleaks detector, when available.
	if r.gitleaksDetector != nil {
		fragment := detect.Fragment{Raw: result}
		for _, finding := range r.gitleaksDetector.Detect(fragment) {
			result = strings.ReplaceAll(result, finding.Secret, Sentinel)
		}
	}

	// Phase 3: custom regex patterns.
	for _, re := range r.patterns {
		result = re.ReplaceAllString(result, Sentinel)
	}

	return result
}

// RedactError scrubs an error message. The original error stays in the
// chain so errors.Is and errors.As keep working; only the rendered
// message changes.
func (r *Redactor) RedactError(err error, extra []string) error {
	if err == nil {
		return nil
	}

	msg := r.Redact(err.Error(), extra)
	if msg == err.Error() {
		return err
	}

	return &redactedError{msg: msg, cause: err}
}

type redactedError struct {
	msg   string
	cause error
}

func (e *redactedError) Error() string { return e.msg }

func (e *redactedError) Unwrap() error { return e.cause }

// RedactHeaders scrubs every header value. The input is not mutated.
func (r *Redactor) RedactHeaders(headers map[string][]string, extra []string) map[string][]string {
	if headers == nil {
		return nil
	}

	out := make(map[string][]string, len(headers))
	for name, values := range headers {
		scrubbed := make([]string, len(values))
		for i, v := range values {
			scrubbed[i] = r.Redact(v, extra)
		}
		out[name] = scrubbed
	}
	return out
}
