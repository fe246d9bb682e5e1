// Package system provides infrastructure for system-level configuration.
// This includes loading the keygate config file (~/.keygate/config.yaml)
// that defines secrets, namespace URL scopes, and the global URL filter.
package system

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Config represents the global configuration file (~/.keygate/config.yaml).
// It is loaded once at process start; the pipeline treats it as an
// immutable snapshot thereafter.
type Config struct {
	// Secrets maps raw secret names to their literal values. Names may
	// carry a namespace segment before the first "." or ":" separator
	// (e.g. "acme.token").
	Secrets map[string]string `yaml:"secrets"`

	// Namespaces binds a namespace to its URL-restriction policy.
	// Secrets in a namespace with no entry here are unrestricted.
	Namespaces map[string]NamespaceConfig `yaml:"namespaces"`

	// Filter is the global allow/deny gate applied to every fully
	// assembled destination URL.
	Filter FilterConfig `yaml:"filter"`

	// Redaction configures the scrubbing applied to all outbound text.
	Redaction RedactionConfig `yaml:"redaction"`

	// HTTP configures the outbound transport.
	HTTP HTTPConfig `yaml:"http"`

	// Approvals configures persistence of interactively approved hosts.
	Approvals ApprovalsConfig `yaml:"approvals"`
}

// NamespaceConfig holds the URL-restriction policy for one namespace.
type NamespaceConfig struct {
	// AllowedURLs are wildcard patterns the destination URL must match
	// before any secret in this namespace may be substituted.
	AllowedURLs []string `yaml:"allowed_urls"`
}

// FilterConfig configures the global URL filter. When Allow is set it
// takes unconditional precedence over Deny.
type FilterConfig struct {
	Allow []string `yaml:"allow"`
	Deny  []string `yaml:"deny"`

	// Rules are optional expr-lang deny expressions evaluated against
	// {url, scheme, host, path}. A rule returning true denies the request.
	Rules []string `yaml:"rules"`
}

// RedactionConfig configures how sensitive data is scrubbed from
// response text and error messages.
type RedactionConfig struct {
	// Patterns are additional regexes to redact beyond known literal values.
	Patterns []string `yaml:"patterns"`

	// DisableGitleaks turns off the gitleaks detector phase.
	// Default: false (gitleaks enabled for comprehensive pattern coverage).
	DisableGitleaks bool `yaml:"disable_gitleaks"`
}

// HTTPConfig configures the outbound HTTP transport.
type HTTPConfig struct {
	// TimeoutSeconds bounds each outbound request. 0 means the default.
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// MaxResponseBytes caps how much of a response body is read.
	// 0 means the default.
	MaxResponseBytes int64 `yaml:"max_response_bytes"`
}

// ApprovalsConfig configures interactive host approvals.
type ApprovalsConfig struct {
	// Path is where "always" approvals are persisted.
	// Empty disables persistence.
	Path string `yaml:"path"`
}

const (
	defaultTimeoutSeconds   = 30
	defaultMaxResponseBytes = 4 << 20
)

// DefaultConfig returns a Config with safe defaults for all fields.
// This is used when no system config file exists: no secrets, no
// restrictions, all URLs allowed.
func DefaultConfig() *Config {
	return &Config{
		Secrets:    make(map[string]string),
		Namespaces: make(map[string]NamespaceConfig),
		HTTP: HTTPConfig{
			TimeoutSeconds:   defaultTimeoutSeconds,
			MaxResponseBytes: defaultMaxResponseBytes,
		},
	}
}

// ConfigLoader loads system configuration from disk.
type ConfigLoader struct{}

// NewConfigLoader creates a new system config loader.
func NewConfigLoader() *ConfigLoader {
	return &ConfigLoader{}
}

// Load loads the system configuration from the specified path.
// If the file does not exist, returns DefaultConfig() so keygate works
// out-of-the-box without configuration.
func (l *ConfigLoader) Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	//nolint:gosec // G304: path is a user-provided config file, validated to exist above
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read system config: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse system config: %w", err)
	}

	if config.HTTP.TimeoutSeconds == 0 {
		config.HTTP.TimeoutSeconds = defaultTimeoutSeconds
	}
	if config.HTTP.MaxResponseBytes == 0 {
		config.HTTP.MaxResponseBytes = defaultMaxResponseBytes
	}

	return &config, nil
}
