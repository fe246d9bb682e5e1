package system

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigLoader_Load_FileNotExists(t *testing.T) {
	loader := NewConfigLoader()
	cfg, err := loader.Load("/nonexistent/config.yaml")

	require.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.Empty(t, cfg.Secrets)
	assert.Empty(t, cfg.Filter.Allow)
	assert.Equal(t, defaultTimeoutSeconds, cfg.HTTP.TimeoutSeconds)
}

func TestConfigLoader_Load_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yaml := `
secrets:
  acme.token: tok-123
  global_key: g-456

namespaces:
  acme:
    allowed_urls:
      - https://api.acme.com/*

filter:
  allow:
    - https://api.acme.com/*
  rules:
    - 'scheme == "http"'

redaction:
  patterns:
    - "INT-[A-Z0-9]{16}"
  disable_gitleaks: true

http:
  timeout_seconds: 5
  max_response_bytes: 1024
`
	err := os.WriteFile(configPath, []byte(yaml), 0o600)
	require.NoError(t, err)

	loader := NewConfigLoader()
	cfg, err := loader.Load(configPath)

	require.NoError(t, err)
	assert.Equal(t, "tok-123", cfg.Secrets["acme.token"])
	assert.Equal(t, "g-456", cfg.Secrets["global_key"])
	assert.Equal(t, []string{"https://api.acme.com/*"}, cfg.Namespaces["acme"].AllowedURLs)
	assert.Equal(t, []string{"https://api.acme.com/*"}, cfg.Filter.Allow)
	assert.Equal(t, []string{`scheme == "http"`}, cfg.Filter.Rules)
	assert.True(t, cfg.Redaction.DisableGitleaks)
	assert.Equal(t, 5, cfg.HTTP.TimeoutSeconds)
	assert.Equal(t, int64(1024), cfg.HTTP.MaxResponseBytes)
}

func TestConfigLoader_Load_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("secrets: [not a map"), 0o600))

	loader := NewConfigLoader()
	_, err := loader.Load(configPath)
	assert.Error(t, err)
}

func TestConfigLoader_Load_DefaultsApplied(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("secrets:\n  k: v\n"), 0o600))

	loader := NewConfigLoader()
	cfg, err := loader.Load(configPath)

	require.NoError(t, err)
	assert.Equal(t, defaultTimeoutSeconds, cfg.HTTP.TimeoutSeconds)
	assert.Equal(t, int64(defaultMaxResponseBytes), cfg.HTTP.MaxResponseBytes)
}
