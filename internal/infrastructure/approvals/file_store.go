// Package approvals persists and prompts for interactively approved
// destination hosts that the global URL filter would otherwise deny.
package approvals

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/keygate-dev/keygate/internal/domain/urlmatch"
)

// FileStore provides file-based persistence for approved URL patterns.
type FileStore struct {
	path string
}

// NewFileStore creates a new FileStore.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the path to the approvals file.
func (s *FileStore) Path() string {
	return s.path
}

// storeFile represents the YAML structure of the approvals file.
type storeFile struct {
	ApprovedURLs []string `yaml:"approved_urls"`
}

// Load loads approved URL patterns. A missing file yields an empty list
// without error.
func (s *FileStore) Load() ([]string, error) {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return nil, nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read approvals file: %w", err)
	}

	var f storeFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse approvals file: %w", err)
	}

	return f.ApprovedURLs, nil
}

// Add appends a pattern and persists the file, creating the directory
// if needed. Duplicate patterns are dropped.
func (s *FileStore) Add(pattern string) error {
	patterns, err := s.Load()
	if err != nil {
		return err
	}
	for _, existing := range patterns {
		if existing == pattern {
			return nil
		}
	}
	patterns = append(patterns, pattern)

	dir := filepath.Dir(s.path)
	//nolint:gosec // G301: 0o755 is standard for user config directories (~/.keygate)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create approvals directory: %w", err)
	}

	data, err := yaml.MarshalWithOptions(storeFile{ApprovedURLs: patterns}, yaml.IndentSequence(true))
	if err != nil {
		return fmt.Errorf("failed to marshal approvals to YAML: %w", err)
	}

	return os.WriteFile(s.path, data, 0o600)
}

// Covers reports whether any persisted pattern matches the URL.
func (s *FileStore) Covers(rawURL string) (bool, error) {
	patterns, err := s.Load()
	if err != nil {
		return false, err
	}
	return urlmatch.MatchesAny(rawURL, patterns), nil
}
