package approvals

import (
	"fmt"
	"log/slog"
)

// Prompter asks the operator whether a denied URL may go through.
type Prompter interface {
	IsInteractive() bool
	PromptForURL(rawURL, reason string) (granted bool, always bool, err error)
}

// Manager combines persisted approvals with interactive prompting. It
// satisfies the pipeline's Approver contract.
type Manager struct {
	store    *FileStore
	prompter Prompter
	logger   *slog.Logger
}

// NewManager creates an approval manager. store may be nil to disable
// persistence; prompter may be nil to disable prompting.
func NewManager(store *FileStore, prompter Prompter, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}

	return &Manager{
		store:    store,
		prompter: prompter,
		logger:   logger,
	}
}

// Approve reports whether a filter-denied URL may be dispatched anyway.
// Persisted approvals are consulted first; otherwise the operator is
// prompted. Answering "always" persists a host-wide pattern.
func (m *Manager) Approve(rawURL, reason string) (bool, error) {
	if m.store != nil {
		covered, err := m.store.Covers(rawURL)
		if err != nil {
			return false, fmt.Errorf("failed to read approvals: %w", err)
		}
		if covered {
			m.logger.Debug("URL covered by persisted approval", "url", rawURL)
			return true, nil
		}
	}

	if m.prompter == nil || !m.prompter.IsInteractive() {
		return false, nil
	}

	granted, always, err := m.prompter.PromptForURL(rawURL, reason)
	if err != nil {
		return false, err
	}

	if granted && always && m.store != nil {
		pattern := HostPattern(rawURL)
		if err := m.store.Add(pattern); err != nil {
			m.logger.Warn("failed to persist approval", "pattern", pattern, "error", err)
		}
	}

	return granted, nil
}
