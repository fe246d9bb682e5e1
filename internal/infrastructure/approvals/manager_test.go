package approvals

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedPrompter struct {
	interactive bool
	granted     bool
	always      bool
	asked       int
}

func (p *scriptedPrompter) IsInteractive() bool { return p.interactive }

func (p *scriptedPrompter) PromptForURL(_, _ string) (bool, bool, error) {
	p.asked++
	return p.granted, p.always, nil
}

func TestManager_PersistedApprovalSkipsPrompt(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "approved.yaml"))
	require.NoError(t, store.Add("https://staging.acme.com/*"))

	prompter := &scriptedPrompter{interactive: true}
	m := NewManager(store, prompter, nil)

	granted, err := m.Approve("https://staging.acme.com/health", "denied")
	require.NoError(t, err)
	assert.True(t, granted)
	assert.Zero(t, prompter.asked)
}

func TestManager_PromptGrantsOnce(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "approved.yaml"))
	prompter := &scriptedPrompter{interactive: true, granted: true}
	m := NewManager(store, prompter, nil)

	granted, err := m.Approve("https://staging.acme.com/health", "denied")
	require.NoError(t, err)
	assert.True(t, granted)
	assert.Equal(t, 1, prompter.asked)

	// One-off grants are not persisted.
	covered, err := store.Covers("https://staging.acme.com/health")
	require.NoError(t, err)
	assert.False(t, covered)
}

func TestManager_AlwaysPersistsHostPattern(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "approved.yaml"))
	prompter := &scriptedPrompter{interactive: true, granted: true, always: true}
	m := NewManager(store, prompter, nil)

	granted, err := m.Approve("https://staging.acme.com/health", "denied")
	require.NoError(t, err)
	assert.True(t, granted)

	covered, err := store.Covers("https://staging.acme.com/other/path")
	require.NoError(t, err)
	assert.True(t, covered)
}

func TestManager_NonInteractiveDeclines(t *testing.T) {
	prompter := &scriptedPrompter{interactive: false, granted: true}
	m := NewManager(nil, prompter, nil)

	granted, err := m.Approve("https://staging.acme.com/health", "denied")
	require.NoError(t, err)
	assert.False(t, granted)
	assert.Zero(t, prompter.asked)
}
