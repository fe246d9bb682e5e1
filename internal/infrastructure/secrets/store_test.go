package secrets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keygate-dev/keygate/internal/infrastructure/system"
)

func TestNewStore_NamespaceRestrictions(t *testing.T) {
	cfg := &system.Config{
		Secrets: map[string]string{
			"acme.token": "tok-123",
			"ACME:other": "tok-456",
			"global_key": "g-789",
		},
		Namespaces: map[string]system.NamespaceConfig{
			"acme": {AllowedURLs: []string{"https://api.acme.com/*"}},
		},
	}

	store := NewStore(cfg)
	require.Equal(t, 3, store.Len())

	tok, ok := store.Lookup("acme.token")
	require.True(t, ok)
	assert.Equal(t, "tok-123", tok.Value)
	assert.Equal(t, "acme", tok.Namespace)
	assert.Equal(t, []string{"https://api.acme.com/*"}, tok.AllowedURLs)
	assert.True(t, tok.Restricted())

	// Colon separator normalizes into the same namespace.
	other, ok := store.Lookup("acme.other")
	require.True(t, ok)
	assert.Equal(t, "tok-456", other.Value)
	assert.True(t, other.Restricted())

	// Bare keys have no namespace and no restriction.
	bare, ok := store.Lookup("global_key")
	require.True(t, ok)
	assert.Empty(t, bare.Namespace)
	assert.False(t, bare.Restricted())
}

func TestStore_Lookup_CaseInsensitive(t *testing.T) {
	store := NewStore(&system.Config{
		Secrets: map[string]string{"Acme.Token": "v"},
	})

	_, ok := store.Lookup("ACME.TOKEN")
	assert.True(t, ok)

	_, ok = store.Lookup("acme.nope")
	assert.False(t, ok)
}

func TestStore_Lookup_NamespaceWithoutRestrictionTable(t *testing.T) {
	store := NewStore(&system.Config{
		Secrets: map[string]string{"orphan.key": "v"},
	})

	secret, ok := store.Lookup("orphan.key")
	require.True(t, ok)
	assert.Equal(t, "orphan", secret.Namespace)
	assert.False(t, secret.Restricted(), "namespace without a restriction entry is unrestricted")
}

func TestStore_DuplicateTemplateKey_LastWriterWins(t *testing.T) {
	// "acme.token" and "acme:token" collapse to the same template key.
	// Raw names are applied in lexical order, so "acme:token" (':' > '.')
	// is the last writer.
	store := NewStore(&system.Config{
		Secrets: map[string]string{
			"acme.token": "first",
			"acme:token": "second",
		},
	})

	require.Equal(t, 1, store.Len())
	secret, ok := store.Lookup("acme.token")
	require.True(t, ok)
	assert.Equal(t, "second", secret.Value)
}

func TestStore_Values_SkipsEmpty(t *testing.T) {
	store := NewStore(&system.Config{
		Secrets: map[string]string{
			"a": "value-a",
			"b": "",
		},
	})

	assert.ElementsMatch(t, []string{"value-a"}, store.Values())
}

func TestStore_All_SortedByKey(t *testing.T) {
	store := NewStore(&system.Config{
		Secrets: map[string]string{
			"zeta": "1",
			"alfa": "2",
		},
	})

	all := store.All()
	require.Len(t, all, 2)
	assert.Equal(t, "alfa", all[0].TemplateKey)
	assert.Equal(t, "zeta", all[1].TemplateKey)
}
