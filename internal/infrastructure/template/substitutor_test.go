package template

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/keygate-dev/keygate/internal/application/errors"
	"github.com/keygate-dev/keygate/internal/infrastructure/secrets"
	"github.com/keygate-dev/keygate/internal/infrastructure/system"
)

func newTestStore(t *testing.T) *secrets.Store {
	t.Helper()
	return secrets.NewStore(&system.Config{
		Secrets: map[string]string{
			"acme.token": "tok-123",
			"global_key": "g-456",
		},
		Namespaces: map[string]system.NamespaceConfig{
			"acme": {AllowedURLs: []string{"https://safe.com/*"}},
		},
	})
}

func TestSubstituteString(t *testing.T) {
	s := NewSubstitutor(newTestStore(t))

	tests := []struct {
		name      string
		input     string
		targetURL string
		want      string
	}{
		{
			name:  "bare key",
			input: "value={secrets.global_key}",
			want:  "value=g-456",
		},
		{
			name:  "placeholder key is case-insensitive",
			input: "value={secrets.GLOBAL_KEY}",
			want:  "value=g-456",
		},
		{
			name:  "all occurrences replaced in one pass",
			input: "{secrets.global_key} and {secrets.global_key}",
			want:  "g-456 and g-456",
		},
		{
			name:  "unknown key passes through unresolved",
			input: "{secrets.nope}",
			want:  "{secrets.nope}",
		},
		{
			name:      "scoped secret resolves for an allowed URL",
			input:     "Bearer {secrets.acme.token}",
			targetURL: "https://safe.com/path",
			want:      "Bearer tok-123",
		},
		{
			name:  "scoped secret resolves when no target URL is supplied",
			input: "https://safe.com/{secrets.acme.token}",
			want:  "https://safe.com/tok-123",
		},
		{
			name:  "no placeholders",
			input: "plain text",
			want:  "plain text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.SubstituteString(tt.input, tt.targetURL)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSubstituteString_RestrictionViolation(t *testing.T) {
	s := NewSubstitutor(newTestStore(t))

	got, err := s.SubstituteString("Bearer {secrets.acme.token}", "https://evil.com/path")

	require.Error(t, err)
	assert.Empty(t, got, "no partial result on a hard failure")

	var restrictionErr *apperrors.RestrictionError
	require.True(t, errors.As(err, &restrictionErr))
	assert.Equal(t, "acme.token", restrictionErr.Key)
	assert.Equal(t, "https://evil.com/path", restrictionErr.URL)
}

func TestSubstituteURL(t *testing.T) {
	s := NewSubstitutor(newTestStore(t))

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "scoped secret lands inside its own scope",
			input: "https://safe.com/{secrets.acme.token}",
			want:  "https://safe.com/tok-123",
		},
		{
			name:  "unscoped secret resolves anywhere",
			input: "https://anywhere.com/?k={secrets.global_key}",
			want:  "https://anywhere.com/?k=g-456",
		},
		{
			name:  "unknown key passes through unresolved",
			input: "https://safe.com/{secrets.nope}",
			want:  "https://safe.com/{secrets.nope}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.SubstituteURL(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSubstituteURL_ScopedSecretEscapingItsScope(t *testing.T) {
	s := NewSubstitutor(newTestStore(t))

	got, err := s.SubstituteURL("https://evil.com/?t={secrets.acme.token}")

	require.Error(t, err)
	assert.Empty(t, got, "no partial result on a hard failure")

	var restrictionErr *apperrors.RestrictionError
	require.True(t, errors.As(err, &restrictionErr))
	assert.Equal(t, "acme.token", restrictionErr.Key)
}

func TestSubstituteString_UnknownKeyIsNotARestrictionError(t *testing.T) {
	s := NewSubstitutor(newTestStore(t))

	got, err := s.SubstituteString("{secrets.nope}", "https://evil.com/path")

	require.NoError(t, err)
	assert.Equal(t, "{secrets.nope}", got)
}

func TestSubstituteStringMap(t *testing.T) {
	s := NewSubstitutor(newTestStore(t))

	in := map[string]string{
		"Authorization": "Bearer {secrets.acme.token}",
		"Accept":        "application/json",
	}

	out, err := s.SubstituteStringMap(in, "https://safe.com/v1")

	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", out["Authorization"])
	assert.Equal(t, "application/json", out["Accept"])
	assert.Equal(t, "Bearer {secrets.acme.token}", in["Authorization"], "input not mutated")

	_, err = s.SubstituteStringMap(in, "https://evil.com/v1")
	var restrictionErr *apperrors.RestrictionError
	assert.True(t, errors.As(err, &restrictionErr))

	out, err = s.SubstituteStringMap(nil, "https://safe.com/v1")
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestSubstituteValue_Structural(t *testing.T) {
	s := NewSubstitutor(newTestStore(t))

	payload := map[string]any{
		"token": "{secrets.global_key}",
		"count": 3,
		"flags": []any{"{secrets.global_key}", true},
		"inner": map[string]any{
			"scoped": "{secrets.acme.token}",
		},
	}

	got, err := s.SubstituteValue(payload, "https://safe.com/v1")
	require.NoError(t, err)

	m := got.(map[string]any)
	assert.Equal(t, "g-456", m["token"])
	assert.Equal(t, 3, m["count"], "non-string leaves untouched")
	assert.Equal(t, []any{"g-456", true}, m["flags"])
	assert.Equal(t, "tok-123", m["inner"].(map[string]any)["scoped"])
}

func TestSubstituteValue_RestrictionPropagates(t *testing.T) {
	s := NewSubstitutor(newTestStore(t))

	payload := map[string]any{
		"scoped": "{secrets.acme.token}",
	}

	_, err := s.SubstituteValue(payload, "https://evil.com/v1")

	var restrictionErr *apperrors.RestrictionError
	require.True(t, errors.As(err, &restrictionErr))
}
