// Package template performs secret placeholder substitution in request
// payloads.
package template

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	apperrors "github.com/keygate-dev/keygate/internal/application/errors"
	domain "github.com/keygate-dev/keygate/internal/domain/secrets"
	"github.com/keygate-dev/keygate/internal/domain/urlmatch"
)

// Placeholder pattern: {secrets.key} or {secrets.namespace.key},
// matched case-insensitively.
var placeholderPattern = regexp.MustCompile(`(?i)\{secrets\.([a-z0-9_][a-z0-9_.-]*)\}`)

// Store is the read-only view of the secret table the substitutor needs.
type Store interface {
	Lookup(templateKey string) (domain.Secret, bool)
}

// Substitutor replaces {secrets.<key>} placeholders in strings and
// structured payloads with values from the secret store, enforcing each
// secret's URL scope against the resolved destination URL.
type Substitutor struct {
	store Store
}

// NewSubstitutor creates a new placeholder substitutor.
func NewSubstitutor(store Store) *Substitutor {
	return &Substitutor{store: store}
}

// SubstituteURL resolves the destination URL template itself. No target
// URL exists while its placeholders resolve, so scope checks are
// deferred: once the URL is known, every URL-scoped secret that was
// embedded in it is re-checked against the result. A scoped secret that
// resolves itself into a URL outside its own scope fails the call.
func (s *Substitutor) SubstituteURL(str string) (string, error) {
	resolved, err := s.SubstituteString(str, "")
	if err != nil {
		return "", err
	}

	for _, match := range placeholderPattern.FindAllStringSubmatch(str, -1) {
		secret, ok := s.store.Lookup(strings.ToLower(match[1]))
		if !ok || !secret.Restricted() {
			continue
		}
		if !urlmatch.MatchesAny(resolved, secret.AllowedURLs) {
			return "", apperrors.NewRestrictionError(secret.TemplateKey, resolved)
		}
	}

	return resolved, nil
}

// SubstituteString replaces every placeholder in str. All occurrences
// of the same placeholder are replaced in one pass.
//
// An unknown key is a caller typo: it logs a warning and the
// placeholder passes through unresolved. A known key whose secret is
// URL-scoped and fails every allowed pattern against targetURL is a
// security breach: the whole call fails, no further placeholders are
// substituted, and no partial result is returned. An empty targetURL
// skips scope enforcement; use SubstituteURL to resolve a destination
// URL.
func (s *Substitutor) SubstituteString(str, targetURL string) (string, error) {
	var lastErr error

	result := placeholderPattern.ReplaceAllStringFunc(str, func(match string) string {
		if lastErr != nil {
			// A restriction violation already aborted this call.
			return match
		}

		submatches := placeholderPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}
		key := strings.ToLower(submatches[1])

		secret, ok := s.store.Lookup(key)
		if !ok {
			slog.Warn("unknown secret placeholder left unresolved", "key", key)
			return match
		}

		if secret.Restricted() && targetURL != "" {
			if !urlmatch.MatchesAny(targetURL, secret.AllowedURLs) {
				lastErr = apperrors.NewRestrictionError(secret.TemplateKey, targetURL)
				return match
			}
		}

		return secret.Value
	})

	if lastErr != nil {
		return "", lastErr
	}

	return result, nil
}

// SubstituteStringMap substitutes placeholders in every value of a flat
// string map (headers, query parameters). Returns a new map; the input
// is not mutated.
func (s *Substitutor) SubstituteStringMap(m map[string]string, targetURL string) (map[string]string, error) {
	if m == nil {
		return nil, nil
	}

	out := make(map[string]string, len(m))
	for k, v := range m {
		substituted, err := s.SubstituteString(v, targetURL)
		if err != nil {
			return nil, fmt.Errorf("key %s: %w", k, err)
		}
		out[k] = substituted
	}
	return out, nil
}

// SubstituteValue recursively substitutes placeholders in a structured
// payload, dispatching on shape: strings are substituted, sequences and
// mappings recurse, all other leaves pass through untouched. Maps and
// slices are modified in place.
func (s *Substitutor) SubstituteValue(value any, targetURL string) (any, error) {
	switch v := value.(type) {
	case string:
		return s.SubstituteString(v, targetURL)

	case map[string]any:
		for key, elem := range v {
			substituted, err := s.SubstituteValue(elem, targetURL)
			if err != nil {
				return nil, fmt.Errorf("key %s: %w", key, err)
			}
			v[key] = substituted
		}
		return v, nil

	case []any:
		for i, elem := range v {
			substituted, err := s.SubstituteValue(elem, targetURL)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			v[i] = substituted
		}
		return v, nil

	default:
		// Non-string leaves (numbers, booleans, nil) need no substitution.
		return v, nil
	}
}
