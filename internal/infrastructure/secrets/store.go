// Package secrets builds the process-wide table of named secrets from
// system configuration.
package secrets

import (
	"sort"
	"strings"

	domain "github.com/keygate-dev/keygate/internal/domain/secrets"
	"github.com/keygate-dev/keygate/internal/infrastructure/system"
)

// Store is the process-wide table of named secrets. It is populated
// exactly once from configuration and read-only thereafter, so no lock
// is needed: there is no writer after load completes.
type Store struct {
	byKey map[string]domain.Secret
}

// NewStore parses the configured secret entries into a store. Each raw
// name yields a canonical template key via domain key parsing; a
// namespace, if present, is looked up in the namespace restriction
// table to populate the secret's allowed URLs. Duplicate template keys
// resolve last-writer-wins in lexical order of the raw names, keeping
// load deterministic. Values are never logged here.
func NewStore(cfg *system.Config) *Store {
	s := &Store{byKey: make(map[string]domain.Secret, len(cfg.Secrets))}

	rawNames := make([]string, 0, len(cfg.Secrets))
	for raw := range cfg.Secrets {
		rawNames = append(rawNames, raw)
	}
	sort.Strings(rawNames)

	for _, raw := range rawNames {
		namespace, templateKey := domain.ParseKey(raw)
		if templateKey == "" {
			continue
		}

		secret := domain.Secret{
			Value:       cfg.Secrets[raw],
			Namespace:   namespace,
			TemplateKey: templateKey,
		}
		if namespace != "" {
			if ns, ok := cfg.Namespaces[namespace]; ok {
				secret.AllowedURLs = ns.AllowedURLs
			}
		}
		s.byKey[templateKey] = secret
	}

	return s
}

// Lookup returns the secret for a template key. Keys are matched
// case-insensitively.
func (s *Store) Lookup(templateKey string) (domain.Secret, bool) {
	secret, ok := s.byKey[strings.ToLower(templateKey)]
	return secret, ok
}

// Values returns every non-empty secret value currently loaded. This
// feeds the redaction engine's literal scrub pass.
func (s *Store) Values() []string {
	values := make([]string, 0, len(s.byKey))
	for _, secret := range s.byKey {
		if secret.Value != "" {
			values = append(values, secret.Value)
		}
	}
	return values
}

// All returns every loaded secret ordered by template key. Callers use
// this for listing; they must not surface Value.
func (s *Store) All() []domain.Secret {
	all := make([]domain.Secret, 0, len(s.byKey))
	for _, secret := range s.byKey {
		all = append(all, secret)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].TemplateKey < all[j].TemplateKey
	})
	return all
}

// Len returns the number of loaded secrets.
func (s *Store) Len() int {
	return len(s.byKey)
}
