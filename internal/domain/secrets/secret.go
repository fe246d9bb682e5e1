// Package secrets defines domain types for named credential values.
package secrets

import "strings"

// Secret is a named credential value available for template substitution.
// Secrets are immutable once loaded; the store never exposes a mutation API.
type Secret struct {
	// Value is the literal credential material.
	Value string

	// Namespace groups secrets sharing a URL-restriction policy.
	// Empty for bare keys.
	Namespace string

	// AllowedURLs restricts where the value may be substituted.
	// Empty means unrestricted.
	AllowedURLs []string

	// TemplateKey is the canonical lookup name: "namespace.key"
	// lowercased, or the bare key when no namespace is present.
	TemplateKey string
}

// Restricted reports whether this secret is scoped to specific URLs.
func (s Secret) Restricted() bool {
	return len(s.AllowedURLs) > 0
}

// separators are the characters accepted between a namespace segment
// and the key segment in a raw secret name. Both normalize to ".".
const separators = ".:"

// ParseKey splits a raw secret name into its namespace and canonical
// template key. The namespace is everything before the first separator;
// the remainder is the key. Both are lowercased and the separator is
// normalized to ".". A name with no separator is a bare key with an
// empty namespace.
func ParseKey(raw string) (namespace, templateKey string) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	idx := strings.IndexAny(raw, separators)
	if idx <= 0 || idx == len(raw)-1 {
		// No separator, or nothing on one side of it: bare key.
		return "", raw
	}
	namespace = raw[:idx]
	key := raw[idx+1:]
	return namespace, namespace + "." + key
}
