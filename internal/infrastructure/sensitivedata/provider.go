// Package sensitivedata provides tools for managing and protecting
// sensitive information such as secrets, tokens, and credentials.
package sensitivedata

import "sync"

// Provider implements ports.SensitiveValueProvider.
// It is the per-request accumulator of values that must never appear in
// any text surfaced to the caller: dynamic auth values and their derived
// encodings land here as the pipeline runs. Each in-flight request owns
// its own Provider; it is discarded with the request.
type Provider struct {
	values []string
	mu     sync.RWMutex
}

// NewProvider creates a new sensitive data provider.
func NewProvider() *Provider {
	return &Provider{
		values: make([]string, 0, 8),
	}
}

// Track registers a sensitive value to be protected.
func (p *Provider) Track(value string) {
	if value == "" {
		return // Don't track empty values
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.values = append(p.values, value)
}

// TrackAll registers multiple sensitive values at once.
func (p *Provider) TrackAll(values []string) {
	for _, v := range values {
		p.Track(v)
	}
}

// AllValues returns all tracked sensitive values.
func (p *Provider) AllValues() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	// Return a copy to avoid race conditions if caller modifies the slice
	result := make([]string, len(p.values))
	copy(result, p.values)
	return result
}
