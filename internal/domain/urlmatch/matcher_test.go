package urlmatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		pattern string
		want    bool
	}{
		{
			name:    "exact match",
			url:     "https://api.example.com/v1",
			pattern: "https://api.example.com/v1",
			want:    true,
		},
		{
			name:    "exact match is case-insensitive",
			url:     "https://API.Example.COM/v1",
			pattern: "https://api.example.com/v1",
			want:    true,
		},
		{
			name:    "trailing wildcard matches path",
			url:     "https://a.com/x",
			pattern: "https://a.com/*",
			want:    true,
		},
		{
			name:    "wildcard matches the empty string",
			url:     "https://a.com/",
			pattern: "https://a.com/*",
			want:    true,
		},
		{
			name:    "trailing wildcard covers the bare prefix",
			url:     "https://a.com",
			pattern: "https://a.com/*",
			want:    true,
		},
		{
			name:    "no partial match without wildcard",
			url:     "https://a.com/x/y",
			pattern: "https://a.com/x",
			want:    false,
		},
		{
			name:    "interior wildcard",
			url:     "https://eu.api.example.com/v1/users",
			pattern: "https://*.api.example.com/v1/*",
			want:    true,
		},
		{
			name:    "different host rejected",
			url:     "https://evil.com/path",
			pattern: "https://safe.com/*",
			want:    false,
		},
		{
			name:    "dot in pattern is literal",
			url:     "https://apixexample.com/v1",
			pattern: "https://api.example.com/*",
			want:    false,
		},
		{
			name:    "query string covered by wildcard",
			url:     "https://a.com/x?token=abc",
			pattern: "https://a.com/x*",
			want:    true,
		},
		{
			name:    "universal wildcard",
			url:     "https://anything.at.all/really",
			pattern: "*",
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.url, tt.pattern))
		})
	}
}

func TestMatchesAny(t *testing.T) {
	patterns := []string{"https://a.com/*", "https://b.com/api/*"}

	assert.True(t, MatchesAny("https://b.com/api/v2", patterns))
	assert.False(t, MatchesAny("https://c.com/api/v2", patterns))
	assert.False(t, MatchesAny("https://a.com/x", nil))
}
