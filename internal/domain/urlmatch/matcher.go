// Package urlmatch provides wildcard pattern matching for destination URLs.
package urlmatch

import (
	"regexp"
	"strings"
	"sync"
)

// compiled caches pattern regexes so repeated checks against the same
// pattern (allowlists are consulted once per request) stay cheap.
var compiled sync.Map // pattern string -> *regexp.Regexp

// Matches reports whether url matches pattern. Patterns are compared
// case-insensitively, anchored at both ends, and support "*" as a
// wildcard for zero or more characters. A pattern without "*" must
// equal the URL exactly (ignoring case). All other regexp
// metacharacters in the pattern are treated literally.
func Matches(url, pattern string) bool {
	re, ok := compiled.Load(pattern)
	if !ok {
		re, _ = compiled.LoadOrStore(pattern, compile(pattern))
	}
	return re.(*regexp.Regexp).MatchString(url)
}

// MatchesAny reports whether url matches at least one of the patterns.
func MatchesAny(url string, patterns []string) bool {
	for _, p := range patterns {
		if Matches(url, p) {
			return true
		}
	}
	return false
}

// compile turns a wildcard pattern into an anchored, case-insensitive
// regexp. Splitting on "*" and quoting each literal segment escapes
// every metacharacter except the wildcard itself. A trailing "/*" also
// covers the bare prefix, so "https://a.com/*" matches "https://a.com".
func compile(pattern string) *regexp.Regexp {
	body, bareSuffix := pattern, ""
	if strings.HasSuffix(pattern, "/*") {
		body, bareSuffix = strings.TrimSuffix(pattern, "/*"), `(/.*)?`
	}
	segments := strings.Split(body, "*")
	for i, s := range segments {
		segments[i] = regexp.QuoteMeta(s)
	}
	return regexp.MustCompile(`(?i)^` + strings.Join(segments, `.*`) + bareSuffix + `$`)
}
