// Package ports declares the interfaces the application services depend
// on. Infrastructure packages provide concrete implementations.
package ports

import (
	"context"
	"net/url"

	"github.com/keygate-dev/keygate/internal/infrastructure/authapply"
	"github.com/keygate-dev/keygate/internal/infrastructure/transport"
	"github.com/keygate-dev/keygate/internal/infrastructure/urlfilter"
)

// Substitutor resolves template placeholders against the secret store.
// An empty targetURL skips URL-scope enforcement; SubstituteURL is the
// only sanctioned way to resolve a string without a target, as it
// re-checks scoped secrets against the URL they produce.
type Substitutor interface {
	SubstituteURL(input string) (string, error)
	SubstituteString(input, targetURL string) (string, error)
	SubstituteStringMap(input map[string]string, targetURL string) (map[string]string, error)
	SubstituteValue(value any, targetURL string) (any, error)
}

// AuthApplicator injects authorization material into outgoing headers
// and query parameters and reports every credential value it handled.
type AuthApplicator interface {
	Apply(d *authapply.Descriptor, headers map[string]string, query url.Values) []string
}

// URLFilter decides whether a fully assembled URL may be dispatched.
type URLFilter interface {
	Check(rawURL string) urlfilter.Verdict
}

// Transport dispatches a prepared HTTP request.
type Transport interface {
	Do(ctx context.Context, req transport.Request) (*transport.Response, error)
}

// Redactor scrubs secret material from output-bound text.
type Redactor interface {
	Redact(text string, extra []string) string
	RedactError(err error, extra []string) error
	RedactHeaders(headers map[string][]string, extra []string) map[string][]string
}

// Approver is consulted when the URL filter denies a request. It may
// grant a one-off exception, typically by prompting the operator.
type Approver interface {
	Approve(rawURL, reason string) (bool, error)
}
