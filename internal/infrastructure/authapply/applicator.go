// Package authapply maps caller-supplied auth descriptors onto concrete
// header and query-parameter mutations.
package authapply

import (
	"encoding/base64"
	"log/slog"
	"net/http"
	"net/url"
)

// Descriptor type discriminators.
const (
	TypeBearer = "bearer"
	TypeAPIKey = "apikey"
	TypeBasic  = "basic"
	TypeCustom = "custom"
)

// DefaultAPIKeyHeader receives an apikey value when the descriptor
// names neither a header nor a query parameter.
const DefaultAPIKeyHeader = "X-API-Key"

// Descriptor is a caller-supplied, per-call authorization instruction.
// Which fields are required depends on Type; see Apply. Descriptors are
// consumed once and never persisted.
type Descriptor struct {
	Type     string `yaml:"type" json:"type"`
	Value    string `yaml:"value,omitempty" json:"value,omitempty"`
	Header   string `yaml:"header,omitempty" json:"header,omitempty"`
	Query    string `yaml:"query,omitempty" json:"query,omitempty"`
	Username string `yaml:"username,omitempty" json:"username,omitempty"`
	Password string `yaml:"password,omitempty" json:"password,omitempty"`
}

// Applicator applies dynamic auth descriptors to in-flight requests.
type Applicator struct{}

// NewApplicator creates a new auth applicator.
func NewApplicator() *Applicator {
	return &Applicator{}
}

// Apply mutates headers and query according to the descriptor and
// returns the raw sensitive values it introduced, including any derived
// encoding. A nil descriptor returns the inputs unchanged with no
// sensitive values.
//
// Every credential field present is tracked before per-type dispatch,
// even when the type ignores it: a malformed descriptor must still have
// its values scrubbed from anything echoed back. A descriptor missing
// required fields for its type performs no mutation and raises no error.
// A nil query still tracks a query-destined value but has nowhere to
// place it.
func (a *Applicator) Apply(d *Descriptor, headers map[string]string, query url.Values) []string {
	if d == nil {
		return nil
	}

	var sensitive []string
	for _, v := range []string{d.Value, d.Username, d.Password} {
		if v != "" {
			sensitive = append(sensitive, v)
		}
	}

	switch d.Type {
	case TypeBearer:
		if d.Value == "" {
			break
		}
		setHeader(headers, "Authorization", "Bearer "+d.Value)

	case TypeAPIKey:
		if d.Value == "" {
			break
		}
		switch {
		case d.Header != "":
			// Header wins when both destinations are mistakenly supplied.
			setHeader(headers, d.Header, d.Value)
		case d.Query != "":
			// A nil query has nowhere to put the value; the value is
			// still tracked above so it can never leak unredacted.
			if query != nil {
				query.Set(d.Query, d.Value)
			}
		default:
			setHeader(headers, DefaultAPIKeyHeader, d.Value)
		}

	case TypeBasic:
		if d.Username == "" || d.Password == "" {
			break
		}
		encoded := base64.StdEncoding.EncodeToString([]byte(d.Username + ":" + d.Password))
		// The encoded credential is what actually travels on the wire;
		// it must be scrubbable from echoed text too.
		sensitive = append(sensitive, encoded)
		setHeader(headers, "Authorization", "Basic "+encoded)

	case TypeCustom:
		if d.Value == "" || d.Header == "" {
			break
		}
		setHeader(headers, d.Header, d.Value)

	default:
		slog.Warn("unknown auth descriptor type ignored", "type", d.Type)
	}

	return sensitive
}

// setHeader stores under the canonical header name so a dynamic value
// always overwrites a statically substituted one regardless of casing.
func setHeader(headers map[string]string, name, value string) {
	headers[http.CanonicalHeaderKey(name)] = value
}
