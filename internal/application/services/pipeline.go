// Package services contains application use cases.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/keygate-dev/keygate/internal/application/dto"
	apperrors "github.com/keygate-dev/keygate/internal/application/errors"
	"github.com/keygate-dev/keygate/internal/application/ports"
	"github.com/keygate-dev/keygate/internal/infrastructure/authapply"
	"github.com/keygate-dev/keygate/internal/infrastructure/sensitivedata"
	"github.com/keygate-dev/keygate/internal/infrastructure/transport"
)

// Pipeline prepares, authorizes, gates, and dispatches a single request.
//
// The stages run in a fixed order: the URL is resolved first (so the
// scope of every other secret is known), then headers, query and body
// are substituted against that URL, then dynamic authorization is
// applied, then the assembled URL passes the global filter, and only
// then does the request go out. Everything that comes back - and every
// error on the way - is redacted before it is returned.
type Pipeline struct {
	substitutor ports.Substitutor
	applicator  ports.AuthApplicator
	filter      ports.URLFilter
	transport   ports.Transport
	redactor    ports.Redactor
	approver    ports.Approver
	logger      *slog.Logger
}

// NewPipeline wires a request pipeline. approver may be nil, in which
// case filter denials are final.
func NewPipeline(
	substitutor ports.Substitutor,
	applicator ports.AuthApplicator,
	filter ports.URLFilter,
	tp ports.Transport,
	redactor ports.Redactor,
	approver ports.Approver,
	logger *slog.Logger,
) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}

	return &Pipeline{
		substitutor: substitutor,
		applicator:  applicator,
		filter:      filter,
		transport:   tp,
		redactor:    redactor,
		approver:    approver,
		logger:      logger,
	}
}

// Execute runs one request through the full pipeline. Errors it returns
// never contain secret material.
func (p *Pipeline) Execute(ctx context.Context, req dto.Request) (*dto.Result, error) {
	sensitive := sensitivedata.NewProvider()

	result, err := p.execute(ctx, req, sensitive)
	if err != nil {
		return nil, p.redactor.RedactError(err, sensitive.AllValues())
	}

	return result, nil
}

func (p *Pipeline) execute(ctx context.Context, req dto.Request, sensitive ports.SensitiveValueProvider) (*dto.Result, error) {
	// Pass 1: resolve the URL itself. Scoped secrets embedded in the
	// URL are re-checked against the URL they produce.
	resolvedURL, err := p.substitutor.SubstituteURL(req.URL)
	if err != nil {
		return nil, err
	}

	// Pass 2: everything else is resolved against the concrete URL.
	headers, err := p.substitutor.SubstituteStringMap(req.Headers, resolvedURL)
	if err != nil {
		return nil, fmt.Errorf("headers: %w", err)
	}

	queryParams, err := p.substitutor.SubstituteStringMap(req.Query, resolvedURL)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	body, structured, err := p.substituteBody(req.Body, resolvedURL)
	if err != nil {
		return nil, fmt.Errorf("body: %w", err)
	}

	auth, err := p.substituteAuth(req.Auth, resolvedURL)
	if err != nil {
		return nil, fmt.Errorf("auth: %w", err)
	}

	// Header names are case-insensitive on the wire; canonicalizing
	// here makes a dynamic credential land on the same map entry as a
	// statically supplied variant like "authorization".
	headers = canonicalHeaders(headers)

	query := url.Values{}
	for name, value := range queryParams {
		query.Set(name, value)
	}

	sensitive.TrackAll(p.applicator.Apply(auth, headers, query))

	if structured {
		if _, ok := headers["Content-Type"]; !ok {
			headers["Content-Type"] = "application/json"
		}
	}

	finalURL, err := assembleURL(resolvedURL, query)
	if err != nil {
		return nil, err
	}

	if err := p.gate(finalURL); err != nil {
		return nil, err
	}

	method := strings.ToUpper(strings.TrimSpace(req.Method))
	if method == "" {
		method = http.MethodGet
	}

	p.logger.Debug("dispatching request",
		"name", req.Name,
		"method", method,
		"url", p.redactor.Redact(finalURL, sensitive.AllValues()))

	resp, err := p.transport.Do(ctx, transport.Request{
		Method:  method,
		URL:     finalURL,
		Headers: headers,
		Body:    body,
	})
	if err != nil {
		return nil, err
	}

	values := sensitive.AllValues()

	return &dto.Result{
		ID:         uuid.NewString(),
		Name:       req.Name,
		URL:        p.redactor.Redact(finalURL, values),
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Proto:      resp.Proto,
		Headers:    p.redactor.RedactHeaders(resp.Headers, values),
		Body:       p.redactor.Redact(resp.Body, values),
		Truncated:  resp.Truncated,
		Duration:   resp.Duration,
	}, nil
}

// gate checks the assembled URL against the global filter, giving the
// approver (when present) a chance to override a denial.
func (p *Pipeline) gate(finalURL string) error {
	verdict := p.filter.Check(finalURL)
	if verdict.Allowed {
		return nil
	}

	if p.approver != nil {
		granted, err := p.approver.Approve(finalURL, verdict.Reason)
		if err != nil {
			return err
		}
		if granted {
			p.logger.Info("filter denial overridden by approval", "url", finalURL)
			return nil
		}
	}

	return apperrors.NewFilterDeniedError(finalURL, verdict.Reason)
}

// substituteAuth resolves placeholders in the credential-bearing fields
// of an authorization descriptor. The original descriptor is never
// mutated.
func (p *Pipeline) substituteAuth(d *authapply.Descriptor, targetURL string) (*authapply.Descriptor, error) {
	if d == nil {
		return nil, nil
	}

	resolved := *d

	var err error
	if resolved.Value, err = p.substitutor.SubstituteString(d.Value, targetURL); err != nil {
		return nil, err
	}
	if resolved.Username, err = p.substitutor.SubstituteString(d.Username, targetURL); err != nil {
		return nil, err
	}
	if resolved.Password, err = p.substitutor.SubstituteString(d.Password, targetURL); err != nil {
		return nil, err
	}

	return &resolved, nil
}

// substituteBody resolves placeholders in the request body. A string
// body stays a string; a structured body is substituted recursively and
// serialized as JSON.
func (p *Pipeline) substituteBody(body any, targetURL string) (string, bool, error) {
	switch b := body.(type) {
	case nil:
		return "", false, nil
	case string:
		out, err := p.substitutor.SubstituteString(b, targetURL)
		return out, false, err
	default:
		substituted, err := p.substitutor.SubstituteValue(b, targetURL)
		if err != nil {
			return "", false, err
		}
		encoded, err := json.Marshal(substituted)
		if err != nil {
			return "", false, apperrors.NewValidationError("body", "cannot be serialized as JSON", err.Error())
		}
		return string(encoded), true, nil
	}
}

// assembleURL merges extra query parameters into the resolved URL.
// Parameters already present on the URL are kept unless the request
// sets the same name.
func assembleURL(resolvedURL string, query url.Values) (string, error) {
	parsed, err := url.Parse(resolvedURL)
	if err != nil {
		return "", apperrors.NewValidationError("url", fmt.Sprintf("invalid URL %q", resolvedURL), err.Error())
	}

	if len(query) > 0 {
		merged := parsed.Query()
		for name, values := range query {
			merged[name] = values
		}
		parsed.RawQuery = merged.Encode()
	}

	return parsed.String(), nil
}

// canonicalHeaders rewrites every header name to its canonical form so
// case-variant duplicates collapse into a single map entry. Always
// returns a non-nil map.
func canonicalHeaders(headers map[string]string) map[string]string {
	out := make(map[string]string, len(headers))
	for name, value := range headers {
		out[http.CanonicalHeaderKey(name)] = value
	}
	return out
}
