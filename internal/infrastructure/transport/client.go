// Package transport issues the shaped outbound HTTP request and reads
// the response. It performs no authorization or redaction of its own;
// the pipeline owns both sides of it.
package transport

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/keygate-dev/keygate/internal/application/errors"
	"github.com/keygate-dev/keygate/internal/infrastructure/system"
)

// Request is a fully shaped outbound request: URL already resolved and
// filtered, headers and query already carrying any credentials.
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    string
}

// Response captures what came back. Body is capped at the configured
// maximum; Truncated reports whether the cap was hit.
type Response struct {
	StatusCode int
	Status     string
	Proto      string
	Headers    map[string][]string
	Body       string
	Truncated  bool
	Duration   time.Duration
}

// Client executes outbound requests with a bounded timeout and response
// size. Safe for concurrent use.
type Client struct {
	hc               *http.Client
	maxResponseBytes int64
}

// NewClient creates a transport client from HTTP configuration.
func NewClient(cfg system.HTTPConfig) *Client {
	return &Client{
		hc: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		maxResponseBytes: cfg.MaxResponseBytes,
	}
}

// Do issues the request. No retries: retry policy, if any, belongs to
// the caller's collaborators, not this pipeline.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	var bodyReader io.Reader
	if req.Body != "" {
		bodyReader = strings.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, bodyReader)
	if err != nil {
		return nil, apperrors.NewTransportError(req.URL, "failed to create request", err)
	}

	for name, value := range req.Headers {
		httpReq.Header.Set(name, value)
	}

	start := time.Now()
	resp, err := c.hc.Do(httpReq)
	duration := time.Since(start)
	if err != nil {
		return nil, apperrors.NewTransportError(req.URL, "request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	limit := c.maxResponseBytes
	if limit <= 0 {
		limit = 4 << 20
	}
	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, apperrors.NewTransportError(req.URL, "reading response body", err)
	}

	truncated := int64(len(bodyBytes)) > limit
	if truncated {
		bodyBytes = bodyBytes[:limit]
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Proto:      resp.Proto,
		Headers:    resp.Header,
		Body:       string(bodyBytes),
		Truncated:  truncated,
		Duration:   duration,
	}, nil
}
