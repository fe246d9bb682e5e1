package transport

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keygate-dev/keygate/internal/infrastructure/system"
)

func TestClient_Do(t *testing.T) {
	var gotAuth, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)

		w.Header().Set("X-Test", "yes")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	c := NewClient(system.HTTPConfig{TimeoutSeconds: 5, MaxResponseBytes: 1024})
	resp, err := c.Do(context.Background(), Request{
		Method:  http.MethodPost,
		URL:     server.URL + "/things",
		Headers: map[string]string{"Authorization": "Bearer tok"},
		Body:    `{"name":"a"}`,
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, `{"ok":true}`, resp.Body)
	assert.False(t, resp.Truncated)
	assert.Equal(t, []string{"yes"}, resp.Headers["X-Test"])
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, `{"name":"a"}`, gotBody)
	assert.Positive(t, resp.Duration)
}

func TestClient_Do_TruncatesLargeBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 100)))
	}))
	defer server.Close()

	c := NewClient(system.HTTPConfig{TimeoutSeconds: 5, MaxResponseBytes: 10})
	resp, err := c.Do(context.Background(), Request{Method: http.MethodGet, URL: server.URL})

	require.NoError(t, err)
	assert.True(t, resp.Truncated)
	assert.Len(t, resp.Body, 10)
}

func TestClient_Do_ConnectionError(t *testing.T) {
	c := NewClient(system.HTTPConfig{TimeoutSeconds: 1})
	_, err := c.Do(context.Background(), Request{Method: http.MethodGet, URL: "http://127.0.0.1:1/nope"})

	assert.Error(t, err)
}

func TestClient_Do_InvalidMethod(t *testing.T) {
	c := NewClient(system.HTTPConfig{TimeoutSeconds: 1})
	_, err := c.Do(context.Background(), Request{Method: "BAD METHOD", URL: "http://example.com"})

	assert.Error(t, err)
}
