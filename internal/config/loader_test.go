package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keygate-dev/keygate/internal/infrastructure/authapply"
)

const validDocument = `
document:
  name: acme-smoke
  version: 1.2.0
  description: smoke checks against the acme API

requests:
  - name: list-items
    url: https://api.acme.com/v1/items
    query:
      page: "1"
    auth:
      type: bearer
      value: "{secrets.acme.token}"

  - name: create-item
    method: POST
    url: https://api.acme.com/v1/items
    headers:
      X-Trace: keygate
    body:
      title: hello
`

func TestLoadDocumentFromReader_Valid(t *testing.T) {
	doc, err := LoadDocumentFromReader(strings.NewReader(validDocument))
	require.NoError(t, err)

	assert.Equal(t, "acme-smoke", doc.Metadata.Name)
	assert.Equal(t, "1.2.0", doc.Metadata.Version)
	require.Len(t, doc.Requests, 2)

	first := doc.Requests[0]
	assert.Equal(t, "list-items", first.Name)
	assert.Equal(t, "https://api.acme.com/v1/items", first.URL)
	assert.Equal(t, map[string]string{"page": "1"}, first.Query)
	require.NotNil(t, first.Auth)
	assert.Equal(t, authapply.TypeBearer, first.Auth.Type)
	assert.Equal(t, "{secrets.acme.token}", first.Auth.Value)

	second := doc.Requests[1]
	assert.Equal(t, "POST", second.Method)
	assert.NotNil(t, second.Body)
}

func TestLoadDocument_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validDocument), 0o600))

	doc, err := LoadDocument(path)
	require.NoError(t, err)
	assert.Len(t, doc.Requests, 2)
}

func TestLoadDocument_MissingFile(t *testing.T) {
	_, err := LoadDocument(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadDocumentFromReader_SchemaErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantMsg string
	}{
		{
			name: "missing requests",
			yaml: `
document:
  name: x
  version: 1.0.0
`,
			wantMsg: "requests",
		},
		{
			name: "unknown top-level field",
			yaml: `
document:
  name: x
  version: 1.0.0
reqests:
  - name: a
    url: https://a.com
`,
			wantMsg: "reqests",
		},
		{
			name: "bad method",
			yaml: `
document:
  name: x
  version: 1.0.0
requests:
  - name: a
    method: YEET
    url: https://a.com
`,
			wantMsg: "method",
		},
		{
			name: "header value must be a string",
			yaml: `
document:
  name: x
  version: 1.0.0
requests:
  - name: a
    url: https://a.com
    headers:
      X-Count: 3
`,
			wantMsg: "headers",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadDocumentFromReader(strings.NewReader(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoadDocumentFromReader_InvalidYAML(t *testing.T) {
	_, err := LoadDocumentFromReader(strings.NewReader("requests: ["))
	assert.Error(t, err)
}
