package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/mmk-rag-console/internal/domain/rag"
)

func sampleQuery(t *testing.T) *rag.QueryResponse {
	t.Helper()
	var resp rag.QueryResponse
	require.NoError(t, json.Unmarshal([]byte(`{"answer":"42","chunks":[
		{"text":"a","source":"one.pdf","page":1},
		{"text":"b","source":"two.md","page":"intro"}
	]}`), &resp))
	return &resp
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatJSON, "JSON": FormatJSON, "yaml": FormatYAML, "yml": FormatYAML} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestPrinter_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Printer{Out: &buf, Format: FormatJSON}.Print(sampleQuery(t)))
	assert.JSONEq(t, `{"answer":"42","chunks":[
		{"text":"a","source":"one.pdf","page":1},
		{"text":"b","source":"two.md","page":"intro"}]}`, buf.String())
}

func TestPrinter_Select(t *testing.T) {
	var buf bytes.Buffer
	p := Printer{Out: &buf, Format: FormatJSON, Select: "chunks[].source"}
	require.NoError(t, p.Validate())
	require.NoError(t, p.Print(sampleQuery(t)))
	assert.JSONEq(t, `["one.pdf","two.md"]`, buf.String())
}

func TestPrinter_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Printer{Out: &buf, Format: FormatYAML}.Print(&rag.ProcessResponse{Status: "processed", Chunks: 3}))
	assert.Equal(t, "status: processed\nchunks: 3\n", buf.String())
}

func TestPrinter_InvalidSelect(t *testing.T) {
	p := Printer{Out: &bytes.Buffer{}, Select: "chunks[?"}
	assert.Error(t, p.Validate())
	assert.Error(t, p.Print(sampleQuery(t)))
}
