package rag

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestQueryResponse_MixedPageTypes(t *testing.T) {
	body := `{"answer":"42","chunks":[
		{"text":"a","source":"doc.pdf","page":3},
		{"text":"b","source":"notes.md","page":"intro"}
	]}`

	var resp QueryResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	require.Len(t, resp.Chunks, 2)
	assert.Equal(t, "3", resp.Chunks[0].Page.String())
	assert.Equal(t, "intro", resp.Chunks[1].Page.String())

	out, err := json.Marshal(resp.Chunks[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"text":"a","source":"doc.pdf","page":3}`, string(out))

	out, err = json.Marshal(resp.Chunks[1])
	require.NoError(t, err)
	assert.JSONEq(t, `{"text":"b","source":"notes.md","page":"intro"}`, string(out))
}

func TestPage_RejectsObjects(t *testing.T) {
	var p Page
	assert.Error(t, json.Unmarshal([]byte(`{"n":1}`), &p))
}

func TestPage_YAML(t *testing.T) {
	var resp QueryResponse
	require.NoError(t, json.Unmarshal([]byte(`{"answer":"x","chunks":[{"text":"t","source":"s","page":7}]}`), &resp))

	out, err := yaml.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(out), "page: 7")
}
