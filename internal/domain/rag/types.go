// Package rag holds the request and response shapes of the retrieval backend.
package rag

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// File is one document queued for upload.
type File struct {
	Name    string
	Content io.Reader
}

// UploadResponse reports which files the backend stored.
type UploadResponse struct {
	Uploaded   []string `json:"uploaded"    yaml:"uploaded"`
	Rejected   []string `json:"rejected"    yaml:"rejected"`
	TotalFiles int      `json:"total_files" yaml:"total_files"`
}

// ProcessResponse reports the outcome of an ingestion run.
type ProcessResponse struct {
	Status string `json:"status" yaml:"status"`
	Chunks int    `json:"chunks" yaml:"chunks"`
}

// QueryRequest is the body of a question.
type QueryRequest struct {
	Question string `json:"question"`
}

// QueryResponse is the backend's answer with the supporting chunks.
type QueryResponse struct {
	Answer string          `json:"answer" yaml:"answer"`
	Chunks []DocumentChunk `json:"chunks" yaml:"chunks"`
}

// DocumentChunk is a retrieved passage.
type DocumentChunk struct {
	Text   string `json:"text"   yaml:"text"`
	Source string `json:"source" yaml:"source"`
	Page   Page   `json:"page"   yaml:"page"`
}

// ResetResponse reports what the backend cleared.
type ResetResponse struct {
	Status        string `json:"status"         yaml:"status"`
	FilesCleared  int    `json:"files_cleared"  yaml:"files_cleared"`
	ChunksCleared int    `json:"chunks_cleared" yaml:"chunks_cleared"`
}

// Page is a page reference that the backend sends either as a number or as a label.
// The original JSON token is kept so re-encoding reproduces it.
type Page struct {
	raw json.RawMessage
}

// UnmarshalJSON accepts a JSON number or string.
func (p *Page) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return fmt.Errorf("empty page value")
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
	case 'n':
		// null
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("page must be a number or string: %w", err)
		}
	}
	p.raw = append(p.raw[:0], b...)
	return nil
}

// MarshalJSON returns the original token.
func (p Page) MarshalJSON() ([]byte, error) {
	if len(p.raw) == 0 {
		return []byte("null"), nil
	}
	return p.raw, nil
}

// MarshalYAML renders numbers as numbers and labels as strings.
func (p Page) MarshalYAML() (any, error) {
	if len(p.raw) == 0 || string(p.raw) == "null" {
		return nil, nil
	}
	if p.raw[0] == '"' {
		return p.String(), nil
	}
	if n, err := strconv.ParseInt(string(p.raw), 10, 64); err == nil {
		return n, nil
	}
	return string(p.raw), nil
}

// String returns the page as text.
func (p Page) String() string {
	if len(p.raw) > 0 && p.raw[0] == '"' {
		var s string
		if err := json.Unmarshal(p.raw, &s); err == nil {
			return s
		}
	}
	if string(p.raw) == "null" {
		return ""
	}
	return string(p.raw)
}
