package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	domainauth "github.com/target/mmk-rag-console/internal/domain/auth"
	"github.com/target/mmk-rag-console/internal/domain/rag"
	apperrors "github.com/target/mmk-rag-console/internal/errors"
)

// Backend paths.
const (
	PathLogin   = "/auth/login"
	PathUpload  = "/rag/upload"
	PathProcess = "/rag/process"
	PathQuery   = "/rag/query"
	PathReset   = "/rag/reset"
)

const contentTypeJSON = "application/json"

func jsonRequest(method, path string, payload any) (request, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return request{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode "+method+" "+path)
	}
	return request{
		method:      method,
		path:        path,
		body:        bytes.NewReader(b),
		contentType: contentTypeJSON,
	}, nil
}

// Login posts credentials and returns the backend payload. It never reads or
// writes the credential store and its request carries no Authorization header.
func (c *Client) Login(ctx context.Context, identifier, password string) (*domainauth.LoginResponse, error) {
	req, err := jsonRequest(http.MethodPost, PathLogin, domainauth.Credentials{
		Identifier: identifier,
		Password:   password,
	})
	if err != nil {
		return nil, err
	}

	var out domainauth.LoginResponse
	if err := c.do(WithoutCredential(ctx), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ProcessDocuments triggers ingestion of previously uploaded documents.
func (c *Client) ProcessDocuments(ctx context.Context) (*rag.ProcessResponse, error) {
	var out rag.ProcessResponse
	if err := c.do(ctx, request{method: http.MethodPost, path: PathProcess}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// QueryRAG asks a question against the processed index.
func (c *Client) QueryRAG(ctx context.Context, question string) (*rag.QueryResponse, error) {
	req, err := jsonRequest(http.MethodPost, PathQuery, rag.QueryRequest{Question: question})
	if err != nil {
		return nil, err
	}

	var out rag.QueryResponse
	if err := c.do(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResetDocuments clears uploaded files and indexed chunks on the backend.
// Calling it repeatedly is safe.
func (c *Client) ResetDocuments(ctx context.Context) (*rag.ResetResponse, error) {
	var out rag.ResetResponse
	if err := c.do(ctx, request{method: http.MethodDelete, path: PathReset}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResetRAG is an alias of ResetDocuments; the backend exposes a single reset endpoint.
func (c *Client) ResetRAG(ctx context.Context) (*rag.ResetResponse, error) {
	return c.ResetDocuments(ctx)
}
