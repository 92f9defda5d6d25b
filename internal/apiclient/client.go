// Package apiclient is the single outgoing pipeline to the RAG backend.
// Every request passes through one credential-decorating transport.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/target/mmk-rag-console/internal/errors"
	obserrors "github.com/target/mmk-rag-console/internal/observability/errors"
	"github.com/target/mmk-rag-console/internal/ports"
)

const (
	// maxResponseBytes bounds how much of a response body is buffered.
	maxResponseBytes = 16 << 20
	// maxDetailBytes bounds non-JSON error bodies copied into AppError.Detail.
	maxDetailBytes = 512
)

// Options groups dependencies for Client.
type Options struct {
	// BaseURL is the backend root, e.g. "https://rag.example.com" or "http://localhost:8000/api".
	BaseURL string
	// Credentials is read before every request. Required.
	Credentials ports.CredentialReader
	// HTTPClient is optional. Its Transport is wrapped, never replaced; its
	// Timeout (none by default) is honored as-is.
	HTTPClient *http.Client
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Client exposes the backend's typed operations.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	logger  *slog.Logger
}

var _ ports.Authenticator = (*Client)(nil)

// New creates a Client bound to one base URL.
func New(opts Options) (*Client, error) {
	if opts.Credentials == nil {
		return nil, errors.New("credential reader is required")
	}
	base, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}

	var hc http.Client
	if opts.HTTPClient != nil {
		hc = *opts.HTTPClient
	}
	inner := hc.Transport
	if inner == nil {
		inner = http.DefaultTransport
	}
	hc.Transport = &credentialTransport{base: inner, creds: opts.Credentials}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL: base,
		http:    &hc,
		logger:  logger,
	}, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, apperrors.Internalf("API base URL is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "parse API base URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, apperrors.Internalf("API base URL must be http or https, got %q", raw)
	}
	if u.Host == "" {
		return nil, apperrors.Internalf("API base URL has no host: %q", raw)
	}
	return u, nil
}

// BaseURL returns the configured backend root.
func (c *Client) BaseURL() string { return c.baseURL.String() }

// request describes one backend call.
type request struct {
	method      string
	path        string
	body        io.Reader
	contentType string
	// contentLength is set for bodies whose size net/http cannot infer.
	contentLength int64
}

func (r request) label() string { return r.method + " " + r.path }

// do dispatches req exactly once and decodes a 2xx JSON body into out.
func (c *Client) do(ctx context.Context, req request, out any) error {
	target := c.baseURL.JoinPath(req.path)

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target.String(), req.body)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "build "+req.label())
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}
	if req.contentLength > 0 {
		httpReq.ContentLength = req.contentLength
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.logger.DebugContext(ctx, "api call failed",
			slog.String("method", req.method),
			slog.String("path", req.path),
			slog.Duration("duration", time.Since(start)),
			slog.String("error_type", obserrors.Classify(err)),
			slog.Any("error", err))
		return apperrors.Transport(err, req.label())
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.DebugContext(ctx, "close response body", "error", cerr)
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	c.logger.DebugContext(ctx, "api call",
		slog.String("method", req.method),
		slog.String("path", req.path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)))
	if err != nil {
		return apperrors.Transport(err, "read "+req.label())
	}
	if len(body) > maxResponseBytes {
		return &apperrors.AppError{
			Code:    apperrors.ErrCodeBackend,
			Message: fmt.Sprintf("%s: response too large (over %d bytes)", req.label(), maxResponseBytes),
			Status:  resp.StatusCode,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apperrors.FromStatus(resp.StatusCode, req.label(), errorDetail(body))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		appErr := apperrors.Wrap(err, apperrors.ErrCodeDecode, "decode "+req.label())
		appErr.Status = resp.StatusCode
		return appErr
	}
	return nil
}

// errorDetail extracts the backend's "detail" field, falling back to the raw body.
func errorDetail(body []byte) string {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return ""
	}

	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Detail) > 0 {
		var s string
		if json.Unmarshal(envelope.Detail, &s) == nil {
			return s
		}
		var compact bytes.Buffer
		if json.Compact(&compact, envelope.Detail) == nil {
			return compact.String()
		}
	}

	if len(body) > maxDetailBytes {
		return fmt.Sprintf("%s…", body[:maxDetailBytes])
	}
	return string(body)
}
