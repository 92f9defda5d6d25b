package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"strings"

	"github.com/target/mmk-rag-console/internal/domain/rag"
	apperrors "github.com/target/mmk-rag-console/internal/errors"
)

// UploadField is the multipart field every file is sent under.
const UploadField = "files"

// ProgressFunc receives the cumulative number of body bytes handed to the
// transport and the total body size. Calls are sequential but may come from a
// transport goroutine.
type ProgressFunc func(sent, total int64)

// UploadDocuments posts all files in one multipart body. onProgress may be nil.
// An empty file list is sent as-is; the backend decides whether it is valid.
func (c *Client) UploadDocuments(ctx context.Context, files []rag.File, onProgress ProgressFunc) (*rag.UploadResponse, error) {
	body, contentType, err := encodeMultipart(files)
	if err != nil {
		return nil, err
	}

	total := int64(len(body))
	var r io.Reader = bytes.NewReader(body)
	if onProgress != nil {
		r = &progressReader{r: r, total: total, fn: onProgress}
	}

	req := request{
		method:        http.MethodPost,
		path:          PathUpload,
		body:          r,
		contentType:   contentType,
		contentLength: total,
	}

	var out rag.UploadResponse
	if err := c.do(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// encodeMultipart buffers the body so its size is known up front; progress can
// then be reported against a fixed total.
func encodeMultipart(files []rag.File) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for i, f := range files {
		if f.Content == nil {
			return nil, "", apperrors.Internalf("file %d (%q) has no content", i, f.Name)
		}
		part, err := w.CreatePart(filePartHeader(f.Name))
		if err != nil {
			return nil, "", apperrors.Wrap(err, apperrors.ErrCodeInternal, "create multipart part")
		}
		if _, err := io.Copy(part, f.Content); err != nil {
			return nil, "", apperrors.Wrap(err, apperrors.ErrCodeInternal, fmt.Sprintf("read %q", f.Name))
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", apperrors.Wrap(err, apperrors.ErrCodeInternal, "close multipart writer")
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func filePartHeader(name string) textproto.MIMEHeader {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename="%s"`,
		UploadField, quoteEscaper.Replace(filepath.Base(name))))
	ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(name)))
	if ct == "" {
		ct = "application/octet-stream"
	}
	h.Set("Content-Type", ct)
	return h
}

// progressReader reports cumulative bytes read; the count never decreases and
// reaches total once the transport has consumed the whole body.
type progressReader struct {
	r     io.Reader
	sent  int64
	total int64
	fn    ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.sent += int64(n)
		p.fn(p.sent, p.total)
	}
	return n, err
}
