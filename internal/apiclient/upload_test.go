package apiclient

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/mmk-rag-console/internal/domain/rag"
	apperrors "github.com/target/mmk-rag-console/internal/errors"
)

func TestUploadDocuments_ProgressIsMonotonicAndComplete(t *testing.T) {
	backend := &fakeBackend{}
	client, store := newTestClient(t, backend)
	ctx := context.Background()
	store.Set(ctx, "tok")

	files := []rag.File{
		{Name: "fileA.pdf", Content: bytes.NewReader(bytes.Repeat([]byte("a"), 256<<10))},
		{Name: "fileB.txt", Content: strings.NewReader("hello world")},
	}

	var (
		mu    sync.Mutex
		calls [][2]int64
	)
	resp, err := client.UploadDocuments(ctx, files, func(sent, total int64) {
		mu.Lock()
		defer mu.Unlock()
		calls = append(calls, [2]int64{sent, total})
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"fileA.pdf", "fileB.txt"}, resp.Uploaded)
	assert.Equal(t, 2, resp.TotalFiles)

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, calls)
	for i := 1; i < len(calls); i++ {
		assert.GreaterOrEqual(t, calls[i][0], calls[i-1][0], "progress went backwards at %d", i)
	}
	final := calls[len(calls)-1]
	assert.Equal(t, final[1], final[0], "final progress should equal total size")
	assert.Greater(t, final[1], int64(256<<10))
}

func TestUploadDocuments_NilProgress(t *testing.T) {
	backend := &fakeBackend{}
	client, _ := newTestClient(t, backend)

	resp, err := client.UploadDocuments(context.Background(), []rag.File{
		{Name: "only.md", Content: strings.NewReader("# doc")},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"only.md"}, resp.Uploaded)
}

func TestUploadDocuments_EmptyListIsSentToBackend(t *testing.T) {
	backend := &fakeBackend{handler: func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"detail":[{"msg":"Field required"}]}`)
	}}
	client, _ := newTestClient(t, backend)

	_, err := client.UploadDocuments(context.Background(), nil, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, PathUpload, backend.last(t).Path)
}

func TestUploadDocuments_NilContent(t *testing.T) {
	backend := &fakeBackend{}
	client, _ := newTestClient(t, backend)

	_, err := client.UploadDocuments(context.Background(), []rag.File{{Name: "x"}}, nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInternal, apperrors.GetCode(err))
	assert.Empty(t, backend.requests)
}

func TestFilePartHeader(t *testing.T) {
	h := filePartHeader("/tmp/reports/q3 \"final\".pdf")
	assert.Equal(t, `form-data; name="files"; filename="q3 \"final\".pdf"`, h.Get("Content-Disposition"))
	assert.Equal(t, "application/pdf", h.Get("Content-Type"))

	h = filePartHeader("blob.unknownext")
	assert.Equal(t, "application/octet-stream", h.Get("Content-Type"))
}
