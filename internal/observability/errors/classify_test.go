package errors

import (
	"context"
	goerrors "errors"
	"fmt"
	"net"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	apperrors "github.com/target/mmk-rag-console/internal/errors"
)

func TestClassify(t *testing.T) {
	opErr := &net.OpError{Op: "dial", Net: "tcp", Err: goerrors.New("connection refused")}

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"plain", goerrors.New("boom"), "errors_errorstring"},
		{"wrapped stdlib", fmt.Errorf("outer: %w", context.DeadlineExceeded), "context_deadlineexceedederror"},
		{"auth rejected", apperrors.FromStatus(http.StatusUnauthorized, "POST /rag/query", ""), "auth_rejected"},
		{"wrapped app error", fmt.Errorf("login: %w", apperrors.Validation("no token")), "validation"},
		{"transport keeps cause type", apperrors.Transport(opErr, "POST /auth/login"), "transport:errors_errorstring"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}
