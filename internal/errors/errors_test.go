package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "error without cause",
			err: &AppError{
				Code:    ErrCodeValidation,
				Message: "request rejected",
			},
			want: "request rejected",
		},
		{
			name: "error with cause",
			err: &AppError{
				Code:    ErrCodeTransport,
				Message: "POST /rag/query",
				Cause:   errors.New("connection refused"),
			},
			want: "POST /rag/query: connection refused",
		},
		{
			name: "error with backend detail",
			err: &AppError{
				Code:    ErrCodeAuthRejected,
				Message: "POST /auth/login",
				Status:  http.StatusUnauthorized,
				Detail:  "Invalid credentials",
			},
			want: "POST /auth/login: Invalid credentials",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("AppError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Transport(cause, "dial")

	if unwrapped := err.Unwrap(); !errors.Is(unwrapped, cause) {
		t.Errorf("AppError.Unwrap() = %v, want %v", unwrapped, cause)
	}
	if !errors.Is(fmt.Errorf("outer: %w", err), cause) {
		t.Errorf("errors.Is through wrapping lost the cause")
	}
}

func TestTransport_NilCause(t *testing.T) {
	if err := Transport(nil, "noop"); err != nil {
		t.Errorf("Transport(nil) = %v, want nil", err)
	}
	if err := Wrap(nil, ErrCodeDecode, "noop"); err != nil {
		t.Errorf("Wrap(nil) = %v, want nil", err)
	}
}

func TestCodeForStatus(t *testing.T) {
	tests := []struct {
		status int
		want   ErrorCode
	}{
		{http.StatusUnauthorized, ErrCodeAuthRejected},
		{http.StatusForbidden, ErrCodeAuthRejected},
		{http.StatusBadRequest, ErrCodeValidation},
		{http.StatusUnprocessableEntity, ErrCodeValidation},
		{http.StatusInternalServerError, ErrCodeBackend},
		{http.StatusNotFound, ErrCodeBackend},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			if got := CodeForStatus(tt.status); got != tt.want {
				t.Errorf("CodeForStatus(%d) = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestIsHelpers(t *testing.T) {
	authErr := fmt.Errorf("login: %w", FromStatus(http.StatusUnauthorized, "POST /auth/login", "Invalid credentials"))
	if !IsAuthRejected(authErr) {
		t.Errorf("IsAuthRejected() = false, want true")
	}
	if IsValidation(authErr) || IsTransport(authErr) || IsBackend(authErr) {
		t.Errorf("auth error matched another code")
	}
	if GetStatus(authErr) != http.StatusUnauthorized {
		t.Errorf("GetStatus() = %d, want 401", GetStatus(authErr))
	}

	if !IsValidation(Validation("empty token")) {
		t.Errorf("IsValidation() = false, want true")
	}
	if !IsTransport(Transport(errors.New("eof"), "x")) {
		t.Errorf("IsTransport() = false, want true")
	}
	if GetCode(errors.New("plain")) != "" {
		t.Errorf("GetCode(plain) should be empty")
	}
	if GetCode(Internalf("bad %s", "url")) != ErrCodeInternal {
		t.Errorf("GetCode(Internalf) mismatch")
	}
}
