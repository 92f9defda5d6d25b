package ports

// Package ports defines interfaces (hexagonal ports) for session and gateway behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"
	"errors"

	domainauth "github.com/target/mmk-rag-console/internal/domain/auth"
)

// ErrTokenNotFound is returned by a TokenSlot that holds no token.
var ErrTokenNotFound = errors.New("token not found")

// TokenSlot is the durable, session-scoped slot behind the credential store.
// Its contents survive a process restart within the same console session.
type TokenSlot interface {
	// Load returns the persisted token or ErrTokenNotFound.
	Load(ctx context.Context) (string, error)
	// Save overwrites the persisted token.
	Save(ctx context.Context, token string) error
	// Delete removes the persisted token; deleting an empty slot is not an error.
	Delete(ctx context.Context) error
}

// CredentialReader is the read-only view of the credential store handed to the
// request pipeline and the navigation guard.
type CredentialReader interface {
	Get(ctx context.Context) (string, bool)
}

// CredentialStore is the full credential store contract.
type CredentialStore interface {
	CredentialReader
	Set(ctx context.Context, token string)
	Clear(ctx context.Context)
}

// Authenticator submits credentials to the backend and returns its payload untouched.
type Authenticator interface {
	Login(ctx context.Context, identifier, password string) (*domainauth.LoginResponse, error)
}
