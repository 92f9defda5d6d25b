package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"sync"

	domainauth "github.com/target/mmk-rag-console/internal/domain/auth"
	"github.com/target/mmk-rag-console/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.TokenSlot     = (*MemoryTokenSlot)(nil)
	_ ports.TokenSlot     = (*FailingTokenSlot)(nil)
	_ ports.Authenticator = (*MockAuthenticator)(nil)
)

// MemoryTokenSlot is an in-memory durable slot. Sharing one instance between two
// credential stores simulates a process reload within the same console session.
type MemoryTokenSlot struct {
	mu    sync.Mutex
	token string
	set   bool

	Loads int
	Saves int
}

// NewMemoryTokenSlot creates an empty slot.
func NewMemoryTokenSlot() *MemoryTokenSlot {
	return &MemoryTokenSlot{}
}

func (m *MemoryTokenSlot) Load(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Loads++
	if !m.set {
		return "", ports.ErrTokenNotFound
	}
	return m.token, nil
}

func (m *MemoryTokenSlot) Save(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Saves++
	m.token, m.set = token, true
	return nil
}

func (m *MemoryTokenSlot) Delete(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token, m.set = "", false
	return nil
}

// Peek returns the slot contents without counting as a load.
func (m *MemoryTokenSlot) Peek() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.set
}

// ErrSlotUnavailable is returned by FailingTokenSlot for every operation.
var ErrSlotUnavailable = errors.New("durable storage unavailable")

// FailingTokenSlot simulates disabled or full durable storage.
type FailingTokenSlot struct{}

func (FailingTokenSlot) Load(context.Context) (string, error) { return "", ErrSlotUnavailable }

func (FailingTokenSlot) Save(context.Context, string) error { return ErrSlotUnavailable }

func (FailingTokenSlot) Delete(context.Context) error { return ErrSlotUnavailable }

// MockAuthenticator returns canned login results.
type MockAuthenticator struct {
	LoginFunc func(ctx context.Context, identifier, password string) (*domainauth.LoginResponse, error)

	// Token is returned when LoginFunc is nil.
	Token string

	Calls []domainauth.Credentials
}

func (m *MockAuthenticator) Login(ctx context.Context, identifier, password string) (*domainauth.LoginResponse, error) {
	m.Calls = append(m.Calls, domainauth.Credentials{Identifier: identifier, Password: password})
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, identifier, password)
	}
	return &domainauth.LoginResponse{AccessToken: m.Token, TokenType: "bearer"}, nil
}
