package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	domainauth "github.com/target/mmk-rag-console/internal/domain/auth"
	apperrors "github.com/target/mmk-rag-console/internal/errors"
	"github.com/target/mmk-rag-console/internal/ports"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Gateway   ports.Authenticator
	Store     ports.CredentialStore
	SessionID string
	Logger    *slog.Logger
	// Now is used to flag expired tokens in Status. Defaults to time.Now.
	Now func() time.Time
}

// AuthService orchestrates login by coordinating the gateway and the credential store.
// It is the only code path that writes a freshly issued token.
type AuthService struct {
	gateway   ports.Authenticator
	store     ports.CredentialStore
	sessionID string
	logger    *slog.Logger
	now       func() time.Time
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &AuthService{
		gateway:   opts.Gateway,
		store:     opts.Store,
		sessionID: opts.SessionID,
		logger:    logger,
		now:       now,
	}
}

// Login submits credentials and commits the returned token before returning.
// Callers that wait for Login to return are guaranteed that their next request
// carries the new token. On failure the store is untouched and the gateway
// error is returned as-is.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*domainauth.LoginResponse, error) {
	resp, err := s.gateway.Login(ctx, identifier, password)
	if err != nil {
		return nil, err
	}
	token := resp.BearerToken()
	if token == "" {
		return nil, apperrors.Validation("login response carried no access token")
	}

	s.store.Set(ctx, token)
	s.logger.InfoContext(ctx, "login succeeded", "identifier", identifier, "session_id", s.sessionID)
	return resp, nil
}

// Logout forgets the current credential. It never contacts the backend.
func (s *AuthService) Logout(ctx context.Context) {
	s.store.Clear(ctx)
	s.logger.InfoContext(ctx, "logged out", "session_id", s.sessionID)
}

// Status reports whether a credential is present. When the token is a JWT its
// subject and expiry are decoded without verification, for display only.
func (s *AuthService) Status(ctx context.Context) domainauth.SessionStatus {
	status := domainauth.SessionStatus{SessionID: s.sessionID}

	token, ok := s.store.Get(ctx)
	if !ok {
		return status
	}
	status.Authenticated = true

	claims, err := unverifiedClaims(token)
	if err != nil {
		s.logger.DebugContext(ctx, "token is not a readable JWT", "error", err)
		return status
	}
	if sub, err := claims.GetSubject(); err == nil {
		status.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		status.ExpiresAt = exp.Time
		status.Expired = s.now().After(exp.Time)
	}
	return status
}

var errNotJWT = errors.New("token is not a JWT")

func unverifiedClaims(token string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, errors.Join(errNotJWT, err)
	}
	return claims, nil
}
