package auth

// Package auth contains domain-level types for console authentication.
// It is pure and free of framework/adapter concerns.

import "time"

// TokenKey is the fixed key under which the bearer token is persisted in the durable slot.
const TokenKey = "lab_auth_token"

// Credentials are what the operator types at the login prompt.
type Credentials struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// LoginResponse is the backend's answer to a successful login. Gateways that
// answer with a bare {"token": ...} fill Token instead of AccessToken.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Token       string `json:"token,omitempty"`
}

// BearerToken returns AccessToken when present, otherwise Token.
func (r *LoginResponse) BearerToken() string {
	if r == nil {
		return ""
	}
	if r.AccessToken != "" {
		return r.AccessToken
	}
	return r.Token
}

// SessionStatus describes the local view of the current credential.
// Claims are read without signature verification and are informational only.
type SessionStatus struct {
	Authenticated bool      `json:"authenticated"         yaml:"authenticated"`
	SessionID     string    `json:"session_id,omitempty"  yaml:"session_id,omitempty"`
	Subject       string    `json:"subject,omitempty"     yaml:"subject,omitempty"`
	ExpiresAt     time.Time `json:"expires_at,omitzero"   yaml:"expires_at,omitempty"`
	Expired       bool      `json:"expired,omitempty"     yaml:"expired,omitempty"`
}
