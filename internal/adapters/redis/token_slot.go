package redis

// Package redis provides Redis-based adapters for the console.

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/target/mmk-rag-console/internal/ports"
)

// DefaultPrefix namespaces token keys.
const DefaultPrefix = "rag:token:"

// TokenSlot is a Redis-backed durable slot for one console session.
// The key expires after the configured TTL, which ends the session.
type TokenSlot struct {
	client redis.UniversalClient
	key    string
	ttl    time.Duration
}

var _ ports.TokenSlot = (*TokenSlot)(nil)

// TokenSlotOptions configures a TokenSlot.
type TokenSlotOptions struct {
	SessionID string
	// Name is the fixed token key within the session (e.g. "lab_auth_token").
	Name string
	// Prefix defaults to DefaultPrefix.
	Prefix string
	// TTL of zero keeps the key until deleted.
	TTL time.Duration
}

// NewTokenSlot creates a Redis token slot scoped to a console session.
func NewTokenSlot(client redis.UniversalClient, opts TokenSlotOptions) (*TokenSlot, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	if opts.SessionID == "" {
		return nil, errors.New("session ID cannot be empty")
	}
	prefix := opts.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	key := prefix + opts.SessionID
	if opts.Name != "" {
		key += ":" + opts.Name
	}
	return &TokenSlot{
		client: client,
		key:    key,
		ttl:    opts.TTL,
	}, nil
}

// Key returns the Redis key backing this slot.
func (s *TokenSlot) Key() string { return s.key }

func (s *TokenSlot) Load(ctx context.Context) (string, error) {
	token, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ports.ErrTokenNotFound
		}
		return "", fmt.Errorf("redis get: %w", err)
	}
	return token, nil
}

func (s *TokenSlot) Save(ctx context.Context, token string) error {
	if err := s.client.Set(ctx, s.key, token, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *TokenSlot) Delete(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
