// Package bolt provides a bbolt-backed durable token slot for single-host operators.
package bolt

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/target/mmk-rag-console/internal/ports"
	"go.etcd.io/bbolt"
)

var bucketTokens = []byte("tokens")

// lockTimeout bounds how long an operation waits for another console
// holding the file.
const lockTimeout = 1 * time.Second

// DB is a token database file shared by several console sessions, each keyed
// by its session ID. The file is only opened for the duration of one slot
// operation, so concurrent consoles never hold the lock for longer than a
// single transaction.
type DB struct {
	path string
}

// Open prepares the token database at path, creating it and its bucket if needed.
func Open(path string) (*DB, error) {
	if path == "" {
		return nil, errors.New("bolt path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	d := &DB{path: path}
	err := d.update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketTokens)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create buckets: %w", err)
	}
	return d, nil
}

// Close is a no-op kept so callers can treat every backend alike.
func (d *DB) Close() error {
	return nil
}

// view runs fn under a shared lock.
func (d *DB) view(fn func(*bbolt.Tx) error) error {
	db, err := bbolt.Open(d.path, 0o600, &bbolt.Options{Timeout: lockTimeout, ReadOnly: true})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	return closeAfter(db, db.View(fn))
}

// update runs fn under the exclusive lock.
func (d *DB) update(fn func(*bbolt.Tx) error) error {
	db, err := bbolt.Open(d.path, 0o600, &bbolt.Options{Timeout: lockTimeout})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	return closeAfter(db, db.Update(fn))
}

func closeAfter(db *bbolt.DB, err error) error {
	if cerr := db.Close(); cerr != nil {
		err = errors.Join(err, fmt.Errorf("close database: %w", cerr))
	}
	return err
}

// SlotOptions configures a TokenSlot.
type SlotOptions struct {
	SessionID string
	// Name is the fixed token key within the session (e.g. "lab_auth_token").
	Name string
	// TTL of zero keeps the token until deleted.
	TTL time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

// Slot returns the token slot for one console session.
func (d *DB) Slot(opts SlotOptions) (*TokenSlot, error) {
	if opts.SessionID == "" {
		return nil, errors.New("session ID cannot be empty")
	}
	key := opts.SessionID
	if opts.Name != "" {
		key += "/" + opts.Name
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &TokenSlot{db: d, key: []byte(key), ttl: opts.TTL, now: now}, nil
}

// TokenSlot stores one token under a session-scoped key. bbolt has no native
// expiry, so the deadline is stored next to the token and checked on load.
type TokenSlot struct {
	db  *DB
	key []byte
	ttl time.Duration
	now func() time.Time
}

// tokenRecord is stored CBOR-encoded. A zero ExpiresAt never expires.
type tokenRecord struct {
	Token     string    `cbor:"1,keyasint"`
	ExpiresAt time.Time `cbor:"2,keyasint"`
}

var _ ports.TokenSlot = (*TokenSlot)(nil)

func (s *TokenSlot) Load(ctx context.Context) (string, error) {
	var (
		rec   tokenRecord
		found bool
	)
	err := s.db.view(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketTokens)
		if b == nil {
			return nil
		}
		v := b.Get(s.key)
		if v == nil {
			return nil
		}
		found = true
		return cbor.Unmarshal(v, &rec)
	})
	if errors.Is(err, fs.ErrNotExist) {
		return "", ports.ErrTokenNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	if !found {
		return "", ports.ErrTokenNotFound
	}
	if !rec.ExpiresAt.IsZero() && s.now().After(rec.ExpiresAt) {
		if err := s.Delete(ctx); err != nil {
			return "", fmt.Errorf("cleanup expired token: %w", err)
		}
		return "", ports.ErrTokenNotFound
	}
	return rec.Token, nil
}

func (s *TokenSlot) Save(_ context.Context, token string) error {
	rec := tokenRecord{Token: token}
	if s.ttl > 0 {
		rec.ExpiresAt = s.now().Add(s.ttl)
	}
	v, err := cbor.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode token: %w", err)
	}
	err = s.db.update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketTokens)
		if err != nil {
			return err
		}
		return b.Put(s.key, v)
	})
	if err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}

func (s *TokenSlot) Delete(_ context.Context) error {
	err := s.db.update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketTokens)
		if b == nil {
			return nil
		}
		return b.Delete(s.key)
	})
	if err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}
