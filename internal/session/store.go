// Package session holds the console's credential store: a process-local fast
// slot in front of a durable, session-scoped TokenSlot.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/target/mmk-rag-console/internal/ports"
	"golang.org/x/sync/singleflight"
)

// Compile-time conformance.
var _ ports.CredentialStore = (*Store)(nil)

// StoreOptions groups dependencies for Store.
type StoreOptions struct {
	// Slot is the durable backing slot. Nil keeps the token for the life of the process.
	Slot ports.TokenSlot
	// Logger receives warnings about durable slot failures. Defaults to slog.Default().
	Logger *slog.Logger
}

// Store owns the bearer token. Durable persistence is best-effort: a failing
// slot never hides the in-memory value from readers.
type Store struct {
	slot   ports.TokenSlot
	logger *slog.Logger

	// writeMu serializes Set/Clear so the fast and durable slots see writes in the same order.
	writeMu sync.Mutex

	mu      sync.RWMutex
	token   string
	present bool
	// gen increments on every Set/Clear; a durable load only repopulates the
	// fast slot if no write happened while it was in flight.
	gen uint64

	loads singleflight.Group
}

// NewStore creates a Store over the given durable slot.
func NewStore(opts StoreOptions) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	slot := opts.Slot
	if slot == nil {
		slot = ProcessSlot{}
	}
	return &Store{
		slot:   slot,
		logger: logger,
	}
}

// Set replaces the current token. Last writer wins.
func (s *Store) Set(ctx context.Context, token string) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	s.token, s.present = token, true
	s.gen++
	s.mu.Unlock()

	if err := s.slot.Save(ctx, token); err != nil {
		s.logger.WarnContext(ctx, "persist token failed; keeping in-memory copy", "error", err)
	}
}

// Get returns the current token. The fast slot is consulted first; on a miss the
// durable slot is read and, if it holds a token, the fast slot is repopulated.
func (s *Store) Get(ctx context.Context) (string, bool) {
	s.mu.RLock()
	token, present, gen := s.token, s.present, s.gen
	s.mu.RUnlock()
	if present {
		return token, true
	}

	v, _, _ := s.loads.Do("token", func() (any, error) {
		return s.loadDurable(ctx, gen), nil
	})
	res, _ := v.(loadResult)
	return res.token, res.found
}

type loadResult struct {
	token string
	found bool
}

func (s *Store) loadDurable(ctx context.Context, gen uint64) loadResult {
	token, err := s.slot.Load(ctx)
	if err != nil {
		if !errors.Is(err, ports.ErrTokenNotFound) {
			s.logger.WarnContext(ctx, "load persisted token failed", "error", err)
		}
		return loadResult{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		// A write landed while the durable read was in flight; it wins.
		return loadResult{token: s.token, found: s.present}
	}
	s.token, s.present = token, true
	return loadResult{token: token, found: true}
}

// Clear removes the token from both slots. Clearing an empty store is a no-op.
func (s *Store) Clear(ctx context.Context) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	s.token, s.present = "", false
	s.gen++
	s.mu.Unlock()

	if err := s.slot.Delete(ctx); err != nil {
		s.logger.WarnContext(ctx, "delete persisted token failed", "error", err)
	}
}

// Authenticated reports whether a credential is present. It does not check expiry.
func (s *Store) Authenticated(ctx context.Context) bool {
	_, ok := s.Get(ctx)
	return ok
}

// ProcessSlot is a durable slot that persists nothing. A Store over it only
// remembers the token in its fast slot.
type ProcessSlot struct{}

var _ ports.TokenSlot = ProcessSlot{}

func (ProcessSlot) Load(context.Context) (string, error) { return "", ports.ErrTokenNotFound }
func (ProcessSlot) Save(context.Context, string) error { return nil }
func (ProcessSlot) Delete(context.Context) error { return nil }
