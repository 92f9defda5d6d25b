package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/target/mmk-rag-console/config"
	boltadapter "github.com/target/mmk-rag-console/internal/adapters/bolt"
	redisadapter "github.com/target/mmk-rag-console/internal/adapters/redis"
	"github.com/target/mmk-rag-console/internal/ports"
	"github.com/target/mmk-rag-console/internal/session"
)

// NewSessionID returns a fresh opaque console session id.
func NewSessionID() string {
	return uuid.NewString()
}

// ResolveSessionID returns the configured session id, or one derived from the
// parent process so each shell window keeps its own credential.
func ResolveSessionID(cfg config.SessionConfig) string {
	if cfg.ID != "" {
		return cfg.ID
	}
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "localhost"
	}
	return host + "-ppid-" + strconv.Itoa(os.Getppid())
}

// SlotOptions selects and configures the durable token slot.
type SlotOptions struct {
	Session   config.SessionConfig
	Redis     config.RedisConfig
	SessionID string
	Logger    *slog.Logger
}

func noopClose() error { return nil }

// OpenTokenSlot builds the durable slot for the configured backend. The
// returned close function must be called once the console is done with it.
//
//nolint:ireturn // the backend is chosen at runtime.
func OpenTokenSlot(ctx context.Context, opts SlotOptions) (ports.TokenSlot, func() error, error) {
	switch opts.Session.Backend {
	case config.SessionBackendMemory:
		return session.ProcessSlot{}, noopClose, nil

	case config.SessionBackendRedis:
		client, err := ConnectRedis(ctx, RedisOptions{RedisConfig: opts.Redis, Logger: opts.Logger})
		if err != nil {
			return nil, nil, err
		}
		slot, err := redisadapter.NewTokenSlot(client, redisadapter.TokenSlotOptions{
			SessionID: opts.SessionID,
			Name:      opts.Session.TokenKey,
			Prefix:    opts.Session.RedisPrefix,
			TTL:       opts.Session.TTL,
		})
		if err != nil {
			err = fmt.Errorf("create redis token slot: %w", err)
			if cerr := client.Close(); cerr != nil {
				err = errors.Join(err, fmt.Errorf("close redis client: %w", cerr))
			}
			return nil, nil, err
		}
		return slot, client.Close, nil

	case config.SessionBackendBolt, "":
		db, err := boltadapter.Open(opts.Session.BoltPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open token database: %w", err)
		}
		slot, err := db.Slot(boltadapter.SlotOptions{
			SessionID: opts.SessionID,
			Name:      opts.Session.TokenKey,
			TTL:       opts.Session.TTL,
		})
		if err != nil {
			err = fmt.Errorf("create bolt token slot: %w", err)
			if cerr := db.Close(); cerr != nil {
				err = errors.Join(err, fmt.Errorf("close token database: %w", cerr))
			}
			return nil, nil, err
		}
		return slot, db.Close, nil

	default:
		return nil, nil, fmt.Errorf("unsupported session backend %q", opts.Session.Backend)
	}
}
