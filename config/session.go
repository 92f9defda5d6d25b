package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	domainauth "github.com/target/mmk-rag-console/internal/domain/auth"
)

// SessionBackend selects where the durable token slot lives.
type SessionBackend string

const (
	// SessionBackendBolt keeps tokens in a local bbolt file.
	SessionBackendBolt SessionBackend = "bolt"
	// SessionBackendRedis keeps tokens in Redis with a TTL.
	SessionBackendRedis SessionBackend = "redis"
	// SessionBackendMemory keeps tokens for the life of the process only.
	SessionBackendMemory SessionBackend = "memory"
)

// UnmarshalText implements encoding.TextUnmarshaler for SessionBackend.
func (b *SessionBackend) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "bolt", "redis", "memory":
		*b = SessionBackend(v)
		return nil
	default:
		return fmt.Errorf("invalid SessionBackend: %q (valid options: bolt, redis, memory)", v)
	}
}

const (
	defaultTokenKey = domainauth.TokenKey
	defaultTTL      = 12 * time.Hour
	boltFileName    = "tokens.db"
	appDirName      = "ragconsole"
)

// SessionConfig scopes the credential to one console session.
type SessionConfig struct {
	Backend SessionBackend `env:"SESSION_BACKEND" envDefault:"bolt"`

	// ID scopes the durable slot. Empty means derive one from the parent shell.
	ID string `env:"RAG_SESSION_ID"`

	TokenKey string        `env:"SESSION_TOKEN_KEY" envDefault:"lab_auth_token"`
	TTL      time.Duration `env:"SESSION_TTL"       envDefault:"12h"`

	RedisPrefix string `env:"SESSION_REDIS_PREFIX" envDefault:"rag:token:"`
	BoltPath    string `env:"SESSION_BOLT_PATH"`
}

// Sanitize fills defaults that cannot be expressed as static tags.
func (c *SessionConfig) Sanitize() {
	c.ID = strings.TrimSpace(c.ID)
	if c.Backend == "" {
		c.Backend = SessionBackendBolt
	}
	if c.TokenKey = strings.TrimSpace(c.TokenKey); c.TokenKey == "" {
		c.TokenKey = defaultTokenKey
	}
	if c.TTL == 0 {
		c.TTL = defaultTTL
	}
	if c.BoltPath = strings.TrimSpace(c.BoltPath); c.BoltPath == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			c.BoltPath = filepath.Join(dir, appDirName, boltFileName)
		}
	}
}
