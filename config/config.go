package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// AppConfig is the console configuration, composed from the domain-specific
// structs in this package.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - api.go: backend gateway address
//   - session.go: console session and durable token slot
//   - database.go: Redis connection (SESSION_BACKEND=redis)
//   - observability.go: logging
type AppConfig struct {
	// IsDev controls development mode behavior (debug logging by default).
	// Set DEV=true or NODE_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	API     APIConfig
	Session SessionConfig

	// Redis is only dialed when Session.Backend is redis.
	Redis RedisConfig `envPrefix:"REDIS_"`

	Observability ObservabilityConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.detectDevMode()

	c.API.Sanitize()
	c.Session.Sanitize()
	c.Redis.Sanitize()
	c.Observability.Sanitize(c.IsDev)
}

// Validate reports settings that cannot work together. It runs after Sanitize.
func (c *AppConfig) Validate() error {
	var errs []error
	if c.API.BaseURL == "" {
		errs = append(errs, errors.New("API_BASE_URL (or VITE_API_BASE_URL) is required"))
	}
	switch c.Session.Backend {
	case SessionBackendBolt:
		if c.Session.BoltPath == "" {
			errs = append(errs, errors.New("SESSION_BOLT_PATH is required when no user config directory is available"))
		}
	case SessionBackendRedis:
		if c.Redis.URI == "" && !c.Redis.UseCluster && !c.Redis.UseSentinel {
			errs = append(errs, errors.New("REDIS_URI is required for the redis session backend"))
		}
	}
	if c.Session.TTL < 0 {
		errs = append(errs, fmt.Errorf("SESSION_TTL must not be negative, got %s", c.Session.TTL))
	}
	return errors.Join(errs...)
}

// detectDevMode checks both DEV and NODE_ENV environment variables.
// NODE_ENV is checked as a fallback (common in frontend tooling).
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}
