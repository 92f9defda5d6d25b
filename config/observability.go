package config

import (
	"log/slog"
	"strings"
)

// ObservabilityConfig controls console logging. Logs go to stderr so command
// output on stdout stays machine-readable.
type ObservabilityConfig struct {
	LogLevel  string `env:"LOG_LEVEL"  envDefault:""`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

// Sanitize normalises the level and format. An unset level means debug in dev
// mode and warn otherwise.
func (c *ObservabilityConfig) Sanitize(isDev bool) {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = "warn"
		if isDev {
			c.LogLevel = "debug"
		}
	}
	switch c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat)); c.LogFormat {
	case "json", "text":
	default:
		c.LogFormat = "json"
	}
}

// Level maps LogLevel onto slog; unknown names fall back to info.
func (c ObservabilityConfig) Level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
