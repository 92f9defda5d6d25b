package config

import "strings"

// APIConfig locates the backend gateway.
type APIConfig struct {
	BaseURL string `env:"API_BASE_URL"`
	// ViteBaseURL is read so a frontend .env can be reused unchanged.
	ViteBaseURL string `env:"VITE_API_BASE_URL"`
}

// Sanitize trims values and falls back to VITE_API_BASE_URL.
func (c *APIConfig) Sanitize() {
	c.BaseURL = strings.TrimSpace(c.BaseURL)
	c.ViteBaseURL = strings.TrimSpace(c.ViteBaseURL)
	if c.BaseURL == "" {
		c.BaseURL = c.ViteBaseURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
}
