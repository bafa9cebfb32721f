package config

import (
	"strings"
	"time"
)

// AppConfig is the main client configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - storage.go: Durable token storage configuration
//   - output.go: CLI output configuration
type AppConfig struct {
	// BaseURL is the API base path all requests are made under.
	BaseURL string `env:"LUDIKA_BASE_URL" envDefault:"https://ludika.app/api/v1"`

	// Timeout bounds every HTTP request. The backend itself imposes none, so
	// a hung call would otherwise leave loading state stuck forever.
	Timeout time.Duration `env:"LUDIKA_HTTP_TIMEOUT" envDefault:"30s"`

	// Storage selects where the bearer token is persisted.
	Storage StorageConfig `envPrefix:"LUDIKA_STORAGE_"`

	// Output controls CLI rendering.
	Output OutputConfig `envPrefix:"LUDIKA_OUTPUT_"`
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.Timeout < time.Second {
		c.Timeout = time.Second
	}
	c.Storage.Sanitize()
}
