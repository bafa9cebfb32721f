package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// StorageMode selects the durable token storage backend.
type StorageMode string

const (
	// StorageModeFile keeps the token in a local file (interactive client).
	StorageModeFile StorageMode = "file"
	// StorageModeRedis keeps the token in Redis (shared/server deployments).
	StorageModeRedis StorageMode = "redis"
	// StorageModeNone disables persistence entirely: the non-interactive
	// execution context, where sessions live only in memory.
	StorageModeNone StorageMode = "none"
)

// UnmarshalText implements encoding.TextUnmarshaler for StorageMode.
func (m *StorageMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "file", "redis", "none":
		*m = StorageMode(v)
		return nil
	default:
		return fmt.Errorf("invalid StorageMode: %q (valid options: file, redis, none)", v)
	}
}

// RedisConfig contains connection settings for the Redis token store.
type RedisConfig struct {
	Addr     string `env:"ADDR"     envDefault:"localhost:6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB"       envDefault:"0"`
}

// StorageConfig groups durable token storage configuration.
type StorageConfig struct {
	// Mode determines which token store backs the session.
	Mode StorageMode `env:"MODE" envDefault:"file"`

	// Path is the token file location (used when Mode=file).
	Path string `env:"PATH" envDefault:"~/.config/ludika/token"`

	// Key is the storage key holding the token (used when Mode=redis).
	Key string `env:"KEY" envDefault:"ludika_auth_token"`

	// Redis connection settings (used when Mode=redis).
	Redis RedisConfig `envPrefix:"REDIS_"`
}

// Sanitize expands a leading ~ in the token file path.
func (c *StorageConfig) Sanitize() {
	c.Path = strings.TrimSpace(c.Path)
	if c.Path == "~" || strings.HasPrefix(c.Path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			c.Path = filepath.Join(home, strings.TrimPrefix(c.Path[1:], "/"))
		}
	}
}
