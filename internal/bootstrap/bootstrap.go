package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/TheManchineel/ludika-go/config"
	"github.com/TheManchineel/ludika-go/internal/adapters/tokenfile"
	"github.com/TheManchineel/ludika-go/internal/adapters/tokenredis"
	"github.com/TheManchineel/ludika-go/internal/ports"
)

// InitLogger initializes the structured logger.
func InitLogger() *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)
	return logger
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (config.AppConfig, error) {
	// Load .env file if it exists (development)
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return config.AppConfig{}, fmt.Errorf("load .env file: %w", err)
		}
	}

	var cfg config.AppConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	cfg.Sanitize()
	return cfg, nil
}

// NewTokenStore selects the durable token storage backend from configuration.
//
//nolint:ireturn // Callers program against the TokenStore interface.
func NewTokenStore(cfg config.StorageConfig) (ports.TokenStore, error) {
	switch cfg.Mode {
	case config.StorageModeFile:
		store, err := tokenfile.New(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("create file token store: %w", err)
		}
		return store, nil
	case config.StorageModeRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		store, err := tokenredis.New(tokenredis.Options{Client: client, Key: cfg.Key})
		if err != nil {
			return nil, fmt.Errorf("create redis token store: %w", err)
		}
		return store, nil
	case config.StorageModeNone:
		return ports.NoopTokenStore{}, nil
	default:
		return nil, fmt.Errorf("unknown storage mode %q", cfg.Mode)
	}
}
