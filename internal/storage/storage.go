package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"

	defaultSQLitePath  = "job-tracker.db"
	defaultRedisPrefix = "job-tracker:"
)

// ErrNotFound is returned by Get when the key holds no value.
var ErrNotFound = errors.New("key not found")

// Store is an opaque key-value store for small pieces of user state.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Config selects and configures a storage backend.
type Config struct {
	Driver  string `mapstructure:"driver"`
	Path    string `mapstructure:"path"`
	URL     string `mapstructure:"url"`
	// URLFile points to a file holding the redis url. It takes precedence
	// over URL since the url usually carries a password.
	URLFile string `mapstructure:"url_file"`
	Prefix  string `mapstructure:"prefix"`
}

func (c *Config) redisURL() (string, error) {
	file := strings.TrimSpace(c.URLFile)
	if file == "" {
		return strings.TrimSpace(c.URL), nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("reading redis url from file %q: %w", file, err)
	}

	url := strings.TrimSpace(string(data))
	if url == "" {
		return "", fmt.Errorf("redis url file %q is empty", file)
	}
	return url, nil
}

// Open builds the backend named by cfg.Driver. SQLite is used when no driver is set.
func Open(ctx context.Context, cfg *Config) (Store, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	switch driver {
	case DriverMemory:
		return NewMemory(), nil
	case "", DriverSQLite:
		path := strings.TrimSpace(cfg.Path)
		if path == "" {
			path = defaultSQLitePath
		}
		return OpenSQLite(ctx, path)
	case DriverRedis:
		prefix := cfg.Prefix
		if prefix == "" {
			prefix = defaultRedisPrefix
		}
		url, err := cfg.redisURL()
		if err != nil {
			return nil, err
		}
		return OpenRedis(ctx, url, prefix)
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Driver)
	}
}
