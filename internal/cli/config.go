package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/careless-canvas/canvasnml/pkg/cache"
)

// Config holds user preferences read from ~/.config/canvas/config.toml.
// All fields are optional; zero values fall back to built-in defaults.
type Config struct {
	// Author is stamped into documents created by `canvas new`.
	Author string `toml:"author"`

	// Theme is the default canvas theme for new documents: "light" or "dark".
	Theme string `toml:"theme"`

	Cache CacheConfig `toml:"cache"`
}

// CacheConfig selects and tunes the render cache backend.
type CacheConfig struct {
	// Backend is "file" (default), "redis" or "none".
	Backend string `toml:"backend"`

	// TTLDays bounds how long cached renders are kept. Zero uses the
	// built-in default.
	TTLDays int `toml:"ttl_days"`

	// Dir overrides the file cache location.
	Dir string `toml:"dir"`

	Redis RedisConfig `toml:"redis"`
}

// RedisConfig configures the redis cache backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// configDir returns the canvas config directory (~/.config/canvas).
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", "canvas"), nil
}

// configPath returns the config file location.
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// loadConfig reads the user config. A missing file yields the zero config;
// a malformed file is an error so typos don't silently revert preferences.
func loadConfig() (Config, error) {
	path, err := configPath()
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// cacheDir returns the render cache directory, honoring the config override.
func cacheDir() (string, error) {
	cfg, err := loadConfig()
	if err != nil {
		return "", err
	}
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "cache"), nil
}

// cacheTTL returns the configured render cache TTL.
func cacheTTL(cfg Config) time.Duration {
	if cfg.Cache.TTLDays > 0 {
		return time.Duration(cfg.Cache.TTLDays) * 24 * time.Hour
	}
	return cache.DefaultTTL
}

// openCache builds the cache backend selected by the config.
// noCache forces the null backend regardless of configuration.
func openCache(ctx context.Context, cfg Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Cache.Backend {
	case "", "file":
		dir, err := cacheDir()
		if err != nil {
			return nil, err
		}
		return cache.NewFileCache(dir)
	case "redis":
		addr := cfg.Cache.Redis.Addr
		if addr == "" {
			addr = "localhost:6379"
		}
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
	case "none":
		return cache.NewNullCache(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q (must be 'file', 'redis', or 'none')", cfg.Cache.Backend)
	}
}
