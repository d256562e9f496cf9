// Package config loads dendro settings from a TOML file and the environment.
//
// Settings are resolved in order: built-in defaults, the config file,
// environment variables. Command-line flags override all of them and are
// applied by the caller.
//
//	# ~/.config/dendro/config.toml
//	[render]
//	link_style = "arc"
//	radius = 300
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	ttl = "24h"
package config

import (
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/Babdus/protolanguage-v2/pkg/errors"
)

// Environment variables read by ApplyEnv.
const (
	EnvRedisAddr = "DENDRO_REDIS_ADDR"
	EnvMongoURI  = "DENDRO_MONGO_URI"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

type Config struct {
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

type RenderConfig struct {
	LinkStyle     string   `toml:"link_style"`
	Radius        float64  `toml:"radius"`
	Margin        float64  `toml:"margin"`
	Formats       []string `toml:"formats"`
	BranchLengths bool     `toml:"branch_lengths"`
	LeavesAligned bool     `toml:"leaves_aligned"`
}

type CacheConfig struct {
	Backend       string        `toml:"backend"`
	Dir           string        `toml:"dir"`
	RedisAddr     string        `toml:"redis_addr"`
	RedisPassword string        `toml:"redis_password"`
	RedisDB       int           `toml:"redis_db"`
	TTL           time.Duration `toml:"ttl"`
}

type ServerConfig struct {
	Addr          string `toml:"addr"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
	MaxBodyBytes  int64  `toml:"max_body_bytes"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Render: RenderConfig{
			LinkStyle: "straight",
			Radius:    300,
			Margin:    120,
			Formats:   []string{"svg"},
		},
		Cache: CacheConfig{
			Backend: CacheFile,
			TTL:     24 * time.Hour,
		},
		Server: ServerConfig{
			Addr:          ":8080",
			MongoDatabase: "dendro",
			MaxBodyBytes:  4 << 20,
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/dendro/config.toml or the platform
// equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "dendro", "config.toml"), nil
}

// Load reads path over the defaults and applies environment overrides. An
// empty path means DefaultPath, which may be absent; an explicit path must
// exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			if explicit || !os.IsNotExist(err) {
				return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load %s", path)
			}
		}
	}

	cfg.ApplyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides service addresses from the environment.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvRedisAddr); v != "" {
		c.Cache.RedisAddr = v
		c.Cache.Backend = CacheRedis
	}
	if v := getenv(EnvMongoURI); v != "" {
		c.Server.MongoURI = v
	}
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	if c.Render.Radius <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "render.radius must be positive, got %v", c.Render.Radius)
	}
	if c.Render.Margin < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "render.margin must not be negative, got %v", c.Render.Margin)
	}
	if !slices.Contains([]string{CacheFile, CacheRedis, CacheNone}, c.Cache.Backend) {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend must be one of file, redis, none; got %q", c.Cache.Backend)
	}
	if c.Cache.Backend == CacheRedis && c.Cache.RedisAddr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.max_body_bytes must be positive")
	}
	return nil
}
