package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Babdus/protolanguage-v2/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default() is invalid: %v", err)
	}
	if cfg.Render.LinkStyle != "straight" || cfg.Render.Radius != 300 {
		t.Errorf("unexpected render defaults: %+v", cfg.Render)
	}
	if cfg.Cache.Backend != CacheFile || cfg.Cache.TTL != 24*time.Hour {
		t.Errorf("unexpected cache defaults: %+v", cfg.Cache)
	}
}

func TestLoad(t *testing.T) {
	t.Setenv(EnvRedisAddr, "")
	t.Setenv(EnvMongoURI, "")

	path := writeConfig(t, `
[render]
link_style = "arc"
radius = 450
formats = ["svg", "json"]
branch_lengths = true

[cache]
backend = "none"
ttl = "90m"

[server]
addr = ":9090"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Render.LinkStyle != "arc" || cfg.Render.Radius != 450 || !cfg.Render.BranchLengths {
		t.Errorf("render = %+v", cfg.Render)
	}
	if len(cfg.Render.Formats) != 2 {
		t.Errorf("formats = %v", cfg.Render.Formats)
	}
	if cfg.Render.Margin != 120 {
		t.Errorf("margin = %v, want default 120", cfg.Render.Margin)
	}
	if cfg.Cache.Backend != CacheNone || cfg.Cache.TTL != 90*time.Minute {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Server.Addr != ":9090" || cfg.Server.MongoDatabase != "dendro" {
		t.Errorf("server = %+v", cfg.Server)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{"missing explicit file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.toml") }},
		{"bad syntax", func(t *testing.T) string { return writeConfig(t, "[render\nradius = ") }},
		{"bad radius", func(t *testing.T) string { return writeConfig(t, "[render]\nradius = -1\n") }},
		{"bad backend", func(t *testing.T) string { return writeConfig(t, "[cache]\nbackend = \"memcached\"\n") }},
		{"redis without addr", func(t *testing.T) string { return writeConfig(t, "[cache]\nbackend = \"redis\"\n") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvRedisAddr, "")
			_, err := Load(tt.path(t))
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Load() error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestLoad_DefaultPathMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvRedisAddr, "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if cfg.Render.Radius != Default().Render.Radius {
		t.Errorf("expected defaults, got %+v", cfg.Render)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvRedisAddr: "redis:6379",
		EnvMongoURI:  "mongodb://mongo:27017",
	}
	cfg := Default()
	cfg.ApplyEnv(func(k string) string { return env[k] })

	if cfg.Cache.Backend != CacheRedis || cfg.Cache.RedisAddr != "redis:6379" {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Server.MongoURI != "mongodb://mongo:27017" {
		t.Errorf("mongo uri = %q", cfg.Server.MongoURI)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}
