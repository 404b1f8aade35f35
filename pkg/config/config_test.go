package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/gqlcanvas/pkg/errors"
	"github.com/matzehuels/gqlcanvas/pkg/layout"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[server]
addr = ":9090"
read_header_timeout = "3s"

[layout]
mode = "deferred"

[cache]
backend = "redis"
[cache.redis]
addr = "redis:6379"
db = 2

[store]
backend = "mongo"
ttl = "1h"
[store.mongo]
uri = "mongodb://db:27017"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":9090" || cfg.Server.ReadHeaderTimeout.Duration != 3*time.Second {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.LayoutMode() != layout.ModeDeferred {
		t.Errorf("mode = %v", cfg.LayoutMode())
	}
	if cfg.Cache.Redis.Addr != "redis:6379" || cfg.Cache.Redis.DB != 2 {
		t.Errorf("redis = %+v", cfg.Cache.Redis)
	}
	// Unset keys keep their defaults.
	if cfg.Cache.Redis.Prefix != "gqlcanvas:" {
		t.Errorf("redis prefix = %q, want default", cfg.Cache.Redis.Prefix)
	}
	if cfg.Store.Mongo.Database != "gqlcanvas" || cfg.Store.TTL.Duration != time.Hour {
		t.Errorf("store = %+v", cfg.Store)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax", `[server`},
		{"unknown key", "[server]\nport = 8080\n"},
		{"bad mode", "[layout]\nmode = \"grid\"\n"},
		{"bad cache backend", "[cache]\nbackend = \"memcached\"\n"},
		{"bad store backend", "[store]\nbackend = \"sqlite\"\n"},
		{"bad duration", "[server]\nread_header_timeout = \"soon\"\n"},
		{"mongo without uri", "[store]\nbackend = \"mongo\"\n[store.mongo]\nuri = \"\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("expected error")
			}
			if code := errors.GetCode(err); code != errors.ErrCodeInvalidInput {
				t.Errorf("code = %v, want %v", code, errors.ErrCodeInvalidInput)
			}
		})
	}
}

func TestLoadMissingExplicitPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Fatal("expected error for missing explicit path")
	}
}
