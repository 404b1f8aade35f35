// Package config loads gqlcanvas settings from a TOML file.
//
// The file lives at ~/.config/gqlcanvas/config.toml unless a path is given
// explicitly. Every key is optional; missing keys take the values from
// [Default].
//
//	[server]
//	addr = ":8080"
//	read_header_timeout = "10s"
//
//	[layout]
//	mode = "precomputed"
//
//	[cache]
//	backend = "redis"
//	ttl = "168h"
//	[cache.redis]
//	addr = "localhost:6379"
//	prefix = "gqlcanvas:"
//
//	[store]
//	backend = "mongo"
//	ttl = "24h"
//	[store.mongo]
//	uri = "mongodb://localhost:27017"
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/gqlcanvas/pkg/errors"
	"github.com/matzehuels/gqlcanvas/pkg/layout"
)

// Backend names.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"

	StoreMemory = "memory"
	StoreFile   = "file"
	StoreMongo  = "mongo"
)

// Config is the decoded configuration file.
type Config struct {
	Server ServerConfig `toml:"server"`
	Layout LayoutConfig `toml:"layout"`
	Cache  CacheConfig  `toml:"cache"`
	Store  StoreConfig  `toml:"store"`
}

type ServerConfig struct {
	Addr              string   `toml:"addr"`
	ReadHeaderTimeout Duration `toml:"read_header_timeout"`
}

type LayoutConfig struct {
	Mode string `toml:"mode"`
}

type CacheConfig struct {
	Backend string      `toml:"backend"`
	Dir     string      `toml:"dir"`
	TTL     Duration    `toml:"ttl"`
	Redis   RedisConfig `toml:"redis"`
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

type StoreConfig struct {
	Backend string      `toml:"backend"`
	Dir     string      `toml:"dir"`
	TTL     Duration    `toml:"ttl"`
	Mongo   MongoConfig `toml:"mongo"`
}

type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Duration decodes TOML strings such as "10s" or "24h".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: Duration{10 * time.Second},
		},
		Layout: LayoutConfig{Mode: string(layout.ModePrecomputed)},
		Cache: CacheConfig{
			Backend: CacheFile,
			TTL:     Duration{7 * 24 * time.Hour},
			Redis:   RedisConfig{Addr: "localhost:6379", Prefix: "gqlcanvas:"},
		},
		Store: StoreConfig{
			Backend: StoreMemory,
			TTL:     Duration{24 * time.Hour},
			Mongo: MongoConfig{
				URI:        "mongodb://localhost:27017",
				Database:   "gqlcanvas",
				Collection: "canvases",
			},
		},
	}
}

// DefaultPath returns ~/.config/gqlcanvas/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", "gqlcanvas", "config.toml"), nil
}

// Load reads the file at path over the defaults. An empty path means
// [DefaultPath], and a missing default file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "load config %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidInput, "config %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, cfg.Validate()
}

// Validate checks backend names and the layout mode.
func (c Config) Validate() error {
	if _, err := layout.ParseMode(c.Layout.Mode); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "layout.mode")
	}
	switch c.Cache.Backend {
	case CacheFile, CacheRedis, CacheNone:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q (valid: file, redis, none)", c.Cache.Backend)
	}
	switch c.Store.Backend {
	case StoreMemory, StoreFile:
	case StoreMongo:
		if c.Store.Mongo.URI == "" {
			return errors.New(errors.ErrCodeInvalidInput, "store.mongo.uri is required for the mongo backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown store backend %q (valid: memory, file, mongo)", c.Store.Backend)
	}
	if c.Cache.TTL.Duration < 0 || c.Store.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "ttl cannot be negative")
	}
	return nil
}

// LayoutMode returns the configured layout mode.
func (c Config) LayoutMode() layout.Mode {
	m, _ := layout.ParseMode(c.Layout.Mode)
	return m
}
