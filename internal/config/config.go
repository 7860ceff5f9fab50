// Package config loads cargoassist settings from a TOML file.
//
// Settings are layered: built-in defaults, then the config file, then
// command-line flags applied by the caller. The default file location is
// $XDG_CONFIG_HOME/cargoassist/config.toml (~/.config/... when unset); a
// missing default file is not an error.
package config

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/cargoassist/pkg/cratedata"
	"github.com/matzehuels/cargoassist/pkg/errors"
	"github.com/matzehuels/cargoassist/pkg/integrations/crates"
)

const appName = "cargoassist"

// Response backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// ValidBackends lists the accepted values of Config.Backend.
var ValidBackends = map[string]bool{
	BackendFile:  true,
	BackendRedis: true,
	BackendNone:  true,
}

// Duration is a time.Duration written as a string ("3m", "1h30m") in TOML.
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

// Config holds all settings.
type Config struct {
	RegistryURL string `toml:"registry_url"`
	UserAgent   string `toml:"user_agent"`
	Retries     int    `toml:"retries"`

	// In-memory crate data tiers
	IndexCapacity  int      `toml:"index_capacity"`
	SearchCapacity int      `toml:"search_capacity"`
	SearchTTL      Duration `toml:"search_ttl"`

	// Opt-in response backend for version indexes; searches never use it
	Backend       string   `toml:"backend"`
	BackendTTL    Duration `toml:"backend_ttl"`
	CacheDir      string   `toml:"cache_dir"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`

	// HTTP API
	Listen string `toml:"listen"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		RegistryURL:    crates.DefaultBaseURL,
		UserAgent:      crates.DefaultUserAgent,
		Retries:        3,
		IndexCapacity:  cratedata.DefaultIndexCapacity,
		SearchCapacity: cratedata.DefaultSearchCapacity,
		SearchTTL:      Duration{cratedata.DefaultSearchTTL},
		Backend:        BackendNone,
		BackendTTL:     Duration{time.Hour},
		RedisAddr:      "localhost:6379",
		Listen:         ":7878",
	}
}

// Load reads the config file at path on top of the defaults. An empty path
// selects DefaultPath, which may be absent; an explicit path must exist.
// Unknown keys are rejected so typos do not go unnoticed.
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

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return Default(), nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, cfg.Validate()
}

// Validate checks value ranges and the backend name.
func (c *Config) Validate() error {
	switch {
	case c.RegistryURL == "":
		return errors.New(errors.ErrCodeInvalidConfig, "registry_url is required")
	case c.IndexCapacity <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "index_capacity must be positive, got %d", c.IndexCapacity)
	case c.SearchCapacity <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "search_capacity must be positive, got %d", c.SearchCapacity)
	case c.SearchTTL.Duration <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "search_ttl must be positive, got %s", c.SearchTTL)
	case c.Retries < 1:
		return errors.New(errors.ErrCodeInvalidConfig, "retries must be at least 1, got %d", c.Retries)
	case !ValidBackends[c.Backend]:
		return errors.New(errors.ErrCodeInvalidConfig, "invalid backend: %q (must be one of: file, redis, none)", c.Backend)
	case c.Backend != BackendNone && c.BackendTTL.Duration <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "backend_ttl must be positive, got %s", c.BackendTTL)
	case c.Backend == BackendRedis && c.RedisAddr == "":
		return errors.New(errors.ErrCodeInvalidConfig, "redis_addr is required for the redis backend")
	}
	return nil
}

// Write encodes c as TOML.
func (c Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// DefaultCacheDir returns the response cache directory (~/.cache/cargoassist/).
func DefaultCacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// ResolvedCacheDir returns CacheDir, or DefaultCacheDir when it is unset.
func (c *Config) ResolvedCacheDir() (string, error) {
	if c.CacheDir != "" {
		return c.CacheDir, nil
	}
	return DefaultCacheDir()
}
