package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/hydrochem/pkg/cache"
	"github.com/matzehuels/hydrochem/pkg/server"
	"github.com/matzehuels/hydrochem/pkg/session"
)

// Config is the contents of config.toml. Flags override these values.
type Config struct {
	Server ServerConfig `toml:"server"`
	Cache  CacheConfig  `toml:"cache"`
	Render RenderConfig `toml:"render"`
}

// ServerConfig configures "hydrochem serve".
type ServerConfig struct {
	Addr        string   `toml:"addr"`
	MaxUploadMB int      `toml:"max_upload_mb"`
	SessionTTL  duration `toml:"session_ttl"`
	Sessions    string   `toml:"sessions"` // memory | file | redis
	RedisAddr   string   `toml:"redis_addr"`
}

// CacheConfig selects the artifact cache backend.
type CacheConfig struct {
	Backend   string   `toml:"backend"` // file | null | redis | mongo
	Dir       string   `toml:"dir"`
	RedisAddr string   `toml:"redis_addr"`
	MongoURI  string   `toml:"mongo_uri"`
	TTL       duration `toml:"ttl"`
}

// RenderConfig holds default render settings.
type RenderConfig struct {
	Width   int    `toml:"width"`
	Height  int    `toml:"height"`
	Unit    string `toml:"unit"`
	Palette string `toml:"palette"`
}

// Session store backends.
const (
	sessionsMemory = "memory"
	sessionsFile   = "file"
	sessionsRedis  = "redis"
)

// duration is a time.Duration that decodes from TOML strings like "1h30m".
type duration struct{ time.Duration }

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// defaultConfig returns the built-in configuration.
func defaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr:        server.DefaultAddr,
			MaxUploadMB: server.DefaultMaxUploadBytes >> 20,
			SessionTTL:  duration{session.DefaultTTL},
			Sessions:    sessionsMemory,
			RedisAddr:   "localhost:6379",
		},
		Cache: CacheConfig{
			Backend:   cache.BackendFile,
			RedisAddr: "localhost:6379",
			MongoURI:  "mongodb://localhost:27017",
			TTL:       duration{cache.TTLArtifact},
		},
	}
}

// loadConfig reads the TOML file at path over the defaults. A missing file
// at the default location is not an error; a missing explicit path is.
func loadConfig(path string, explicit bool) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("load config %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}

// =============================================================================
// Paths
// =============================================================================

// configPath returns the default config file location
// (~/.config/hydrochem/config.toml, honoring XDG_CONFIG_HOME).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// cacheDir returns the cache directory using XDG standard (~/.cache/hydrochem/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// artifactDir is the file cache location for rendered artifacts.
func (c CacheConfig) artifactDir() (string, error) {
	if c.Dir != "" {
		return c.Dir, nil
	}
	dir, err := cacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "artifacts"), nil
}
