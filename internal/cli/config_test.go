package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/hydrochem/pkg/cache"
	"github.com/matzehuels/hydrochem/pkg/session"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig("", false)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Sessions != sessionsMemory {
		t.Errorf("Sessions = %q, want %q", cfg.Server.Sessions, sessionsMemory)
	}
	if cfg.Server.SessionTTL.Duration != session.DefaultTTL {
		t.Errorf("SessionTTL = %v", cfg.Server.SessionTTL)
	}
	if cfg.Cache.Backend != cache.BackendFile || cfg.Cache.TTL.Duration != cache.TTLArtifact {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.toml")

	if _, err := loadConfig(missing, false); err != nil {
		t.Errorf("missing default config should be ignored: %v", err)
	}
	if _, err := loadConfig(missing, true); err == nil {
		t.Error("missing explicit config should fail")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeConfig(t, `
[server]
addr = ":9000"
session_ttl = "30m"
sessions = "file"

[cache]
backend = "null"
ttl = "2h"

[render]
unit = "meq/L"
width = 1024
`)
	cfg, err := loadConfig(path, true)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Addr != ":9000" || cfg.Server.Sessions != sessionsFile {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Server.SessionTTL.Duration != 30*time.Minute {
		t.Errorf("SessionTTL = %v", cfg.Server.SessionTTL)
	}
	if cfg.Server.RedisAddr != "localhost:6379" {
		t.Errorf("unset keys should keep defaults, RedisAddr = %q", cfg.Server.RedisAddr)
	}
	if cfg.Cache.Backend != cache.BackendNull || cfg.Cache.TTL.Duration != 2*time.Hour {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Render.Unit != "meq/L" || cfg.Render.Width != 1024 {
		t.Errorf("Render = %+v", cfg.Render)
	}
}

func TestLoadConfigRejectsUnknownKey(t *testing.T) {
	path := writeConfig(t, "[render]\ncolour = \"red\"\n")
	_, err := loadConfig(path, true)
	if err == nil || !strings.Contains(err.Error(), "render.colour") {
		t.Errorf("loadConfig error = %v, want unknown key render.colour", err)
	}
}

func TestLoadConfigBadDuration(t *testing.T) {
	path := writeConfig(t, "[cache]\nttl = \"soon\"\n")
	if _, err := loadConfig(path, true); err == nil {
		t.Error("invalid duration accepted")
	}
}

func TestDurationText(t *testing.T) {
	var d duration
	if err := d.UnmarshalText([]byte("1h30m")); err != nil {
		t.Fatal(err)
	}
	text, _ := d.MarshalText()
	if string(text) != "1h30m0s" {
		t.Errorf("MarshalText = %q", text)
	}
}
