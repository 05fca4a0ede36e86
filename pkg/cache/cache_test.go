package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/hydrochem/pkg/errors"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || hit || data != nil {
		t.Errorf("Get = %q, %v, %v; want miss", data, hit, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "nested", "cache"))
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if _, hit, _ := c.Get(ctx, "missing"); hit {
		t.Error("Get(missing) should miss")
	}

	if err := c.Set(ctx, "a", []byte("<svg/>"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "a")
	if err != nil || !hit || string(data) != "<svg/>" {
		t.Errorf("Get(a) = %q, %v, %v", data, hit, err)
	}

	if err := c.Delete(ctx, "a"); err != nil {
		t.Errorf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "a"); err != nil {
		t.Errorf("Delete(missing) should not fail: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "k"); !hit {
		t.Error("fresh entry should hit")
	}

	now = now.Add(2 * time.Minute)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("expired entry should be removed")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	path := c.path("k")
	os.MkdirAll(filepath.Dir(path), 0o755)
	os.WriteFile(path, []byte("not json"), 0o644)

	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry: hit=%v err=%v, want miss", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	for _, k := range []string{"a", "b", "c"} {
		c.Set(ctx, k, []byte(k), 0)
	}

	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear() = %d, want 3", n)
	}
	entries, _ := os.ReadDir(c.Dir())
	if len(entries) != 0 {
		t.Errorf("directory not empty after Clear: %d entries", len(entries))
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	base := ArtifactKeyOpts{Kind: "piper", Format: "svg", Unit: "mg/L", Width: 800, Height: 800}

	if k.ArtifactKey("h", base) != k.ArtifactKey("h", base) {
		t.Error("ArtifactKey should be deterministic")
	}
	if !strings.HasPrefix(k.ArtifactKey("h", base), "artifact:") {
		t.Error("ArtifactKey should carry the artifact prefix")
	}

	variants := []ArtifactKeyOpts{base, base, base, base}
	variants[1].Format = "png"
	variants[2].Unit = "meq/L"
	variants[3].Kind = "durov"
	seen := map[string]bool{}
	for _, v := range variants {
		seen[k.ArtifactKey("h", v)] = true
	}
	if len(seen) != len(variants) {
		t.Errorf("distinct options produced %d keys, want %d", len(seen), len(variants))
	}
	if k.ArtifactKey("h1", base) == k.ArtifactKey("h2", base) {
		t.Error("different uploads should produce different keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(nil, "session:1:")
	key := scoped.ArtifactKey("h", ArtifactKeyOpts{Kind: "piper"})
	if !strings.HasPrefix(key, "session:1:artifact:") {
		t.Errorf("ScopedKeyer key not prefixed: %s", key)
	}
	other := NewScopedKeyer(nil, "session:2:")
	if key == other.ArtifactKey("h", ArtifactKeyOpts{Kind: "piper"}) {
		t.Error("scopes should not share keys")
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	c, err := Open(ctx, Config{})
	if err != nil {
		t.Fatalf("Open(empty): %v", err)
	}
	if _, ok := c.(NullCache); !ok {
		t.Errorf("Open(empty) = %T, want NullCache", c)
	}

	c, err = Open(ctx, Config{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("Open(dir): %v", err)
	}
	if _, ok := c.(*FileCache); !ok {
		t.Errorf("Open(dir) = %T, want *FileCache", c)
	}

	if _, err := Open(ctx, Config{Backend: "file"}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("file without dir: err = %v", err)
	}
	if _, err := Open(ctx, Config{Backend: "memcached"}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("unknown backend: err = %v", err)
	}
}

func TestOpenRedisUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	c, err := Open(ctx, Config{Backend: "redis", RedisAddr: "127.0.0.1:1"})
	if err == nil {
		c.Close()
		t.Fatal("expected connection error")
	}
	if c != nil {
		t.Errorf("failed Open returned non-nil cache %T", c)
	}
}

func TestOpenMongoBadURI(t *testing.T) {
	if _, err := Open(context.Background(), Config{Backend: "mongo", MongoURI: "redis://localhost"}); err == nil {
		t.Error("expected error for non-mongodb URI")
	}
}

func TestMongoEntryExpired(t *testing.T) {
	now := time.Now()
	past, future := now.Add(-time.Second), now.Add(time.Second)
	if (mongoEntry{}).expired(now) {
		t.Error("entry without expiry should not expire")
	}
	if !(mongoEntry{ExpiresAt: &past}).expired(now) {
		t.Error("past expiry should be expired")
	}
	if (mongoEntry{ExpiresAt: &future}).expired(now) {
		t.Error("future expiry should not be expired")
	}
}
