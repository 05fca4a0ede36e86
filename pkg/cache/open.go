package cache

import (
	"context"
	"strings"

	"github.com/matzehuels/hydrochem/pkg/errors"
)

// Backend names accepted by Open.
const (
	BackendNull  = "null"
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

// Backends lists the backend names.
var Backends = []string{BackendNull, BackendFile, BackendRedis, BackendMongo}

// Config selects and configures a backend.
type Config struct {
	Backend   string
	Dir       string // file
	RedisAddr string // redis
	MongoURI  string // mongo
}

// Open creates the configured backend. An empty backend name means file
// when Dir is set and null otherwise.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	backend := strings.ToLower(strings.TrimSpace(cfg.Backend))
	if backend == "" {
		backend = BackendNull
		if cfg.Dir != "" {
			backend = BackendFile
		}
	}

	switch backend {
	case BackendNull:
		return NewNullCache(), nil
	case BackendFile:
		if cfg.Dir == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "file cache requires a directory")
		}
		return orNil(NewFileCache(cfg.Dir))
	case BackendRedis:
		return orNil(NewRedisCache(ctx, cfg.RedisAddr, "hydrochem:"))
	case BackendMongo:
		return orNil(NewMongoCache(ctx, cfg.MongoURI, "", ""))
	}
	return nil, errors.New(errors.ErrCodeInvalidInput,
		"unknown cache backend %q (must be one of: %s)", cfg.Backend, strings.Join(Backends, ", "))
}

// orNil keeps a failed constructor from returning a typed nil Cache.
func orNil[C Cache](c C, err error) (Cache, error) {
	if err != nil {
		return nil, err
	}
	return c, nil
}
