// Package session keeps uploaded workbooks between requests.
//
// One upload is one session: the raw workbook bytes plus metadata, under a
// random UUID. Sessions never share state; a new upload always creates a new
// session, so colors and labels of one upload cannot leak into another.
//
// Backends:
//   - [MemoryStore]: in-process map, the server default
//   - [FileStore]: JSON files in a directory, survives restarts
//   - [RedisStore]: Redis, for multi-instance deployments
//
// Usage:
//
//	sess, err := session.New("wells.xlsx", data, session.DefaultTTL)
//	if err != nil {
//	    return err
//	}
//	if err := store.Set(ctx, sess); err != nil {
//	    return err
//	}
//	sess, err = store.Get(ctx, sess.ID)
package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/hydrochem/pkg/cache"
	"github.com/matzehuels/hydrochem/pkg/errors"
)

// DefaultTTL is the default session lifetime.
const DefaultTTL = time.Hour

// Session is one uploaded workbook.
type Session struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	Data      []byte    `json:"data"`
	Hash      string    `json:"hash"` // SHA-256 of Data, used in cache keys
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// New creates a session for an uploaded workbook.
func New(filename string, data []byte, ttl time.Duration) (*Session, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "generate session id")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := time.Now().UTC()
	return &Session{
		ID:        id.String(),
		Filename:  filename,
		Data:      data,
		Hash:      cache.Hash(data),
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}, nil
}

// IsExpired reports whether the session has expired at now.
func (s *Session) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Keyer scopes artifact cache keys to this session.
func (s *Session) Keyer() cache.Keyer {
	return cache.NewScopedKeyer(nil, "session:"+s.ID+":")
}

// Store is the interface for session storage backends. Implementations are
// safe for concurrent use.
type Store interface {
	// Get retrieves a session. It fails with SESSION_NOT_FOUND for unknown
	// IDs and SESSION_EXPIRED for expired sessions, which are also removed.
	Get(ctx context.Context, id string) (*Session, error)

	// Set stores a session until its expiry.
	Set(ctx context.Context, sess *Session) error

	// Delete removes a session. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// Cleanup removes expired sessions.
	Cleanup(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeSessionNotFound, "session %s not found", id)
}

func expired(id string) error {
	return errors.New(errors.ErrCodeSessionExpired, "session %s has expired", id)
}
