package cart

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	pkgerrors "github.com/warunglabs/warungpos-backend/pkg/errors"
	"github.com/warunglabs/warungpos-backend/pkg/redis"
)

// SessionStore persists a session's cart between requests.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) ([]Line, error)
	Put(ctx context.Context, sessionID string, lines []Line) error
	Forget(ctx context.Context, sessionID string) error
}

type sessionBackend interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	CartKey(sessionID string) string
}

// RedisStore keeps carts in Redis as JSON snapshots with a TTL so
// abandoned sessions expire on their own.
type RedisStore struct {
	backend sessionBackend
	ttl     time.Duration
}

// NewRedisStore builds the session store. A zero TTL keeps carts until
// explicitly forgotten.
func NewRedisStore(backend sessionBackend, ttl time.Duration) (*RedisStore, error) {
	if backend == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "redis backend required")
	}
	return &RedisStore{backend: backend, ttl: ttl}, nil
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) ([]Line, error) {
	raw, err := s.backend.Get(ctx, s.backend.CartKey(sessionID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []Line{}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart session")
	}

	var lines []Line
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode cart session")
	}
	return lines, nil
}

func (s *RedisStore) Put(ctx context.Context, sessionID string, lines []Line) error {
	if lines == nil {
		lines = []Line{}
	}
	payload, err := json.Marshal(lines)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart session")
	}
	if err := s.backend.Set(ctx, s.backend.CartKey(sessionID), string(payload), s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart session")
	}
	return nil
}

func (s *RedisStore) Forget(ctx context.Context, sessionID string) error {
	if err := s.backend.Del(ctx, s.backend.CartKey(sessionID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart session")
	}
	return nil
}
