package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const sessionKeyPrefix = "session:"

// SessionCache is a best-effort Redis cache in front of the session-token
// lookup. Cache errors are logged at debug and treated as misses; auth
// correctness never depends on the cache being up.
type SessionCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewSessionCache wraps a Redis client. A nil client yields a cache that
// always misses.
func NewSessionCache(rdb *redis.Client, ttl time.Duration, logger zerolog.Logger) *SessionCache {
	return &SessionCache{rdb: rdb, ttl: ttl, logger: logger}
}

// Get returns the cached user id for a session token.
func (c *SessionCache) Get(ctx context.Context, token string) (uuid.UUID, bool) {
	if c == nil || c.rdb == nil {
		return uuid.Nil, false
	}
	val, err := c.rdb.Get(ctx, sessionKeyPrefix+token).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Debug().Err(err).Msg("session cache read failed")
		}
		return uuid.Nil, false
	}
	id, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// Put stores the user id for a session token.
func (c *SessionCache) Put(ctx context.Context, token string, userID uuid.UUID) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Set(ctx, sessionKeyPrefix+token, userID.String(), c.ttl).Err(); err != nil {
		c.logger.Debug().Err(err).Msg("session cache write failed")
	}
}
