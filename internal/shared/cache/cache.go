package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-ems/internal/shared/contextutil"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	keyPrefix = "cache:"
	tagPrefix = "cache:tag:"
)

// Tags used by mutation handlers to invalidate cached reads.
const (
	TagEmployees   = "employees"
	TagDepartments = "departments"
	TagTasks       = "tasks"
	TagAttendance  = "attendance"
	TagDashboard   = "dashboard"
)

// Store is a tag-scoped TTL cache. Failures are logged and reported as a miss;
// they never surface to the caller.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration, tags ...string)
	Invalidate(ctx context.Context, tags ...string)
	Do(key string, fn func() (any, error)) (any, error)
}

type redisStore struct {
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewRedisStore(rdb *redis.Client, logger ...*zap.Logger) Store {
	l := zap.L().Named("cache.redis")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("cache.redis")
	}
	return &redisStore{rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

func (s *redisStore) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := s.rdb.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return val, true
}

func (s *redisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration, tags ...string) {
	fullKey := keyPrefix + key
	_, err := s.rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, fullKey, string(value), ttl)
		for _, tag := range tags {
			pipe.SAdd(ctx, tagPrefix+tag, fullKey)
			pipe.Expire(ctx, tagPrefix+tag, ttl)
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("cache set failed", zap.String("key", key), zap.Strings("tags", tags), zap.Error(err))
	}
}

func (s *redisStore) Invalidate(ctx context.Context, tags ...string) {
	for _, tag := range tags {
		tagKey := tagPrefix + tag
		members, err := s.rdb.SMembers(ctx, tagKey).Result()
		if err != nil {
			s.logger.Warn("cache tag lookup failed", zap.String("tag", tag), zap.Error(err))
			continue
		}

		keys := append(members, tagKey)
		if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
			s.logger.Warn("cache invalidate failed", zap.String("tag", tag), zap.Error(err))
			continue
		}
		s.logger.Debug("cache tag invalidated", zap.String("tag", tag), zap.Int("keys", len(members)))
	}
}

func (s *redisStore) Do(key string, fn func() (any, error)) (any, error) {
	v, err, _ := s.sf.Do(key, fn)
	return v, err
}

type nopStore struct{}

// Nop never caches. Useful in tests and when redis is not configured.
func Nop() Store { return nopStore{} }

func (nopStore) Get(context.Context, string) ([]byte, bool)                    { return nil, false }
func (nopStore) Set(context.Context, string, []byte, time.Duration, ...string) {}
func (nopStore) Invalidate(context.Context, ...string)                         {}
func (nopStore) Do(_ string, fn func() (any, error)) (any, error)              { return fn() }

// Remember returns the cached value for key or computes it with fn and stores
// it under the given tags. Concurrent misses on the same key share one call.
func Remember[T any](
	ctx context.Context,
	store Store,
	key string,
	ttl time.Duration,
	tags []string,
	fn func(ctx context.Context) (T, error),
) (T, error) {
	if raw, ok := store.Get(ctx, key); ok {
		var cached T
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
	}

	// shared by every waiter on key; cancelling ctx does not abort it
	loadCtx := contextutil.Detach(ctx)
	v, err := store.Do(key, func() (any, error) {
		fresh, err := fn(loadCtx)
		if err != nil {
			return nil, err
		}
		if raw, err := json.Marshal(fresh); err == nil {
			store.Set(loadCtx, key, raw, ttl, tags...)
		}
		return fresh, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return v.(T), nil
}
