package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-ems/internal/shared/cache"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stats struct {
	Total int `json:"total"`
}

func TestRemember(t *testing.T) {
	ctx := context.Background()
	ttl := time.Minute

	t.Run("miss computes and stores under tags", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		store := cache.NewRedisStore(rdb, zap.NewNop())

		mock.ExpectGet("cache:employees:stats").RedisNil()
		mock.ExpectSet("cache:employees:stats", `{"total":3}`, ttl).SetVal("OK")
		mock.ExpectSAdd("cache:tag:employees", "cache:employees:stats").SetVal(1)
		mock.ExpectExpire("cache:tag:employees", ttl).SetVal(true)

		calls := 0
		got, err := cache.Remember(ctx, store, "employees:stats", ttl, []string{cache.TagEmployees},
			func(ctx context.Context) (stats, error) {
				calls++
				return stats{Total: 3}, nil
			})

		require.NoError(t, err)
		assert.Equal(t, 3, got.Total)
		assert.Equal(t, 1, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("hit skips loader", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		store := cache.NewRedisStore(rdb, zap.NewNop())

		mock.ExpectGet("cache:employees:stats").SetVal(`{"total":7}`)

		got, err := cache.Remember(ctx, store, "employees:stats", ttl, nil,
			func(ctx context.Context) (stats, error) {
				t.Fatal("loader must not run on a hit")
				return stats{}, nil
			})

		require.NoError(t, err)
		assert.Equal(t, 7, got.Total)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("redis outage falls through to loader", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		store := cache.NewRedisStore(rdb, zap.NewNop())

		mock.ExpectGet("cache:k").SetErr(errors.New("connection refused"))
		mock.ExpectSet("cache:k", `{"total":1}`, ttl).SetErr(errors.New("connection refused"))

		got, err := cache.Remember(ctx, store, "k", ttl, nil,
			func(ctx context.Context) (stats, error) { return stats{Total: 1}, nil })

		require.NoError(t, err)
		assert.Equal(t, 1, got.Total)
	})

	t.Run("loader error is returned and nothing stored", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		store := cache.NewRedisStore(rdb, zap.NewNop())

		mock.ExpectGet("cache:k").RedisNil()

		_, err := cache.Remember(ctx, store, "k", ttl, nil,
			func(ctx context.Context) (stats, error) { return stats{}, errors.New("db down") })

		assert.EqualError(t, err, "db down")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestInvalidate(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	store := cache.NewRedisStore(rdb, zap.NewNop())

	mock.ExpectSMembers("cache:tag:dashboard").SetVal([]string{"cache:dashboard:stats"})
	mock.ExpectDel("cache:dashboard:stats", "cache:tag:dashboard").SetVal(2)
	mock.ExpectSMembers("cache:tag:tasks").SetErr(errors.New("boom"))

	store.Invalidate(context.Background(), cache.TagDashboard, cache.TagTasks)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNopStore(t *testing.T) {
	calls := 0
	load := func(ctx context.Context) (int, error) {
		calls++
		return calls, nil
	}

	first, _ := cache.Remember(context.Background(), cache.Nop(), "k", time.Minute, nil, load)
	second, _ := cache.Remember(context.Background(), cache.Nop(), "k", time.Minute, nil, load)

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
}

func TestRememberIgnoresCallerCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := cache.Remember(ctx, cache.Nop(), "reports:dashboard", time.Minute, nil,
		func(ctx context.Context) (stats, error) {
			if err := ctx.Err(); err != nil {
				return stats{}, err
			}
			return stats{Total: 3}, nil
		})

	require.NoError(t, err)
	assert.Equal(t, 3, got.Total)
}
