package redisrepo

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type Default interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Keys(ctx context.Context, pattern string) *redis.StringSliceCmd
	Publish(ctx context.Context, channel string, payload interface{}) *redis.IntCmd
	Subscribe(ctx context.Context, channel string) Subscription
}

// Subscription wraps a pub/sub channel so watch loops can be driven by a
// fake in tests.
type Subscription interface {
	Channel() <-chan *redis.Message
	Close() error
}

type RedisRepository struct {
	Default
}

func New(rdb *redis.Client) *RedisRepository {
	return &RedisRepository{
		Default: newDefaultRepo(rdb),
	}
}
