package lock

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrNotAcquired = errors.New("lock not acquired")

// Locker serializes read-modify-write cycles on one aggregate.
type Locker interface {
	Acquire(ctx context.Context, key string) (token string, err error)
	Release(ctx context.Context, key, token string) error
}

// RedisLock is a SetNX-based lock with a per-acquisition token. The TTL keeps
// a crashed holder from blocking the aggregate forever.
type RedisLock struct {
	client  *redis.Client
	ttl     time.Duration
	retries int
	backoff time.Duration
}

func NewRedisLock(client *redis.Client, ttl time.Duration, retries int, backoff time.Duration) *RedisLock {
	return &RedisLock{
		client:  client,
		ttl:     ttl,
		retries: retries,
		backoff: backoff,
	}
}

func (that *RedisLock) Acquire(ctx context.Context, key string) (string, error) {
	token := uuid.NewString()

	for attempt := 0; attempt <= that.retries; attempt++ {
		ok, err := that.client.SetNX(ctx, key, token, that.ttl).Result()
		if err != nil {
			return "", err
		}
		if ok {
			return token, nil
		}
		if attempt < that.retries {
			time.Sleep(that.backoff)
		}
	}

	return "", ErrNotAcquired
}

// Release deletes the key only if it still holds our token.
func (that *RedisLock) Release(ctx context.Context, key, token string) error {
	if key == "" || token == "" {
		return errors.New("key and token are required")
	}

	return releaseScript.Run(ctx, that.client, []string{key}, token).Err()
}

var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)
