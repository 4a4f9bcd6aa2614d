package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"
)

var (
	// ErrLockAcquire is returned when the lock cannot be acquired.
	ErrLockAcquire = errors.New("failed to acquire distributed lock")
)

// UnlockFunc releases a lock taken with Lock.
type UnlockFunc func(ctx context.Context) error

const unlockScript = `
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end
`

// Lock claims key with SET NX PX, retrying every retry interval until ctx is
// done. A robot process locks its prefix so two simulators never drive the
// same tables.
func (s *Store) Lock(ctx context.Context, key string, ttl, retry time.Duration) (UnlockFunc, error) {
	lockKey := s.prefix + "lock:" + key
	val := strconv.FormatInt(time.Now().UnixNano(), 10)

	for {
		ok, err := s.client.SetNX(ctx, lockKey, val, ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%s: %w", key, ErrLockAcquire)
			}
			return nil, fmt.Errorf("redis error acquiring lock: %w", err)
		}
		if ok {
			return func(ctx context.Context) error {
				return s.client.Eval(ctx, unlockScript, []string{lockKey}, val).Err()
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%s: %w", key, ErrLockAcquire)
		case <-time.After(retry):
		}
	}
}
