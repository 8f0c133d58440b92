package redis

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/quietfeed/quietfeed/pkg/logger"
)

const lockRetryInterval = 100 * time.Millisecond

// KeyLock serializes one critical section per cache key across processes.
// Acquire blocks, retrying until the lock is obtained or the context ends.
type KeyLock struct {
	client *Client
}

// NewKeyLock creates a key lock backed by the client's redlock manager
func NewKeyLock(client *Client) *KeyLock {
	return &KeyLock{client: client}
}

// Acquire obtains the lock for key, holding it for at most ttl.
// Returns false if the context expired before the lock was obtained.
func (l *KeyLock) Acquire(ctx context.Context, key string, ttl time.Duration) bool {
	lockName := "lock:" + key

	for {
		expiry, err := l.client.lockManager.Lock(ctx, lockName, ttl)
		if err == nil && expiry > 0 {
			logger.Debug("cache lock acquired",
				zap.String("key", key),
				zap.Duration("ttl", ttl),
			)
			return true
		}

		select {
		case <-ctx.Done():
			logger.Warn("gave up waiting for cache lock",
				zap.String("key", key),
			)
			return false
		case <-time.After(lockRetryInterval):
		}
	}
}

// Release releases the lock for key. A failed release is logged and
// ignored since the lock expires on its own.
func (l *KeyLock) Release(ctx context.Context, key string) {
	lockName := "lock:" + key

	if err := l.client.lockManager.UnLock(ctx, lockName); err != nil {
		logger.Warn("failed to release cache lock (may have expired)",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}
