package locker

import (
	"context"
	"testing"
	"time"

	"sisregip-service/internal/app/services/shared/redis"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestLockService() *lockService {
	return &lockService{redisRepo: redis.NewMemoryRepository(), Log: zap.NewNop()}
}

func TestLockService_ExclusiveUntilUnlocked(t *testing.T) {
	ctx := context.Background()
	svc := newTestLockService()

	acquired, value, err := svc.TryLock(ctx, "lock:merge:/tmp/a", time.Minute)
	require.NoError(t, err)
	require.True(t, acquired)
	assert.NotEmpty(t, value)

	acquired, _, err = svc.TryLock(ctx, "lock:merge:/tmp/a", time.Minute)
	require.NoError(t, err)
	assert.False(t, acquired)

	acquired, _, err = svc.TryLock(ctx, "lock:merge:/tmp/b", time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired)

	require.NoError(t, svc.Unlock(ctx, "lock:merge:/tmp/a", value))

	acquired, _, err = svc.TryLock(ctx, "lock:merge:/tmp/a", time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired)
}

func TestLockService_UnlockRejectsForeignHolder(t *testing.T) {
	ctx := context.Background()
	svc := newTestLockService()

	acquired, _, err := svc.TryLock(ctx, "lock:merge:/tmp/a", time.Minute)
	require.NoError(t, err)
	require.True(t, acquired)

	err = svc.Unlock(ctx, "lock:merge:/tmp/a", "someone-else")
	assert.Error(t, err)
}

func TestLockService_UnlockMissingKey(t *testing.T) {
	svc := newTestLockService()
	assert.NoError(t, svc.Unlock(context.Background(), "lock:merge:/nowhere", "value"))
}
