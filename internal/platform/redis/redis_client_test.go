package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisClient_Success(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)

	rdb, err := NewRedisClient(context.Background(), mr.Addr(), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	require.NoError(t, rdb.Set(context.Background(), "k", "v", 0).Err())
	got, err := mr.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	rdb, err := NewRedisClient(context.Background(), addr, "")
	assert.Nil(t, rdb)
	assert.Error(t, err)
}

func TestNewRedisClient_WrongPassword(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	mr.RequireAuth("s3cret")

	_, err := NewRedisClient(context.Background(), mr.Addr(), "wrong")
	assert.Error(t, err)

	rdb, err := NewRedisClient(context.Background(), mr.Addr(), "s3cret")
	require.NoError(t, err)
	_ = rdb.Close()
}
