package redis

import (
	"context"
	"testing"
	"time"

	"github.com/muhammadchandra19/book-builder/pkg/errors"
	"github.com/muhammadchandra19/book-builder/pkg/logger"
	"github.com/stretchr/testify/assert"
)

func TestClient_NotConnected(t *testing.T) {
	ctx := context.Background()
	c := NewClient(logger.NewNopLogger(), DefaultConfig())

	assert.True(t, errors.ErrorCodeEquals(c.Ping(ctx), errors.RedisConnectionError))

	_, err := c.Get(ctx, "book-builder:book:NVD")
	assert.True(t, errors.ErrorCodeEquals(err, errors.RedisConnectionError))

	err = c.Set(ctx, "book-builder:book:NVD", "{}", time.Minute)
	assert.True(t, errors.ErrorCodeEquals(err, errors.RedisConnectionError))

	_, err = c.Publish(ctx, "book-builder:book.NVD", "{}")
	assert.True(t, errors.ErrorCodeEquals(err, errors.RedisConnectionError))

	assert.NoError(t, c.Disconnect(ctx))
}

func TestClient_Connect_InvalidConfig(t *testing.T) {
	ctx := context.Background()

	err := NewClient(logger.NewNopLogger(), nil).Connect(ctx)
	assert.True(t, errors.ErrorCodeEquals(err, errors.RedisConfigError))

	config := DefaultConfig()
	config.Addrs = nil
	err = NewClient(logger.NewNopLogger(), config).Connect(ctx)
	assert.True(t, errors.ErrorCodeEquals(err, errors.RedisConfigError))
}

func TestClient_Reconnect_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.False(t, NewClient(logger.NewNopLogger(), DefaultConfig()).Reconnect(ctx))
}
