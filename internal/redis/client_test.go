package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-builder/internal/errors"
	"github.com/KirkDiggler/rpg-builder/internal/redis"
)

func TestNewClientRequiresEndpoint(t *testing.T) {
	_, err := redis.NewClient("", nil)
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = redis.NewClientFromURL("", nil)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestNewClientFromURL(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	for _, url := range []string{mr.Addr(), "redis://" + mr.Addr() + "/0"} {
		client, err := redis.NewClientFromURL(url, &redis.Options{PoolSize: 2})
		require.NoError(t, err, url)

		require.NoError(t, redis.Ping(ctx, client))
		require.NoError(t, client.Set(ctx, "k", "v", 0).Err())
		assert.Equal(t, "v", client.Get(ctx, "k").Val())
		_ = client.Close()
	}
}

func TestNewClientFromURLRejectsBadScheme(t *testing.T) {
	_, err := redis.NewClientFromURL("http://localhost:6379", nil)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestPingUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := redis.NewClient(mr.Addr(), &redis.Options{MaxRetries: -1})
	require.NoError(t, err)
	mr.Close()

	err = redis.Ping(context.Background(), client)
	assert.True(t, errors.IsUnavailable(err))
}
