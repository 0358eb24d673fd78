//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func TestRedisCache(t *testing.T) {
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7")
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: host + ":" + port.Port()})
	t.Cleanup(func() { _ = client.Close() })

	c := New(client, "test:", time.Minute)

	var seats []string
	found, err := c.GetJSON(ctx, "seats", &seats)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.SetJSON(ctx, "seats", []string{"A1", "C2"}))

	found, err = c.GetJSON(ctx, "seats", &seats)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"A1", "C2"}, seats)

	require.NoError(t, c.Delete(ctx, "seats"))
	found, err = c.GetJSON(ctx, "seats", &seats)
	require.NoError(t, err)
	assert.False(t, found)
}
