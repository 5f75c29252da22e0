//go:build integration

package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/primetrade/internal/config"
)

func setupRedisContainer(ctx context.Context, t *testing.T) string {
	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(time.Minute),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate redis container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379/tcp")
	require.NoError(t, err)
	return fmt.Sprintf("%s:%s", host, port.Port())
}

func TestRevoker_Integration(t *testing.T) {
	ctx := context.Background()
	addr := setupRedisContainer(ctx, t)

	c, err := InitServer(ctx, config.RedisConnection{
		AddressRedis: addr,
		DialTimeout:  5 * time.Second,
		TimeoutRedis: 3 * time.Second,
	})
	require.NoError(t, err)
	defer c.Close()

	r := NewRevoker(c)
	require.NoError(t, r.Revoke(ctx, "jti-1", time.Now().Add(2*time.Second)))

	revoked, err := r.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	ttl, err := c.Db.TTL(ctx, revokedPrefix+"jti-1").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, 2*time.Second)

	assert.Eventually(t, func() bool {
		revoked, err := r.IsRevoked(ctx, "jti-1")
		return err == nil && !revoked
	}, 5*time.Second, 200*time.Millisecond)
}

func TestCache_Integration_GetSetExpire(t *testing.T) {
	ctx := context.Background()
	c, err := InitServer(ctx, config.RedisConnection{AddressRedis: setupRedisContainer(ctx, t)})
	require.NoError(t, err)
	defer c.Close()

	type payload struct {
		Value int `json:"value"`
	}
	require.NoError(t, c.Set(ctx, "k", payload{Value: 7}, time.Minute))

	var got payload
	found, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 7, got.Value)

	require.NoError(t, c.Set(ctx, "short", payload{Value: 1}, time.Second))
	assert.Eventually(t, func() bool {
		found, err := c.Get(ctx, "short", &got)
		return err == nil && !found
	}, 5*time.Second, 200*time.Millisecond)
}
