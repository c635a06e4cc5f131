package cache_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibekthapa999/thapa-holidays-sub002/internal/cache"
)

func newTestCache(t *testing.T) (*cache.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return cache.NewCache(client), mr
}

func TestCache_SetAndGetPage(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	payload := map[string]string{"site_name": "Thapa Holidays"}
	require.NoError(t, c.SetPage(ctx, "/packages", payload))

	raw, err := c.GetPage(ctx, "/packages")
	require.NoError(t, err)
	require.NotNil(t, raw)

	var got map[string]string
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "Thapa Holidays", got["site_name"])
}

func TestCache_GetPage_Miss(t *testing.T) {
	c, _ := newTestCache(t)

	raw, err := c.GetPage(context.Background(), "/nowhere")
	require.NoError(t, err)
	assert.Nil(t, raw, "cache miss should return nil, nil")
}

func TestCache_Invalidate(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetPage(ctx, "/packages", "list"))
	require.NoError(t, c.SetPage(ctx, "/packages/everest-trek", "detail"))
	require.NoError(t, c.SetPage(ctx, "/destinations", "other"))

	require.NoError(t, c.Invalidate(ctx, "/packages", "/packages/everest-trek"))

	raw, err := c.GetPage(ctx, "/packages")
	require.NoError(t, err)
	assert.Nil(t, raw)

	raw, err = c.GetPage(ctx, "/packages/everest-trek")
	require.NoError(t, err)
	assert.Nil(t, raw)

	// Untouched routes stay cached.
	assert.True(t, mr.Exists("page:destinations"))
}

func TestCache_Invalidate_NoRoutes(t *testing.T) {
	c, _ := newTestCache(t)
	assert.NoError(t, c.Invalidate(context.Background()))
}

func TestCache_PageTTL(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetPage(ctx, "/blog", []string{"post"}))
	require.Greater(t, mr.TTL("page:blog").Seconds(), 0.0)
}
