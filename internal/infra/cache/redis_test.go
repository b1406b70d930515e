package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisCache(client, time.Minute), mr
}

func TestRedisCache_SetGetDelete(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	var got []entry
	hit, err := c.GetJSON(ctx, "restaurants:active", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	want := []entry{{ID: 1, Name: "Pizza Palace"}, {ID: 2, Name: "Sushi Zen"}}
	require.NoError(t, c.SetJSON(ctx, "restaurants:active", want))
	assert.True(t, mr.Exists("foodie:restaurants:active"))

	hit, err = c.GetJSON(ctx, "restaurants:active", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, want, got)

	require.NoError(t, c.Delete(ctx, "restaurants:active"))
	hit, err = c.GetJSON(ctx, "restaurants:active", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestRedisCache_Expires(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, "categories:all", []entry{{ID: 1, Name: "Pizza"}}))
	mr.FastForward(2 * time.Minute)

	var got []entry
	hit, err := c.GetJSON(ctx, "categories:all", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestRedisCache_CorruptValue(t *testing.T) {
	c, mr := newTestCache(t)
	require.NoError(t, mr.Set("foodie:categories:all", "{not json"))

	var got []entry
	hit, err := c.GetJSON(context.Background(), "categories:all", &got)
	assert.Error(t, err)
	assert.False(t, hit)
}

func TestConnect_Ping(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := Connect(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	_ = client.Close()

	_, err = Connect(context.Background(), "127.0.0.1:1", "", 0)
	assert.Error(t, err)
}

func TestNoop_AlwaysMisses(t *testing.T) {
	var c Noop
	ctx := context.Background()
	require.NoError(t, c.SetJSON(ctx, "k", 1))

	var v int
	hit, err := c.GetJSON(ctx, "k", &v)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, c.Delete(ctx, "k"))
}
