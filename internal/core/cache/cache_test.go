package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	Name string `json:"name"`
}

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := NewWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestGetOrLoadJSON_LoadsOnce(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	calls := 0
	load := func(context.Context) ([]entry, error) {
		calls++
		return []entry{{Name: "Epic Designs"}}, nil
	}

	got, err := GetOrLoadJSON(c, ctx, "k", time.Minute, load)
	require.NoError(t, err)
	require.Len(t, got, 1)

	got, err = GetOrLoadJSON(c, ctx, "k", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, "Epic Designs", got[0].Name)
	assert.Equal(t, 1, calls)
	assert.True(t, mr.Exists("k"))
}

func TestGetOrLoadJSON_LoadErrorNotCached(t *testing.T) {
	c, mr := newTestCache(t)
	boom := errors.New("boom")

	_, err := GetOrLoadJSON(c, context.Background(), "k", time.Minute, func(context.Context) (entry, error) {
		return entry{}, boom
	})
	require.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("k"))
}

func TestDelete(t *testing.T) {
	c, mr := newTestCache(t)
	require.NoError(t, mr.Set("k", `{"name":"x"}`))
	require.NoError(t, c.Delete(context.Background(), "k"))
	assert.False(t, mr.Exists("k"))
}
