package cache

import (
	"context"
	"testing"
	"time"

	"devconnect/internal/observability"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedThing struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func setupTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	SetClient(rdb)
	t.Cleanup(func() {
		SetClient(nil)
		_ = rdb.Close()
	})
	return mr
}

func TestAside_MissThenHit(t *testing.T) {
	setupTestRedis(t)
	ctx := context.Background()

	fetches := 0
	fetch := func(dest *cachedThing) func() error {
		return func() error {
			fetches++
			dest.ID = 1
			dest.Name = "from-db"
			return nil
		}
	}

	var first cachedThing
	require.NoError(t, Aside(ctx, UserKey(1), &first, UserTTL, fetch(&first)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "from-db", first.Name)

	// Second lookup is served from the cache; fetch must not run again.
	var second cachedThing
	require.NoError(t, Aside(ctx, UserKey(1), &second, UserTTL, fetch(&second)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, first, second)
}

func TestAside_RecordsHitAndMiss(t *testing.T) {
	setupTestRedis(t)
	ctx := context.Background()

	missesBefore := testutil.ToFloat64(observability.CacheHits.WithLabelValues("user", "miss"))
	hitsBefore := testutil.ToFloat64(observability.CacheHits.WithLabelValues("user", "hit"))

	var dest cachedThing
	require.NoError(t, Aside(ctx, UserKey(7), &dest, UserTTL, func() error {
		dest.ID = 7
		return nil
	}))
	require.NoError(t, Aside(ctx, UserKey(7), &dest, UserTTL, func() error {
		t.Fatal("fetch must not run on a cache hit")
		return nil
	}))

	assert.Equal(t, missesBefore+1,
		testutil.ToFloat64(observability.CacheHits.WithLabelValues("user", "miss")))
	assert.Equal(t, hitsBefore+1,
		testutil.ToFloat64(observability.CacheHits.WithLabelValues("user", "hit")))
}

func TestAside_FetchErrorNotCached(t *testing.T) {
	setupTestRedis(t)
	ctx := context.Background()

	var dest cachedThing
	wantErr := assert.AnError
	err := Aside(ctx, PostKey(9), &dest, PostTTL, func() error { return wantErr })
	assert.ErrorIs(t, err, wantErr)

	found, err := GetJSON(ctx, PostKey(9), &dest)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAside_NilClientAlwaysFetches(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	fetches := 0
	var dest cachedThing
	for i := 0; i < 2; i++ {
		require.NoError(t, Aside(ctx, UserKey(2), &dest, UserTTL, func() error {
			fetches++
			return nil
		}))
	}
	assert.Equal(t, 2, fetches)
}

func TestInvalidatePost(t *testing.T) {
	mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, PostKey(3), cachedThing{ID: 3}, PostTTL))
	require.NoError(t, SetJSON(ctx, PostsListKey, []cachedThing{{ID: 3}}, PostListTTL))

	InvalidatePost(ctx, 3)

	assert.False(t, mr.Exists(PostKey(3)))
	assert.False(t, mr.Exists(PostsListKey))
}

func TestSetJSON_RespectsTTL(t *testing.T) {
	mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, UserKey(5), cachedThing{ID: 5}, time.Minute))
	mr.FastForward(2 * time.Minute)

	var dest cachedThing
	found, err := GetJSON(ctx, UserKey(5), &dest)
	require.NoError(t, err)
	assert.False(t, found)
}
