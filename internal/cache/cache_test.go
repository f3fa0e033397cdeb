package cache_test

import (
	"context"
	"path/filepath"
	"testing"

	"pokedex-companion/internal/cache"
	"pokedex-companion/internal/config"
	"pokedex-companion/internal/database"
	"pokedex-companion/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *cache.Cache {
	t.Helper()

	cfg := &config.Config{DBPath: filepath.Join(t.TempDir(), "test.db")}
	db, err := database.New(cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return cache.New(repository.NewCacheRepository(db, zerolog.Nop()), zerolog.Nop())
}

type snapshot struct {
	IDs  []int  `json:"ids"`
	Note string `json:"note"`
}

func TestRoundTrip(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	in := snapshot{IDs: []int{1, 4, 7}, Note: "starters"}
	require.NoError(t, c.Put(ctx, "snap", in))

	var out snapshot
	ok, err := c.Get(ctx, "snap", &out)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, in, out)
}

func TestGetUnknownKey(t *testing.T) {
	c := newTestCache(t)

	var out snapshot
	ok, err := c.Get(context.Background(), "missing", &out)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPutOverwritesSlot(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "snap", snapshot{Note: "old"}))
	require.NoError(t, c.Put(ctx, "snap", snapshot{Note: "new"}))

	var out snapshot
	ok, err := c.Get(ctx, "snap", &out)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "new", out.Note)
}

func TestUndeserializableValueReadsAsMiss(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	// A value of the wrong shape for dest.
	require.NoError(t, c.Put(ctx, "snap", "just a string"))

	var out snapshot
	ok, err := c.Get(ctx, "snap", &out)
	require.NoError(t, err)
	assert.False(t, ok, "deserialization failure should read as a miss")
}
