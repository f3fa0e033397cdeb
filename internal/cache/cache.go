package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
)

// Store is the persistent slot the snapshots live in.
type Store interface {
	Put(ctx context.Context, key string, value []byte) error
	Get(ctx context.Context, key string) ([]byte, bool, error)
}

// Cache is a single-overwrite-slot snapshot cache, not a general cache
// engine: no expiry, no size bound, no eviction. Callers decide what to do
// with a write error; a broken stored value reads as a miss.
type Cache struct {
	store  Store
	logger zerolog.Logger
}

func New(store Store, logger zerolog.Logger) *Cache {
	return &Cache{store: store, logger: logger}
}

func (c *Cache) Put(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to serialize cache value: %w", err)
	}
	if err := c.store.Put(ctx, key, raw); err != nil {
		return err
	}
	c.logger.Debug().Str("key", key).Int("bytes", len(raw)).Msg("cache slot written")
	return nil
}

// Get deserializes the stored snapshot into dest. A missing key and an
// undeserializable value are both reported as absent; the caller cannot
// tell them apart.
func (c *Cache) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, ok, err := c.store.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("cache value failed to deserialize, treating as miss")
		return false, nil
	}
	return true, nil
}
