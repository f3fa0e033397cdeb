package constants

import "time"

const (
	// CatalogCacheKey carries the "_v2" suffix from the one historical
	// schema bump; renaming the key is the invalidation mechanism.
	CatalogCacheKey = "pokemonList_v2"

	CatalogOffset = 0
	CatalogLimit  = 151

	// DetailFetchConcurrency bounds the per-item detail fan-out.
	DetailFetchConcurrency = 16
)

const (
	ExternalAPITimeout = 10 * time.Second
	DatabaseTimeout    = 5 * time.Second
	RequestTimeout     = 30 * time.Second
)

const (
	FeedLimit = 20
)

const (
	DefaultSpawnCount  = 3
	DefaultSpawnJitter = 0.002
	MaxSpawnCount      = 20

	MinPasswordLength = 6

	DefaultGender = "male"
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	ShutdownTimeout = 5 * time.Second
)
