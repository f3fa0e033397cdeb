package fx

import (
	"database/sql"

	"pokedex-companion/internal/cache"
	"pokedex-companion/internal/catalog"
	"pokedex-companion/internal/config"
	"pokedex-companion/internal/database"
	"pokedex-companion/internal/feed"
	"pokedex-companion/internal/logger"
	"pokedex-companion/internal/pokeapi"
	"pokedex-companion/internal/repository"
	"pokedex-companion/internal/server"
	"pokedex-companion/internal/service"
	"pokedex-companion/internal/session"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func ProvideCache(sqlDB *sql.DB, log zerolog.Logger) *cache.Cache {
	return cache.New(repository.NewCacheRepository(sqlDB, log), log)
}

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	// repos
	fx.Provide(repository.NewUserRepository),
	fx.Provide(repository.NewPostRepository),
	fx.Provide(ProvideCache),
	// api client
	fx.Provide(pokeapi.NewClient),
	// svc
	fx.Provide(catalog.NewService),
	fx.Provide(service.NewAccountService),
	fx.Provide(service.NewProfileService),
	fx.Provide(feed.NewHub),
	fx.Provide(service.NewFeedService),
	fx.Provide(session.NewManager),
	// server
	fx.Provide(server.New),
)
