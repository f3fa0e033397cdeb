package catalog

import (
	"context"
	"fmt"

	"pokedex-companion/internal/cache"
	"pokedex-companion/internal/constants"
	"pokedex-companion/internal/domain"
	"pokedex-companion/internal/pokeapi"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Service is the fetch orchestrator: cache-or-fetch over the remote
// catalog, with per-item detail hydration.
type Service struct {
	client *pokeapi.Client
	cache  *cache.Cache
	logger zerolog.Logger
}

func NewService(client *pokeapi.Client, c *cache.Cache, logger zerolog.Logger) *Service {
	return &Service{client: client, cache: c, logger: logger}
}

// GetCatalog returns the full hydrated catalog. A warm cache answers
// immediately with zero remote requests; a cold cache triggers one list
// fetch plus one detail fetch per entry, joined in summary order. The
// cache has no TTL: only a key rename invalidates it.
func (s *Service) GetCatalog(ctx context.Context) ([]domain.CatalogRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	var cached []domain.CatalogRecord
	hit, err := s.cache.Get(ctx, constants.CatalogCacheKey, &cached)
	if err != nil {
		// A cache read failure is just a miss from the caller's view.
		s.logger.Warn().Err(err).Msg("cache read failed, fetching from API")
	}
	if hit {
		s.logger.Info().Int("count", len(cached)).Msg("catalog served from cache")
		return cached, nil
	}

	s.logger.Info().
		Int("offset", constants.CatalogOffset).
		Int("limit", constants.CatalogLimit).
		Msg("fetching catalog from API")

	listCtx, listCancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer listCancel()

	list, err := s.client.ListPokemon(listCtx, constants.CatalogOffset, constants.CatalogLimit)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch catalog summary list")
		return nil, fmt.Errorf("failed to fetch catalog list: %w", err)
	}

	records, err := s.hydrate(ctx, list.Results)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Put(ctx, constants.CatalogCacheKey, records); err != nil {
		// Best effort: fresh data is returned regardless.
		s.logger.Warn().Err(err).Msg("failed to write catalog cache")
	}

	s.logger.Info().Int("count", len(records)).Msg("catalog fetched successfully")
	return records, nil
}

// hydrate fans out one detail request per summary item and joins the
// results back in input order, whatever order the network completes in.
func (s *Service) hydrate(ctx context.Context, items []pokeapi.SummaryItem) ([]domain.CatalogRecord, error) {
	records := make([]domain.CatalogRecord, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(constants.DetailFetchConcurrency)

	for i, item := range items {
		g.Go(func() error {
			detail, err := s.client.GetPokemonByURL(gctx, item.URL)
			if err != nil {
				return fmt.Errorf("failed to fetch detail for %q: %w", item.Name, err)
			}
			records[i] = detail.Record()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Msg("catalog detail hydration failed")
		return nil, err
	}
	return records, nil
}

// Search looks one entry up by name directly against the API; it does not
// consult or populate the catalog cache.
func (s *Service) Search(ctx context.Context, name string) (*domain.CatalogRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	detail, err := s.client.GetPokemonByName(ctx, name)
	if err != nil {
		return nil, err
	}
	rec := detail.Record()
	return &rec, nil
}
