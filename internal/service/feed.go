package service

import (
	"context"
	"fmt"
	"time"

	"pokedex-companion/internal/constants"
	"pokedex-companion/internal/domain"
	"pokedex-companion/internal/feed"
	"pokedex-companion/internal/repository"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type FeedService struct {
	posts  *repository.PostRepository
	hub    *feed.Hub
	logger zerolog.Logger
}

func NewFeedService(posts *repository.PostRepository, hub *feed.Hub, logger zerolog.Logger) *FeedService {
	return &FeedService{posts: posts, hub: hub, logger: logger}
}

// AppendPost stores one feed row and pushes the refreshed snapshot to all
// live subscribers. Content is not length-checked or filtered beyond the
// non-empty check.
func (s *FeedService) AppendPost(ctx context.Context, authorID, author, content, gender string) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if content == "" {
		return fmt.Errorf("%w: post content is empty", domain.ErrValidation)
	}
	if gender == "" {
		gender = constants.DefaultGender
	}

	id, err := gonanoid.New()
	if err != nil {
		return fmt.Errorf("failed to generate post id: %w", err)
	}

	post := &domain.FeedPost{
		ID:        id,
		AuthorID:  authorID,
		Author:    author,
		Content:   content,
		Gender:    gender,
		Likes:     0,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.posts.Insert(ctx, post); err != nil {
		return err
	}

	snapshot, err := s.posts.Recent(ctx, constants.FeedLimit)
	if err != nil {
		// The row is in; subscribers just miss this snapshot.
		s.logger.Warn().Err(err).Msg("failed to load snapshot after post insert")
		return nil
	}
	s.hub.Broadcast(snapshot)

	s.logger.Info().Str("post_id", id).Str("author_id", authorID).Msg("post appended")
	return nil
}

// Subscribe opens a live snapshot stream: the current snapshot first, then
// one delivery per change. The channel closes when ctx ends.
func (s *FeedService) Subscribe(ctx context.Context) (<-chan []domain.FeedPost, error) {
	loadCtx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	snapshot, err := s.posts.Recent(loadCtx, constants.FeedLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load initial feed snapshot: %w", err)
	}

	return s.hub.Subscribe(ctx, snapshot), nil
}

// Snapshot returns the current ordered window without subscribing.
func (s *FeedService) Snapshot(ctx context.Context) ([]domain.FeedPost, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	return s.posts.Recent(ctx, constants.FeedLimit)
}
