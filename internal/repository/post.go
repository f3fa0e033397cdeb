package repository

import (
	"context"
	"database/sql"
	"fmt"

	"pokedex-companion/internal/domain"

	"github.com/rs/zerolog"
)

type PostRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewPostRepository(sqlDB *sql.DB, logger zerolog.Logger) *PostRepository {
	return &PostRepository{db: sqlDB, logger: logger}
}

func (r *PostRepository) Insert(ctx context.Context, post *domain.FeedPost) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO posts (id, author_id, author, content, gender, likes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		post.ID,
		post.AuthorID,
		post.Author,
		post.Content,
		post.Gender,
		post.Likes,
		post.CreatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("post_id", post.ID).Msg("failed to insert post")
		return fmt.Errorf("failed to insert post: %w", err)
	}
	return nil
}

// Recent returns the newest posts first, bounded to limit rows. Rowid
// breaks ties so posts sharing a timestamp keep insertion order.
func (r *PostRepository) Recent(ctx context.Context, limit int) ([]domain.FeedPost, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, author_id, author, content, gender, likes, created_at
		FROM posts
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	posts := []domain.FeedPost{}
	for rows.Next() {
		var p domain.FeedPost
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.Author, &p.Content, &p.Gender, &p.Likes, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}
