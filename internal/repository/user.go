package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"pokedex-companion/internal/domain"

	"github.com/rs/zerolog"
)

// UserRecord is the storage shape of a profile; the password hash never
// leaves this package's callers in API responses.
type UserRecord struct {
	Profile      domain.UserProfile
	PasswordHash string
}

type UserRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewUserRepository(sqlDB *sql.DB, logger zerolog.Logger) *UserRepository {
	return &UserRepository{db: sqlDB, logger: logger}
}

func (r *UserRepository) Create(ctx context.Context, rec *UserRecord) error {
	discovered, err := json.Marshal(rec.Profile.Discovered)
	if err != nil {
		return fmt.Errorf("failed to encode discovered list: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO users (uid, email, username, password_hash, gender, discovered, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Profile.UID,
		rec.Profile.Email,
		rec.Profile.Username,
		rec.PasswordHash,
		rec.Profile.Gender,
		string(discovered),
		rec.Profile.CreatedAt,
		rec.Profile.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("uid", rec.Profile.UID).Msg("failed to insert user")
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByUID(ctx context.Context, uid string) (*UserRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT uid, email, username, password_hash, gender, discovered, created_at, updated_at
		FROM users WHERE uid = ?`, uid)
	return scanUser(row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*UserRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT uid, email, username, password_hash, gender, discovered, created_at, updated_at
		FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM users WHERE email = ?`, email).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM users WHERE username = ?`, username).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// UpdateFields merges only the named fields; nil pointers are left alone.
func (r *UserRepository) UpdateFields(ctx context.Context, uid string, update domain.ProfileUpdate) error {
	sets := []string{}
	args := []any{}

	if update.Username != nil {
		sets = append(sets, "username = ?")
		args = append(args, *update.Username)
	}
	if update.Gender != nil {
		sets = append(sets, "gender = ?")
		args = append(args, *update.Gender)
	}
	if len(sets) == 0 {
		return nil
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().UTC(), uid)

	query := fmt.Sprintf("UPDATE users SET %s WHERE uid = ?", strings.Join(sets, ", "))
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Str("uid", uid).Msg("failed to update profile fields")
		return fmt.Errorf("failed to update profile fields: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AppendDiscovered performs a set-union append inside a transaction, so
// repeated captures of the same id are idempotent.
func (r *UserRepository) AppendDiscovered(ctx context.Context, uid string, catalogID int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var raw string
	err = tx.QueryRowContext(ctx, `SELECT discovered FROM users WHERE uid = ?`, uid).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to read discovered list: %w", err)
	}

	var discovered []int
	if err := json.Unmarshal([]byte(raw), &discovered); err != nil {
		return fmt.Errorf("failed to decode discovered list: %w", err)
	}

	for _, id := range discovered {
		if id == catalogID {
			r.logger.Debug().Str("uid", uid).Int("catalog_id", catalogID).Msg("catalog id already discovered")
			return nil
		}
	}
	discovered = append(discovered, catalogID)

	encoded, err := json.Marshal(discovered)
	if err != nil {
		return fmt.Errorf("failed to encode discovered list: %w", err)
	}

	_, err = tx.ExecContext(ctx, `UPDATE users SET discovered = ?, updated_at = ? WHERE uid = ?`,
		string(encoded), time.Now().UTC(), uid)
	if err != nil {
		return fmt.Errorf("failed to write discovered list: %w", err)
	}

	return tx.Commit()
}

func scanUser(row *sql.Row) (*UserRecord, error) {
	var rec UserRecord
	var discovered string
	err := row.Scan(
		&rec.Profile.UID,
		&rec.Profile.Email,
		&rec.Profile.Username,
		&rec.PasswordHash,
		&rec.Profile.Gender,
		&discovered,
		&rec.Profile.CreatedAt,
		&rec.Profile.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(discovered), &rec.Profile.Discovered); err != nil {
		return nil, fmt.Errorf("failed to decode discovered list: %w", err)
	}
	if rec.Profile.Discovered == nil {
		rec.Profile.Discovered = []int{}
	}
	return &rec, nil
}
