package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pokedex-companion/internal/auth"
	"pokedex-companion/internal/config"
	"pokedex-companion/internal/constants"
	"pokedex-companion/internal/domain"
	"pokedex-companion/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type AccountService struct {
	users  *repository.UserRepository
	cfg    *config.Config
	logger zerolog.Logger
}

func NewAccountService(users *repository.UserRepository, cfg *config.Config, logger zerolog.Logger) *AccountService {
	return &AccountService{users: users, cfg: cfg, logger: logger}
}

// Register creates the account and its profile in one step: validate
// locally, reject duplicate username or email, then store the profile
// with an empty discovered list.
func (s *AccountService) Register(ctx context.Context, email, password, username, gender string) (*domain.UserProfile, string, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	email = strings.TrimSpace(strings.ToLower(email))
	username = strings.TrimSpace(username)

	if email == "" || password == "" || username == "" {
		return nil, "", fmt.Errorf("%w: all fields are required", domain.ErrValidation)
	}
	if !strings.Contains(email, "@") {
		return nil, "", fmt.Errorf("%w: malformed email", domain.ErrValidation)
	}
	if len(password) < constants.MinPasswordLength {
		return nil, "", fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, constants.MinPasswordLength)
	}
	if gender == "" {
		return nil, "", fmt.Errorf("%w: gender is required", domain.ErrValidation)
	}

	taken, err := s.users.UsernameExists(ctx, username)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		return nil, "", domain.ErrUsernameTaken
	}

	taken, err = s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return nil, "", domain.ErrEmailTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	rec := &repository.UserRecord{
		Profile: domain.UserProfile{
			UID:        uuid.New().String(),
			Email:      email,
			Username:   username,
			Gender:     gender,
			Discovered: []int{},
			CreatedAt:  now,
			UpdatedAt:  now,
		},
		PasswordHash: hash,
	}

	if err := s.users.Create(ctx, rec); err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("failed to create account")
		return nil, "", fmt.Errorf("failed to create account: %w", err)
	}

	token, err := auth.GenerateToken(rec.Profile.UID, []byte(s.cfg.JWTSecret), s.cfg.TokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info().Str("uid", rec.Profile.UID).Str("username", username).Msg("account created")
	return &rec.Profile, token, nil
}

// Login verifies credentials and returns the whole stored profile; the
// caller replaces its in-memory copy wholesale.
func (s *AccountService) Login(ctx context.Context, email, password string) (*domain.UserProfile, string, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}

	rec, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		s.logger.Debug().Str("email", email).Msg("login attempt for unknown email")
		return nil, "", domain.ErrInvalidCredentials
	}

	if !auth.CheckPasswordHash(password, rec.PasswordHash) {
		s.logger.Debug().Str("uid", rec.Profile.UID).Msg("login attempt with wrong password")
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(rec.Profile.UID, []byte(s.cfg.JWTSecret), s.cfg.TokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info().Str("uid", rec.Profile.UID).Msg("login successful")
	return &rec.Profile, token, nil
}
