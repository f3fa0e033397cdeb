package service

import (
	"context"
	"fmt"

	"pokedex-companion/internal/constants"
	"pokedex-companion/internal/domain"
	"pokedex-companion/internal/repository"

	"github.com/rs/zerolog"
)

type ProfileService struct {
	users  *repository.UserRepository
	logger zerolog.Logger
}

func NewProfileService(users *repository.UserRepository, logger zerolog.Logger) *ProfileService {
	return &ProfileService{users: users, logger: logger}
}

func (s *ProfileService) ReadProfile(ctx context.Context, uid string) (*domain.UserProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	rec, err := s.users.GetByUID(ctx, uid)
	if err != nil {
		s.logger.Debug().Err(err).Str("uid", uid).Msg("profile not found")
		return nil, err
	}

	profile := rec.Profile
	if profile.Gender == "" {
		profile.Gender = constants.DefaultGender
	}
	return &profile, nil
}

// UpdateProfile merges only the fields set on update; everything else on
// the document is left as stored.
func (s *ProfileService) UpdateProfile(ctx context.Context, uid string, update domain.ProfileUpdate) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if update.Username != nil && *update.Username == "" {
		return fmt.Errorf("%w: username cannot be empty", domain.ErrValidation)
	}

	if err := s.users.UpdateFields(ctx, uid, update); err != nil {
		s.logger.Error().Err(err).Str("uid", uid).Msg("failed to update profile")
		return err
	}

	s.logger.Info().Str("uid", uid).Msg("profile updated")
	return nil
}

// AppendDiscovered records a captured catalog id against the profile.
// The underlying append is a set union, so re-capturing an id is a no-op.
func (s *ProfileService) AppendDiscovered(ctx context.Context, uid string, catalogID int) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if catalogID < 1 {
		return fmt.Errorf("%w: catalog id must be positive", domain.ErrValidation)
	}

	if err := s.users.AppendDiscovered(ctx, uid, catalogID); err != nil {
		s.logger.Error().Err(err).Str("uid", uid).Int("catalog_id", catalogID).Msg("failed to append discovered id")
		return err
	}

	s.logger.Info().Str("uid", uid).Int("catalog_id", catalogID).Msg("discovered id appended")
	return nil
}
