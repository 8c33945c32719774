package service

import (
	"context"
	"strings"

	"foodmedia/internal/models"
	"foodmedia/internal/repository"
	"foodmedia/internal/validation"
)

type UserService struct {
	userRepo         repository.UserRepository
	defaultAvatarURL string
}

type CompleteProfileInput struct {
	UserID      uint
	DisplayName string
	Bio         string
	AvatarURL   string
}

type UpdateProfileInput struct {
	UserID      uint
	DisplayName string
	Bio         string
	AvatarURL   string
}

func NewUserService(userRepo repository.UserRepository, defaultAvatarURL string) *UserService {
	return &UserService{
		userRepo:         userRepo,
		defaultAvatarURL: defaultAvatarURL,
	}
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetProfile returns the user with their newest posts preloaded.
func (s *UserService) GetProfile(ctx context.Context, id uint, postLimit int) (*models.User, error) {
	return s.userRepo.GetByIDWithPosts(ctx, id, postLimit)
}

// CompleteProfile fills in the public profile fields after signup and marks
// the profile complete. A missing avatar falls back to the stock image so
// the field is never empty once the profile is done.
func (s *UserService) CompleteProfile(ctx context.Context, in CompleteProfileInput) (*models.User, error) {
	if err := validation.ValidateDisplayName(in.DisplayName); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateBio(in.Bio); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	user.DisplayName = strings.TrimSpace(in.DisplayName)
	user.Bio = in.Bio
	user.AvatarURL = in.AvatarURL
	if user.AvatarURL == "" {
		user.AvatarURL = s.defaultAvatarURL
	}
	user.ProfileComplete = true

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfile edits profile fields after completion. Empty fields are left
// unchanged so clients can send partial updates.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.DisplayName != "" {
		if err := validation.ValidateDisplayName(in.DisplayName); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.DisplayName = strings.TrimSpace(in.DisplayName)
	}
	if in.Bio != "" {
		if err := validation.ValidateBio(in.Bio); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Bio = in.Bio
	}
	if in.AvatarURL != "" {
		user.AvatarURL = in.AvatarURL
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) SetAdmin(ctx context.Context, targetID uint, isAdmin bool) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	user.IsAdmin = isAdmin
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
