package service

import (
	"context"

	"foodmedia/internal/models"
	"foodmedia/internal/observability"
	"foodmedia/internal/repository"
)

// FollowService provides follow graph business logic.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// NewFollowService returns a new FollowService.
func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Follow creates a follow edge from follower to followee. Following yourself
// is rejected, and following someone twice is a no-op.
func (s *FollowService) Follow(ctx context.Context, followerID, followeeID uint) error {
	if followerID == followeeID {
		return models.NewValidationError("You cannot follow yourself")
	}

	// Followee must exist; this also rejects soft-deleted accounts.
	if _, err := s.userRepo.GetByID(ctx, followeeID); err != nil {
		return err
	}

	if err := s.followRepo.Create(ctx, &models.Follow{
		FollowerID: followerID,
		FolloweeID: followeeID,
	}); err != nil {
		return err
	}
	observability.FollowChangesTotal.WithLabelValues("follow").Inc()
	return nil
}

// Unfollow removes the follow edge. Unfollowing someone you do not follow
// is a no-op rather than an error.
func (s *FollowService) Unfollow(ctx context.Context, followerID, followeeID uint) error {
	if followerID == followeeID {
		return models.NewValidationError("You cannot unfollow yourself")
	}
	if err := s.followRepo.Delete(ctx, followerID, followeeID); err != nil {
		return err
	}
	observability.FollowChangesTotal.WithLabelValues("unfollow").Inc()
	return nil
}

// IsFollowing reports whether follower currently follows followee.
func (s *FollowService) IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return s.followRepo.Exists(ctx, followerID, followeeID)
}

// ListFollowees returns the users the given user follows.
func (s *FollowService) ListFollowees(ctx context.Context, userID uint) ([]models.User, error) {
	return s.followRepo.GetFollowees(ctx, userID)
}

// ListFolloweeIDs returns just the IDs of the users the given user follows.
func (s *FollowService) ListFolloweeIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.followRepo.GetFolloweeIDs(ctx, userID)
}

// ListFollowers returns the users following the given user.
func (s *FollowService) ListFollowers(ctx context.Context, userID uint) ([]models.User, error) {
	return s.followRepo.GetFollowers(ctx, userID)
}

// FollowCounts bundles the two sides of a user's follow graph.
type FollowCounts struct {
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
}

// Counts returns follower and followee counts for a user's profile header.
func (s *FollowService) Counts(ctx context.Context, userID uint) (*FollowCounts, error) {
	followers, err := s.followRepo.CountFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}
	following, err := s.followRepo.CountFollowees(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &FollowCounts{Followers: followers, Following: following}, nil
}
