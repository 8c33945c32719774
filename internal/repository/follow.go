// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"foodmedia/internal/cache"
	"foodmedia/internal/models"

	"gorm.io/gorm"
)

// FollowRepository defines the interface for follow graph data operations
type FollowRepository interface {
	Create(ctx context.Context, follow *models.Follow) error
	Delete(ctx context.Context, followerID, followeeID uint) error
	Exists(ctx context.Context, followerID, followeeID uint) (bool, error)
	GetFollowees(ctx context.Context, followerID uint) ([]models.User, error)
	GetFolloweeIDs(ctx context.Context, followerID uint) ([]uint, error)
	GetFollowers(ctx context.Context, followeeID uint) ([]models.User, error)
	CountFollowers(ctx context.Context, followeeID uint) (int64, error)
	CountFollowees(ctx context.Context, followerID uint) (int64, error)
}

// followRepository implements FollowRepository
type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Create inserts the follow edge idempotently. The unique index on
// (follower_id, followee_id) arbitrates concurrent follows; a conflicting
// insert is a no-op rather than an error.
func (r *followRepository) Create(ctx context.Context, follow *models.Follow) error {
	result := r.db.WithContext(ctx).Exec(
		`INSERT INTO follows (follower_id, followee_id, created_at)
		 VALUES (?, ?, NOW())
		 ON CONFLICT (follower_id, followee_id) DO NOTHING`,
		follow.FollowerID, follow.FolloweeID,
	)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	cache.InvalidateFollowees(ctx, follow.FollowerID)
	return nil
}

// Delete hard-deletes the follow edge. Removing an absent edge is a no-op.
func (r *followRepository) Delete(ctx context.Context, followerID, followeeID uint) error {
	if err := r.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&models.Follow{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateFollowees(ctx, followerID)
	return nil
}

func (r *followRepository) Exists(ctx context.Context, followerID, followeeID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *followRepository) GetFollowees(ctx context.Context, followerID uint) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN follows f ON users.id = f.followee_id").
		Where("f.follower_id = ? AND users.deleted_at IS NULL", followerID).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

// GetFolloweeIDs returns just the followee IDs, cached briefly since the
// feed asks for this set on every page.
func (r *followRepository) GetFolloweeIDs(ctx context.Context, followerID uint) ([]uint, error) {
	ids := []uint{}
	err := cache.CacheAside(ctx, cache.FolloweesKey(followerID), &ids, cache.FolloweesTTL, func() error {
		if err := r.db.WithContext(ctx).
			Model(&models.Follow{}).
			Where("follower_id = ?", followerID).
			Pluck("followee_id", &ids).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *followRepository) GetFollowers(ctx context.Context, followeeID uint) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN follows f ON users.id = f.follower_id").
		Where("f.followee_id = ? AND users.deleted_at IS NULL", followeeID).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *followRepository) CountFollowers(ctx context.Context, followeeID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("followee_id = ?", followeeID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *followRepository) CountFollowees(ctx context.Context, followerID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ?", followerID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
