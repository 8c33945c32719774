// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"foodmedia/internal/models"

	"gorm.io/gorm"
)

// SavedPostRepository defines the interface for bookmark data operations
type SavedPostRepository interface {
	Save(ctx context.Context, userID, postID uint) error
	Unsave(ctx context.Context, userID, postID uint) error
	IsSaved(ctx context.Context, userID, postID uint) (bool, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error)
}

type savedPostRepository struct {
	db *gorm.DB
}

// NewSavedPostRepository creates a new saved post repository
func NewSavedPostRepository(db *gorm.DB) SavedPostRepository {
	return &savedPostRepository{db: db}
}

// Save inserts the bookmark idempotently; the unique (user_id, post_id)
// index arbitrates concurrent toggles.
func (r *savedPostRepository) Save(ctx context.Context, userID, postID uint) error {
	result := r.db.WithContext(ctx).Exec(
		`INSERT INTO saved_posts (user_id, post_id, created_at)
		 VALUES (?, ?, NOW())
		 ON CONFLICT (user_id, post_id) DO NOTHING`,
		userID, postID,
	)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	return nil
}

func (r *savedPostRepository) Unsave(ctx context.Context, userID, postID uint) error {
	if err := r.db.WithContext(ctx).
		Unscoped().
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.SavedPost{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *savedPostRepository) IsSaved(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.SavedPost{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// ListByUser returns the user's bookmarked posts, most recently saved first.
func (r *savedPostRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	if err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Select("posts.*, "+
			"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.deleted_at IS NULL) as comments_count, "+
			"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) as likes_count, "+
			"EXISTS(SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.user_id = ?) as liked, "+
			"true as saved", userID).
		Joins("JOIN saved_posts sp ON sp.post_id = posts.id").
		Where("sp.user_id = ?", userID).
		Preload("User").
		Preload("Categories").
		Order("sp.created_at DESC, posts.id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}
