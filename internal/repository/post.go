// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"foodmedia/internal/cache"
	"foodmedia/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error)
	GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error)
	Feed(ctx context.Context, authorIDs []uint, categoryID uint, limit, offset int, currentUserID uint) ([]*models.Post, error)
	TopLiked(ctx context.Context, limit int, currentUserID uint) ([]*models.Post, error)
	Recent(ctx context.Context, limit int, currentUserID uint) ([]*models.Post, error)
	Search(ctx context.Context, query string, limit, offset int, currentUserID uint) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	ReplaceCategories(ctx context.Context, post *models.Post, categories []models.Category) error
	Delete(ctx context.Context, id uint) error
	Exists(ctx context.Context, id uint) (bool, error)
	IsLiked(ctx context.Context, userID, postID uint) (bool, error)
	GetLikedPostIDs(ctx context.Context, userID uint, postIDs []uint) ([]uint, error)
	Like(ctx context.Context, userID, postID uint) error
	Unlike(ctx context.Context, userID, postID uint) error
	LikeCount(ctx context.Context, postID uint) (int, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).Create(post).Error
	if err == nil {
		cache.Invalidate(ctx, cache.DiscoveryKey)
	}
	return err
}

func (r *postRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	var post models.Post
	key := cache.PostKey(id)

	var err error
	if currentUserID == 0 {
		err = cache.CacheAside(ctx, key, &post, cache.PostTTL, func() error {
			return r.applyPostDetails(r.db.WithContext(ctx), 0).
				Preload("User").
				Preload("Categories").
				Preload("Media").
				First(&post, id).Error
		})
	} else {
		err = r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
			Preload("User").
			Preload("Categories").
			Preload("Media").
			First(&post, id).Error
	}

	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Preload("Categories").
		Where("user_id = ?", userID).
		Order("posts.created_at DESC, posts.id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

// Feed returns a page of posts for the given authors, newest first.
// A nil authorIDs means no author restriction; categoryID 0 means no
// category filter. Ties on created_at break on id so pagination is stable.
func (r *postRepository) Feed(ctx context.Context, authorIDs []uint, categoryID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	var posts []*models.Post
	q := r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Preload("Categories")

	if authorIDs != nil {
		if len(authorIDs) == 0 {
			return posts, nil
		}
		q = q.Where("posts.user_id IN ?", authorIDs)
	}
	if categoryID != 0 {
		q = q.Where(
			"EXISTS(SELECT 1 FROM post_categories pc WHERE pc.post_id = posts.id AND pc.category_id = ?)",
			categoryID,
		)
	}

	err := q.Order("posts.created_at DESC, posts.id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

// TopLiked returns the most liked posts. likes_count is a SELECT alias from
// applyPostDetails; PostgreSQL allows referencing it in ORDER BY at the same
// query level.
func (r *postRepository) TopLiked(ctx context.Context, limit int, currentUserID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Preload("Categories").
		Order("likes_count DESC, posts.created_at DESC, posts.id DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

// Recent returns the newest posts regardless of author.
func (r *postRepository) Recent(ctx context.Context, limit int, currentUserID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Preload("Categories").
		Order("posts.created_at DESC, posts.id DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) Search(ctx context.Context, query string, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	var posts []*models.Post
	like := "%" + query + "%"
	err := r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Preload("Categories").
		Where("title ILIKE ? OR content ILIKE ?", like, like).
		Order("posts.created_at DESC, posts.id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

// applyPostDetails adds subqueries to fetch counts and liked/saved status in a single query.
func (r *postRepository) applyPostDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "posts.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.deleted_at IS NULL) as comments_count, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) as likes_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+
			", EXISTS(SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.user_id = ?) as liked"+
			", EXISTS(SELECT 1 FROM saved_posts WHERE saved_posts.post_id = posts.id AND saved_posts.user_id = ?) as saved",
			currentUserID, currentUserID)
	}

	return db.Select(selectQuery + ", false as liked, false as saved")
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Omit("Categories").Save(post).Error; err != nil {
		return err
	}
	cache.InvalidatePost(ctx, post.ID)
	return nil
}

// ReplaceCategories swaps the post's category set for the given one.
func (r *postRepository) ReplaceCategories(ctx context.Context, post *models.Post, categories []models.Category) error {
	assoc := make([]interface{}, 0, len(categories))
	for i := range categories {
		assoc = append(assoc, &categories[i])
	}
	if err := r.db.WithContext(ctx).Model(post).Association("Categories").Replace(assoc...); err != nil {
		return err
	}
	cache.InvalidatePost(ctx, post.ID)
	return nil
}

// Delete soft-deletes the post and hard-deletes its dependents in one
// transaction, so a failed cascade never leaves dangling likes or comments.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("post_id = ?", id).Delete(&models.SavedPost{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM post_categories WHERE post_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("post_id = ?", id).Delete(&models.PostMedia{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
	if err != nil {
		return err
	}
	cache.InvalidatePost(ctx, id)
	return nil
}

func (r *postRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *postRepository) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *postRepository) GetLikedPostIDs(ctx context.Context, userID uint, postIDs []uint) ([]uint, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}
	var likedPostIDs []uint
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &likedPostIDs).Error
	return likedPostIDs, err
}

func (r *postRepository) Like(ctx context.Context, userID, postID uint) error {
	// Use INSERT ... ON CONFLICT DO NOTHING to handle race conditions
	// This is atomic and prevents duplicate key errors
	result := r.db.WithContext(ctx).Exec(
		`INSERT INTO likes (user_id, post_id, created_at)
		 VALUES (?, ?, NOW())
		 ON CONFLICT (user_id, post_id) DO NOTHING`,
		userID, postID,
	)
	if result.Error == nil {
		cache.InvalidatePost(ctx, postID)
	}
	return result.Error
}

func (r *postRepository) Unlike(ctx context.Context, userID, postID uint) error {
	// Hard delete the like record (not soft delete)
	err := r.db.WithContext(ctx).Unscoped().Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.Like{}).Error
	if err == nil {
		cache.InvalidatePost(ctx, postID)
	}
	return err
}

// LikeCount re-queries the authoritative like count after a toggle.
func (r *postRepository) LikeCount(ctx context.Context, postID uint) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return int(count), err
}
