package service

import (
	"context"
	"strings"

	"foodmedia/internal/models"
	"foodmedia/internal/observability"
	"foodmedia/internal/repository"
	"foodmedia/internal/validation"
)

type PostService struct {
	postRepo     repository.PostRepository
	categoryRepo repository.CategoryRepository
	savedRepo    repository.SavedPostRepository
	isAdmin      func(ctx context.Context, userID uint) (bool, error)
}

type CreatePostInput struct {
	UserID      uint
	Title       string
	Content     string
	ImageURL    string
	CategoryIDs []uint
	Media       []models.PostMedia
}

type UpdatePostInput struct {
	UserID      uint
	PostID      uint
	Title       string
	Content     string
	ImageURL    string
	CategoryIDs []uint
}

type DeletePostInput struct {
	UserID uint
	PostID uint
}

// LikeResult reports the state of a post's like relationship after a toggle.
// Count is re-queried rather than derived, so concurrent toggles converge on
// the true value.
type LikeResult struct {
	Liked bool `json:"liked"`
	Count int  `json:"likes_count"`
}

// SaveResult reports the state of a post's bookmark after a toggle.
type SaveResult struct {
	Saved bool `json:"saved"`
}

func NewPostService(
	postRepo repository.PostRepository,
	categoryRepo repository.CategoryRepository,
	savedRepo repository.SavedPostRepository,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *PostService {
	return &PostService{
		postRepo:     postRepo,
		categoryRepo: categoryRepo,
		savedRepo:    savedRepo,
		isAdmin:      isAdmin,
	}
}

// dedupeIDs drops repeated ids while keeping first-seen order, so tagging a
// post with the same category twice yields a single tag row.
func dedupeIDs(ids []uint) []uint {
	if len(ids) < 2 {
		return ids
	}
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func (s *PostService) SearchPosts(ctx context.Context, query string, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	if strings.TrimSpace(query) == "" {
		return nil, models.NewValidationError("Search query is required")
	}
	return s.postRepo.Search(ctx, query, limit, offset, currentUserID)
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := validation.ValidatePostTitle(in.Title); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePostContent(in.Content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateCategoryIDs(in.CategoryIDs); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	categories, err := s.categoryRepo.GetByIDs(ctx, dedupeIDs(in.CategoryIDs))
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:      strings.TrimSpace(in.Title),
		Content:    in.Content,
		ImageURL:   in.ImageURL,
		UserID:     in.UserID,
		Categories: categories,
		Media:      in.Media,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID, in.UserID)
}

func (s *PostService) GetPost(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id, currentUserID)
}

func (s *PostService) GetUserPosts(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.postRepo.GetByUserID(ctx, userID, limit, offset, currentUserID)
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID, in.UserID)
	if err != nil {
		return nil, err
	}

	if post.UserID != in.UserID {
		return nil, models.NewUnauthorizedError("You can only update your own posts")
	}

	if in.Title != "" {
		if err := validation.ValidatePostTitle(in.Title); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		post.Title = strings.TrimSpace(in.Title)
	}
	if in.Content != "" {
		if err := validation.ValidatePostContent(in.Content); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		post.Content = in.Content
	}
	if in.ImageURL != "" {
		post.ImageURL = in.ImageURL
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	// A nil category list means "leave tags alone"; an empty one clears them.
	if in.CategoryIDs != nil {
		if err := validation.ValidateCategoryIDs(in.CategoryIDs); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		categories, err := s.categoryRepo.GetByIDs(ctx, dedupeIDs(in.CategoryIDs))
		if err != nil {
			return nil, err
		}
		if err := s.postRepo.ReplaceCategories(ctx, post, categories); err != nil {
			return nil, err
		}
	}

	return s.postRepo.GetByID(ctx, in.PostID, in.UserID)
}

func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	post, err := s.postRepo.GetByID(ctx, in.PostID, in.UserID)
	if err != nil {
		return err
	}

	if post.UserID != in.UserID {
		if s.isAdmin == nil {
			return models.NewUnauthorizedError("You can only delete your own posts")
		}
		admin, err := s.isAdmin(ctx, in.UserID)
		if err != nil {
			return err
		}
		if !admin {
			return models.NewUnauthorizedError("You can only delete your own posts")
		}
	}

	return s.postRepo.Delete(ctx, in.PostID)
}

// ToggleLike flips the user's like on the post. The new like state and the
// authoritative count are returned together so clients never have to guess.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID uint) (*LikeResult, error) {
	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewNotFoundError("Post", postID)
	}

	isLiked, err := s.postRepo.IsLiked(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	if isLiked {
		if err := s.postRepo.Unlike(ctx, userID, postID); err != nil {
			return nil, err
		}
		observability.LikeTogglesTotal.WithLabelValues("unliked").Inc()
	} else {
		if err := s.postRepo.Like(ctx, userID, postID); err != nil {
			return nil, err
		}
		observability.LikeTogglesTotal.WithLabelValues("liked").Inc()
	}

	count, err := s.postRepo.LikeCount(ctx, postID)
	if err != nil {
		return nil, err
	}

	return &LikeResult{Liked: !isLiked, Count: count}, nil
}

// ToggleSave flips the user's bookmark on the post.
func (s *PostService) ToggleSave(ctx context.Context, userID, postID uint) (*SaveResult, error) {
	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewNotFoundError("Post", postID)
	}

	isSaved, err := s.savedRepo.IsSaved(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	if isSaved {
		if err := s.savedRepo.Unsave(ctx, userID, postID); err != nil {
			return nil, err
		}
	} else {
		if err := s.savedRepo.Save(ctx, userID, postID); err != nil {
			return nil, err
		}
	}

	return &SaveResult{Saved: !isSaved}, nil
}

// GetSavedPosts lists the user's bookmarks, most recently saved first.
func (s *PostService) GetSavedPosts(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	return s.savedRepo.ListByUser(ctx, userID, limit, offset)
}
