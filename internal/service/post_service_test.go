package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"foodmedia/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn            func(context.Context, *models.Post) error
	getByIDFn           func(ctx context.Context, id, currentUserID uint) (*models.Post, error)
	getByUserIDFn       func(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error)
	feedFn              func(ctx context.Context, authorIDs []uint, categoryID uint, limit, offset int, currentUserID uint) ([]*models.Post, error)
	topLikedFn          func(ctx context.Context, limit int, currentUserID uint) ([]*models.Post, error)
	recentFn            func(ctx context.Context, limit int, currentUserID uint) ([]*models.Post, error)
	searchFn            func(ctx context.Context, query string, limit, offset int, currentUserID uint) ([]*models.Post, error)
	updateFn            func(context.Context, *models.Post) error
	replaceCategoriesFn func(context.Context, *models.Post, []models.Category) error
	deleteFn            func(context.Context, uint) error
	existsFn            func(context.Context, uint) (bool, error)
	isLikedFn           func(ctx context.Context, userID, postID uint) (bool, error)
	getLikedPostIDsFn   func(ctx context.Context, userID uint, postIDs []uint) ([]uint, error)
	likeFn              func(ctx context.Context, userID, postID uint) error
	unlikeFn            func(ctx context.Context, userID, postID uint) error
	likeCountFn         func(ctx context.Context, postID uint) (int, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *postRepoStub) GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.getByUserIDFn(ctx, userID, limit, offset, currentUserID)
}
func (s *postRepoStub) Feed(ctx context.Context, authorIDs []uint, categoryID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.feedFn(ctx, authorIDs, categoryID, limit, offset, currentUserID)
}
func (s *postRepoStub) TopLiked(ctx context.Context, limit int, currentUserID uint) ([]*models.Post, error) {
	return s.topLikedFn(ctx, limit, currentUserID)
}
func (s *postRepoStub) Recent(ctx context.Context, limit int, currentUserID uint) ([]*models.Post, error) {
	return s.recentFn(ctx, limit, currentUserID)
}
func (s *postRepoStub) Search(ctx context.Context, query string, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.searchFn(ctx, query, limit, offset, currentUserID)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) ReplaceCategories(ctx context.Context, post *models.Post, categories []models.Category) error {
	return s.replaceCategoriesFn(ctx, post, categories)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error { return s.deleteFn(ctx, id) }
func (s *postRepoStub) Exists(ctx context.Context, id uint) (bool, error) {
	return s.existsFn(ctx, id)
}
func (s *postRepoStub) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, postID)
}
func (s *postRepoStub) GetLikedPostIDs(ctx context.Context, userID uint, postIDs []uint) ([]uint, error) {
	return s.getLikedPostIDsFn(ctx, userID, postIDs)
}
func (s *postRepoStub) Like(ctx context.Context, userID, postID uint) error {
	return s.likeFn(ctx, userID, postID)
}
func (s *postRepoStub) Unlike(ctx context.Context, userID, postID uint) error {
	return s.unlikeFn(ctx, userID, postID)
}
func (s *postRepoStub) LikeCount(ctx context.Context, postID uint) (int, error) {
	return s.likeCountFn(ctx, postID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:  func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Post, error) { return &models.Post{ID: id}, nil },
		getByUserIDFn: func(_ context.Context, _ uint, _, _ int, _ uint) ([]*models.Post, error) {
			return nil, nil
		},
		feedFn: func(_ context.Context, _ []uint, _ uint, _, _ int, _ uint) ([]*models.Post, error) {
			return nil, nil
		},
		topLikedFn: func(_ context.Context, _ int, _ uint) ([]*models.Post, error) { return nil, nil },
		recentFn:   func(_ context.Context, _ int, _ uint) ([]*models.Post, error) { return nil, nil },
		searchFn: func(_ context.Context, _ string, _, _ int, _ uint) ([]*models.Post, error) {
			return nil, nil
		},
		updateFn:            func(_ context.Context, _ *models.Post) error { return nil },
		replaceCategoriesFn: func(_ context.Context, _ *models.Post, _ []models.Category) error { return nil },
		deleteFn:            func(_ context.Context, _ uint) error { return nil },
		existsFn:            func(_ context.Context, _ uint) (bool, error) { return true, nil },
		isLikedFn:           func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		getLikedPostIDsFn:   func(_ context.Context, _ uint, _ []uint) ([]uint, error) { return nil, nil },
		likeFn:              func(_ context.Context, _, _ uint) error { return nil },
		unlikeFn:            func(_ context.Context, _, _ uint) error { return nil },
		likeCountFn:         func(_ context.Context, _ uint) (int, error) { return 0, nil },
	}
}

// categoryRepoStub is a stub for repository.CategoryRepository.
type categoryRepoStub struct {
	listFn      func(context.Context) ([]models.Category, error)
	getByIDFn   func(context.Context, uint) (*models.Category, error)
	getByNameFn func(context.Context, string) (*models.Category, error)
	getByIDsFn  func(context.Context, []uint) ([]models.Category, error)
}

func (s *categoryRepoStub) List(ctx context.Context) ([]models.Category, error) {
	return s.listFn(ctx)
}
func (s *categoryRepoStub) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	return s.getByIDFn(ctx, id)
}
func (s *categoryRepoStub) GetByName(ctx context.Context, name string) (*models.Category, error) {
	return s.getByNameFn(ctx, name)
}
func (s *categoryRepoStub) GetByIDs(ctx context.Context, ids []uint) ([]models.Category, error) {
	return s.getByIDsFn(ctx, ids)
}

func noopCategoryRepo() *categoryRepoStub {
	return &categoryRepoStub{
		listFn:      func(_ context.Context) ([]models.Category, error) { return nil, nil },
		getByIDFn:   func(_ context.Context, id uint) (*models.Category, error) { return &models.Category{ID: id}, nil },
		getByNameFn: func(_ context.Context, _ string) (*models.Category, error) { return nil, nil },
		getByIDsFn: func(_ context.Context, ids []uint) ([]models.Category, error) {
			out := make([]models.Category, 0, len(ids))
			for _, id := range ids {
				out = append(out, models.Category{ID: id})
			}
			return out, nil
		},
	}
}

// savedPostRepoStub is a stub for repository.SavedPostRepository.
type savedPostRepoStub struct {
	saveFn       func(ctx context.Context, userID, postID uint) error
	unsaveFn     func(ctx context.Context, userID, postID uint) error
	isSavedFn    func(ctx context.Context, userID, postID uint) (bool, error)
	listByUserFn func(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error)
}

func (s *savedPostRepoStub) Save(ctx context.Context, userID, postID uint) error {
	return s.saveFn(ctx, userID, postID)
}
func (s *savedPostRepoStub) Unsave(ctx context.Context, userID, postID uint) error {
	return s.unsaveFn(ctx, userID, postID)
}
func (s *savedPostRepoStub) IsSaved(ctx context.Context, userID, postID uint) (bool, error) {
	return s.isSavedFn(ctx, userID, postID)
}
func (s *savedPostRepoStub) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	return s.listByUserFn(ctx, userID, limit, offset)
}

func noopSavedPostRepo() *savedPostRepoStub {
	return &savedPostRepoStub{
		saveFn:    func(_ context.Context, _, _ uint) error { return nil },
		unsaveFn:  func(_ context.Context, _, _ uint) error { return nil },
		isSavedFn: func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		listByUserFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Post, error) {
			return nil, nil
		},
	}
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.ErrCodeValidation, appErr.Code)
}

func assertUnauthorizedError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.ErrCodeUnauthorized, appErr.Code)
}

func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.ErrCodeNotFound, appErr.Code)
}

func newPostService(postRepo *postRepoStub, categoryRepo *categoryRepoStub, savedRepo *savedPostRepoStub) *PostService {
	if postRepo == nil {
		postRepo = noopPostRepo()
	}
	if categoryRepo == nil {
		categoryRepo = noopCategoryRepo()
	}
	if savedRepo == nil {
		savedRepo = noopSavedPostRepo()
	}
	return NewPostService(postRepo, categoryRepo, savedRepo, nil)
}

func TestPostService_CreatePost_Validation(t *testing.T) {
	t.Parallel()

	svc := newPostService(nil, nil, nil)
	ctx := context.Background()

	t.Run("empty title", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreatePost(ctx, CreatePostInput{UserID: 1, Content: "body"})
		assertValidationError(t, err)
	})

	t.Run("whitespace title", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreatePost(ctx, CreatePostInput{UserID: 1, Title: "   "})
		assertValidationError(t, err)
	})

	t.Run("title too long", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreatePost(ctx, CreatePostInput{UserID: 1, Title: strings.Repeat("x", 121)})
		assertValidationError(t, err)
	})

	t.Run("too many categories", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreatePost(ctx, CreatePostInput{
			UserID:      1,
			Title:       "Shakshuka",
			CategoryIDs: []uint{1, 2, 3, 4, 5, 6},
		})
		assertValidationError(t, err)
	})
}

func TestPostService_CreatePost_Success(t *testing.T) {
	t.Parallel()

	postRepo := noopPostRepo()
	postRepo.createFn = func(_ context.Context, p *models.Post) error {
		p.ID = 7
		return nil
	}
	var fetchedID, fetchedViewer uint
	postRepo.getByIDFn = func(_ context.Context, id, viewer uint) (*models.Post, error) {
		fetchedID, fetchedViewer = id, viewer
		return &models.Post{ID: id, Title: "Shakshuka", UserID: viewer}, nil
	}

	svc := newPostService(postRepo, nil, nil)
	post, err := svc.CreatePost(context.Background(), CreatePostInput{
		UserID:      3,
		Title:       "  Shakshuka  ",
		Content:     "Peppers, tomatoes, eggs.",
		CategoryIDs: []uint{1},
	})
	require.NoError(t, err)
	assert.Equal(t, uint(7), post.ID)
	assert.Equal(t, uint(7), fetchedID)
	assert.Equal(t, uint(3), fetchedViewer)
}

func TestPostService_CreatePost_DeduplicatesCategories(t *testing.T) {
	t.Parallel()

	var resolved []uint
	categoryRepo := noopCategoryRepo()
	baseResolve := categoryRepo.getByIDsFn
	categoryRepo.getByIDsFn = func(ctx context.Context, ids []uint) ([]models.Category, error) {
		resolved = ids
		return baseResolve(ctx, ids)
	}

	svc := newPostService(nil, categoryRepo, nil)
	_, err := svc.CreatePost(context.Background(), CreatePostInput{
		UserID:      1,
		Title:       "Bibimbap",
		CategoryIDs: []uint{2, 2, 1, 2},
	})
	require.NoError(t, err)
	assert.Equal(t, []uint{2, 1}, resolved)
}

func TestPostService_CreatePost_CategoryRepoError(t *testing.T) {
	t.Parallel()

	repoErr := errors.New("db down")
	categoryRepo := noopCategoryRepo()
	categoryRepo.getByIDsFn = func(_ context.Context, _ []uint) ([]models.Category, error) {
		return nil, repoErr
	}

	svc := newPostService(nil, categoryRepo, nil)
	_, err := svc.CreatePost(context.Background(), CreatePostInput{
		UserID:      1,
		Title:       "Ramen",
		CategoryIDs: []uint{3},
	})
	assert.ErrorIs(t, err, repoErr)
}

func TestPostService_UpdatePost_Ownership(t *testing.T) {
	t.Parallel()

	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 10, Title: "Original"}, nil
	}

	svc := newPostService(postRepo, nil, nil)
	_, err := svc.UpdatePost(context.Background(), UpdatePostInput{UserID: 1, PostID: 5, Title: "Stolen"})
	assertUnauthorizedError(t, err)
}

func TestPostService_UpdatePost_Categories(t *testing.T) {
	t.Parallel()

	t.Run("nil categories leave tags alone", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
			return &models.Post{ID: id, UserID: 1, Title: "Original"}, nil
		}
		replaced := false
		postRepo.replaceCategoriesFn = func(_ context.Context, _ *models.Post, _ []models.Category) error {
			replaced = true
			return nil
		}
		svc := newPostService(postRepo, nil, nil)
		_, err := svc.UpdatePost(context.Background(), UpdatePostInput{UserID: 1, PostID: 5, Title: "Renamed"})
		require.NoError(t, err)
		assert.False(t, replaced)
	})

	t.Run("empty slice clears tags", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
			return &models.Post{ID: id, UserID: 1, Title: "Original"}, nil
		}
		var replacedWith []models.Category
		replaced := false
		postRepo.replaceCategoriesFn = func(_ context.Context, _ *models.Post, cats []models.Category) error {
			replaced = true
			replacedWith = cats
			return nil
		}
		svc := newPostService(postRepo, nil, nil)
		_, err := svc.UpdatePost(context.Background(), UpdatePostInput{
			UserID:      1,
			PostID:      5,
			CategoryIDs: []uint{},
		})
		require.NoError(t, err)
		assert.True(t, replaced)
		assert.Empty(t, replacedWith)
	})
}

func TestPostService_DeletePost(t *testing.T) {
	t.Parallel()

	t.Run("owner can delete", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
			return &models.Post{ID: id, UserID: 1}, nil
		}
		deleted := false
		postRepo.deleteFn = func(_ context.Context, _ uint) error {
			deleted = true
			return nil
		}
		svc := newPostService(postRepo, nil, nil)
		require.NoError(t, svc.DeletePost(context.Background(), DeletePostInput{UserID: 1, PostID: 5}))
		assert.True(t, deleted)
	})

	t.Run("non-owner rejected", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
			return &models.Post{ID: id, UserID: 10}, nil
		}
		svc := newPostService(postRepo, nil, nil)
		err := svc.DeletePost(context.Background(), DeletePostInput{UserID: 1, PostID: 5})
		assertUnauthorizedError(t, err)
	})

	t.Run("admin can delete another user's post", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
			return &models.Post{ID: id, UserID: 10}, nil
		}
		isAdmin := func(_ context.Context, _ uint) (bool, error) { return true, nil }
		svc := NewPostService(postRepo, noopCategoryRepo(), noopSavedPostRepo(), isAdmin)
		require.NoError(t, svc.DeletePost(context.Background(), DeletePostInput{UserID: 1, PostID: 5}))
	})
}

func TestPostService_ToggleLike(t *testing.T) {
	t.Parallel()

	t.Run("missing post", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.existsFn = func(_ context.Context, _ uint) (bool, error) { return false, nil }
		svc := newPostService(postRepo, nil, nil)
		_, err := svc.ToggleLike(context.Background(), 1, 99)
		assertNotFoundError(t, err)
	})

	t.Run("like when not yet liked", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		liked := false
		postRepo.likeFn = func(_ context.Context, _, _ uint) error {
			liked = true
			return nil
		}
		postRepo.likeCountFn = func(_ context.Context, _ uint) (int, error) { return 4, nil }
		svc := newPostService(postRepo, nil, nil)

		result, err := svc.ToggleLike(context.Background(), 1, 5)
		require.NoError(t, err)
		assert.True(t, liked)
		assert.True(t, result.Liked)
		assert.Equal(t, 4, result.Count)
	})

	t.Run("unlike when already liked", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.isLikedFn = func(_ context.Context, _, _ uint) (bool, error) { return true, nil }
		unliked := false
		postRepo.unlikeFn = func(_ context.Context, _, _ uint) error {
			unliked = true
			return nil
		}
		postRepo.likeCountFn = func(_ context.Context, _ uint) (int, error) { return 3, nil }
		svc := newPostService(postRepo, nil, nil)

		result, err := svc.ToggleLike(context.Background(), 1, 5)
		require.NoError(t, err)
		assert.True(t, unliked)
		assert.False(t, result.Liked)
		assert.Equal(t, 3, result.Count)
	})
}

func TestPostService_ToggleSave(t *testing.T) {
	t.Parallel()

	savedRepo := noopSavedPostRepo()
	savedState := false
	savedRepo.isSavedFn = func(_ context.Context, _, _ uint) (bool, error) { return savedState, nil }
	savedRepo.saveFn = func(_ context.Context, _, _ uint) error {
		savedState = true
		return nil
	}
	savedRepo.unsaveFn = func(_ context.Context, _, _ uint) error {
		savedState = false
		return nil
	}

	svc := newPostService(nil, nil, savedRepo)
	ctx := context.Background()

	first, err := svc.ToggleSave(ctx, 1, 5)
	require.NoError(t, err)
	assert.True(t, first.Saved)

	second, err := svc.ToggleSave(ctx, 1, 5)
	require.NoError(t, err)
	assert.False(t, second.Saved)
}

func TestPostService_SearchPosts_EmptyQuery(t *testing.T) {
	t.Parallel()

	svc := newPostService(nil, nil, nil)
	_, err := svc.SearchPosts(context.Background(), "   ", 10, 0, 0)
	assertValidationError(t, err)
}
