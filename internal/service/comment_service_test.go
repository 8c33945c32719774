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

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn      func(context.Context, *models.Comment) error
	getByIDFn     func(context.Context, uint) (*models.Comment, error)
	listByPostFn  func(context.Context, uint) ([]*models.Comment, error)
	countByPostFn func(context.Context, uint) (int64, error)
	deleteFn      func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}
func (s *commentRepoStub) CountByPost(ctx context.Context, postID uint) (int64, error) {
	return s.countByPostFn(ctx, postID)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:      func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn:     func(_ context.Context, _ uint) (*models.Comment, error) { return &models.Comment{}, nil },
		listByPostFn:  func(_ context.Context, _ uint) ([]*models.Comment, error) { return nil, nil },
		countByPostFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		deleteFn:      func(_ context.Context, _ uint) error { return nil },
	}
}

func TestCommentService_CreateComment_Validation(t *testing.T) {
	t.Parallel()

	svc := NewCommentService(noopCommentRepo(), noopPostRepo(), nil)
	ctx := context.Background()

	t.Run("empty content", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreateComment(ctx, CreateCommentInput{UserID: 1, PostID: 1})
		assertValidationError(t, err)
	})

	t.Run("whitespace content", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreateComment(ctx, CreateCommentInput{UserID: 1, PostID: 1, Content: "   \n\t "})
		assertValidationError(t, err)
	})

	t.Run("content too long", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreateComment(ctx, CreateCommentInput{
			UserID:  1,
			PostID:  1,
			Content: strings.Repeat("x", 2001),
		})
		assertValidationError(t, err)
	})

	t.Run("missing post is not found", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.existsFn = func(_ context.Context, _ uint) (bool, error) { return false, nil }
		svc2 := NewCommentService(noopCommentRepo(), postRepo, nil)
		_, err := svc2.CreateComment(ctx, CreateCommentInput{UserID: 1, PostID: 99, Content: "hi"})
		assertNotFoundError(t, err)
	})
}

func TestCommentService_CreateComment_Success(t *testing.T) {
	t.Parallel()

	commentRepo := noopCommentRepo()
	commentRepo.createFn = func(_ context.Context, c *models.Comment) error {
		c.ID = 42
		return nil
	}
	commentRepo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
		return &models.Comment{ID: id, Content: "looks delicious", UserID: 1, PostID: 1}, nil
	}

	svc := NewCommentService(commentRepo, noopPostRepo(), nil)
	comment, err := svc.CreateComment(context.Background(), CreateCommentInput{
		UserID:  1,
		PostID:  1,
		Content: "looks delicious",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(42), comment.ID)
	assert.Equal(t, "looks delicious", comment.Content)
}

func TestCommentService_ListComments(t *testing.T) {
	t.Parallel()

	t.Run("missing post is not found", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.existsFn = func(_ context.Context, _ uint) (bool, error) { return false, nil }
		svc := NewCommentService(noopCommentRepo(), postRepo, nil)
		_, err := svc.ListComments(context.Background(), 99)
		assertNotFoundError(t, err)
	})

	t.Run("returns thread for existing post", func(t *testing.T) {
		t.Parallel()
		commentRepo := noopCommentRepo()
		commentRepo.listByPostFn = func(_ context.Context, postID uint) ([]*models.Comment, error) {
			return []*models.Comment{
				{ID: 1, PostID: postID, Content: "first"},
				{ID: 2, PostID: postID, Content: "second"},
			}, nil
		}
		svc := NewCommentService(commentRepo, noopPostRepo(), nil)
		comments, err := svc.ListComments(context.Background(), 5)
		require.NoError(t, err)
		require.Len(t, comments, 2)
		assert.Equal(t, "first", comments[0].Content)
	})
}

func TestCommentService_DeleteComment_Ownership(t *testing.T) {
	t.Parallel()

	t.Run("owner can delete", func(t *testing.T) {
		t.Parallel()
		commentRepo := noopCommentRepo()
		commentRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Comment, error) {
			return &models.Comment{ID: 1, UserID: 1}, nil
		}
		svc := NewCommentService(commentRepo, noopPostRepo(), nil)
		comment, err := svc.DeleteComment(context.Background(), DeleteCommentInput{UserID: 1, CommentID: 1})
		require.NoError(t, err)
		assert.Equal(t, uint(1), comment.ID)
	})

	t.Run("non-owner without isAdmin returns unauthorized", func(t *testing.T) {
		t.Parallel()
		commentRepo := noopCommentRepo()
		commentRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Comment, error) {
			return &models.Comment{ID: 1, UserID: 10}, nil
		}
		svc := NewCommentService(commentRepo, noopPostRepo(), nil)
		_, err := svc.DeleteComment(context.Background(), DeleteCommentInput{UserID: 1, CommentID: 1})
		assertUnauthorizedError(t, err)
	})

	t.Run("admin can delete another user's comment", func(t *testing.T) {
		t.Parallel()
		commentRepo := noopCommentRepo()
		commentRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Comment, error) {
			return &models.Comment{ID: 1, UserID: 10}, nil
		}
		isAdmin := func(_ context.Context, _ uint) (bool, error) { return true, nil }
		svc := NewCommentService(commentRepo, noopPostRepo(), isAdmin)
		comment, err := svc.DeleteComment(context.Background(), DeleteCommentInput{UserID: 1, CommentID: 1})
		require.NoError(t, err)
		assert.Equal(t, uint(1), comment.ID)
	})

	t.Run("isAdmin error propagates", func(t *testing.T) {
		t.Parallel()
		commentRepo := noopCommentRepo()
		commentRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Comment, error) {
			return &models.Comment{ID: 1, UserID: 10}, nil
		}
		adminErr := errors.New("admin check failed")
		isAdmin := func(_ context.Context, _ uint) (bool, error) { return false, adminErr }
		svc := NewCommentService(commentRepo, noopPostRepo(), isAdmin)
		_, err := svc.DeleteComment(context.Background(), DeleteCommentInput{UserID: 1, CommentID: 1})
		assert.ErrorIs(t, err, adminErr)
	})
}
