package repository

import (
	"context"
	"regexp"
	"testing"

	"foodmedia/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestPostRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	post := &models.Post{Title: "Sourdough focaccia", Content: "Overnight cold proof"}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "posts"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.Create(ctx, post)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Feed(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	t.Run("Scoped To Authors", func(t *testing.T) {
		postRows := sqlmock.NewRows([]string{"id", "title", "user_id", "likes_count", "comments_count", "liked", "saved"}).
			AddRow(3, "Post 3", 10, 2, 1, true, false).
			AddRow(2, "Post 2", 11, 0, 0, false, false)

		mock.ExpectQuery(`SELECT posts\.\*, .+ FROM "posts" WHERE posts\.user_id IN .+ ORDER BY posts\.created_at DESC, posts\.id DESC LIMIT .+`).
			WillReturnRows(postRows)

		// Preload User
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(10, "alice").AddRow(11, "bob"))
		// Preload Categories (many2many join)
		mock.ExpectQuery(`post_categories`).
			WillReturnRows(sqlmock.NewRows([]string{"post_id", "category_id"}))

		posts, err := repo.Feed(ctx, []uint{10, 11}, 0, 3, 3, 5)
		assert.NoError(t, err)
		assert.Len(t, posts, 2)
		assert.Equal(t, uint(3), posts[0].ID)
		assert.True(t, posts[0].Liked)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Empty Author Set Short Circuits", func(t *testing.T) {
		posts, err := repo.Feed(ctx, []uint{}, 0, 3, 0, 5)
		assert.NoError(t, err)
		assert.Empty(t, posts)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostRepository_Like_Idempotent(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	// ON CONFLICT DO NOTHING: a second like affects zero rows but is no error.
	mock.ExpectExec(`INSERT INTO likes .+ ON CONFLICT \(user_id, post_id\) DO NOTHING`).
		WithArgs(2, 7).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Like(ctx, 2, 7)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Unlike_HardDeletes(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "likes" WHERE user_id = $1 AND post_id = $2`)).
		WithArgs(2, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Unlike(ctx, 2, 7)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_LikeCount(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "likes" WHERE post_id = $1`)).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	count, err := repo.LikeCount(ctx, 7)
	assert.NoError(t, err)
	assert.Equal(t, 4, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Delete_CascadesInTransaction(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "likes" WHERE post_id = $1`)).
		WithArgs(9).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "saved_posts" WHERE post_id = $1`)).
		WithArgs(9).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "comments" SET "deleted_at"=`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM post_categories WHERE post_id = $1`)).
		WithArgs(9).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "post_media" WHERE post_id = $1`)).
		WithArgs(9).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`UPDATE "posts" SET "deleted_at"=`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(ctx, 9)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Exists(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "posts" WHERE id = $1 AND "posts"."deleted_at" IS NULL`)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	exists, err := repo.Exists(ctx, 1)
	assert.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
