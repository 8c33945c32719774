package repository

import (
	"context"
	"regexp"
	"testing"

	"foodmedia/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestFollowRepository_Create_Idempotent(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	// Duplicate follow hits the unique pair index and affects zero rows.
	mock.ExpectExec(`INSERT INTO follows .+ ON CONFLICT \(follower_id, followee_id\) DO NOTHING`).
		WithArgs(1, 2).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Create(ctx, &models.Follow{FollowerID: 1, FolloweeID: 2})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowRepository_Delete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "follows" WHERE follower_id = $1 AND followee_id = $2`)).
		WithArgs(1, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(ctx, 1, 2)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowRepository_Delete_AbsentEdgeIsNoop(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "follows" WHERE follower_id = $1 AND followee_id = $2`)).
		WithArgs(1, 99).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.Delete(ctx, 1, 99)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowRepository_Exists(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "follows" WHERE follower_id = $1 AND followee_id = $2`)).
		WithArgs(1, 2).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.Exists(ctx, 1, 2)
	assert.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowRepository_GetFolloweeIDs(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "followee_id" FROM "follows" WHERE follower_id = $1`)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"followee_id"}).AddRow(2).AddRow(3))

	ids, err := repo.GetFolloweeIDs(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, []uint{2, 3}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowRepository_GetFollowees(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT .+ FROM "users" JOIN follows f ON users\.id = f\.followee_id WHERE f\.follower_id = .+`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).
			AddRow(2, "bob").
			AddRow(3, "carol"))

	users, err := repo.GetFollowees(ctx, 1)
	assert.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, "bob", users[0].Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}
