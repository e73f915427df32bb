package persistence

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/moderation-backend/internal/domain/entity"
	"github.com/ignatzorin/moderation-backend/internal/pkg/apperror"
)

func TestTransactor_CommitsAndRoutesQueriesThroughTx(t *testing.T) {
	db, mock := newMockDB(t)
	tx := NewTransactor(db)
	users := NewUserRepositoryAdapter(db)
	user := &entity.User{ID: uuid.New()}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET is_banned")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := tx.WithinTransaction(context.Background(), func(ctx context.Context) error {
		return users.UpdateSanctions(ctx, user)
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactor_RollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	tx := NewTransactor(db)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := tx.WithinTransaction(context.Background(), func(ctx context.Context) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactor_NestedCallReusesTx(t *testing.T) {
	db, mock := newMockDB(t)
	tx := NewTransactor(db)

	mock.ExpectBegin()
	mock.ExpectCommit()

	calls := 0
	err := tx.WithinTransaction(context.Background(), func(ctx context.Context) error {
		return tx.WithinTransaction(ctx, func(context.Context) error {
			calls++
			return nil
		})
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryAdapter_UpdateSanctions_Missing(t *testing.T) {
	db, mock := newMockDB(t)
	users := NewUserRepositoryAdapter(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET is_banned")).WillReturnResult(sqlmock.NewResult(0, 0))

	err := users.UpdateSanctions(context.Background(), &entity.User{ID: uuid.New()})
	assert.ErrorIs(t, err, apperror.ErrUserNotFound)
}

func TestPostRepositoryAdapter_DeleteMissing(t *testing.T) {
	db, mock := newMockDB(t)
	posts := NewPostRepositoryAdapter(db)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM posts WHERE id = $1")).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, posts.Delete(context.Background(), id), apperror.ErrPostNotFound)
}

func TestContentDirectory_Lookup(t *testing.T) {
	db, _ := newMockDB(t)
	dir := NewContentDirectory(db)

	repo, err := dir.Lookup("opportunity")
	require.NoError(t, err)
	assert.IsType(t, &OpportunityRepositoryAdapter{}, repo)

	_, err = dir.Lookup("user")
	assert.ErrorIs(t, err, apperror.ErrInvalidReportType)
}
