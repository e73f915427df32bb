package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/moderation-backend/internal/domain/entity"
	"github.com/ignatzorin/moderation-backend/internal/pkg/apperror"
)

// UserRepositoryAdapter читает пользователей и пишет только поля санкций.
type UserRepositoryAdapter struct {
	db *sqlx.DB
}

func NewUserRepositoryAdapter(db *sqlx.DB) *UserRepositoryAdapter {
	return &UserRepositoryAdapter{db: db}
}

func (r *UserRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var row userRow
	query := `
		SELECT id, username, email, role, is_banned, banned_at, banned_reason, banned_by,
		is_suspended, suspended_until, suspension_reason, created_at, updated_at
		FROM users WHERE id = $1
	`
	if err := conn(ctx, r.db).GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrUserNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить пользователя")
	}
	return row.toEntity(), nil
}

func (r *UserRepositoryAdapter) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	if err := conn(ctx, r.db).GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id); err != nil {
		return false, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось проверить пользователя")
	}
	return exists, nil
}

func (r *UserRepositoryAdapter) UpdateSanctions(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users SET is_banned = $2, banned_at = $3, banned_reason = $4, banned_by = $5,
		is_suspended = $6, suspended_until = $7, suspension_reason = $8, updated_at = $9
		WHERE id = $1
	`
	res, err := conn(ctx, r.db).ExecContext(ctx, query,
		user.ID, user.IsBanned, user.BannedAt, user.BannedReason, user.BannedByAdminID,
		user.IsSuspended, user.SuspendedUntil, user.SuspensionReason, user.UpdatedAt,
	)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить санкции пользователя")
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return apperror.ErrUserNotFound
	}
	return nil
}

type userRow struct {
	ID               uuid.UUID  `db:"id"`
	Username         string     `db:"username"`
	Email            string     `db:"email"`
	Role             string     `db:"role"`
	IsBanned         bool       `db:"is_banned"`
	BannedAt         *time.Time `db:"banned_at"`
	BannedReason     *string    `db:"banned_reason"`
	BannedBy         *uuid.UUID `db:"banned_by"`
	IsSuspended      bool       `db:"is_suspended"`
	SuspendedUntil   *time.Time `db:"suspended_until"`
	SuspensionReason *string    `db:"suspension_reason"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at"`
}

func (row *userRow) toEntity() *entity.User {
	return &entity.User{
		ID:               row.ID,
		Username:         row.Username,
		Email:            row.Email,
		Role:             row.Role,
		IsBanned:         row.IsBanned,
		BannedAt:         row.BannedAt,
		BannedReason:     row.BannedReason,
		BannedByAdminID:  row.BannedBy,
		IsSuspended:      row.IsSuspended,
		SuspendedUntil:   row.SuspendedUntil,
		SuspensionReason: row.SuspensionReason,
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
	}
}
