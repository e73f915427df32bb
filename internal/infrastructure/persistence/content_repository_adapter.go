package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/moderation-backend/internal/domain/entity"
	"github.com/ignatzorin/moderation-backend/internal/domain/repository"
	"github.com/ignatzorin/moderation-backend/internal/domain/valueobject"
	"github.com/ignatzorin/moderation-backend/internal/pkg/apperror"
)

// NewContentDirectory собирает справочники постов и вакансий.
func NewContentDirectory(db *sqlx.DB) repository.ContentDirectory {
	return repository.ContentDirectory{
		valueobject.EntityTypePost:        NewPostRepositoryAdapter(db),
		valueobject.EntityTypeOpportunity: NewOpportunityRepositoryAdapter(db),
	}
}

type PostRepositoryAdapter struct {
	db *sqlx.DB
}

func NewPostRepositoryAdapter(db *sqlx.DB) *PostRepositoryAdapter {
	return &PostRepositoryAdapter{db: db}
}

func (r *PostRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (entity.Content, error) {
	var row postRow
	query := `SELECT id, author_id, text, created_at, updated_at FROM posts WHERE id = $1`
	if err := conn(ctx, r.db).GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrPostNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить пост")
	}
	return &entity.Post{
		ID:        row.ID,
		AuthorID:  row.AuthorID,
		Text:      row.Text,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

func (r *PostRepositoryAdapter) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, `DELETE FROM posts WHERE id = $1`, id, apperror.ErrPostNotFound)
}

func (r *PostRepositoryAdapter) ListIDsByOwner(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := conn(ctx, r.db).SelectContext(ctx, &ids, `SELECT id FROM posts WHERE author_id = $1`, ownerID); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить посты пользователя")
	}
	return ids, nil
}

type OpportunityRepositoryAdapter struct {
	db *sqlx.DB
}

func NewOpportunityRepositoryAdapter(db *sqlx.DB) *OpportunityRepositoryAdapter {
	return &OpportunityRepositoryAdapter{db: db}
}

func (r *OpportunityRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (entity.Content, error) {
	var row opportunityRow
	query := `SELECT id, owner_id, title, description, created_at, updated_at FROM opportunities WHERE id = $1`
	if err := conn(ctx, r.db).GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrOpportunityNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить вакансию")
	}
	return &entity.Opportunity{
		ID:          row.ID,
		OwnerID:     row.OwnerID,
		Title:       row.Title,
		Description: row.Description,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}, nil
}

func (r *OpportunityRepositoryAdapter) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, `DELETE FROM opportunities WHERE id = $1`, id, apperror.ErrOpportunityNotFound)
}

func (r *OpportunityRepositoryAdapter) ListIDsByOwner(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := conn(ctx, r.db).SelectContext(ctx, &ids, `SELECT id FROM opportunities WHERE owner_id = $1`, ownerID); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить вакансии пользователя")
	}
	return ids, nil
}

func deleteByID(ctx context.Context, db *sqlx.DB, query string, id uuid.UUID, notFound error) error {
	res, err := conn(ctx, db).ExecContext(ctx, query, id)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось удалить объект")
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return notFound
	}
	return nil
}

type postRow struct {
	ID        uuid.UUID `db:"id"`
	AuthorID  uuid.UUID `db:"author_id"`
	Text      string    `db:"text"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type opportunityRow struct {
	ID          uuid.UUID `db:"id"`
	OwnerID     uuid.UUID `db:"owner_id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
