package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/moderation-backend/internal/domain/entity"
	"github.com/ignatzorin/moderation-backend/internal/domain/valueobject"
	"github.com/ignatzorin/moderation-backend/internal/pkg/apperror"
)

// ContentRepository - справочник одного вида контента (посты или вакансии).
// FindByID возвращает NotFound-ошибку своего типа, если объекта нет.
type ContentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (entity.Content, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListIDsByOwner(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error)
}

type ContentDirectory map[valueobject.EntityType]ContentRepository

func (d ContentDirectory) Lookup(t valueobject.EntityType) (ContentRepository, error) {
	repo, ok := d[t]
	if !ok || repo == nil {
		return nil, apperror.ErrInvalidReportType
	}
	return repo, nil
}

// Transactor выполняет fn в одной транзакции; репозитории берут её из ctx.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
