package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/moderation-backend/internal/domain/entity"
)

type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	UpdateSanctions(ctx context.Context, user *entity.User) error
}
