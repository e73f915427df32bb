package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/moderation-backend/internal/domain/entity"
	"github.com/ignatzorin/moderation-backend/internal/domain/valueobject"
)

// ReportRepository - хранилище жалоб. Все переходы статуса выполняются одним
// условным UPDATE по status = 'pending' и возвращают число затронутых строк.
type ReportRepository interface {
	Create(ctx context.Context, report *entity.Report) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Report, error)
	List(ctx context.Context, filter ReportFilter) ([]*entity.Report, error)
	CountPending(ctx context.Context, entityID uuid.UUID, entityType valueobject.EntityType) (int, error)
	PendingSummaries(ctx context.Context, entityType valueobject.EntityType, minCount int) ([]entity.ReportSummary, error)

	TransitionPendingForEntity(ctx context.Context, entityID uuid.UUID, entityType valueobject.EntityType, t ReportTransition) (int, error)
	TransitionPendingByID(ctx context.Context, id uuid.UUID, t ReportTransition) (bool, error)
	TransitionPendingForUser(ctx context.Context, scope UserReportScope, t ReportTransition) (int, error)
	MarkPendingReviewed(ctx context.Context, entityID uuid.UUID, entityType valueobject.EntityType, adminID uuid.UUID, at time.Time) (int, error)
}

// ReportFilter - пустые поля не ограничивают выборку.
type ReportFilter struct {
	Status     *valueobject.ReportStatus
	EntityType *valueobject.EntityType
	EntityID   *uuid.UUID
}

func PendingFor(entityID uuid.UUID, entityType valueobject.EntityType) ReportFilter {
	status := valueobject.ReportStatusPending
	return ReportFilter{Status: &status, EntityType: &entityType, EntityID: &entityID}
}

type ReportTransition struct {
	Status  valueobject.ReportStatus
	Action  valueobject.ActionTaken
	AdminID uuid.UUID
	At      time.Time
}

func ResolveTransition(action valueobject.ActionTaken, adminID uuid.UUID, at time.Time) ReportTransition {
	return ReportTransition{Status: valueobject.ReportStatusResolved, Action: action, AdminID: adminID, At: at}
}

func DismissTransition(adminID uuid.UUID, at time.Time) ReportTransition {
	return ReportTransition{Status: valueobject.ReportStatusDismissed, Action: valueobject.ActionDismissed, AdminID: adminID, At: at}
}

// UserReportScope описывает жалобы, связанные с пользователем: поданные им
// или поданные на принадлежащий ему контент.
type UserReportScope struct {
	UserID       uuid.UUID
	OwnedContent map[valueobject.EntityType][]uuid.UUID
}
