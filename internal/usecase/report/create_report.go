package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/moderation-backend/internal/domain/entity"
	"github.com/ignatzorin/moderation-backend/internal/domain/event"
	"github.com/ignatzorin/moderation-backend/internal/domain/repository"
	"github.com/ignatzorin/moderation-backend/internal/domain/valueobject"
	"github.com/ignatzorin/moderation-backend/internal/logger"
	"github.com/ignatzorin/moderation-backend/internal/pkg/apperror"
)

type CreateReportInput struct {
	ReporterID uuid.UUID
	EntityType string
	EntityID   uuid.UUID
	Reason     string
}

// CreatedEvent - полезная нагрузка события report.created.
type CreatedEvent struct {
	ReportID   uuid.UUID                `json:"report_id"`
	ReporterID uuid.UUID                `json:"reporter_id"`
	EntityType valueobject.EntityType   `json:"entity_type"`
	EntityID   uuid.UUID                `json:"entity_id"`
	Reason     string                   `json:"reason"`
	Status     valueobject.ReportStatus `json:"status"`
	CreatedAt  time.Time                `json:"created_at"`
}

func newCreatedEvent(r *entity.Report) CreatedEvent {
	return CreatedEvent{
		ReportID:   r.ID,
		ReporterID: r.ReporterID,
		EntityType: r.EntityType,
		EntityID:   r.EntityID,
		Reason:     r.Reason,
		Status:     r.Status,
		CreatedAt:  r.CreatedAt,
	}
}

// CreateReportUseCase принимает жалобу пользователя. Существование контента
// не проверяется, повторные жалобы не отсекаются.
type CreateReportUseCase struct {
	reportRepo repository.ReportRepository
	userRepo   repository.UserRepository
	publisher  event.Publisher
}

func NewCreateReportUseCase(reportRepo repository.ReportRepository, userRepo repository.UserRepository, publisher event.Publisher) *CreateReportUseCase {
	if publisher == nil {
		publisher = event.NopPublisher{}
	}
	return &CreateReportUseCase{
		reportRepo: reportRepo,
		userRepo:   userRepo,
		publisher:  publisher,
	}
}

func (uc *CreateReportUseCase) Execute(ctx context.Context, input CreateReportInput) (*entity.Report, error) {
	entityType, err := valueobject.ParseEntityType(input.EntityType)
	if err != nil {
		return nil, err
	}

	// Валидация причины до обращения к хранилищу.
	report, err := entity.NewReport(input.ReporterID, entityType, input.EntityID, input.Reason)
	if err != nil {
		return nil, err
	}

	exists, err := uc.userRepo.Exists(ctx, input.ReporterID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperror.ErrUserNotFound
	}

	if err := uc.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	logger.Moderation("report_created", logrus.Fields{
		"report_id":   report.ID,
		"user_id":     report.ReporterID,
		"entity_id":   report.EntityID,
		"entity_type": report.EntityType,
	}).Info("жалоба создана")

	uc.publisher.PublishToRole(event.RoleAdmin, event.ReportCreated, newCreatedEvent(report))

	return report, nil
}
