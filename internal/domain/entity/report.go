package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/moderation-backend/internal/domain/valueobject"
	"github.com/ignatzorin/moderation-backend/internal/pkg/apperror"
	"github.com/ignatzorin/moderation-backend/internal/validation"
)

type Report struct {
	ID                uuid.UUID
	ReporterID        uuid.UUID
	EntityType        valueobject.EntityType
	EntityID          uuid.UUID
	Reason            string
	Status            valueobject.ReportStatus
	ActionTaken       valueobject.ActionTaken
	ResolvedByAdminID *uuid.UUID
	ResolvedAt        *time.Time
	ReviewedByAdminID *uuid.UUID
	ReviewedAt        *time.Time
	CreatedAt         time.Time
}

func NewReport(reporterID uuid.UUID, entityType valueobject.EntityType, entityID uuid.UUID, reason string) (*Report, error) {
	if !entityType.IsValid() {
		return nil, apperror.ErrInvalidReportType
	}
	reason, err := validation.Reason(reason)
	if err != nil {
		return nil, err
	}

	return &Report{
		ID:          uuid.New(),
		ReporterID:  reporterID,
		EntityType:  entityType,
		EntityID:    entityID,
		Reason:      reason,
		Status:      valueobject.ReportStatusPending,
		ActionTaken: valueobject.ActionNone,
		CreatedAt:   time.Now(),
	}, nil
}

// Resolve переводит жалобу в resolved с указанным действием.
func (r *Report) Resolve(adminID uuid.UUID, action valueobject.ActionTaken, at time.Time) error {
	if !action.IsResolution() {
		return apperror.ErrInvalidAction
	}
	if !r.IsPending() {
		return apperror.New(apperror.ErrCodeBadRequest, "можно закрыть только ожидающую жалобу")
	}
	r.close(valueobject.ReportStatusResolved, action, adminID, at)
	return nil
}

func (r *Report) Dismiss(adminID uuid.UUID, at time.Time) error {
	if !r.IsPending() {
		return apperror.New(apperror.ErrCodeBadRequest, "можно отклонить только ожидающую жалобу")
	}
	r.close(valueobject.ReportStatusDismissed, valueobject.ActionDismissed, adminID, at)
	return nil
}

// MarkReviewed только отмечает просмотр администратором, статус не меняется.
func (r *Report) MarkReviewed(adminID uuid.UUID, at time.Time) {
	r.ReviewedByAdminID = &adminID
	r.ReviewedAt = &at
}

func (r *Report) IsPending() bool {
	return r.Status == valueobject.ReportStatusPending
}

func (r *Report) close(status valueobject.ReportStatus, action valueobject.ActionTaken, adminID uuid.UUID, at time.Time) {
	r.Status = status
	r.ActionTaken = action
	r.ResolvedByAdminID = &adminID
	r.ResolvedAt = &at
}
