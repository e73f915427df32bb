package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/moderation-backend/internal/domain/entity"
)

// Причина и тип проверяются в use case, чтобы ответ нёс доменную ошибку.
type CreateReportRequest struct {
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id" binding:"required,uuid"`
	Reason     string `json:"reason"`
}

type ReportResponse struct {
	ID          uuid.UUID  `json:"id"`
	ReporterID  uuid.UUID  `json:"reporter_id"`
	EntityType  string     `json:"entity_type"`
	EntityID    uuid.UUID  `json:"entity_id"`
	Reason      string     `json:"reason"`
	Status      string     `json:"status"`
	ActionTaken string     `json:"action_taken"`
	ResolvedBy  *uuid.UUID `json:"resolved_by"`
	ResolvedAt  *time.Time `json:"resolved_at"`
	ReviewedBy  *uuid.UUID `json:"reviewed_by"`
	ReviewedAt  *time.Time `json:"reviewed_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

func ToReportResponse(report *entity.Report) ReportResponse {
	return ReportResponse{
		ID:          report.ID,
		ReporterID:  report.ReporterID,
		EntityType:  report.EntityType.String(),
		EntityID:    report.EntityID,
		Reason:      report.Reason,
		Status:      report.Status.String(),
		ActionTaken: report.ActionTaken.String(),
		ResolvedBy:  report.ResolvedByAdminID,
		ResolvedAt:  report.ResolvedAt,
		ReviewedBy:  report.ReviewedByAdminID,
		ReviewedAt:  report.ReviewedAt,
		CreatedAt:   report.CreatedAt,
	}
}

func ToReportResponses(reports []*entity.Report) []ReportResponse {
	responses := make([]ReportResponse, 0, len(reports))
	for _, report := range reports {
		responses = append(responses, ToReportResponse(report))
	}
	return responses
}

type ReportCountResponse struct {
	EntityID   uuid.UUID `json:"entity_id"`
	EntityType string    `json:"entity_type"`
	Count      int       `json:"count"`
}
