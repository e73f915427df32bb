package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/moderation-backend/internal/domain/entity"
	"github.com/ignatzorin/moderation-backend/internal/interface/http/dto"
	"github.com/ignatzorin/moderation-backend/internal/interface/http/response"
	"github.com/ignatzorin/moderation-backend/internal/usecase/report"
)

type ReportCreator interface {
	CreateReport(ctx context.Context, input report.CreateReportInput) (*entity.Report, error)
}

type ReportHandler struct {
	svc ReportCreator
}

func NewReportHandler(svc ReportCreator) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// CreateReport POST /api/reports
func (h *ReportHandler) CreateReport(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "требуется авторизация")
		return
	}

	var req dto.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "некорректные данные запроса")
		return
	}
	entityID, _ := uuid.Parse(req.EntityID)

	created, err := h.svc.CreateReport(c.Request.Context(), report.CreateReportInput{
		ReporterID: userID,
		EntityType: req.EntityType,
		EntityID:   entityID,
		Reason:     req.Reason,
	})
	if err != nil {
		fail(c, err)
		return
	}

	response.Created(c, dto.ToReportResponse(created))
}
