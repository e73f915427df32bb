package handler

import (
	"context"
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/moderation-backend/internal/domain/entity"
	"github.com/ignatzorin/moderation-backend/internal/domain/valueobject"
	"github.com/ignatzorin/moderation-backend/internal/interface/http/dto"
	"github.com/ignatzorin/moderation-backend/internal/interface/http/response"
	"github.com/ignatzorin/moderation-backend/internal/usecase/moderation"
	"github.com/ignatzorin/moderation-backend/internal/usecase/sanction"
)

// ModerationAdmin - операции, доступные администратору.
type ModerationAdmin interface {
	PendingReports(ctx context.Context) ([]*entity.Report, error)
	AllReports(ctx context.Context) ([]*entity.Report, error)
	ReportsByStatus(ctx context.Context, status string) ([]*entity.Report, error)
	PendingReportCount(ctx context.Context, entityID uuid.UUID, entityType string) (int, error)
	Report(ctx context.Context, id uuid.UUID) (*entity.Report, error)

	Flagged(ctx context.Context, entityType string) ([]entity.ReportSummary, error)
	FlaggedDetails(ctx context.Context, entityType string) ([]*entity.EntityWithReports, error)
	EntityDetail(ctx context.Context, entityID uuid.UUID, entityType string) (*entity.EntityWithReports, error)

	Dismiss(ctx context.Context, input moderation.ActionInput) (int, error)
	MarkReviewed(ctx context.Context, input moderation.ActionInput) (int, error)
	Resolve(ctx context.Context, input moderation.ResolveInput) (int, error)
	DeleteEntity(ctx context.Context, input moderation.ActionInput) error

	BanUser(ctx context.Context, input sanction.BanUserInput) (*sanction.BanResult, error)
	SuspendUser(ctx context.Context, input sanction.SuspendUserInput) (*sanction.SuspendResult, error)
}

type AdminModerationHandler struct {
	svc ModerationAdmin
}

func NewAdminModerationHandler(svc ModerationAdmin) *AdminModerationHandler {
	return &AdminModerationHandler{svc: svc}
}

// ListReports GET /api/admin/reports[?status=]
func (h *AdminModerationHandler) ListReports(c *gin.Context) {
	var (
		reports []*entity.Report
		err     error
	)
	if status := c.Query("status"); status != "" {
		reports, err = h.svc.ReportsByStatus(c.Request.Context(), status)
	} else {
		reports, err = h.svc.AllReports(c.Request.Context())
	}
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, dto.ToReportResponses(reports))
}

// ListPendingReports GET /api/admin/reports/pending
func (h *AdminModerationHandler) ListPendingReports(c *gin.Context) {
	reports, err := h.svc.PendingReports(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, dto.ToReportResponses(reports))
}

// GetReport GET /api/admin/reports/:id
func (h *AdminModerationHandler) GetReport(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "некорректный ID жалобы")
	if !ok {
		return
	}
	report, err := h.svc.Report(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, dto.ToReportResponse(report))
}

// CountReports GET /api/admin/reports/count?entity_id=&entity_type=
func (h *AdminModerationHandler) CountReports(c *gin.Context) {
	entityID, err := uuid.Parse(c.Query("entity_id"))
	if err != nil {
		response.BadRequest(c, "некорректный entity_id")
		return
	}
	entityType := c.Query("entity_type")

	count, err := h.svc.PendingReportCount(c.Request.Context(), entityID, entityType)
	if err != nil {
		fail(c, err)
		return
	}
	parsed, _ := valueobject.ParseEntityType(entityType)
	response.Success(c, dto.ReportCountResponse{EntityID: entityID, EntityType: parsed.String(), Count: count})
}

// ListFlagged GET /api/admin/flagged/:type
func (h *AdminModerationHandler) ListFlagged(c *gin.Context) {
	summaries, err := h.svc.Flagged(c.Request.Context(), c.Param("type"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, dto.ToReportSummaryResponses(summaries))
}

// ListFlaggedDetails GET /api/admin/flagged/:type/details
func (h *AdminModerationHandler) ListFlaggedDetails(c *gin.Context) {
	details, err := h.svc.FlaggedDetails(c.Request.Context(), c.Param("type"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, dto.ToEntityDetailResponses(details))
}

// GetEntity GET /api/admin/entities/:type/:id
func (h *AdminModerationHandler) GetEntity(c *gin.Context) {
	entityID, ok := parseUUIDParam(c, "id", "некорректный ID объекта")
	if !ok {
		return
	}
	detail, err := h.svc.EntityDetail(c.Request.Context(), entityID, c.Param("type"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, dto.ToEntityDetailResponse(detail))
}

// Dismiss POST /api/admin/entities/:type/:id/dismiss
func (h *AdminModerationHandler) Dismiss(c *gin.Context) {
	input, ok := h.actionInput(c)
	if !ok {
		return
	}
	affected, err := h.svc.Dismiss(c.Request.Context(), input)
	h.respondAction(c, input, valueobject.ActionDismissed.String(), affected, err)
}

// MarkReviewed POST /api/admin/entities/:type/:id/review
func (h *AdminModerationHandler) MarkReviewed(c *gin.Context) {
	input, ok := h.actionInput(c)
	if !ok {
		return
	}
	affected, err := h.svc.MarkReviewed(c.Request.Context(), input)
	h.respondAction(c, input, "reviewed", affected, err)
}

// Resolve POST /api/admin/entities/:type/:id/resolve, тело {action} необязательно.
func (h *AdminModerationHandler) Resolve(c *gin.Context) {
	input, ok := h.actionInput(c)
	if !ok {
		return
	}

	// Пустое тело (io.EOF) означает действие по умолчанию.
	var req dto.ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(c, "некорректные данные запроса")
		return
	}

	affected, err := h.svc.Resolve(c.Request.Context(), moderation.ResolveInput{ActionInput: input, Action: req.Action})
	action, _ := valueobject.ParseResolveAction(req.Action)
	h.respondAction(c, input, action.String(), affected, err)
}

// DeleteEntity DELETE /api/admin/entities/:type/:id
func (h *AdminModerationHandler) DeleteEntity(c *gin.Context) {
	input, ok := h.actionInput(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteEntity(c.Request.Context(), input); err != nil {
		fail(c, err)
		return
	}
	parsed, _ := valueobject.ParseEntityType(input.EntityType)
	response.Success(c, gin.H{"entity_id": input.EntityID, "entity_type": parsed.String(), "deleted": true})
}

// BanUser POST /api/admin/users/:id/ban
func (h *AdminModerationHandler) BanUser(c *gin.Context) {
	adminID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "требуется авторизация")
		return
	}
	userID, ok := parseUUIDParam(c, "id", "некорректный ID пользователя")
	if !ok {
		return
	}

	var req dto.BanUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "некорректные данные запроса")
		return
	}

	result, err := h.svc.BanUser(c.Request.Context(), sanction.BanUserInput{UserID: userID, AdminID: adminID, Reason: req.Reason})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, result)
}

// SuspendUser POST /api/admin/users/:id/suspend
func (h *AdminModerationHandler) SuspendUser(c *gin.Context) {
	adminID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "требуется авторизация")
		return
	}
	userID, ok := parseUUIDParam(c, "id", "некорректный ID пользователя")
	if !ok {
		return
	}

	var req dto.SuspendUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "некорректные данные запроса")
		return
	}

	input := sanction.SuspendUserInput{
		UserID:       userID,
		AdminID:      adminID,
		DurationDays: req.DurationDays,
		Reason:       req.Reason,
	}
	if req.ReportID != nil {
		reportID, err := uuid.Parse(*req.ReportID)
		if err != nil {
			response.BadRequest(c, "некорректный report_id")
			return
		}
		input.ReportID = &reportID
	}

	result, err := h.svc.SuspendUser(c.Request.Context(), input)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, result)
}

func (h *AdminModerationHandler) actionInput(c *gin.Context) (moderation.ActionInput, bool) {
	adminID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "требуется авторизация")
		return moderation.ActionInput{}, false
	}
	entityID, ok := parseUUIDParam(c, "id", "некорректный ID объекта")
	if !ok {
		return moderation.ActionInput{}, false
	}
	return moderation.ActionInput{EntityID: entityID, EntityType: c.Param("type"), AdminID: adminID}, true
}

func (h *AdminModerationHandler) respondAction(c *gin.Context, input moderation.ActionInput, action string, affected int, err error) {
	if err != nil {
		fail(c, err)
		return
	}
	parsed, _ := valueobject.ParseEntityType(input.EntityType)
	response.Success(c, dto.ActionResponse{
		EntityID:   input.EntityID,
		EntityType: parsed.String(),
		Action:     action,
		Affected:   affected,
	})
}
