package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/moderation-backend/internal/domain/entity"
)

type ResolveRequest struct {
	Action string `json:"action"`
}

type BanUserRequest struct {
	Reason string `json:"reason"`
}

type SuspendUserRequest struct {
	DurationDays int     `json:"duration_days"`
	Reason       string  `json:"reason"`
	ReportID     *string `json:"report_id" binding:"omitempty,uuid"`
}

type ReportSummaryResponse struct {
	EntityID    uuid.UUID `json:"entity_id"`
	EntityType  string    `json:"entity_type"`
	ReportCount int       `json:"report_count"`
}

func ToReportSummaryResponses(summaries []entity.ReportSummary) []ReportSummaryResponse {
	responses := make([]ReportSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		responses = append(responses, ReportSummaryResponse{
			EntityID:    s.EntityID,
			EntityType:  s.EntityType.String(),
			ReportCount: s.ReportCount,
		})
	}
	return responses
}

// ContentResponse - общий вид поста или вакансии. Для поста заполнен text,
// для вакансии title и description.
type ContentResponse struct {
	ID          uuid.UUID `json:"id"`
	Type        string    `json:"type"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Text        string    `json:"text,omitempty"`
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToContentResponse(content entity.Content) ContentResponse {
	resp := ContentResponse{
		ID:        content.ContentID(),
		Type:      content.ContentType().String(),
		OwnerID:   content.ContentOwnerID(),
		CreatedAt: content.ContentCreatedAt(),
	}
	switch c := content.(type) {
	case *entity.Post:
		resp.Text = c.Text
		resp.UpdatedAt = c.UpdatedAt
	case *entity.Opportunity:
		resp.Title = c.Title
		resp.Description = c.Description
		resp.UpdatedAt = c.UpdatedAt
	}
	return resp
}

type UserSummaryResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

type EntityDetailResponse struct {
	Entity      ContentResponse      `json:"entity"`
	Owner       *UserSummaryResponse `json:"owner"`
	Reports     []ReportResponse     `json:"reports"`
	ReportCount int                  `json:"report_count"`
	Status      string               `json:"status"`
}

func ToEntityDetailResponse(detail *entity.EntityWithReports) EntityDetailResponse {
	resp := EntityDetailResponse{
		Entity:      ToContentResponse(detail.Entity),
		Reports:     ToReportResponses(detail.Reports),
		ReportCount: detail.ReportCount,
		Status:      detail.Status,
	}
	if detail.Owner != nil {
		resp.Owner = &UserSummaryResponse{ID: detail.Owner.ID, Username: detail.Owner.Username}
	}
	return resp
}

func ToEntityDetailResponses(details []*entity.EntityWithReports) []EntityDetailResponse {
	responses := make([]EntityDetailResponse, 0, len(details))
	for _, d := range details {
		responses = append(responses, ToEntityDetailResponse(d))
	}
	return responses
}

// ActionResponse - результат массового действия над жалобами.
type ActionResponse struct {
	EntityID   uuid.UUID `json:"entity_id"`
	EntityType string    `json:"entity_type"`
	Action     string    `json:"action"`
	Affected   int       `json:"affected"`
}
