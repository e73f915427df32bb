package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/moderation-backend/internal/domain/valueobject"
)

// Content - общий вид модерируемого объекта (пост или вакансия).
type Content interface {
	ContentID() uuid.UUID
	ContentType() valueobject.EntityType
	ContentOwnerID() uuid.UUID
	ContentCreatedAt() time.Time
}

type Post struct {
	ID        uuid.UUID
	AuthorID  uuid.UUID
	Text      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p *Post) ContentID() uuid.UUID                { return p.ID }
func (p *Post) ContentType() valueobject.EntityType { return valueobject.EntityTypePost }
func (p *Post) ContentOwnerID() uuid.UUID           { return p.AuthorID }
func (p *Post) ContentCreatedAt() time.Time         { return p.CreatedAt }

type Opportunity struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Title       string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (o *Opportunity) ContentID() uuid.UUID                { return o.ID }
func (o *Opportunity) ContentType() valueobject.EntityType { return valueobject.EntityTypeOpportunity }
func (o *Opportunity) ContentOwnerID() uuid.UUID           { return o.OwnerID }
func (o *Opportunity) ContentCreatedAt() time.Time         { return o.CreatedAt }

// ReportSummary - вычисляемое представление, не хранится.
type ReportSummary struct {
	EntityID    uuid.UUID
	EntityType  valueobject.EntityType
	ReportCount int
}

const (
	DetailStatusPending  = "pending"
	DetailStatusResolved = "resolved"
)

// EntityWithReports объединяет объект модерации с его ожидающими жалобами.
type EntityWithReports struct {
	Entity      Content
	Owner       *UserSummary
	Reports     []*Report
	ReportCount int
	Status      string
}

func NewEntityWithReports(content Content, owner *UserSummary, pending []*Report) *EntityWithReports {
	status := DetailStatusPending
	if len(pending) == 0 {
		status = DetailStatusResolved
	}
	return &EntityWithReports{
		Entity:      content,
		Owner:       owner,
		Reports:     pending,
		ReportCount: len(pending),
		Status:      status,
	}
}
