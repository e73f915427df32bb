package event

import "github.com/google/uuid"

// Имена событий модерации, уходящих в WebSocket.
const (
	ReportCreated    = "report.created"
	EntityDismissed  = "moderation.entity_dismissed"
	EntityReviewed   = "moderation.entity_reviewed"
	EntityResolved   = "moderation.entity_resolved"
	EntityDeleted    = "moderation.entity_deleted"
	UserBanned       = "moderation.user_banned"
	UserSuspended    = "moderation.user_suspended"
	AccountBanned    = "account.banned"
	AccountSuspended = "account.suspended"
)

// RoleAdmin - роль получателей событий модерации.
const RoleAdmin = "admin"

// Publisher доставляет события подключённым клиентам. Доставка не гарантируется.
type Publisher interface {
	PublishToRole(role string, name string, data any)
	PublishToUser(userID uuid.UUID, name string, data any)
}

type NopPublisher struct{}

func (NopPublisher) PublishToRole(string, string, any)    {}
func (NopPublisher) PublishToUser(uuid.UUID, string, any) {}
