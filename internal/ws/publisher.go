package ws

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/moderation-backend/internal/logger"
)

// EventPublisher доставляет события модерации через Hub. Ошибки доставки
// только логируются: действие модерации уже зафиксировано.
type EventPublisher struct {
	hub *Hub
}

func NewEventPublisher(hub *Hub) *EventPublisher {
	return &EventPublisher{hub: hub}
}

func (p *EventPublisher) PublishToRole(role, name string, data any) {
	if err := p.hub.BroadcastToRole(role, name, data); err != nil {
		logger.Log.WithFields(logrus.Fields{"event": name, "role": role, "error": err.Error()}).Warn("ws: событие не отправлено")
	}
}

func (p *EventPublisher) PublishToUser(userID uuid.UUID, name string, data any) {
	if err := p.hub.BroadcastToUser(userID, name, data); err != nil {
		logger.Log.WithFields(logrus.Fields{"event": name, "user_id": userID, "error": err.Error()}).Warn("ws: событие не отправлено")
	}
}
