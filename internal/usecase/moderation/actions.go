package moderation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/moderation-backend/internal/domain/event"
	"github.com/ignatzorin/moderation-backend/internal/domain/repository"
	"github.com/ignatzorin/moderation-backend/internal/domain/valueobject"
	"github.com/ignatzorin/moderation-backend/internal/logger"
)

type ActionInput struct {
	EntityID   uuid.UUID
	EntityType string
	AdminID    uuid.UUID
}

// ActionResult - полезная нагрузка события модерации.
type ActionResult struct {
	EntityID   uuid.UUID               `json:"entity_id"`
	EntityType valueobject.EntityType  `json:"entity_type"`
	AdminID    uuid.UUID               `json:"admin_id"`
	Action     valueobject.ActionTaken `json:"action,omitempty"`
	Affected   int                     `json:"affected"`
}

func notify(publisher event.Publisher, name, logAction string, result ActionResult) {
	logger.Moderation(logAction, logrus.Fields{
		"admin_id":    result.AdminID,
		"entity_id":   result.EntityID,
		"entity_type": result.EntityType,
		"affected":    result.Affected,
	}).Info("действие модерации выполнено")
	publisher.PublishToRole(event.RoleAdmin, name, result)
}

func orNop(publisher event.Publisher) event.Publisher {
	if publisher == nil {
		return event.NopPublisher{}
	}
	return publisher
}

// DismissUseCase отклоняет все ожидающие жалобы на объект. Ноль затронутых жалоб не ошибка.
type DismissUseCase struct {
	reportRepo repository.ReportRepository
	publisher  event.Publisher
}

func NewDismissUseCase(reportRepo repository.ReportRepository, publisher event.Publisher) *DismissUseCase {
	return &DismissUseCase{reportRepo: reportRepo, publisher: orNop(publisher)}
}

func (uc *DismissUseCase) Execute(ctx context.Context, input ActionInput) (int, error) {
	entityType, err := valueobject.ParseEntityType(input.EntityType)
	if err != nil {
		return 0, err
	}
	affected, err := uc.reportRepo.TransitionPendingForEntity(ctx, input.EntityID, entityType,
		repository.DismissTransition(input.AdminID, time.Now()))
	if err != nil {
		return 0, err
	}
	notify(uc.publisher, event.EntityDismissed, "dismiss", ActionResult{
		EntityID: input.EntityID, EntityType: entityType, AdminID: input.AdminID,
		Action: valueobject.ActionDismissed, Affected: affected,
	})
	return affected, nil
}

// MarkReviewedUseCase отмечает ожидающие жалобы просмотренными, статус остаётся pending.
type MarkReviewedUseCase struct {
	reportRepo repository.ReportRepository
	publisher  event.Publisher
}

func NewMarkReviewedUseCase(reportRepo repository.ReportRepository, publisher event.Publisher) *MarkReviewedUseCase {
	return &MarkReviewedUseCase{reportRepo: reportRepo, publisher: orNop(publisher)}
}

func (uc *MarkReviewedUseCase) Execute(ctx context.Context, input ActionInput) (int, error) {
	entityType, err := valueobject.ParseEntityType(input.EntityType)
	if err != nil {
		return 0, err
	}
	affected, err := uc.reportRepo.MarkPendingReviewed(ctx, input.EntityID, entityType, input.AdminID, time.Now())
	if err != nil {
		return 0, err
	}
	notify(uc.publisher, event.EntityReviewed, "mark_reviewed", ActionResult{
		EntityID: input.EntityID, EntityType: entityType, AdminID: input.AdminID, Affected: affected,
	})
	return affected, nil
}

type ResolveInput struct {
	ActionInput
	// Action по умолчанию content_deleted.
	Action string
}

type ResolveUseCase struct {
	reportRepo repository.ReportRepository
	publisher  event.Publisher
}

func NewResolveUseCase(reportRepo repository.ReportRepository, publisher event.Publisher) *ResolveUseCase {
	return &ResolveUseCase{reportRepo: reportRepo, publisher: orNop(publisher)}
}

func (uc *ResolveUseCase) Execute(ctx context.Context, input ResolveInput) (int, error) {
	entityType, err := valueobject.ParseEntityType(input.EntityType)
	if err != nil {
		return 0, err
	}
	action, err := valueobject.ParseResolveAction(input.Action)
	if err != nil {
		return 0, err
	}
	affected, err := uc.reportRepo.TransitionPendingForEntity(ctx, input.EntityID, entityType,
		repository.ResolveTransition(action, input.AdminID, time.Now()))
	if err != nil {
		return 0, err
	}
	notify(uc.publisher, event.EntityResolved, "resolve", ActionResult{
		EntityID: input.EntityID, EntityType: entityType, AdminID: input.AdminID,
		Action: action, Affected: affected,
	})
	return affected, nil
}

// DeleteEntityUseCase удаляет контент. Жалобы на него остаются pending.
type DeleteEntityUseCase struct {
	content   repository.ContentDirectory
	publisher event.Publisher
}

func NewDeleteEntityUseCase(content repository.ContentDirectory, publisher event.Publisher) *DeleteEntityUseCase {
	return &DeleteEntityUseCase{content: content, publisher: orNop(publisher)}
}

func (uc *DeleteEntityUseCase) Execute(ctx context.Context, input ActionInput) error {
	entityType, err := valueobject.ParseEntityType(input.EntityType)
	if err != nil {
		return err
	}
	repo, err := uc.content.Lookup(entityType)
	if err != nil {
		return err
	}
	if _, err := repo.FindByID(ctx, input.EntityID); err != nil {
		return err
	}
	if err := repo.Delete(ctx, input.EntityID); err != nil {
		return err
	}
	notify(uc.publisher, event.EntityDeleted, "delete_entity", ActionResult{
		EntityID: input.EntityID, EntityType: entityType, AdminID: input.AdminID,
	})
	return nil
}
