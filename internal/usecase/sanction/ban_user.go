package sanction

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/moderation-backend/internal/domain/event"
	"github.com/ignatzorin/moderation-backend/internal/domain/repository"
	"github.com/ignatzorin/moderation-backend/internal/domain/valueobject"
	"github.com/ignatzorin/moderation-backend/internal/logger"
	"github.com/ignatzorin/moderation-backend/internal/validation"
)

type BanUserInput struct {
	UserID  uuid.UUID
	AdminID uuid.UUID
	Reason  string
}

type BanResult struct {
	UserID              uuid.UUID `json:"user_id"`
	Username            string    `json:"username"`
	Reason              string    `json:"reason"`
	BannedAt            time.Time `json:"banned_at"`
	ResolvedReportCount int       `json:"resolved_report_count"`
}

// BanUserUseCase блокирует пользователя и закрывает связанные с ним ожидающие
// жалобы: поданные им самим и поданные на его контент.
type BanUserUseCase struct {
	userRepo   repository.UserRepository
	reportRepo repository.ReportRepository
	content    repository.ContentDirectory
	tx         repository.Transactor
	publisher  event.Publisher
}

func NewBanUserUseCase(
	userRepo repository.UserRepository,
	reportRepo repository.ReportRepository,
	content repository.ContentDirectory,
	tx repository.Transactor,
	publisher event.Publisher,
) *BanUserUseCase {
	if publisher == nil {
		publisher = event.NopPublisher{}
	}
	return &BanUserUseCase{
		userRepo:   userRepo,
		reportRepo: reportRepo,
		content:    content,
		tx:         tx,
		publisher:  publisher,
	}
}

func (uc *BanUserUseCase) Execute(ctx context.Context, input BanUserInput) (*BanResult, error) {
	if _, err := validation.Reason(input.Reason); err != nil {
		return nil, err
	}

	var result *BanResult
	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		user, err := uc.userRepo.FindByID(ctx, input.UserID)
		if err != nil {
			return err
		}

		now := time.Now()
		if err := user.Ban(input.AdminID, input.Reason, now); err != nil {
			return err
		}
		if err := uc.userRepo.UpdateSanctions(ctx, user); err != nil {
			return err
		}

		scope, err := uc.reportScope(ctx, user.ID)
		if err != nil {
			return err
		}
		resolved, err := uc.reportRepo.TransitionPendingForUser(ctx, scope,
			repository.ResolveTransition(valueobject.ActionUserBanned, input.AdminID, now))
		if err != nil {
			return err
		}

		result = &BanResult{
			UserID:              user.ID,
			Username:            user.Username,
			Reason:              *user.BannedReason,
			BannedAt:            now,
			ResolvedReportCount: resolved,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Moderation("ban_user", logrus.Fields{
		"admin_id": input.AdminID,
		"user_id":  result.UserID,
		"affected": result.ResolvedReportCount,
	}).Info("пользователь заблокирован")

	uc.publisher.PublishToUser(result.UserID, event.AccountBanned, result)
	uc.publisher.PublishToRole(event.RoleAdmin, event.UserBanned, result)

	return result, nil
}

func (uc *BanUserUseCase) reportScope(ctx context.Context, userID uuid.UUID) (repository.UserReportScope, error) {
	scope := repository.UserReportScope{
		UserID:       userID,
		OwnedContent: make(map[valueobject.EntityType][]uuid.UUID, len(uc.content)),
	}
	for entityType, repo := range uc.content {
		ids, err := repo.ListIDsByOwner(ctx, userID)
		if err != nil {
			return scope, err
		}
		if len(ids) > 0 {
			scope.OwnedContent[entityType] = ids
		}
	}
	return scope, nil
}
