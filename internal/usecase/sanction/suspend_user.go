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
	"github.com/ignatzorin/moderation-backend/internal/pkg/apperror"
	"github.com/ignatzorin/moderation-backend/internal/validation"
)

type SuspendUserInput struct {
	UserID       uuid.UUID
	AdminID      uuid.UUID
	DurationDays int
	Reason       string
	// ReportID - необязательная жалоба, закрываемая вместе с приостановкой.
	ReportID *uuid.UUID
}

type SuspendResult struct {
	UserID         uuid.UUID  `json:"user_id"`
	Username       string     `json:"username"`
	DurationDays   int        `json:"duration_days"`
	Reason         string     `json:"reason"`
	SuspendedUntil time.Time  `json:"suspended_until"`
	ReportID       *uuid.UUID `json:"report_id,omitempty"`
	ReportResolved bool       `json:"report_resolved"`
}

// SuspendUserUseCase приостанавливает аккаунт на заданное число дней.
// Истечение срока проверяется лениво, фоновой очистки нет.
type SuspendUserUseCase struct {
	userRepo   repository.UserRepository
	reportRepo repository.ReportRepository
	tx         repository.Transactor
	publisher  event.Publisher
}

func NewSuspendUserUseCase(
	userRepo repository.UserRepository,
	reportRepo repository.ReportRepository,
	tx repository.Transactor,
	publisher event.Publisher,
) *SuspendUserUseCase {
	if publisher == nil {
		publisher = event.NopPublisher{}
	}
	return &SuspendUserUseCase{
		userRepo:   userRepo,
		reportRepo: reportRepo,
		tx:         tx,
		publisher:  publisher,
	}
}

func (uc *SuspendUserUseCase) Execute(ctx context.Context, input SuspendUserInput) (*SuspendResult, error) {
	if input.DurationDays <= 0 {
		return nil, apperror.ErrInvalidDuration
	}
	if _, err := validation.Reason(input.Reason); err != nil {
		return nil, err
	}

	var result *SuspendResult
	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		user, err := uc.userRepo.FindByID(ctx, input.UserID)
		if err != nil {
			return err
		}

		now := time.Now()
		if err := user.Suspend(input.DurationDays, input.Reason, now); err != nil {
			return err
		}
		if err := uc.userRepo.UpdateSanctions(ctx, user); err != nil {
			return err
		}

		resolved := false
		if input.ReportID != nil {
			// Жалоба уже закрыта или не существует: приостановка всё равно действует.
			resolved, err = uc.reportRepo.TransitionPendingByID(ctx, *input.ReportID,
				repository.ResolveTransition(valueobject.ActionUserSuspended, input.AdminID, now))
			if err != nil {
				return err
			}
		}

		result = &SuspendResult{
			UserID:         user.ID,
			Username:       user.Username,
			DurationDays:   input.DurationDays,
			Reason:         *user.SuspensionReason,
			SuspendedUntil: *user.SuspendedUntil,
			ReportID:       input.ReportID,
			ReportResolved: resolved,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Moderation("suspend_user", logrus.Fields{
		"admin_id":        input.AdminID,
		"user_id":         result.UserID,
		"duration_days":   result.DurationDays,
		"report_resolved": result.ReportResolved,
	}).Info("пользователь приостановлен")

	uc.publisher.PublishToUser(result.UserID, event.AccountSuspended, result)
	uc.publisher.PublishToRole(event.RoleAdmin, event.UserSuspended, result)

	return result, nil
}
