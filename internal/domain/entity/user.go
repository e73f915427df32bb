package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/moderation-backend/internal/pkg/apperror"
	"github.com/ignatzorin/moderation-backend/internal/validation"
)

// User - агрегат пользователя. Поля санкций меняются только через Ban и Suspend.
type User struct {
	ID               uuid.UUID
	Username         string
	Email            string
	Role             string
	IsBanned         bool
	BannedAt         *time.Time
	BannedReason     *string
	BannedByAdminID  *uuid.UUID
	IsSuspended      bool
	SuspendedUntil   *time.Time
	SuspensionReason *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type UserSummary struct {
	ID       uuid.UUID
	Username string
}

// Ban перезаписывает данные блокировки даже для уже заблокированного пользователя.
func (u *User) Ban(adminID uuid.UUID, reason string, at time.Time) error {
	reason, err := validation.Reason(reason)
	if err != nil {
		return err
	}
	u.IsBanned = true
	u.BannedAt = &at
	u.BannedReason = &reason
	u.BannedByAdminID = &adminID
	u.UpdatedAt = at
	return nil
}

// Suspend выставляет срок приостановки. Повторный вызов заменяет предыдущий срок.
func (u *User) Suspend(durationDays int, reason string, at time.Time) error {
	if durationDays <= 0 {
		return apperror.ErrInvalidDuration
	}
	reason, err := validation.Reason(reason)
	if err != nil {
		return err
	}
	until := at.AddDate(0, 0, durationDays)
	u.IsSuspended = true
	u.SuspendedUntil = &until
	u.SuspensionReason = &reason
	u.UpdatedAt = at
	return nil
}

// IsSuspendedAt проверяет приостановку лениво: истёкший срок не очищается, а просто игнорируется.
func (u *User) IsSuspendedAt(t time.Time) bool {
	return u.IsSuspended && u.SuspendedUntil != nil && u.SuspendedUntil.After(t)
}

func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username}
}
