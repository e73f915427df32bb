package valueobject

import (
	"strings"

	"github.com/ignatzorin/moderation-backend/internal/pkg/apperror"
)

// EntityType - тип контента, на который подаётся жалоба.
type EntityType string

const (
	EntityTypePost        EntityType = "post"
	EntityTypeOpportunity EntityType = "opportunity"
)

func (t EntityType) IsValid() bool {
	switch t {
	case EntityTypePost, EntityTypeOpportunity:
		return true
	}
	return false
}

func (t EntityType) String() string {
	return string(t)
}

// ParseEntityType разбирает тип без учёта регистра.
func ParseEntityType(raw string) (EntityType, error) {
	t := EntityType(normalize(raw))
	if !t.IsValid() {
		return "", apperror.ErrInvalidReportType
	}
	return t, nil
}

// ReportStatus - статус жалобы. Переходы только pending -> resolved|dismissed.
type ReportStatus string

const (
	ReportStatusPending   ReportStatus = "pending"
	ReportStatusResolved  ReportStatus = "resolved"
	ReportStatusDismissed ReportStatus = "dismissed"
)

func (s ReportStatus) IsValid() bool {
	switch s {
	case ReportStatusPending, ReportStatusResolved, ReportStatusDismissed:
		return true
	}
	return false
}

func (s ReportStatus) IsTerminal() bool {
	return s == ReportStatusResolved || s == ReportStatusDismissed
}

func (s ReportStatus) String() string {
	return string(s)
}

func ParseReportStatus(raw string) (ReportStatus, error) {
	s := ReportStatus(normalize(raw))
	if !s.IsValid() {
		return "", apperror.ErrInvalidStatus
	}
	return s, nil
}

// ActionTaken - решение, зафиксированное при выходе жалобы из pending.
type ActionTaken string

const (
	ActionNone           ActionTaken = "none"
	ActionContentDeleted ActionTaken = "content_deleted"
	ActionUserBanned     ActionTaken = "user_banned"
	ActionUserSuspended  ActionTaken = "user_suspended"
	ActionDismissed      ActionTaken = "dismissed"
)

func (a ActionTaken) IsValid() bool {
	switch a {
	case ActionNone, ActionContentDeleted, ActionUserBanned, ActionUserSuspended, ActionDismissed:
		return true
	}
	return false
}

// IsResolution сообщает, может ли действие сопровождать статус resolved.
func (a ActionTaken) IsResolution() bool {
	switch a {
	case ActionContentDeleted, ActionUserBanned, ActionUserSuspended:
		return true
	}
	return false
}

func (a ActionTaken) String() string {
	return string(a)
}

// ParseResolveAction принимает только действия, допустимые для resolve.
// Пустая строка означает content_deleted.
func ParseResolveAction(raw string) (ActionTaken, error) {
	if strings.TrimSpace(raw) == "" {
		return ActionContentDeleted, nil
	}
	a := ActionTaken(normalize(raw))
	if !a.IsResolution() {
		return "", apperror.ErrInvalidAction
	}
	return a, nil
}

func normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
