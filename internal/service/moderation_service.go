package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/moderation-backend/internal/domain/entity"
	"github.com/ignatzorin/moderation-backend/internal/domain/event"
	"github.com/ignatzorin/moderation-backend/internal/domain/repository"
	"github.com/ignatzorin/moderation-backend/internal/usecase/moderation"
	"github.com/ignatzorin/moderation-backend/internal/usecase/report"
	"github.com/ignatzorin/moderation-backend/internal/usecase/sanction"
)

// ModerationDeps - зависимости фасада модерации.
type ModerationDeps struct {
	Reports       repository.ReportRepository
	Users         repository.UserRepository
	Content       repository.ContentDirectory
	Transactor    repository.Transactor
	Publisher     event.Publisher
	FlagThreshold int
}

// ModerationService - единая точка входа для транспорта. Логики не содержит,
// только делегирует use case'ам.
type ModerationService struct {
	createReport   *report.CreateReportUseCase
	pendingReports *report.ListPendingReportsUseCase
	allReports     *report.ListAllReportsUseCase
	reportsByState *report.ListReportsByStatusUseCase
	countPending   *report.CountPendingReportsUseCase
	getReport      *report.GetReportUseCase

	flagged        *moderation.GetFlaggedUseCase
	flaggedDetails *moderation.GetFlaggedDetailsUseCase
	entityDetail   *moderation.GetEntityDetailUseCase
	dismiss        *moderation.DismissUseCase
	markReviewed   *moderation.MarkReviewedUseCase
	resolve        *moderation.ResolveUseCase
	deleteEntity   *moderation.DeleteEntityUseCase

	banUser     *sanction.BanUserUseCase
	suspendUser *sanction.SuspendUserUseCase
}

func NewModerationService(deps ModerationDeps) *ModerationService {
	flagged := moderation.NewGetFlaggedUseCase(deps.Reports, deps.FlagThreshold)

	return &ModerationService{
		createReport:   report.NewCreateReportUseCase(deps.Reports, deps.Users, deps.Publisher),
		pendingReports: report.NewListPendingReportsUseCase(deps.Reports),
		allReports:     report.NewListAllReportsUseCase(deps.Reports),
		reportsByState: report.NewListReportsByStatusUseCase(deps.Reports),
		countPending:   report.NewCountPendingReportsUseCase(deps.Reports),
		getReport:      report.NewGetReportUseCase(deps.Reports),

		flagged:        flagged,
		flaggedDetails: moderation.NewGetFlaggedDetailsUseCase(flagged, deps.Reports, deps.Users, deps.Content),
		entityDetail:   moderation.NewGetEntityDetailUseCase(deps.Reports, deps.Users, deps.Content),
		dismiss:        moderation.NewDismissUseCase(deps.Reports, deps.Publisher),
		markReviewed:   moderation.NewMarkReviewedUseCase(deps.Reports, deps.Publisher),
		resolve:        moderation.NewResolveUseCase(deps.Reports, deps.Publisher),
		deleteEntity:   moderation.NewDeleteEntityUseCase(deps.Content, deps.Publisher),

		banUser:     sanction.NewBanUserUseCase(deps.Users, deps.Reports, deps.Content, deps.Transactor, deps.Publisher),
		suspendUser: sanction.NewSuspendUserUseCase(deps.Users, deps.Reports, deps.Transactor, deps.Publisher),
	}
}

func (s *ModerationService) FlagThreshold() int {
	return s.flagged.Threshold()
}

func (s *ModerationService) CreateReport(ctx context.Context, input report.CreateReportInput) (*entity.Report, error) {
	return s.createReport.Execute(ctx, input)
}

func (s *ModerationService) PendingReports(ctx context.Context) ([]*entity.Report, error) {
	return s.pendingReports.Execute(ctx)
}

func (s *ModerationService) AllReports(ctx context.Context) ([]*entity.Report, error) {
	return s.allReports.Execute(ctx)
}

func (s *ModerationService) ReportsByStatus(ctx context.Context, status string) ([]*entity.Report, error) {
	return s.reportsByState.Execute(ctx, status)
}

func (s *ModerationService) PendingReportCount(ctx context.Context, entityID uuid.UUID, entityType string) (int, error) {
	return s.countPending.Execute(ctx, entityID, entityType)
}

func (s *ModerationService) Report(ctx context.Context, id uuid.UUID) (*entity.Report, error) {
	return s.getReport.Execute(ctx, id)
}

func (s *ModerationService) Flagged(ctx context.Context, entityType string) ([]entity.ReportSummary, error) {
	return s.flagged.Execute(ctx, entityType)
}

func (s *ModerationService) FlaggedDetails(ctx context.Context, entityType string) ([]*entity.EntityWithReports, error) {
	return s.flaggedDetails.Execute(ctx, entityType)
}

func (s *ModerationService) EntityDetail(ctx context.Context, entityID uuid.UUID, entityType string) (*entity.EntityWithReports, error) {
	return s.entityDetail.Execute(ctx, entityID, entityType)
}

func (s *ModerationService) Dismiss(ctx context.Context, input moderation.ActionInput) (int, error) {
	return s.dismiss.Execute(ctx, input)
}

func (s *ModerationService) MarkReviewed(ctx context.Context, input moderation.ActionInput) (int, error) {
	return s.markReviewed.Execute(ctx, input)
}

func (s *ModerationService) Resolve(ctx context.Context, input moderation.ResolveInput) (int, error) {
	return s.resolve.Execute(ctx, input)
}

func (s *ModerationService) DeleteEntity(ctx context.Context, input moderation.ActionInput) error {
	return s.deleteEntity.Execute(ctx, input)
}

func (s *ModerationService) BanUser(ctx context.Context, input sanction.BanUserInput) (*sanction.BanResult, error) {
	return s.banUser.Execute(ctx, input)
}

func (s *ModerationService) SuspendUser(ctx context.Context, input sanction.SuspendUserInput) (*sanction.SuspendResult, error) {
	return s.suspendUser.Execute(ctx, input)
}
