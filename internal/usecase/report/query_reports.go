package report

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/moderation-backend/internal/domain/entity"
	"github.com/ignatzorin/moderation-backend/internal/domain/repository"
	"github.com/ignatzorin/moderation-backend/internal/domain/valueobject"
)

type ListPendingReportsUseCase struct {
	reportRepo repository.ReportRepository
}

func NewListPendingReportsUseCase(reportRepo repository.ReportRepository) *ListPendingReportsUseCase {
	return &ListPendingReportsUseCase{reportRepo: reportRepo}
}

func (uc *ListPendingReportsUseCase) Execute(ctx context.Context) ([]*entity.Report, error) {
	status := valueobject.ReportStatusPending
	return uc.reportRepo.List(ctx, repository.ReportFilter{Status: &status})
}

type ListAllReportsUseCase struct {
	reportRepo repository.ReportRepository
}

func NewListAllReportsUseCase(reportRepo repository.ReportRepository) *ListAllReportsUseCase {
	return &ListAllReportsUseCase{reportRepo: reportRepo}
}

func (uc *ListAllReportsUseCase) Execute(ctx context.Context) ([]*entity.Report, error) {
	return uc.reportRepo.List(ctx, repository.ReportFilter{})
}

type ListReportsByStatusUseCase struct {
	reportRepo repository.ReportRepository
}

func NewListReportsByStatusUseCase(reportRepo repository.ReportRepository) *ListReportsByStatusUseCase {
	return &ListReportsByStatusUseCase{reportRepo: reportRepo}
}

func (uc *ListReportsByStatusUseCase) Execute(ctx context.Context, rawStatus string) ([]*entity.Report, error) {
	status, err := valueobject.ParseReportStatus(rawStatus)
	if err != nil {
		return nil, err
	}
	return uc.reportRepo.List(ctx, repository.ReportFilter{Status: &status})
}

// CountPendingReportsUseCase возвращает 0 для объекта без жалоб, даже несуществующего.
type CountPendingReportsUseCase struct {
	reportRepo repository.ReportRepository
}

func NewCountPendingReportsUseCase(reportRepo repository.ReportRepository) *CountPendingReportsUseCase {
	return &CountPendingReportsUseCase{reportRepo: reportRepo}
}

func (uc *CountPendingReportsUseCase) Execute(ctx context.Context, entityID uuid.UUID, rawType string) (int, error) {
	entityType, err := valueobject.ParseEntityType(rawType)
	if err != nil {
		return 0, err
	}
	return uc.reportRepo.CountPending(ctx, entityID, entityType)
}

type GetReportUseCase struct {
	reportRepo repository.ReportRepository
}

func NewGetReportUseCase(reportRepo repository.ReportRepository) *GetReportUseCase {
	return &GetReportUseCase{reportRepo: reportRepo}
}

func (uc *GetReportUseCase) Execute(ctx context.Context, id uuid.UUID) (*entity.Report, error) {
	return uc.reportRepo.FindByID(ctx, id)
}
