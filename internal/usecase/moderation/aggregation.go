package moderation

import (
	"bytes"
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/ignatzorin/moderation-backend/internal/domain/entity"
	"github.com/ignatzorin/moderation-backend/internal/domain/repository"
	"github.com/ignatzorin/moderation-backend/internal/domain/valueobject"
	"github.com/ignatzorin/moderation-backend/internal/pkg/apperror"
)

// GetFlaggedUseCase отдаёт объекты, набравшие не меньше threshold ожидающих жалоб.
type GetFlaggedUseCase struct {
	reportRepo repository.ReportRepository
	threshold  int
}

func NewGetFlaggedUseCase(reportRepo repository.ReportRepository, threshold int) *GetFlaggedUseCase {
	if threshold < 1 {
		threshold = 1
	}
	return &GetFlaggedUseCase{reportRepo: reportRepo, threshold: threshold}
}

func (uc *GetFlaggedUseCase) Threshold() int {
	return uc.threshold
}

func (uc *GetFlaggedUseCase) Execute(ctx context.Context, rawType string) ([]entity.ReportSummary, error) {
	entityType, err := valueobject.ParseEntityType(rawType)
	if err != nil {
		return nil, err
	}
	return uc.flagged(ctx, entityType)
}

func (uc *GetFlaggedUseCase) flagged(ctx context.Context, entityType valueobject.EntityType) ([]entity.ReportSummary, error) {
	summaries, err := uc.reportRepo.PendingSummaries(ctx, entityType, uc.threshold)
	if err != nil {
		return nil, err
	}

	result := summaries[:0]
	for _, s := range summaries {
		if s.ReportCount >= uc.threshold {
			result = append(result, s)
		}
	}
	sortSummaries(result)
	return result, nil
}

func sortSummaries(summaries []entity.ReportSummary) {
	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].ReportCount != summaries[j].ReportCount {
			return summaries[i].ReportCount > summaries[j].ReportCount
		}
		return bytes.Compare(summaries[i].EntityID[:], summaries[j].EntityID[:]) < 0
	})
}

// detailLoader собирает карточку объекта: контент, владельца и ожидающие жалобы.
type detailLoader struct {
	reportRepo repository.ReportRepository
	userRepo   repository.UserRepository
	content    repository.ContentDirectory
}

func (l detailLoader) load(ctx context.Context, entityID uuid.UUID, entityType valueobject.EntityType) (*entity.EntityWithReports, error) {
	repo, err := l.content.Lookup(entityType)
	if err != nil {
		return nil, err
	}
	content, err := repo.FindByID(ctx, entityID)
	if err != nil {
		return nil, err
	}

	var owner *entity.UserSummary
	user, err := l.userRepo.FindByID(ctx, content.ContentOwnerID())
	switch {
	case err == nil:
		summary := user.Summary()
		owner = &summary
	case !apperror.IsNotFound(err):
		return nil, err
	}

	pending, err := l.reportRepo.List(ctx, repository.PendingFor(entityID, entityType))
	if err != nil {
		return nil, err
	}
	return entity.NewEntityWithReports(content, owner, pending), nil
}

// GetFlaggedDetailsUseCase раскрывает каждый объект очереди. Объекты, удалённые
// после подачи жалоб, молча пропускаются.
type GetFlaggedDetailsUseCase struct {
	flagged *GetFlaggedUseCase
	loader  detailLoader
}

func NewGetFlaggedDetailsUseCase(flagged *GetFlaggedUseCase, reportRepo repository.ReportRepository, userRepo repository.UserRepository, content repository.ContentDirectory) *GetFlaggedDetailsUseCase {
	return &GetFlaggedDetailsUseCase{
		flagged: flagged,
		loader:  detailLoader{reportRepo: reportRepo, userRepo: userRepo, content: content},
	}
}

func (uc *GetFlaggedDetailsUseCase) Execute(ctx context.Context, rawType string) ([]*entity.EntityWithReports, error) {
	entityType, err := valueobject.ParseEntityType(rawType)
	if err != nil {
		return nil, err
	}
	summaries, err := uc.flagged.flagged(ctx, entityType)
	if err != nil {
		return nil, err
	}

	details := make([]*entity.EntityWithReports, 0, len(summaries))
	for _, s := range summaries {
		detail, err := uc.loader.load(ctx, s.EntityID, s.EntityType)
		if err != nil {
			if apperror.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		details = append(details, detail)
	}
	return details, nil
}

type GetEntityDetailUseCase struct {
	loader detailLoader
}

func NewGetEntityDetailUseCase(reportRepo repository.ReportRepository, userRepo repository.UserRepository, content repository.ContentDirectory) *GetEntityDetailUseCase {
	return &GetEntityDetailUseCase{
		loader: detailLoader{reportRepo: reportRepo, userRepo: userRepo, content: content},
	}
}

func (uc *GetEntityDetailUseCase) Execute(ctx context.Context, entityID uuid.UUID, rawType string) (*entity.EntityWithReports, error) {
	entityType, err := valueobject.ParseEntityType(rawType)
	if err != nil {
		return nil, err
	}
	return uc.loader.load(ctx, entityID, entityType)
}
