package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ignatzorin/moderation-backend/internal/domain/entity"
	"github.com/ignatzorin/moderation-backend/internal/domain/repository"
	"github.com/ignatzorin/moderation-backend/internal/domain/valueobject"
	"github.com/ignatzorin/moderation-backend/internal/pkg/apperror"
)

const reportColumns = `id, reporter_id, entity_type, entity_id, reason, status, action_taken,
		resolved_by, resolved_at, reviewed_by, reviewed_at, created_at`

type ReportRepositoryAdapter struct {
	db *sqlx.DB
}

func NewReportRepositoryAdapter(db *sqlx.DB) *ReportRepositoryAdapter {
	return &ReportRepositoryAdapter{db: db}
}

func (r *ReportRepositoryAdapter) Create(ctx context.Context, report *entity.Report) error {
	query := `
		INSERT INTO reports (id, reporter_id, entity_type, entity_id, reason, status, action_taken, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := conn(ctx, r.db).ExecContext(ctx, query,
		report.ID, report.ReporterID, string(report.EntityType), report.EntityID,
		report.Reason, string(report.Status), string(report.ActionTaken), report.CreatedAt,
	)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось создать жалобу")
	}
	return nil
}

func (r *ReportRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.Report, error) {
	var row reportRow
	query := `SELECT ` + reportColumns + ` FROM reports WHERE id = $1`
	if err := conn(ctx, r.db).GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrReportNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить жалобу")
	}
	return row.toEntity(), nil
}

func (r *ReportRepositoryAdapter) List(ctx context.Context, filter repository.ReportFilter) ([]*entity.Report, error) {
	var (
		conditions []string
		args       []interface{}
	)
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.EntityType != nil {
		args = append(args, string(*filter.EntityType))
		conditions = append(conditions, fmt.Sprintf("entity_type = $%d", len(args)))
	}
	if filter.EntityID != nil {
		args = append(args, *filter.EntityID)
		conditions = append(conditions, fmt.Sprintf("entity_id = $%d", len(args)))
	}

	query := `SELECT ` + reportColumns + ` FROM reports`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	var rows []reportRow
	if err := conn(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить жалобы")
	}
	return toReportEntities(rows), nil
}

func (r *ReportRepositoryAdapter) CountPending(ctx context.Context, entityID uuid.UUID, entityType valueobject.EntityType) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM reports WHERE status = 'pending' AND entity_id = $1 AND entity_type = $2`
	if err := conn(ctx, r.db).GetContext(ctx, &count, query, entityID, string(entityType)); err != nil {
		return 0, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось посчитать жалобы")
	}
	return count, nil
}

func (r *ReportRepositoryAdapter) PendingSummaries(ctx context.Context, entityType valueobject.EntityType, minCount int) ([]entity.ReportSummary, error) {
	query := `
		SELECT entity_id, entity_type, COUNT(*) AS report_count
		FROM reports
		WHERE status = 'pending' AND entity_type = $1
		GROUP BY entity_id, entity_type
		HAVING COUNT(*) >= $2
		ORDER BY report_count DESC, entity_id ASC
	`
	var rows []summaryRow
	if err := conn(ctx, r.db).SelectContext(ctx, &rows, query, string(entityType), minCount); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось сгруппировать жалобы")
	}

	result := make([]entity.ReportSummary, len(rows))
	for i, row := range rows {
		result[i] = entity.ReportSummary{
			EntityID:    row.EntityID,
			EntityType:  valueobject.EntityType(row.EntityType),
			ReportCount: row.ReportCount,
		}
	}
	return result, nil
}

func (r *ReportRepositoryAdapter) TransitionPendingForEntity(ctx context.Context, entityID uuid.UUID, entityType valueobject.EntityType, t repository.ReportTransition) (int, error) {
	query := `
		UPDATE reports SET status = $1, action_taken = $2, resolved_by = $3, resolved_at = $4
		WHERE status = 'pending' AND entity_id = $5 AND entity_type = $6
	`
	return r.exec(ctx, query, string(t.Status), string(t.Action), t.AdminID, t.At, entityID, string(entityType))
}

func (r *ReportRepositoryAdapter) TransitionPendingByID(ctx context.Context, id uuid.UUID, t repository.ReportTransition) (bool, error) {
	query := `
		UPDATE reports SET status = $1, action_taken = $2, resolved_by = $3, resolved_at = $4
		WHERE status = 'pending' AND id = $5
	`
	affected, err := r.exec(ctx, query, string(t.Status), string(t.Action), t.AdminID, t.At, id)
	return affected > 0, err
}

func (r *ReportRepositoryAdapter) TransitionPendingForUser(ctx context.Context, scope repository.UserReportScope, t repository.ReportTransition) (int, error) {
	args := []interface{}{string(t.Status), string(t.Action), t.AdminID, t.At, scope.UserID}
	clauses := []string{"reporter_id = $5"}

	// Порядок типов фиксирован, чтобы текст запроса был стабильным.
	for _, entityType := range []valueobject.EntityType{valueobject.EntityTypePost, valueobject.EntityTypeOpportunity} {
		ids := scope.OwnedContent[entityType]
		if len(ids) == 0 {
			continue
		}
		args = append(args, string(entityType), pq.Array(uuidStrings(ids)))
		clauses = append(clauses, fmt.Sprintf("(entity_type = $%d AND entity_id = ANY($%d::uuid[]))", len(args)-1, len(args)))
	}

	query := `
		UPDATE reports SET status = $1, action_taken = $2, resolved_by = $3, resolved_at = $4
		WHERE status = 'pending' AND (` + strings.Join(clauses, " OR ") + `)`
	return r.exec(ctx, query, args...)
}

func (r *ReportRepositoryAdapter) MarkPendingReviewed(ctx context.Context, entityID uuid.UUID, entityType valueobject.EntityType, adminID uuid.UUID, at time.Time) (int, error) {
	query := `
		UPDATE reports SET reviewed_by = $1, reviewed_at = $2
		WHERE status = 'pending' AND entity_id = $3 AND entity_type = $4
	`
	return r.exec(ctx, query, adminID, at, entityID, string(entityType))
}

func (r *ReportRepositoryAdapter) exec(ctx context.Context, query string, args ...interface{}) (int, error) {
	res, err := conn(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return 0, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить жалобы")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить жалобы")
	}
	return int(affected), nil
}

type reportRow struct {
	ID          uuid.UUID  `db:"id"`
	ReporterID  uuid.UUID  `db:"reporter_id"`
	EntityType  string     `db:"entity_type"`
	EntityID    uuid.UUID  `db:"entity_id"`
	Reason      string     `db:"reason"`
	Status      string     `db:"status"`
	ActionTaken string     `db:"action_taken"`
	ResolvedBy  *uuid.UUID `db:"resolved_by"`
	ResolvedAt  *time.Time `db:"resolved_at"`
	ReviewedBy  *uuid.UUID `db:"reviewed_by"`
	ReviewedAt  *time.Time `db:"reviewed_at"`
	CreatedAt   time.Time  `db:"created_at"`
}

func (row *reportRow) toEntity() *entity.Report {
	return &entity.Report{
		ID:                row.ID,
		ReporterID:        row.ReporterID,
		EntityType:        valueobject.EntityType(row.EntityType),
		EntityID:          row.EntityID,
		Reason:            row.Reason,
		Status:            valueobject.ReportStatus(row.Status),
		ActionTaken:       valueobject.ActionTaken(row.ActionTaken),
		ResolvedByAdminID: row.ResolvedBy,
		ResolvedAt:        row.ResolvedAt,
		ReviewedByAdminID: row.ReviewedBy,
		ReviewedAt:        row.ReviewedAt,
		CreatedAt:         row.CreatedAt,
	}
}

func toReportEntities(rows []reportRow) []*entity.Report {
	result := make([]*entity.Report, len(rows))
	for i := range rows {
		result[i] = rows[i].toEntity()
	}
	return result
}

type summaryRow struct {
	EntityID    uuid.UUID `db:"entity_id"`
	EntityType  string    `db:"entity_type"`
	ReportCount int       `db:"report_count"`
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
