package report_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/moderation-backend/internal/domain/entity"
	"github.com/ignatzorin/moderation-backend/internal/domain/event"
	"github.com/ignatzorin/moderation-backend/internal/domain/valueobject"
	"github.com/ignatzorin/moderation-backend/internal/pkg/apperror"
	"github.com/ignatzorin/moderation-backend/internal/usecase/report"
	"github.com/ignatzorin/moderation-backend/internal/usecase/usecasetest"
)

func TestCreateReportUseCase_Success(t *testing.T) {
	reports := usecasetest.NewReportStore()
	users := usecasetest.NewUserStore()
	publisher := &usecasetest.Publisher{}
	reporter := users.NewUser("alice")
	uc := report.NewCreateReportUseCase(reports, users, publisher)

	entityID := uuid.New()
	result, err := uc.Execute(context.Background(), report.CreateReportInput{
		ReporterID: reporter.ID,
		EntityType: "POST",
		EntityID:   entityID,
		Reason:     "  spam  ",
	})
	require.NoError(t, err)

	assert.Equal(t, valueobject.EntityTypePost, result.EntityType)
	assert.Equal(t, valueobject.ReportStatusPending, result.Status)
	assert.Equal(t, valueobject.ActionNone, result.ActionTaken)
	assert.Equal(t, "spam", result.Reason)
	assert.Nil(t, result.ResolvedByAdminID)
	assert.WithinDuration(t, time.Now(), result.CreatedAt, time.Second)

	stored, err := reports.FindByID(context.Background(), result.ID)
	require.NoError(t, err)
	assert.Equal(t, entityID, stored.EntityID)

	require.Len(t, publisher.Events, 1)
	assert.Equal(t, event.ReportCreated, publisher.Events[0].Name)
	assert.Equal(t, event.RoleAdmin, publisher.Events[0].Role)
}

func TestCreateReportUseCase_EventPayloadIsSnakeCase(t *testing.T) {
	users := usecasetest.NewUserStore()
	publisher := &usecasetest.Publisher{}
	reporter := users.NewUser("alice")
	uc := report.NewCreateReportUseCase(usecasetest.NewReportStore(), users, publisher)

	created, err := uc.Execute(context.Background(), report.CreateReportInput{
		ReporterID: reporter.ID, EntityType: "opportunity", EntityID: uuid.New(), Reason: "scam",
	})
	require.NoError(t, err)
	require.Len(t, publisher.Events, 1)

	raw, err := json.Marshal(publisher.Events[0].Data)
	require.NoError(t, err)
	var payload map[string]any
	require.NoError(t, json.Unmarshal(raw, &payload))

	assert.Equal(t, created.ID.String(), payload["report_id"])
	assert.Equal(t, reporter.ID.String(), payload["reporter_id"])
	assert.Equal(t, "opportunity", payload["entity_type"])
	assert.Equal(t, created.EntityID.String(), payload["entity_id"])
	assert.Equal(t, "scam", payload["reason"])
	assert.Equal(t, "pending", payload["status"])
	assert.Contains(t, payload, "created_at")
	assert.NotContains(t, payload, "ID")
	assert.NotContains(t, payload, "ResolvedByAdminID")
}

func TestCreateReportUseCase_ValidationFailsBeforeWrite(t *testing.T) {
	reports := usecasetest.NewReportStore()
	users := usecasetest.NewUserStore()
	reporter := users.NewUser("alice")
	uc := report.NewCreateReportUseCase(reports, users, nil)

	tests := []struct {
		name  string
		input report.CreateReportInput
		want  error
	}{
		{
			name:  "unknown entity type",
			input: report.CreateReportInput{ReporterID: reporter.ID, EntityType: "comment", EntityID: uuid.New(), Reason: "spam"},
			want:  apperror.ErrInvalidReportType,
		},
		{
			name:  "blank reason",
			input: report.CreateReportInput{ReporterID: reporter.ID, EntityType: "post", EntityID: uuid.New(), Reason: "   "},
			want:  apperror.ErrEmptyReason,
		},
		{
			name:  "unknown reporter",
			input: report.CreateReportInput{ReporterID: uuid.New(), EntityType: "opportunity", EntityID: uuid.New(), Reason: "scam"},
			want:  apperror.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Empty(t, reports.All())
}

func TestCreateReportUseCase_DuplicatesAccepted(t *testing.T) {
	reports := usecasetest.NewReportStore()
	users := usecasetest.NewUserStore()
	reporter := users.NewUser("alice")
	uc := report.NewCreateReportUseCase(reports, users, nil)
	input := report.CreateReportInput{ReporterID: reporter.ID, EntityType: "post", EntityID: uuid.New(), Reason: "spam"}

	_, err := uc.Execute(context.Background(), input)
	require.NoError(t, err)
	_, err = uc.Execute(context.Background(), input)
	require.NoError(t, err)

	count, err := report.NewCountPendingReportsUseCase(reports).Execute(context.Background(), input.EntityID, "post")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestCreateReportUseCase_StorageErrorPropagates(t *testing.T) {
	reports := usecasetest.NewReportStore()
	users := usecasetest.NewUserStore()
	reporter := users.NewUser("alice")
	boom := errors.New("db down")
	reports.Err = boom
	uc := report.NewCreateReportUseCase(reports, users, nil)

	_, err := uc.Execute(context.Background(), report.CreateReportInput{
		ReporterID: reporter.ID, EntityType: "post", EntityID: uuid.New(), Reason: "spam",
	})
	assert.ErrorIs(t, err, boom)
}

func seedMixed(store *usecasetest.ReportStore) (pending, resolved, dismissed *entity.Report) {
	reporter := uuid.New()
	admin := uuid.New()
	pending = store.AddPending(reporter, valueobject.EntityTypePost, uuid.New(), 1)[0]
	resolved = store.AddPending(reporter, valueobject.EntityTypePost, uuid.New(), 1)[0]
	_ = resolved.Resolve(admin, valueobject.ActionContentDeleted, time.Now())
	dismissed = store.AddPending(reporter, valueobject.EntityTypeOpportunity, uuid.New(), 1)[0]
	_ = dismissed.Dismiss(admin, time.Now())
	return pending, resolved, dismissed
}

func TestReportQueries(t *testing.T) {
	store := usecasetest.NewReportStore()
	pending, resolved, dismissed := seedMixed(store)
	ctx := context.Background()

	all, err := report.NewListAllReportsUseCase(store).Execute(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	onlyPending, err := report.NewListPendingReportsUseCase(store).Execute(ctx)
	require.NoError(t, err)
	require.Len(t, onlyPending, 1)
	assert.Equal(t, pending.ID, onlyPending[0].ID)

	byStatus := report.NewListReportsByStatusUseCase(store)
	got, err := byStatus.Execute(ctx, "Resolved")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, resolved.ID, got[0].ID)

	got, err = byStatus.Execute(ctx, "DISMISSED")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, dismissed.ID, got[0].ID)

	_, err = byStatus.Execute(ctx, "archived")
	assert.ErrorIs(t, err, apperror.ErrInvalidStatus)
}

func TestCountPendingReportsUseCase(t *testing.T) {
	store := usecasetest.NewReportStore()
	entityID := uuid.New()
	store.AddPending(uuid.New(), valueobject.EntityTypeOpportunity, entityID, 3)
	uc := report.NewCountPendingReportsUseCase(store)

	count, err := uc.Execute(context.Background(), entityID, "opportunity")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	count, err = uc.Execute(context.Background(), entityID, "post")
	require.NoError(t, err)
	assert.Zero(t, count)

	count, err = uc.Execute(context.Background(), uuid.New(), "post")
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = uc.Execute(context.Background(), entityID, "user")
	assert.ErrorIs(t, err, apperror.ErrInvalidReportType)
}

func TestGetReportUseCase(t *testing.T) {
	store := usecasetest.NewReportStore()
	created := store.AddPending(uuid.New(), valueobject.EntityTypePost, uuid.New(), 1)[0]
	uc := report.NewGetReportUseCase(store)

	got, err := uc.Execute(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = uc.Execute(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperror.ErrReportNotFound)
}
