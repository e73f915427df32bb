package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/moderation-backend/internal/domain/event"
	"github.com/ignatzorin/moderation-backend/internal/domain/valueobject"
	"github.com/ignatzorin/moderation-backend/internal/usecase/moderation"
	"github.com/ignatzorin/moderation-backend/internal/usecase/report"
	"github.com/ignatzorin/moderation-backend/internal/usecase/sanction"
	"github.com/ignatzorin/moderation-backend/internal/usecase/usecasetest"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishToRole(role, name string, data any) {
	m.Called(role, name, data)
}

func (m *mockPublisher) PublishToUser(userID uuid.UUID, name string, data any) {
	m.Called(userID, name, data)
}

type serviceFixture struct {
	reports   *usecasetest.ReportStore
	users     *usecasetest.UserStore
	content   *usecasetest.Content
	publisher *mockPublisher
	svc       *ModerationService
}

func newServiceFixture(threshold int) *serviceFixture {
	f := &serviceFixture{
		reports:   usecasetest.NewReportStore(),
		users:     usecasetest.NewUserStore(),
		content:   usecasetest.NewContent(),
		publisher: new(mockPublisher),
	}
	f.svc = NewModerationService(ModerationDeps{
		Reports:       f.reports,
		Users:         f.users,
		Content:       f.content.Directory(),
		Transactor:    &usecasetest.Transactor{},
		Publisher:     f.publisher,
		FlagThreshold: threshold,
	})
	return f
}

func TestModerationService_ReportFlagAndResolve(t *testing.T) {
	f := newServiceFixture(2)
	ctx := context.Background()
	owner := f.users.NewUser("owner")
	post := f.content.NewPost(owner.ID)

	f.publisher.On("PublishToRole", event.RoleAdmin, event.ReportCreated, mock.Anything).Twice()
	f.publisher.On("PublishToRole", event.RoleAdmin, event.EntityResolved, mock.Anything).Once()

	for _, name := range []string{"alice", "bob"} {
		reporter := f.users.NewUser(name)
		_, err := f.svc.CreateReport(ctx, report.CreateReportInput{
			ReporterID: reporter.ID, EntityType: "post", EntityID: post.ID, Reason: "spam",
		})
		require.NoError(t, err)
	}

	flagged, err := f.svc.Flagged(ctx, "post")
	require.NoError(t, err)
	require.Len(t, flagged, 1)
	assert.Equal(t, 2, flagged[0].ReportCount)

	details, err := f.svc.FlaggedDetails(ctx, "post")
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "owner", details[0].Owner.Username)

	affected, err := f.svc.Resolve(ctx, moderation.ResolveInput{
		ActionInput: moderation.ActionInput{EntityID: post.ID, EntityType: "post", AdminID: uuid.New()},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, affected)

	pending, err := f.svc.PendingReports(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	resolved, err := f.svc.ReportsByStatus(ctx, "resolved")
	require.NoError(t, err)
	assert.Len(t, resolved, 2)

	f.publisher.AssertExpectations(t)
}

func TestModerationService_BanPublishesToUserAndAdmins(t *testing.T) {
	f := newServiceFixture(5)
	user := f.users.NewUser("mallory")
	f.reports.AddPending(user.ID, valueobject.EntityTypePost, uuid.New(), 2)

	f.publisher.On("PublishToUser", user.ID, event.AccountBanned, mock.Anything).Once()
	f.publisher.On("PublishToRole", event.RoleAdmin, event.UserBanned, mock.Anything).Once()

	result, err := f.svc.BanUser(context.Background(), sanction.BanUserInput{UserID: user.ID, AdminID: uuid.New(), Reason: "spam"})
	require.NoError(t, err)
	assert.Equal(t, 2, result.ResolvedReportCount)

	f.publisher.AssertExpectations(t)
}

func TestModerationService_ClampsThreshold(t *testing.T) {
	assert.Equal(t, 1, newServiceFixture(-3).svc.FlagThreshold())
	assert.Equal(t, 5, newServiceFixture(5).svc.FlagThreshold())
}
