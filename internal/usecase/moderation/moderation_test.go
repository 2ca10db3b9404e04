package moderation_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/domain/event"
	"github.com/ignatzorin/skillswap-backend/internal/domain/repository"
	"github.com/ignatzorin/skillswap-backend/internal/domain/valueobject"
	"github.com/ignatzorin/skillswap-backend/internal/infrastructure/memory"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
	"github.com/ignatzorin/skillswap-backend/internal/usecase/moderation"
	"github.com/ignatzorin/skillswap-backend/internal/usecase/profile"
)

var (
	admin    = entity.Actor{UserID: uuid.New(), Role: valueobject.RoleAdmin}
	ordinary = entity.Actor{UserID: uuid.New(), Role: valueobject.RoleUser}
)

type mockScheduler struct {
	mock.Mock
}

func (m *mockScheduler) Schedule(ctx context.Context, handle moderation.ExportHandle) error {
	return m.Called(ctx, handle).Error(0)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishToUser(userID uuid.UUID, name string, data any) {
	m.Called(userID, name, data)
}

func (m *mockPublisher) PublishToAll(name string, data any) {
	m.Called(name, data)
}

func addUser(t *testing.T, store repository.Store, name string) *entity.User {
	t.Helper()
	user, err := entity.NewUser(name, uuid.NewString()+"@example.com", "")
	require.NoError(t, err)
	require.NoError(t, store.Atomic(context.Background(), func(ctx context.Context, repos repository.Repositories) error {
		return repos.Users.Create(ctx, user)
	}))
	return user
}

func addReport(t *testing.T, store repository.Store, reporter, reported *entity.User) *entity.Report {
	t.Helper()
	report, err := entity.NewReport(reporter.ID, reported.ID, "spam", "sends spam")
	require.NoError(t, err)
	require.NoError(t, store.Atomic(context.Background(), func(ctx context.Context, repos repository.Repositories) error {
		return repos.Reports.Create(ctx, report)
	}))
	return report
}

func addSwap(t *testing.T, store repository.Store, requester, provider *entity.User) *entity.SwapRequest {
	t.Helper()
	request, err := entity.NewSwapRequest(requester.ID, provider.ID, "Java", "Excel", "")
	require.NoError(t, err)
	require.NoError(t, store.Atomic(context.Background(), func(ctx context.Context, repos repository.Repositories) error {
		return repos.Swaps.Create(ctx, request)
	}))
	return request
}

func TestEveryOperationRequiresAdmin(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	id := uuid.New()
	nop := event.NopPublisher{}

	checks := map[string]func() error{
		"list reports": func() error { _, err := moderation.NewListReportsUseCase(store).Execute(ctx, ordinary, ""); return err },
		"resolve report": func() error {
			_, err := moderation.NewResolveReportUseCase(store).Execute(ctx, ordinary, id)
			return err
		},
		"suspend":    func() error { _, err := moderation.NewSuspendUserUseCase(store, nop).Execute(ctx, ordinary, id); return err },
		"reactivate": func() error { _, err := moderation.NewReactivateUserUseCase(store, nop).Execute(ctx, ordinary, id); return err },
		"ban":        func() error { _, err := moderation.NewBanUserUseCase(store, nop).Execute(ctx, ordinary, id); return err },
		"delete":     func() error { return moderation.NewDeleteUserUseCase(store, nop).Execute(ctx, ordinary, id) },
		"update": func() error {
			_, err := moderation.NewUpdateUserUseCase(store, nop).Execute(ctx, ordinary, id, moderation.UpdateUserInput{})
			return err
		},
		"broadcast": func() error { _, err := moderation.NewBroadcastUseCase(store, nop).Execute(ctx, ordinary, "hi"); return err },
		"export": func() error {
			_, err := moderation.NewRequestExportUseCase(&mockScheduler{}).Execute(ctx, ordinary, "user_activity")
			return err
		},
		"stats":       func() error { _, err := moderation.NewStatsUseCase(store).Execute(ctx, ordinary); return err },
		"list swaps":  func() error { _, err := moderation.NewListSwapsUseCase(store).Execute(ctx, ordinary, ""); return err },
		"delete swap": func() error { return moderation.NewForceDeleteSwapUseCase(store).Execute(ctx, ordinary, id) },
		"list users": func() error {
			_, err := moderation.NewListUsersUseCase(store).Execute(ctx, ordinary, profile.ListUsersInput{})
			return err
		},
		"get user": func() error { _, err := moderation.NewGetUserUseCase(store).Execute(ctx, ordinary, id); return err },
	}

	for name, check := range checks {
		t.Run(name, func(t *testing.T) {
			assert.True(t, apperror.IsForbidden(check()))
		})
	}
}

func TestResolveReportUseCase_Idempotent(t *testing.T) {
	store := memory.NewStore()
	a := addUser(t, store, "Marc")
	b := addUser(t, store, "Joe")
	report := addReport(t, store, a, b)
	uc := moderation.NewResolveReportUseCase(store)

	resolved, err := uc.Execute(context.Background(), admin, report.ID)
	require.NoError(t, err)
	assert.Equal(t, valueobject.ReportStatusResolved, resolved.Status)
	require.NotNil(t, resolved.ResolvedAt)
	firstResolvedAt := *resolved.ResolvedAt

	again, err := uc.Execute(context.Background(), admin, report.ID)
	require.NoError(t, err)
	assert.Equal(t, valueobject.ReportStatusResolved, again.Status)
	assert.Equal(t, firstResolvedAt, *again.ResolvedAt)

	_, err = uc.Execute(context.Background(), admin, uuid.New())
	assert.True(t, apperror.IsNotFound(err))

	pending, err := moderation.NewListReportsUseCase(store).Execute(context.Background(), admin, "pending")
	require.NoError(t, err)
	assert.Empty(t, pending)

	all, err := moderation.NewListReportsUseCase(store).Execute(context.Background(), admin, "")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCreateReportUseCase(t *testing.T) {
	store := memory.NewStore()
	a := addUser(t, store, "Marc")
	b := addUser(t, store, "Joe")
	uc := moderation.NewCreateReportUseCase(store)
	ctx := context.Background()

	report, err := uc.Execute(ctx, moderation.CreateReportInput{ReporterID: a.ID, ReportedUserID: b.ID, Type: "spam"})
	require.NoError(t, err)
	assert.Equal(t, valueobject.ReportStatusPending, report.Status)

	_, err = uc.Execute(ctx, moderation.CreateReportInput{ReporterID: a.ID, ReportedUserID: a.ID, Type: "spam"})
	assert.True(t, apperror.IsValidation(err))

	_, err = uc.Execute(ctx, moderation.CreateReportInput{ReporterID: a.ID, ReportedUserID: b.ID, Type: " "})
	assert.True(t, apperror.IsValidation(err))

	_, err = uc.Execute(ctx, moderation.CreateReportInput{ReporterID: a.ID, ReportedUserID: uuid.New(), Type: "spam"})
	assert.True(t, apperror.IsNotFound(err))
}

func TestStatusUseCases(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	marc := addUser(t, store, "Marc")
	joe := addUser(t, store, "Joe")
	pending := addSwap(t, store, joe, marc)

	publisher := &mockPublisher{}
	publisher.On("PublishToUser", joe.ID, event.SwapRequestCancelled, mock.Anything).Once()

	user, err := moderation.NewSuspendUserUseCase(store, publisher).Execute(ctx, admin, marc.ID)
	require.NoError(t, err)
	assert.Equal(t, valueobject.UserStatusSuspended, user.Status)

	user, err = moderation.NewReactivateUserUseCase(store, publisher).Execute(ctx, admin, marc.ID)
	require.NoError(t, err)
	assert.Equal(t, valueobject.UserStatusActive, user.Status)

	user, err = moderation.NewBanUserUseCase(store, publisher).Execute(ctx, admin, marc.ID)
	require.NoError(t, err)
	assert.Equal(t, valueobject.UserStatusBanned, user.Status)

	_, err = moderation.NewReactivateUserUseCase(store, publisher).Execute(ctx, admin, marc.ID)
	assert.True(t, apperror.IsInvalidTransition(err))

	swaps, err := moderation.NewListSwapsUseCase(store).Execute(ctx, admin, "cancelled")
	require.NoError(t, err)
	require.Len(t, swaps, 1)
	assert.Equal(t, pending.ID, swaps[0].ID)
	publisher.AssertExpectations(t)
}

func TestUpdateUserUseCase_ProfileAndStatus(t *testing.T) {
	store := memory.NewStore()
	marc := addUser(t, store, "Marc")
	uc := moderation.NewUpdateUserUseCase(store, event.NopPublisher{})

	name := "Marc Demo"
	user, err := uc.Execute(context.Background(), admin, marc.ID, moderation.UpdateUserInput{
		Profile: profile.UpdateUserInput{Name: &name},
		Status:  "suspended",
	})
	require.NoError(t, err)
	assert.Equal(t, "Marc Demo", user.Name)
	assert.Equal(t, valueobject.UserStatusSuspended, user.Status)

	_, err = uc.Execute(context.Background(), admin, marc.ID, moderation.UpdateUserInput{Status: "frozen"})
	assert.True(t, apperror.IsValidation(err))

	_, err = uc.Execute(context.Background(), admin, marc.ID, moderation.UpdateUserInput{Status: "banned"})
	require.NoError(t, err)

	other := "Should Not Apply"
	_, err = uc.Execute(context.Background(), admin, marc.ID, moderation.UpdateUserInput{
		Profile: profile.UpdateUserInput{Name: &other},
		Status:  "active",
	})
	assert.True(t, apperror.IsInvalidTransition(err))

	stored, err := moderation.NewGetUserUseCase(store).Execute(context.Background(), admin, marc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Marc Demo", stored.Name)
}

func TestBroadcastUseCase(t *testing.T) {
	store := memory.NewStore()
	addUser(t, store, "Marc")
	addUser(t, store, "Joe")
	addUser(t, store, "Anna")

	publisher := &mockPublisher{}
	publisher.On("PublishToAll", event.Broadcast, mock.AnythingOfType("event.BroadcastPayload")).Once()
	uc := moderation.NewBroadcastUseCase(store, publisher)

	result, err := uc.Execute(context.Background(), admin, "  Maintenance on Saturday  ")
	require.NoError(t, err)
	assert.Equal(t, 3, result.RecipientCount)
	assert.Equal(t, "Maintenance on Saturday", result.Message)

	_, err = uc.Execute(context.Background(), admin, "   ")
	assert.True(t, apperror.IsValidation(err))
	publisher.AssertExpectations(t)
}

func TestRequestExportUseCase(t *testing.T) {
	scheduler := &mockScheduler{}
	scheduler.On("Schedule", mock.Anything, mock.MatchedBy(func(h moderation.ExportHandle) bool {
		return h.Kind == valueobject.ExportKindFeedbackLogs && h.Status == moderation.ExportStatusQueued
	})).Return(nil).Once()
	uc := moderation.NewRequestExportUseCase(scheduler)

	handle, err := uc.Execute(context.Background(), admin, "feedback_logs")
	require.NoError(t, err)
	assert.Equal(t, moderation.ExportStatusQueued, handle.Status)
	assert.Equal(t, admin.UserID, handle.RequestedBy)
	assert.NotEqual(t, uuid.Nil, handle.ID)

	_, err = uc.Execute(context.Background(), admin, "everything")
	assert.True(t, apperror.IsValidation(err))
	scheduler.AssertExpectations(t)
}

func TestRequestExportUseCase_SchedulerFailure(t *testing.T) {
	scheduler := &mockScheduler{}
	failure := errors.New("queue unavailable")
	scheduler.On("Schedule", mock.Anything, mock.Anything).Return(failure)

	_, err := moderation.NewRequestExportUseCase(scheduler).Execute(context.Background(), admin, "swap_statistics")
	assert.ErrorIs(t, err, failure)
}

func TestStatsUseCase(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	marc := addUser(t, store, "Marc")
	joe := addUser(t, store, "Joe")
	anna := addUser(t, store, "Anna")
	addReport(t, store, marc, joe)
	addSwap(t, store, marc, joe)

	_, err := moderation.NewSuspendUserUseCase(store, event.NopPublisher{}).Execute(ctx, admin, anna.ID)
	require.NoError(t, err)

	stats, err := moderation.NewStatsUseCase(store).Execute(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalUsers)
	assert.Equal(t, 2, stats.ActiveUsers)
	assert.Equal(t, 1, stats.SuspendedUsers)
	assert.Equal(t, 0, stats.BannedUsers)
	assert.Equal(t, 1, stats.PendingReports)
	assert.Equal(t, 1, stats.SwapsByStatus[valueobject.SwapStatusPending])
	assert.Equal(t, 0, stats.SwapsByStatus[valueobject.SwapStatusAccepted])
}

func TestForceDeleteSwapUseCase(t *testing.T) {
	store := memory.NewStore()
	marc := addUser(t, store, "Marc")
	joe := addUser(t, store, "Joe")
	request := addSwap(t, store, marc, joe)
	uc := moderation.NewForceDeleteSwapUseCase(store)

	require.NoError(t, uc.Execute(context.Background(), admin, request.ID))
	assert.True(t, apperror.IsNotFound(uc.Execute(context.Background(), admin, request.ID)))
}
