package swap_test

import (
	"context"
	"sync"
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
	"github.com/ignatzorin/skillswap-backend/internal/usecase/swap"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishToUser(userID uuid.UUID, name string, data any) {
	m.Called(userID, name, data)
}

func (m *mockPublisher) PublishToAll(name string, data any) {
	m.Called(name, data)
}

type fixture struct {
	store  *memory.Store
	marc   *entity.User
	joe    *entity.User
	create *swap.CreateRequestUseCase
}

func newUser(t *testing.T, store repository.Store, name string, offered, wanted []string) *entity.User {
	t.Helper()
	user, err := entity.NewUser(name, uuid.NewString()+"@example.com", "hash")
	require.NoError(t, err)
	user.SkillsOffered = valueobject.NewSkillSet(offered)
	user.SkillsWanted = valueobject.NewSkillSet(wanted)
	require.NoError(t, store.Atomic(context.Background(), func(ctx context.Context, repos repository.Repositories) error {
		return repos.Users.Create(ctx, user)
	}))
	return user
}

func newFixture(t *testing.T) *fixture {
	store := memory.NewStore()
	return &fixture{
		store:  store,
		marc:   newUser(t, store, "Marc", []string{"Java", "Photoshop"}, []string{"Excel"}),
		joe:    newUser(t, store, "Joe", []string{"Excel"}, []string{"Python"}),
		create: swap.NewCreateRequestUseCase(store, event.NopPublisher{}),
	}
}

func (f *fixture) pending(t *testing.T) *entity.SwapRequest {
	t.Helper()
	request, err := f.create.Execute(context.Background(), swap.CreateRequestInput{
		RequesterID:  f.marc.ID,
		ProviderID:   f.joe.ID,
		SkillOffered: "Java",
		SkillWanted:  "Python",
		Message:      "Let's trade",
	})
	require.NoError(t, err)
	return request
}

func (f *fixture) user(t *testing.T, id uuid.UUID) *entity.User {
	t.Helper()
	var user *entity.User
	require.NoError(t, f.store.Atomic(context.Background(), func(ctx context.Context, repos repository.Repositories) error {
		var err error
		user, err = repos.Users.FindByID(ctx, id)
		return err
	}))
	return user
}

func (f *fixture) setStatus(t *testing.T, id uuid.UUID, status valueobject.UserStatus) {
	t.Helper()
	require.NoError(t, f.store.Atomic(context.Background(), func(ctx context.Context, repos repository.Repositories) error {
		user, err := repos.Users.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if _, err := user.SetStatus(status); err != nil {
			return err
		}
		return repos.Users.Update(ctx, user)
	}))
}

func TestCreateRequestUseCase_Success(t *testing.T) {
	f := newFixture(t)
	publisher := &mockPublisher{}
	publisher.On("PublishToUser", f.joe.ID, event.SwapRequestCreated, mock.AnythingOfType("event.SwapRequestPayload")).Once()
	uc := swap.NewCreateRequestUseCase(f.store, publisher)

	request, err := uc.Execute(context.Background(), swap.CreateRequestInput{
		RequesterID:  f.marc.ID,
		ProviderID:   f.joe.ID,
		SkillOffered: "Java",
		SkillWanted:  "Python",
	})
	require.NoError(t, err)
	assert.Equal(t, valueobject.SwapStatusPending, request.Status)
	assert.Equal(t, f.marc.ID, request.RequesterID)
	assert.Equal(t, f.joe.ID, request.ProviderID)
	publisher.AssertExpectations(t)
}

func TestCreateRequestUseCase_SkillWantedOnlyFromWantedList(t *testing.T) {
	f := newFixture(t)

	// Excel есть только среди навыков, которые Joe предлагает.
	request, err := f.create.Execute(context.Background(), swap.CreateRequestInput{
		RequesterID:  f.marc.ID,
		ProviderID:   f.joe.ID,
		SkillOffered: "Java",
		SkillWanted:  "Excel",
	})
	assert.True(t, apperror.IsValidation(err))
	assert.Nil(t, request)

	_, err = f.create.Execute(context.Background(), swap.CreateRequestInput{
		RequesterID:  f.marc.ID,
		ProviderID:   f.joe.ID,
		SkillOffered: "Photoshop",
		SkillWanted:  "Python",
	})
	assert.NoError(t, err)
}

func TestCreateRequestUseCase_Errors(t *testing.T) {
	f := newFixture(t)
	ghost := uuid.New()

	tests := []struct {
		name  string
		input swap.CreateRequestInput
		check func(error) bool
	}{
		{"self request", swap.CreateRequestInput{RequesterID: f.marc.ID, ProviderID: f.marc.ID, SkillOffered: "Java", SkillWanted: "Python"}, apperror.IsValidation},
		{"blank skill", swap.CreateRequestInput{RequesterID: f.marc.ID, ProviderID: f.joe.ID, SkillOffered: " ", SkillWanted: "Python"}, apperror.IsValidation},
		{"unknown provider", swap.CreateRequestInput{RequesterID: f.marc.ID, ProviderID: ghost, SkillOffered: "Java", SkillWanted: "Python"}, apperror.IsNotFound},
		{"unknown requester", swap.CreateRequestInput{RequesterID: ghost, ProviderID: f.joe.ID, SkillOffered: "Java", SkillWanted: "Python"}, apperror.IsNotFound},
		{"offered skill not owned", swap.CreateRequestInput{RequesterID: f.marc.ID, ProviderID: f.joe.ID, SkillOffered: "Cooking", SkillWanted: "Python"}, apperror.IsValidation},
		{"wanted skill not listed", swap.CreateRequestInput{RequesterID: f.marc.ID, ProviderID: f.joe.ID, SkillOffered: "Java", SkillWanted: "Guitar"}, apperror.IsValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.create.Execute(context.Background(), tt.input)
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error: %v", err)
		})
	}
}

func TestCreateRequestUseCase_InactiveParties(t *testing.T) {
	f := newFixture(t)
	f.setStatus(t, f.joe.ID, valueobject.UserStatusSuspended)

	_, err := f.create.Execute(context.Background(), swap.CreateRequestInput{
		RequesterID: f.marc.ID, ProviderID: f.joe.ID, SkillOffered: "Java", SkillWanted: "Python",
	})
	assert.True(t, apperror.IsForbidden(err))

	f.setStatus(t, f.joe.ID, valueobject.UserStatusActive)
	f.setStatus(t, f.marc.ID, valueobject.UserStatusBanned)

	_, err = f.create.Execute(context.Background(), swap.CreateRequestInput{
		RequesterID: f.marc.ID, ProviderID: f.joe.ID, SkillOffered: "Java", SkillWanted: "Python",
	})
	assert.True(t, apperror.IsForbidden(err))
}

func TestRespondUseCase_Accept(t *testing.T) {
	f := newFixture(t)
	request := f.pending(t)
	publisher := &mockPublisher{}
	publisher.On("PublishToUser", f.marc.ID, event.SwapRequestAccepted, mock.Anything).Once()
	uc := swap.NewRespondUseCase(f.store, publisher)

	result, err := uc.Execute(context.Background(), request.ID, f.joe.ID, swap.DecisionAccept)
	require.NoError(t, err)
	assert.Equal(t, valueobject.SwapStatusAccepted, result.Status)
	assert.Equal(t, 1, f.user(t, f.marc.ID).TotalSwaps)
	assert.Equal(t, 1, f.user(t, f.joe.ID).TotalSwaps)
	publisher.AssertExpectations(t)

	_, err = uc.Execute(context.Background(), request.ID, f.joe.ID, swap.DecisionReject)
	assert.True(t, apperror.IsInvalidTransition(err))
	assert.Equal(t, 1, f.user(t, f.joe.ID).TotalSwaps)
}

func TestRespondUseCase_Reject(t *testing.T) {
	f := newFixture(t)
	request := f.pending(t)
	uc := swap.NewRespondUseCase(f.store, event.NopPublisher{})

	result, err := uc.Execute(context.Background(), request.ID, f.joe.ID, swap.DecisionReject)
	require.NoError(t, err)
	assert.Equal(t, valueobject.SwapStatusRejected, result.Status)
	assert.Zero(t, f.user(t, f.marc.ID).TotalSwaps)
}

func TestRespondUseCase_ForbiddenBeforeStatus(t *testing.T) {
	f := newFixture(t)
	request := f.pending(t)
	uc := swap.NewRespondUseCase(f.store, event.NopPublisher{})

	_, err := uc.Execute(context.Background(), request.ID, f.marc.ID, swap.DecisionAccept)
	assert.True(t, apperror.IsForbidden(err))

	_, err = swap.NewCancelUseCase(f.store, event.NopPublisher{}).Execute(context.Background(), request.ID, f.marc.ID)
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), request.ID, f.marc.ID, swap.DecisionAccept)
	assert.True(t, apperror.IsForbidden(err))

	_, err = uc.Execute(context.Background(), request.ID, f.joe.ID, swap.DecisionAccept)
	assert.True(t, apperror.IsInvalidTransition(err))

	_, err = uc.Execute(context.Background(), uuid.New(), f.joe.ID, swap.DecisionAccept)
	assert.True(t, apperror.IsNotFound(err))
}

func TestRespondUseCase_ConcurrentResponsesSerialize(t *testing.T) {
	f := newFixture(t)
	request := f.pending(t)
	uc := swap.NewRespondUseCase(f.store, event.NopPublisher{})

	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		rejected  int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			decision := swap.DecisionAccept
			if i%2 == 1 {
				decision = swap.DecisionReject
			}
			_, err := uc.Execute(context.Background(), request.ID, f.joe.ID, decision)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
			} else if apperror.IsInvalidTransition(err) {
				rejected++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, rejected)
	assert.LessOrEqual(t, f.user(t, f.joe.ID).TotalSwaps, 1)
}

func TestRespondUseCase_UnknownDecision(t *testing.T) {
	f := newFixture(t)
	request := f.pending(t)
	uc := swap.NewRespondUseCase(f.store, event.NopPublisher{})

	for _, decision := range []swap.Decision{"", "bogus", "ACCEPT"} {
		_, err := uc.Execute(context.Background(), request.ID, f.joe.ID, decision)
		assert.True(t, apperror.IsValidation(err), "decision %q", decision)
	}

	got, err := swap.NewGetRequestUseCase(f.store).Execute(context.Background(), request.ID, entity.Actor{UserID: f.joe.ID, Role: valueobject.RoleUser})
	require.NoError(t, err)
	assert.Equal(t, valueobject.SwapStatusPending, got.Status)
	assert.Zero(t, f.user(t, f.joe.ID).TotalSwaps)
}

func TestRespondUseCase_CrossedAcceptsBothSucceed(t *testing.T) {
	f := newFixture(t)
	toJoe := f.pending(t)
	toMarc, err := f.create.Execute(context.Background(), swap.CreateRequestInput{
		RequesterID:  f.joe.ID,
		ProviderID:   f.marc.ID,
		SkillOffered: "Excel",
		SkillWanted:  "Excel",
	})
	require.NoError(t, err)
	uc := swap.NewRespondUseCase(f.store, event.NopPublisher{})

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, tc := range []struct {
		id    uuid.UUID
		actor uuid.UUID
	}{{toJoe.ID, f.joe.ID}, {toMarc.ID, f.marc.ID}} {
		wg.Add(1)
		go func(i int, id, actor uuid.UUID) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), id, actor, swap.DecisionAccept)
		}(i, tc.id, tc.actor)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Equal(t, 2, f.user(t, f.marc.ID).TotalSwaps)
	assert.Equal(t, 2, f.user(t, f.joe.ID).TotalSwaps)
}

func TestCancelUseCase(t *testing.T) {
	f := newFixture(t)
	request := f.pending(t)
	publisher := &mockPublisher{}
	publisher.On("PublishToUser", f.joe.ID, event.SwapRequestCancelled, mock.Anything).Once()
	uc := swap.NewCancelUseCase(f.store, publisher)

	_, err := uc.Execute(context.Background(), request.ID, f.joe.ID)
	assert.True(t, apperror.IsForbidden(err))

	result, err := uc.Execute(context.Background(), request.ID, f.marc.ID)
	require.NoError(t, err)
	assert.Equal(t, valueobject.SwapStatusCancelled, result.Status)

	_, err = uc.Execute(context.Background(), request.ID, f.marc.ID)
	assert.True(t, apperror.IsInvalidTransition(err))
	publisher.AssertExpectations(t)
}

func TestListRequestsUseCase(t *testing.T) {
	f := newFixture(t)
	first := f.pending(t)
	second := f.pending(t)
	_, err := swap.NewRespondUseCase(f.store, event.NopPublisher{}).Execute(context.Background(), first.ID, f.joe.ID, swap.DecisionReject)
	require.NoError(t, err)

	uc := swap.NewListRequestsUseCase(f.store)

	sent, err := uc.Execute(context.Background(), swap.ListRequestsInput{UserID: f.marc.ID, Direction: "sent"})
	require.NoError(t, err)
	assert.Len(t, sent, 2)

	received, err := uc.Execute(context.Background(), swap.ListRequestsInput{UserID: f.marc.ID, Direction: "received"})
	require.NoError(t, err)
	assert.Empty(t, received)

	pending, err := uc.Execute(context.Background(), swap.ListRequestsInput{UserID: f.joe.ID, Direction: "received", Status: "pending"})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, second.ID, pending[0].ID)

	_, err = uc.Execute(context.Background(), swap.ListRequestsInput{UserID: uuid.New(), Direction: "sent"})
	assert.True(t, apperror.IsNotFound(err))

	_, err = uc.Execute(context.Background(), swap.ListRequestsInput{UserID: f.marc.ID, Direction: "sideways"})
	assert.True(t, apperror.IsValidation(err))
}

func TestRemoveUseCase(t *testing.T) {
	f := newFixture(t)
	request := f.pending(t)
	remove := swap.NewRemoveUseCase(f.store)
	list := swap.NewListRequestsUseCase(f.store)
	ctx := context.Background()

	assert.True(t, apperror.IsInvalidTransition(remove.Execute(ctx, request.ID, f.marc.ID)))

	stranger := newUser(t, f.store, "Anna", nil, nil)
	assert.True(t, apperror.IsForbidden(remove.Execute(ctx, request.ID, stranger.ID)))

	_, err := swap.NewRespondUseCase(f.store, event.NopPublisher{}).Execute(ctx, request.ID, f.joe.ID, swap.DecisionAccept)
	require.NoError(t, err)

	require.NoError(t, remove.Execute(ctx, request.ID, f.marc.ID))

	sent, err := list.Execute(ctx, swap.ListRequestsInput{UserID: f.marc.ID, Direction: "sent"})
	require.NoError(t, err)
	assert.Empty(t, sent)

	received, err := list.Execute(ctx, swap.ListRequestsInput{UserID: f.joe.ID, Direction: "received"})
	require.NoError(t, err)
	assert.Len(t, received, 1)

	require.NoError(t, remove.Execute(ctx, request.ID, f.joe.ID))
	assert.True(t, apperror.IsNotFound(remove.Execute(ctx, request.ID, f.joe.ID)))
}

func TestGetRequestUseCase(t *testing.T) {
	f := newFixture(t)
	request := f.pending(t)
	uc := swap.NewGetRequestUseCase(f.store)

	got, err := uc.Execute(context.Background(), request.ID, entity.Actor{UserID: f.joe.ID, Role: valueobject.RoleUser})
	require.NoError(t, err)
	assert.Equal(t, request.ID, got.ID)

	_, err = uc.Execute(context.Background(), request.ID, entity.Actor{UserID: uuid.New(), Role: valueobject.RoleUser})
	assert.True(t, apperror.IsForbidden(err))

	_, err = uc.Execute(context.Background(), request.ID, entity.Actor{UserID: uuid.New(), Role: valueobject.RoleAdmin})
	assert.NoError(t, err)
}

func TestParseDecision(t *testing.T) {
	d, err := swap.ParseDecision("Accept")
	require.NoError(t, err)
	assert.Equal(t, swap.DecisionAccept, d)

	_, err = swap.ParseDecision("maybe")
	assert.True(t, apperror.IsValidation(err))
}
