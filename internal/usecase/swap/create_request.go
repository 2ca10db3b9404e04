package swap

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/domain/event"
	"github.com/ignatzorin/skillswap-backend/internal/domain/repository"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
	"github.com/ignatzorin/skillswap-backend/internal/validation"
)

type CreateRequestInput struct {
	RequesterID  uuid.UUID
	ProviderID   uuid.UUID
	SkillOffered string
	SkillWanted  string
	Message      string
}

type CreateRequestUseCase struct {
	store     repository.Store
	publisher event.Publisher
}

func NewCreateRequestUseCase(store repository.Store, publisher event.Publisher) *CreateRequestUseCase {
	return &CreateRequestUseCase{store: store, publisher: publisher}
}

func (uc *CreateRequestUseCase) Execute(ctx context.Context, input CreateRequestInput) (*entity.SwapRequest, error) {
	request, err := entity.NewSwapRequest(input.RequesterID, input.ProviderID, input.SkillOffered, input.SkillWanted, input.Message)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateSwapMessage(input.Message); err != nil {
		return nil, apperror.InvalidArgument(err.Error())
	}

	err = uc.store.Atomic(ctx, func(ctx context.Context, repos repository.Repositories) error {
		if err := repos.Users.LockByIDs(ctx, request.RequesterID, request.ProviderID); err != nil {
			return err
		}
		requester, err := repos.Users.FindByID(ctx, request.RequesterID)
		if err != nil {
			return err
		}
		provider, err := repos.Users.FindByID(ctx, request.ProviderID)
		if err != nil {
			return err
		}

		if !requester.IsActive() {
			return apperror.New(apperror.ErrCodeForbidden, "ваш аккаунт не активен")
		}
		if !provider.IsActive() {
			return apperror.New(apperror.ErrCodeForbidden, "пользователь сейчас не принимает запросы")
		}

		if !requester.SkillsOffered.Contains(request.SkillOffered) {
			return apperror.InvalidArgument("предлагаемого навыка нет в вашем профиле")
		}
		if !provider.SkillsWanted.Contains(request.SkillWanted) {
			return apperror.InvalidArgument("пользователь не ищет этот навык")
		}

		return repos.Swaps.Create(ctx, request)
	})
	if err != nil {
		return nil, err
	}

	uc.publisher.PublishToUser(request.ProviderID, event.SwapRequestCreated, event.NewSwapRequestPayload(request))
	return request, nil
}
