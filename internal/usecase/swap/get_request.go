package swap

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/domain/repository"
	"github.com/ignatzorin/skillswap-backend/internal/domain/valueobject"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
)

type GetRequestUseCase struct {
	store repository.Store
}

func NewGetRequestUseCase(store repository.Store) *GetRequestUseCase {
	return &GetRequestUseCase{store: store}
}

func (uc *GetRequestUseCase) Execute(ctx context.Context, id uuid.UUID, actor entity.Actor) (*entity.SwapRequest, error) {
	var request *entity.SwapRequest
	err := uc.store.Atomic(ctx, func(ctx context.Context, repos repository.Repositories) error {
		var err error
		request, err = repos.Swaps.FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !request.IsParticipant(actor.UserID) {
		return nil, apperror.ErrForbidden
	}
	return request, nil
}

type ListRequestsInput struct {
	UserID    uuid.UUID
	Direction string
	Status    string
}

type ListRequestsUseCase struct {
	store repository.Store
}

func NewListRequestsUseCase(store repository.Store) *ListRequestsUseCase {
	return &ListRequestsUseCase{store: store}
}

// Execute возвращает входящие или исходящие запросы пользователя, новые первыми.
// Запросы, которые пользователь убрал из своего списка, не возвращаются.
func (uc *ListRequestsUseCase) Execute(ctx context.Context, input ListRequestsInput) ([]*entity.SwapRequest, error) {
	direction, err := valueobject.NewSwapDirection(input.Direction)
	if err != nil {
		return nil, err
	}

	filter := repository.SwapRequestFilter{}
	if direction == valueobject.SwapDirectionSent {
		filter.RequesterID = &input.UserID
	} else {
		filter.ProviderID = &input.UserID
	}
	if input.Status != "" {
		status, err := valueobject.NewSwapStatus(input.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = status
	}

	var requests []*entity.SwapRequest
	err = uc.store.Atomic(ctx, func(ctx context.Context, repos repository.Repositories) error {
		if _, err := repos.Users.FindByID(ctx, input.UserID); err != nil {
			return err
		}
		all, err := repos.Swaps.List(ctx, filter)
		if err != nil {
			return err
		}
		requests = make([]*entity.SwapRequest, 0, len(all))
		for _, request := range all {
			if !request.HiddenFor(input.UserID) {
				requests = append(requests, request)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return requests, nil
}
