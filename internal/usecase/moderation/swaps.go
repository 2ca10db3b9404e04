package moderation

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/domain/repository"
	"github.com/ignatzorin/skillswap-backend/internal/domain/valueobject"
)

type ListSwapsUseCase struct {
	store repository.Store
}

func NewListSwapsUseCase(store repository.Store) *ListSwapsUseCase {
	return &ListSwapsUseCase{store: store}
}

func (uc *ListSwapsUseCase) Execute(ctx context.Context, actor entity.Actor, status string) ([]*entity.SwapRequest, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	filter := repository.SwapRequestFilter{}
	if status != "" {
		s, err := valueobject.NewSwapStatus(status)
		if err != nil {
			return nil, err
		}
		filter.Status = s
	}

	var requests []*entity.SwapRequest
	err := uc.store.Atomic(ctx, func(ctx context.Context, repos repository.Repositories) error {
		var err error
		requests, err = repos.Swaps.List(ctx, filter)
		return err
	})
	if err != nil {
		return nil, err
	}
	if requests == nil {
		requests = []*entity.SwapRequest{}
	}
	return requests, nil
}

// ForceDeleteSwapUseCase удаляет запрос в любом статусе.
type ForceDeleteSwapUseCase struct {
	store repository.Store
}

func NewForceDeleteSwapUseCase(store repository.Store) *ForceDeleteSwapUseCase {
	return &ForceDeleteSwapUseCase{store: store}
}

func (uc *ForceDeleteSwapUseCase) Execute(ctx context.Context, actor entity.Actor, id uuid.UUID) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	return uc.store.Atomic(ctx, func(ctx context.Context, repos repository.Repositories) error {
		return repos.Swaps.Delete(ctx, id)
	})
}
