package moderation

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/domain/event"
	"github.com/ignatzorin/skillswap-backend/internal/domain/repository"
	"github.com/ignatzorin/skillswap-backend/internal/domain/valueobject"
	"github.com/ignatzorin/skillswap-backend/internal/usecase/profile"
)

type ListUsersUseCase struct {
	list *profile.ListUsersUseCase
}

func NewListUsersUseCase(store repository.Store) *ListUsersUseCase {
	return &ListUsersUseCase{list: profile.NewListUsersUseCase(store)}
}

func (uc *ListUsersUseCase) Execute(ctx context.Context, actor entity.Actor, input profile.ListUsersInput) (*profile.ListUsersResult, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	input.PublicOnly = false
	return uc.list.Execute(ctx, input)
}

type GetUserUseCase struct {
	get *profile.GetUserUseCase
}

func NewGetUserUseCase(store repository.Store) *GetUserUseCase {
	return &GetUserUseCase{get: profile.NewGetUserUseCase(store)}
}

func (uc *GetUserUseCase) Execute(ctx context.Context, actor entity.Actor, id uuid.UUID) (*entity.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return uc.get.Execute(ctx, id)
}

// ChangeStatusUseCase переводит пользователя в заданный статус: блокировка,
// восстановление или бан.
type ChangeStatusUseCase struct {
	target    valueobject.UserStatus
	setStatus *profile.SetStatusUseCase
}

func NewSuspendUserUseCase(store repository.Store, publisher event.Publisher) *ChangeStatusUseCase {
	return &ChangeStatusUseCase{target: valueobject.UserStatusSuspended, setStatus: profile.NewSetStatusUseCase(store, publisher)}
}

func NewReactivateUserUseCase(store repository.Store, publisher event.Publisher) *ChangeStatusUseCase {
	return &ChangeStatusUseCase{target: valueobject.UserStatusActive, setStatus: profile.NewSetStatusUseCase(store, publisher)}
}

func NewBanUserUseCase(store repository.Store, publisher event.Publisher) *ChangeStatusUseCase {
	return &ChangeStatusUseCase{target: valueobject.UserStatusBanned, setStatus: profile.NewSetStatusUseCase(store, publisher)}
}

func (uc *ChangeStatusUseCase) Execute(ctx context.Context, actor entity.Actor, id uuid.UUID) (*entity.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return uc.setStatus.Execute(ctx, id, uc.target)
}

type DeleteUserUseCase struct {
	deleteUser *profile.DeleteUserUseCase
}

func NewDeleteUserUseCase(store repository.Store, publisher event.Publisher) *DeleteUserUseCase {
	return &DeleteUserUseCase{deleteUser: profile.NewDeleteUserUseCase(store, publisher)}
}

func (uc *DeleteUserUseCase) Execute(ctx context.Context, actor entity.Actor, id uuid.UUID) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	return uc.deleteUser.Execute(ctx, id)
}

type UpdateUserInput struct {
	Profile profile.UpdateUserInput
	Status  string
}

// UpdateUserUseCase - форма редактирования пользователя в админке:
// поля профиля и статус меняются вместе.
type UpdateUserUseCase struct {
	store     repository.Store
	publisher event.Publisher
}

func NewUpdateUserUseCase(store repository.Store, publisher event.Publisher) *UpdateUserUseCase {
	return &UpdateUserUseCase{store: store, publisher: publisher}
}

func (uc *UpdateUserUseCase) Execute(ctx context.Context, actor entity.Actor, id uuid.UUID, input UpdateUserInput) (*entity.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	var status valueobject.UserStatus
	if input.Status != "" {
		s, err := valueobject.NewUserStatus(input.Status)
		if err != nil {
			return nil, err
		}
		status = s
	}

	var (
		user      *entity.User
		cancelled []*entity.SwapRequest
	)
	err := uc.store.Atomic(ctx, func(ctx context.Context, repos repository.Repositories) error {
		var err error
		if user, err = profile.ApplyUpdate(ctx, repos, id, input.Profile); err != nil {
			return err
		}
		if status == "" {
			return nil
		}
		user, cancelled, err = profile.ApplyStatus(ctx, repos, id, status)
		return err
	})
	if err != nil {
		return nil, err
	}

	event.NotifyCancelled(uc.publisher, cancelled, id)
	return user, nil
}
