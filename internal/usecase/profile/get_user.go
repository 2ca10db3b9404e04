package profile

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/domain/repository"
	"github.com/ignatzorin/skillswap-backend/internal/domain/valueobject"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
)

const (
	DefaultPageSize = 6
	MaxPageSize     = 100
)

type GetUserUseCase struct {
	store repository.Store
}

func NewGetUserUseCase(store repository.Store) *GetUserUseCase {
	return &GetUserUseCase{store: store}
}

func (uc *GetUserUseCase) Execute(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var user *entity.User
	err := uc.store.Atomic(ctx, func(ctx context.Context, repos repository.Repositories) error {
		var err error
		user, err = repos.Users.FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ViewProfileUseCase отдаёт профиль из каталога. Скрытый или неактивный профиль
// видят только владелец и администратор, для остальных он не существует.
type ViewProfileUseCase struct {
	getUser *GetUserUseCase
}

func NewViewProfileUseCase(store repository.Store) *ViewProfileUseCase {
	return &ViewProfileUseCase{getUser: NewGetUserUseCase(store)}
}

func (uc *ViewProfileUseCase) Execute(ctx context.Context, id uuid.UUID, viewer *entity.Actor) (*entity.User, error) {
	user, err := uc.getUser.Execute(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.VisibleInDirectory() {
		return user, nil
	}
	if viewer != nil && (viewer.UserID == user.ID || viewer.IsAdmin()) {
		return user, nil
	}
	return nil, apperror.ErrUserNotFound
}

type ListUsersInput struct {
	Query        string
	Status       string
	Availability string
	PublicOnly   bool
	Limit        int
	Offset       int
}

type ListUsersResult struct {
	Users  []*entity.User
	Total  int
	Limit  int
	Offset int
}

type ListUsersUseCase struct {
	store repository.Store
}

func NewListUsersUseCase(store repository.Store) *ListUsersUseCase {
	return &ListUsersUseCase{store: store}
}

func (uc *ListUsersUseCase) Execute(ctx context.Context, input ListUsersInput) (*ListUsersResult, error) {
	filter := repository.UserFilter{
		Query:      strings.TrimSpace(input.Query),
		PublicOnly: input.PublicOnly,
		Limit:      input.Limit,
		Offset:     input.Offset,
	}
	if filter.Limit <= 0 {
		filter.Limit = DefaultPageSize
	}
	if filter.Limit > MaxPageSize {
		filter.Limit = MaxPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	if input.Status != "" {
		status, err := valueobject.NewUserStatus(input.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = status
	}
	if input.Availability != "" {
		availability, err := valueobject.NewAvailability(input.Availability)
		if err != nil {
			return nil, err
		}
		filter.Availability = availability
	}

	result := &ListUsersResult{Limit: filter.Limit, Offset: filter.Offset}
	err := uc.store.Atomic(ctx, func(ctx context.Context, repos repository.Repositories) error {
		var err error
		result.Users, result.Total, err = repos.Users.List(ctx, filter)
		return err
	})
	if err != nil {
		return nil, err
	}
	if result.Users == nil {
		result.Users = []*entity.User{}
	}
	return result, nil
}
