package profile

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/domain/event"
	"github.com/ignatzorin/skillswap-backend/internal/domain/repository"
	"github.com/ignatzorin/skillswap-backend/internal/domain/valueobject"
)

// ApplyStatus меняет статус пользователя внутри открытой единицы работы.
// При бане ожидающие запросы с его участием отменяются и возвращаются вызывающему.
func ApplyStatus(ctx context.Context, repos repository.Repositories, id uuid.UUID, status valueobject.UserStatus) (*entity.User, []*entity.SwapRequest, error) {
	user, err := repos.Users.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	changed, err := user.SetStatus(status)
	if err != nil {
		return nil, nil, err
	}
	if !changed {
		return user, nil, nil
	}
	if err := repos.Users.Update(ctx, user); err != nil {
		return nil, nil, err
	}

	if status != valueobject.UserStatusBanned {
		return user, nil, nil
	}
	cancelled, err := cancelPendingSwaps(ctx, repos, id)
	if err != nil {
		return nil, nil, err
	}
	return user, cancelled, nil
}

// ApplyDelete удаляет пользователя и разбирает связанные записи:
// ожидающие запросы отменяются, жалобы на пользователя закрываются,
// жалобы от пользователя получают пометку. Отзывы сохраняются.
func ApplyDelete(ctx context.Context, repos repository.Repositories, id uuid.UUID) ([]*entity.SwapRequest, error) {
	if _, err := repos.Users.FindByID(ctx, id); err != nil {
		return nil, err
	}

	cancelled, err := cancelPendingSwaps(ctx, repos, id)
	if err != nil {
		return nil, err
	}

	reports, err := repos.Reports.FindPendingByUser(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, report := range reports {
		if report.ReportedUserID == id {
			report.Resolve(entity.ResolutionReportedUserRemoved)
		} else {
			report.Annotate(entity.ResolutionReporterRemoved)
		}
		if err := repos.Reports.Update(ctx, report); err != nil {
			return nil, err
		}
	}

	if err := repos.Users.Delete(ctx, id); err != nil {
		return nil, err
	}
	return cancelled, nil
}

func cancelPendingSwaps(ctx context.Context, repos repository.Repositories, userID uuid.UUID) ([]*entity.SwapRequest, error) {
	pending, err := repos.Swaps.FindPendingByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, request := range pending {
		if err := request.Cancel(); err != nil {
			return nil, err
		}
		if err := repos.Swaps.Update(ctx, request); err != nil {
			return nil, err
		}
	}
	return pending, nil
}

type SetStatusUseCase struct {
	store     repository.Store
	publisher event.Publisher
}

func NewSetStatusUseCase(store repository.Store, publisher event.Publisher) *SetStatusUseCase {
	return &SetStatusUseCase{store: store, publisher: publisher}
}

func (uc *SetStatusUseCase) Execute(ctx context.Context, id uuid.UUID, status valueobject.UserStatus) (*entity.User, error) {
	var (
		user      *entity.User
		cancelled []*entity.SwapRequest
	)
	err := uc.store.Atomic(ctx, func(ctx context.Context, repos repository.Repositories) error {
		var err error
		user, cancelled, err = ApplyStatus(ctx, repos, id, status)
		return err
	})
	if err != nil {
		return nil, err
	}

	event.NotifyCancelled(uc.publisher, cancelled, id)
	return user, nil
}

type DeleteUserUseCase struct {
	store     repository.Store
	publisher event.Publisher
}

func NewDeleteUserUseCase(store repository.Store, publisher event.Publisher) *DeleteUserUseCase {
	return &DeleteUserUseCase{store: store, publisher: publisher}
}

func (uc *DeleteUserUseCase) Execute(ctx context.Context, id uuid.UUID) error {
	var cancelled []*entity.SwapRequest
	err := uc.store.Atomic(ctx, func(ctx context.Context, repos repository.Repositories) error {
		var err error
		cancelled, err = ApplyDelete(ctx, repos, id)
		return err
	})
	if err != nil {
		return err
	}

	event.NotifyCancelled(uc.publisher, cancelled, id)
	return nil
}
