package swap

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/domain/event"
	"github.com/ignatzorin/skillswap-backend/internal/domain/repository"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
)

type Decision string

const (
	DecisionAccept Decision = "accept"
	DecisionReject Decision = "reject"
)

func ParseDecision(value string) (Decision, error) {
	d := Decision(strings.ToLower(strings.TrimSpace(value)))
	if d != DecisionAccept && d != DecisionReject {
		return "", apperror.InvalidArgument("решение должно быть accept или reject")
	}
	return d, nil
}

type RespondUseCase struct {
	store     repository.Store
	publisher event.Publisher
}

func NewRespondUseCase(store repository.Store, publisher event.Publisher) *RespondUseCase {
	return &RespondUseCase{store: store, publisher: publisher}
}

// Execute принимает или отклоняет запрос от имени получателя.
// При принятии счётчик обменов растёт у обоих участников в той же единице работы.
func (uc *RespondUseCase) Execute(ctx context.Context, id, actorID uuid.UUID, decision Decision) (*entity.SwapRequest, error) {
	if decision != DecisionAccept && decision != DecisionReject {
		return nil, apperror.InvalidArgument("решение должно быть accept или reject")
	}

	var request *entity.SwapRequest
	err := uc.store.Atomic(ctx, func(ctx context.Context, repos repository.Repositories) error {
		requesterID, providerID, err := repos.Swaps.FindParticipants(ctx, id)
		if err != nil {
			return err
		}
		if providerID != actorID {
			return apperror.New(apperror.ErrCodeForbidden, "ответить на запрос может только получатель")
		}
		if err := repos.Users.LockByIDs(ctx, requesterID, providerID); err != nil {
			return err
		}
		if request, err = repos.Swaps.FindByID(ctx, id); err != nil {
			return err
		}

		if decision == DecisionReject {
			if err := request.Reject(); err != nil {
				return err
			}
			return repos.Swaps.Update(ctx, request)
		}

		if err := request.Accept(); err != nil {
			return err
		}
		if err := repos.Swaps.Update(ctx, request); err != nil {
			return err
		}
		for _, userID := range []uuid.UUID{request.RequesterID, request.ProviderID} {
			user, err := repos.Users.FindByID(ctx, userID)
			if err != nil {
				return err
			}
			user.RecordSwap()
			if err := repos.Users.Update(ctx, user); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	name := event.SwapRequestRejected
	if request.IsAccepted() {
		name = event.SwapRequestAccepted
	}
	uc.publisher.PublishToUser(request.RequesterID, name, event.NewSwapRequestPayload(request))
	return request, nil
}

type CancelUseCase struct {
	store     repository.Store
	publisher event.Publisher
}

func NewCancelUseCase(store repository.Store, publisher event.Publisher) *CancelUseCase {
	return &CancelUseCase{store: store, publisher: publisher}
}

func (uc *CancelUseCase) Execute(ctx context.Context, id, actorID uuid.UUID) (*entity.SwapRequest, error) {
	var request *entity.SwapRequest
	err := uc.store.Atomic(ctx, func(ctx context.Context, repos repository.Repositories) error {
		var err error
		if request, err = repos.Swaps.FindByID(ctx, id); err != nil {
			return err
		}
		if !request.IsRequester(actorID) {
			return apperror.New(apperror.ErrCodeForbidden, "отменить запрос может только отправитель")
		}
		if err := request.Cancel(); err != nil {
			return err
		}
		return repos.Swaps.Update(ctx, request)
	})
	if err != nil {
		return nil, err
	}

	uc.publisher.PublishToUser(request.ProviderID, event.SwapRequestCancelled, event.NewSwapRequestPayload(request))
	return request, nil
}

type RemoveUseCase struct {
	store repository.Store
}

func NewRemoveUseCase(store repository.Store) *RemoveUseCase {
	return &RemoveUseCase{store: store}
}

// Execute убирает завершённый запрос из списка участника. Когда запрос убрали
// оба участника, запись удаляется.
func (uc *RemoveUseCase) Execute(ctx context.Context, id, actorID uuid.UUID) error {
	return uc.store.Atomic(ctx, func(ctx context.Context, repos repository.Repositories) error {
		request, err := repos.Swaps.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !request.IsParticipant(actorID) {
			return apperror.ErrForbidden
		}
		if err := request.HideFor(actorID); err != nil {
			return err
		}
		if request.HiddenForBoth() {
			return repos.Swaps.Delete(ctx, request.ID)
		}
		return repos.Swaps.Update(ctx, request)
	})
}
