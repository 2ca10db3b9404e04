package feedback

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/domain/repository"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
	"github.com/ignatzorin/skillswap-backend/internal/validation"
)

type LeaveFeedbackInput struct {
	SwapRequestID uuid.UUID
	AuthorID      uuid.UUID
	Rating        int
	Comment       string
}

type LeaveFeedbackUseCase struct {
	store repository.Store
}

func NewLeaveFeedbackUseCase(store repository.Store) *LeaveFeedbackUseCase {
	return &LeaveFeedbackUseCase{store: store}
}

// Execute сохраняет отзыв и пересчитывает рейтинг получателя в одной единице работы.
func (uc *LeaveFeedbackUseCase) Execute(ctx context.Context, input LeaveFeedbackInput) (*entity.Feedback, error) {
	if err := validation.ValidateFeedbackComment(input.Comment); err != nil {
		return nil, apperror.InvalidArgument(err.Error())
	}

	var feedback *entity.Feedback
	err := uc.store.Atomic(ctx, func(ctx context.Context, repos repository.Repositories) error {
		requesterID, providerID, err := repos.Swaps.FindParticipants(ctx, input.SwapRequestID)
		if err != nil {
			return err
		}
		if err := repos.Users.LockByIDs(ctx, requesterID, providerID); err != nil {
			return err
		}
		request, err := repos.Swaps.FindByID(ctx, input.SwapRequestID)
		if err != nil {
			return err
		}

		feedback, err = entity.NewFeedback(request, input.AuthorID, input.Rating, input.Comment)
		if err != nil {
			return err
		}

		existing, err := repos.Feedback.FindBySwapAndAuthor(ctx, request.ID, input.AuthorID)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperror.New(apperror.ErrCodeConflict, "отзыв по этому обмену уже оставлен")
		}
		if err := repos.Feedback.Create(ctx, feedback); err != nil {
			return err
		}

		recipient, err := repos.Users.FindByID(ctx, feedback.ToUserID)
		if apperror.IsNotFound(err) {
			// получатель удалён, отзыв остаётся в истории
			return nil
		}
		if err != nil {
			return err
		}
		ratings, err := repos.Feedback.RatingsForUser(ctx, recipient.ID)
		if err != nil {
			return err
		}
		recipient.ApplyRating(ratings)
		return repos.Users.Update(ctx, recipient)
	})
	if err != nil {
		return nil, err
	}
	return feedback, nil
}

type ListFeedbackUseCase struct {
	store repository.Store
}

func NewListFeedbackUseCase(store repository.Store) *ListFeedbackUseCase {
	return &ListFeedbackUseCase{store: store}
}

func (uc *ListFeedbackUseCase) Execute(ctx context.Context, userID uuid.UUID) ([]*entity.Feedback, error) {
	var list []*entity.Feedback
	err := uc.store.Atomic(ctx, func(ctx context.Context, repos repository.Repositories) error {
		if _, err := repos.Users.FindByID(ctx, userID); err != nil {
			return err
		}
		var err error
		list, err = repos.Feedback.ListByRecipient(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*entity.Feedback{}
	}
	return list, nil
}
