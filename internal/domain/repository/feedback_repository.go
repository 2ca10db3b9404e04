package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
)

type FeedbackRepository interface {
	Create(ctx context.Context, feedback *entity.Feedback) error
	FindBySwapAndAuthor(ctx context.Context, swapRequestID, fromUserID uuid.UUID) (*entity.Feedback, error)
	ListByRecipient(ctx context.Context, toUserID uuid.UUID) ([]*entity.Feedback, error)
	RatingsForUser(ctx context.Context, toUserID uuid.UUID) ([]int, error)
}
