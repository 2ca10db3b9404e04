package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
)

const (
	MinFeedbackRating = 1
	MaxFeedbackRating = 5
)

type Feedback struct {
	ID            uuid.UUID
	SwapRequestID uuid.UUID
	FromUserID    uuid.UUID
	ToUserID      uuid.UUID
	Rating        int
	Comment       string
	CreatedAt     time.Time
}

// NewFeedback создаёт отзыв участника о втором участнике принятого обмена.
func NewFeedback(swap *SwapRequest, fromUserID uuid.UUID, rating int, comment string) (*Feedback, error) {
	if !swap.IsParticipant(fromUserID) {
		return nil, apperror.ErrForbidden
	}
	if !swap.IsAccepted() {
		return nil, apperror.InvalidTransition("отзыв можно оставить только по принятому обмену")
	}
	if rating < MinFeedbackRating || rating > MaxFeedbackRating {
		return nil, apperror.InvalidArgument("оценка должна быть от 1 до 5")
	}
	return &Feedback{
		ID:            uuid.New(),
		SwapRequestID: swap.ID,
		FromUserID:    fromUserID,
		ToUserID:      swap.Counterpart(fromUserID),
		Rating:        rating,
		Comment:       strings.TrimSpace(comment),
		CreatedAt:     time.Now(),
	}, nil
}
