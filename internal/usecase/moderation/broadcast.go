package moderation

import (
	"context"
	"strings"
	"time"

	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/domain/event"
	"github.com/ignatzorin/skillswap-backend/internal/domain/repository"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
	"github.com/ignatzorin/skillswap-backend/internal/validation"
)

type BroadcastResult struct {
	Message        string
	RecipientCount int
	SentAt         time.Time
}

type BroadcastUseCase struct {
	store     repository.Store
	publisher event.Publisher
}

func NewBroadcastUseCase(store repository.Store, publisher event.Publisher) *BroadcastUseCase {
	return &BroadcastUseCase{store: store, publisher: publisher}
}

// Execute рассылает сообщение всем подключённым клиентам. RecipientCount -
// число пользователей на момент вызова, доставка не подтверждается.
func (uc *BroadcastUseCase) Execute(ctx context.Context, actor entity.Actor, message string) (*BroadcastResult, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := validation.ValidateBroadcastMessage(message); err != nil {
		return nil, apperror.InvalidArgument(err.Error())
	}

	result := &BroadcastResult{Message: strings.TrimSpace(message), SentAt: time.Now()}
	err := uc.store.Atomic(ctx, func(ctx context.Context, repos repository.Repositories) error {
		counts, err := repos.Users.CountByStatus(ctx)
		if err != nil {
			return err
		}
		for _, n := range counts {
			result.RecipientCount += n
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.publisher.PublishToAll(event.Broadcast, event.BroadcastPayload{Message: result.Message, SentAt: result.SentAt})
	return result, nil
}
