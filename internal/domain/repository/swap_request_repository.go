package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/domain/valueobject"
)

type SwapRequestRepository interface {
	Create(ctx context.Context, request *entity.SwapRequest) error
	Update(ctx context.Context, request *entity.SwapRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.SwapRequest, error)
	// FindParticipants читает участников без блокировки строки: они не меняются после создания.
	FindParticipants(ctx context.Context, id uuid.UUID) (requesterID, providerID uuid.UUID, err error)
	List(ctx context.Context, filter SwapRequestFilter) ([]*entity.SwapRequest, error)
	FindPendingByUser(ctx context.Context, userID uuid.UUID) ([]*entity.SwapRequest, error)
	CountByStatus(ctx context.Context) (map[valueobject.SwapStatus]int, error)
}

type SwapRequestFilter struct {
	RequesterID *uuid.UUID
	ProviderID  *uuid.UUID
	Status      valueobject.SwapStatus
}
