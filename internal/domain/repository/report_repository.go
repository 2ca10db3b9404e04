package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/domain/valueobject"
)

type ReportRepository interface {
	Create(ctx context.Context, report *entity.Report) error
	Update(ctx context.Context, report *entity.Report) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Report, error)
	List(ctx context.Context, status valueobject.ReportStatus) ([]*entity.Report, error)
	FindPendingByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Report, error)
}
