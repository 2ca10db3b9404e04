package moderation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/domain/valueobject"
)

const ExportStatusQueued = "queued"

type ExportHandle struct {
	ID          uuid.UUID
	Kind        valueobject.ExportKind
	Status      string
	RequestedBy uuid.UUID
	RequestedAt time.Time
}

// ExportScheduler принимает заявку на выгрузку. Формирование файла выполняется вне сервиса.
type ExportScheduler interface {
	Schedule(ctx context.Context, handle ExportHandle) error
}

type RequestExportUseCase struct {
	scheduler ExportScheduler
}

func NewRequestExportUseCase(scheduler ExportScheduler) *RequestExportUseCase {
	return &RequestExportUseCase{scheduler: scheduler}
}

func (uc *RequestExportUseCase) Execute(ctx context.Context, actor entity.Actor, kind string) (*ExportHandle, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	exportKind, err := valueobject.NewExportKind(kind)
	if err != nil {
		return nil, err
	}

	handle := &ExportHandle{
		ID:          uuid.New(),
		Kind:        exportKind,
		Status:      ExportStatusQueued,
		RequestedBy: actor.UserID,
		RequestedAt: time.Now(),
	}
	if err := uc.scheduler.Schedule(ctx, *handle); err != nil {
		return nil, err
	}
	return handle, nil
}
