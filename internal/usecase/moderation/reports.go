package moderation

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/domain/repository"
	"github.com/ignatzorin/skillswap-backend/internal/domain/valueobject"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
	"github.com/ignatzorin/skillswap-backend/internal/validation"
)

const ResolutionResolvedByAdmin = "resolved by admin"

type ListReportsUseCase struct {
	store repository.Store
}

func NewListReportsUseCase(store repository.Store) *ListReportsUseCase {
	return &ListReportsUseCase{store: store}
}

func (uc *ListReportsUseCase) Execute(ctx context.Context, actor entity.Actor, status string) ([]*entity.Report, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	var filter valueobject.ReportStatus
	if status != "" {
		s, err := valueobject.NewReportStatus(status)
		if err != nil {
			return nil, err
		}
		filter = s
	}

	var reports []*entity.Report
	err := uc.store.Atomic(ctx, func(ctx context.Context, repos repository.Repositories) error {
		var err error
		reports, err = repos.Reports.List(ctx, filter)
		return err
	})
	if err != nil {
		return nil, err
	}
	if reports == nil {
		reports = []*entity.Report{}
	}
	return reports, nil
}

type ResolveReportUseCase struct {
	store repository.Store
}

func NewResolveReportUseCase(store repository.Store) *ResolveReportUseCase {
	return &ResolveReportUseCase{store: store}
}

// Execute закрывает жалобу. Закрытие уже закрытой жалобы возвращает её без изменений.
func (uc *ResolveReportUseCase) Execute(ctx context.Context, actor entity.Actor, id uuid.UUID) (*entity.Report, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	var report *entity.Report
	err := uc.store.Atomic(ctx, func(ctx context.Context, repos repository.Repositories) error {
		var err error
		if report, err = repos.Reports.FindByID(ctx, id); err != nil {
			return err
		}
		if !report.IsPending() {
			return nil
		}
		report.Resolve(ResolutionResolvedByAdmin)
		return repos.Reports.Update(ctx, report)
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

type CreateReportInput struct {
	ReporterID     uuid.UUID
	ReportedUserID uuid.UUID
	Type           string
	Description    string
}

// CreateReportUseCase - жалоба от любого активного пользователя.
type CreateReportUseCase struct {
	store repository.Store
}

func NewCreateReportUseCase(store repository.Store) *CreateReportUseCase {
	return &CreateReportUseCase{store: store}
}

func (uc *CreateReportUseCase) Execute(ctx context.Context, input CreateReportInput) (*entity.Report, error) {
	if err := validation.ValidateReport(input.Type, input.Description); err != nil {
		return nil, apperror.InvalidArgument(err.Error())
	}
	report, err := entity.NewReport(input.ReporterID, input.ReportedUserID, input.Type, input.Description)
	if err != nil {
		return nil, err
	}

	err = uc.store.Atomic(ctx, func(ctx context.Context, repos repository.Repositories) error {
		if err := repos.Users.LockByIDs(ctx, input.ReporterID, input.ReportedUserID); err != nil {
			return err
		}
		reporter, err := repos.Users.FindByID(ctx, input.ReporterID)
		if err != nil {
			return err
		}
		if !reporter.IsActive() {
			return apperror.New(apperror.ErrCodeForbidden, "ваш аккаунт не активен")
		}
		if _, err := repos.Users.FindByID(ctx, input.ReportedUserID); err != nil {
			return err
		}
		return repos.Reports.Create(ctx, report)
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}
