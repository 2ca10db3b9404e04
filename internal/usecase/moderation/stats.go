package moderation

import (
	"context"

	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/domain/repository"
	"github.com/ignatzorin/skillswap-backend/internal/domain/valueobject"
)

// Stats - счётчики для главной страницы админки.
type Stats struct {
	TotalUsers     int
	ActiveUsers    int
	SuspendedUsers int
	BannedUsers    int
	PendingReports int
	SwapsByStatus  map[valueobject.SwapStatus]int
}

type StatsUseCase struct {
	store repository.Store
}

func NewStatsUseCase(store repository.Store) *StatsUseCase {
	return &StatsUseCase{store: store}
}

func (uc *StatsUseCase) Execute(ctx context.Context, actor entity.Actor) (*Stats, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	stats := &Stats{SwapsByStatus: make(map[valueobject.SwapStatus]int)}
	err := uc.store.Atomic(ctx, func(ctx context.Context, repos repository.Repositories) error {
		users, err := repos.Users.CountByStatus(ctx)
		if err != nil {
			return err
		}
		stats.ActiveUsers = users[valueobject.UserStatusActive]
		stats.SuspendedUsers = users[valueobject.UserStatusSuspended]
		stats.BannedUsers = users[valueobject.UserStatusBanned]
		stats.TotalUsers = stats.ActiveUsers + stats.SuspendedUsers + stats.BannedUsers

		pending, err := repos.Reports.List(ctx, valueobject.ReportStatusPending)
		if err != nil {
			return err
		}
		stats.PendingReports = len(pending)

		swaps, err := repos.Swaps.CountByStatus(ctx)
		if err != nil {
			return err
		}
		for _, status := range []valueobject.SwapStatus{
			valueobject.SwapStatusPending,
			valueobject.SwapStatusAccepted,
			valueobject.SwapStatusRejected,
			valueobject.SwapStatusCancelled,
		} {
			stats.SwapsByStatus[status] = swaps[status]
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}
