package router

import (
	"context"

	"github.com/ignatzorin/skillswap-backend/internal/config"
	"github.com/ignatzorin/skillswap-backend/internal/domain/event"
	"github.com/ignatzorin/skillswap-backend/internal/domain/repository"
	"github.com/ignatzorin/skillswap-backend/internal/interface/http/handler"
	"github.com/ignatzorin/skillswap-backend/internal/service"
	"github.com/ignatzorin/skillswap-backend/internal/storage"
	"github.com/ignatzorin/skillswap-backend/internal/usecase/feedback"
	"github.com/ignatzorin/skillswap-backend/internal/usecase/moderation"
	"github.com/ignatzorin/skillswap-backend/internal/usecase/profile"
	"github.com/ignatzorin/skillswap-backend/internal/usecase/swap"
	"github.com/ignatzorin/skillswap-backend/internal/ws"
)

// Deps - зависимости, из которых собираются обработчики.
type Deps struct {
	Config    *config.Config
	Store     repository.Store
	Publisher event.Publisher
	Hub       *ws.Hub
	Tokens    *service.TokenManager
	Avatars   storage.AvatarStorage
	Exports   moderation.ExportScheduler
	DB        handler.Pinger
}

// NewHandlers создаёт use case'ы и обработчики поверх общих зависимостей.
func NewHandlers(ctx context.Context, d Deps) Handlers {
	store, pub := d.Store, d.Publisher

	return Handlers{
		Health: handler.NewHealthHandler(d.DB),
		Auth:   handler.NewAuthHandler(service.NewAuthService(store, d.Tokens)),
		Profile: handler.NewProfileHandler(
			profile.NewListUsersUseCase(store),
			profile.NewViewProfileUseCase(store),
			profile.NewGetUserUseCase(store),
			profile.NewUpdateUserUseCase(store),
			profile.NewAddSkillUseCase(store),
			profile.NewRemoveSkillUseCase(store),
			profile.NewSetAvatarUseCase(store),
			feedback.NewListFeedbackUseCase(store),
			d.Avatars,
		),
		Swap: handler.NewSwapHandler(
			swap.NewCreateRequestUseCase(store, pub),
			swap.NewGetRequestUseCase(store),
			swap.NewListRequestsUseCase(store),
			swap.NewRespondUseCase(store, pub),
			swap.NewCancelUseCase(store, pub),
			swap.NewRemoveUseCase(store),
			feedback.NewLeaveFeedbackUseCase(store),
		),
		Report: handler.NewReportHandler(moderation.NewCreateReportUseCase(store)),
		Admin: handler.NewAdminHandler(handler.AdminUseCases{
			ListUsers:      moderation.NewListUsersUseCase(store),
			GetUser:        moderation.NewGetUserUseCase(store),
			UpdateUser:     moderation.NewUpdateUserUseCase(store, pub),
			DeleteUser:     moderation.NewDeleteUserUseCase(store, pub),
			SuspendUser:    moderation.NewSuspendUserUseCase(store, pub),
			ReactivateUser: moderation.NewReactivateUserUseCase(store, pub),
			BanUser:        moderation.NewBanUserUseCase(store, pub),
			ListSwaps:      moderation.NewListSwapsUseCase(store),
			DeleteSwap:     moderation.NewForceDeleteSwapUseCase(store),
			ListReports:    moderation.NewListReportsUseCase(store),
			ResolveReport:  moderation.NewResolveReportUseCase(store),
			Broadcast:      moderation.NewBroadcastUseCase(store, pub),
			RequestExport:  moderation.NewRequestExportUseCase(d.Exports),
			Stats:          moderation.NewStatsUseCase(store),
		}),
		WS: handler.NewWSHandler(ctx, d.Hub, d.Tokens, d.Config.AllowedOrigins),
	}
}
