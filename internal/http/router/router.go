package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/skillswap-backend/internal/config"
	"github.com/ignatzorin/skillswap-backend/internal/http/middleware"
	"github.com/ignatzorin/skillswap-backend/internal/interface/http/handler"
	"github.com/ignatzorin/skillswap-backend/internal/service"
)

// Handlers - все HTTP обработчики приложения.
type Handlers struct {
	Health  *handler.HealthHandler
	Auth    *handler.AuthHandler
	Profile *handler.ProfileHandler
	Swap    *handler.SwapHandler
	Report  *handler.ReportHandler
	Admin   *handler.AdminHandler
	WS      *handler.WSHandler
}

func SetupRouter(cfg *config.Config, h Handlers, tokenManager *service.TokenManager) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", h.Health.Health)
	if cfg.AvatarStorage == config.AvatarStorageLocal {
		r.StaticFS("/media", http.Dir(cfg.MediaStoragePath))
	}

	api := r.Group("/api")
	auth := middleware.AuthMiddleware(tokenManager)
	idParam := middleware.UUIDValidator("id")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod))
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/refresh", h.Auth.Refresh)
	}

	// Публичные маршруты
	api.GET("/ws", h.WS.Handle)
	api.GET("/profiles", h.Profile.ListProfiles)
	api.GET("/profiles/:id", idParam, middleware.OptionalAuthMiddleware(tokenManager), h.Profile.GetProfile)
	api.GET("/profiles/:id/feedback", idParam, h.Profile.ListFeedback)

	// Защищённые маршруты
	protected := api.Group("")
	protected.Use(auth)
	{
		protected.GET("/profile", h.Profile.GetMe)
		protected.PATCH("/profile", h.Profile.UpdateMe)
		protected.POST("/profile/skills", h.Profile.AddSkill)
		protected.DELETE("/profile/skills/:kind/:skill", h.Profile.RemoveSkill)
		protected.POST("/profile/avatar", h.Profile.UploadAvatar)

		protected.POST("/requests", h.Swap.Create)
		protected.GET("/requests", h.Swap.List)
		protected.GET("/requests/:id", idParam, h.Swap.Get)
		protected.PATCH("/requests/:id/respond", idParam, h.Swap.Respond)
		protected.PATCH("/requests/:id/cancel", idParam, h.Swap.Cancel)
		protected.DELETE("/requests/:id", idParam, h.Swap.Remove)
		protected.POST("/requests/:id/feedback", idParam, h.Swap.LeaveFeedback)

		protected.POST("/reports", h.Report.Create)
	}

	admin := api.Group("/admin")
	admin.Use(auth, middleware.AdminMiddleware())
	{
		admin.GET("/users", h.Admin.ListUsers)
		admin.GET("/users/:id", idParam, h.Admin.GetUser)
		admin.PATCH("/users/:id", idParam, h.Admin.UpdateUser)
		admin.DELETE("/users/:id", idParam, h.Admin.DeleteUser)
		admin.POST("/users/:id/suspend", idParam, h.Admin.SuspendUser)
		admin.POST("/users/:id/reactivate", idParam, h.Admin.ReactivateUser)
		admin.POST("/users/:id/ban", idParam, h.Admin.BanUser)

		admin.GET("/requests", h.Admin.ListSwaps)
		admin.DELETE("/requests/:id", idParam, h.Admin.DeleteSwap)

		admin.GET("/reports", h.Admin.ListReports)
		admin.PATCH("/reports/:id/resolve", idParam, h.Admin.ResolveReport)

		admin.POST("/broadcast", middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod), h.Admin.Broadcast)
		admin.POST("/exports", h.Admin.RequestExport)
		admin.GET("/stats", h.Admin.Stats)
	}

	return r
}
