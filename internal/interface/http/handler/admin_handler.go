package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/skillswap-backend/internal/interface/http/dto"
	"github.com/ignatzorin/skillswap-backend/internal/interface/http/response"
	"github.com/ignatzorin/skillswap-backend/internal/usecase/moderation"
	"github.com/ignatzorin/skillswap-backend/internal/usecase/profile"
)

// AdminUseCases собирает операции админки, чтобы не передавать их по одной.
type AdminUseCases struct {
	ListUsers      *moderation.ListUsersUseCase
	GetUser        *moderation.GetUserUseCase
	UpdateUser     *moderation.UpdateUserUseCase
	DeleteUser     *moderation.DeleteUserUseCase
	SuspendUser    *moderation.ChangeStatusUseCase
	ReactivateUser *moderation.ChangeStatusUseCase
	BanUser        *moderation.ChangeStatusUseCase
	ListSwaps      *moderation.ListSwapsUseCase
	DeleteSwap     *moderation.ForceDeleteSwapUseCase
	ListReports    *moderation.ListReportsUseCase
	ResolveReport  *moderation.ResolveReportUseCase
	Broadcast      *moderation.BroadcastUseCase
	RequestExport  *moderation.RequestExportUseCase
	Stats          *moderation.StatsUseCase
}

type AdminHandler struct {
	uc AdminUseCases
}

func NewAdminHandler(uc AdminUseCases) *AdminHandler {
	return &AdminHandler{uc: uc}
}

// ListUsers обрабатывает GET /api/admin/users?q=&status=&availability=&limit=&offset=.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	result, err := h.uc.ListUsers.Execute(c.Request.Context(), actor, profile.ListUsersInput{
		Query:        c.Query("q"),
		Status:       c.Query("status"),
		Availability: c.Query("availability"),
		Limit:        parseIntQuery(c, "limit", profile.DefaultPageSize),
		Offset:       parseIntQuery(c, "offset", 0),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, dto.ToFullProfiles(result.Users), result.Total, result.Limit, result.Offset)
}

// GetUser обрабатывает GET /api/admin/users/:id.
func (h *AdminHandler) GetUser(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "некорректный ID пользователя")
	if !ok {
		return
	}

	user, err := h.uc.GetUser.Execute(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToFullProfile(user))
}

// UpdateUser обрабатывает PATCH /api/admin/users/:id.
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "некорректный ID пользователя")
	if !ok {
		return
	}

	var req dto.AdminUpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "некорректные данные запроса")
		return
	}

	user, err := h.uc.UpdateUser.Execute(c.Request.Context(), actor, id, req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToFullProfile(user))
}

// DeleteUser обрабатывает DELETE /api/admin/users/:id.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "некорректный ID пользователя")
	if !ok {
		return
	}

	if err := h.uc.DeleteUser.Execute(c.Request.Context(), actor, id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

func (h *AdminHandler) SuspendUser(c *gin.Context) {
	h.changeStatus(c, h.uc.SuspendUser)
}

func (h *AdminHandler) ReactivateUser(c *gin.Context) {
	h.changeStatus(c, h.uc.ReactivateUser)
}

func (h *AdminHandler) BanUser(c *gin.Context) {
	h.changeStatus(c, h.uc.BanUser)
}

func (h *AdminHandler) changeStatus(c *gin.Context, uc *moderation.ChangeStatusUseCase) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "некорректный ID пользователя")
	if !ok {
		return
	}

	user, err := uc.Execute(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToFullProfile(user))
}

// ListSwaps обрабатывает GET /api/admin/requests?status=.
func (h *AdminHandler) ListSwaps(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	requests, err := h.uc.ListSwaps.Execute(c.Request.Context(), actor, c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToSwapResponses(requests))
}

// DeleteSwap обрабатывает DELETE /api/admin/requests/:id.
func (h *AdminHandler) DeleteSwap(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "некорректный ID запроса")
	if !ok {
		return
	}

	if err := h.uc.DeleteSwap.Execute(c.Request.Context(), actor, id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// ListReports обрабатывает GET /api/admin/reports?status=.
func (h *AdminHandler) ListReports(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	reports, err := h.uc.ListReports.Execute(c.Request.Context(), actor, c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToReportResponses(reports))
}

// ResolveReport обрабатывает PATCH /api/admin/reports/:id/resolve.
func (h *AdminHandler) ResolveReport(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "некорректный ID жалобы")
	if !ok {
		return
	}

	report, err := h.uc.ResolveReport.Execute(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToReportResponse(report))
}

// Broadcast обрабатывает POST /api/admin/broadcast.
func (h *AdminHandler) Broadcast(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.BroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "текст сообщения обязателен")
		return
	}

	result, err := h.uc.Broadcast.Execute(c.Request.Context(), actor, req.Message)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToBroadcastResponse(result))
}

// RequestExport обрабатывает POST /api/admin/exports.
func (h *AdminHandler) RequestExport(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "тип выгрузки обязателен")
		return
	}

	handle, err := h.uc.RequestExport.Execute(c.Request.Context(), actor, req.Kind)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusAccepted, response.Response{Success: true, Data: dto.ToExportResponse(handle)})
}

// Stats обрабатывает GET /api/admin/stats.
func (h *AdminHandler) Stats(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	stats, err := h.uc.Stats.Execute(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToStatsResponse(stats))
}
