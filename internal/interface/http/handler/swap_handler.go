package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/skillswap-backend/internal/domain/valueobject"
	"github.com/ignatzorin/skillswap-backend/internal/interface/http/dto"
	"github.com/ignatzorin/skillswap-backend/internal/interface/http/response"
	"github.com/ignatzorin/skillswap-backend/internal/usecase/feedback"
	"github.com/ignatzorin/skillswap-backend/internal/usecase/swap"
)

// SwapHandler обслуживает запросы на обмен навыками и отзывы по ним.
type SwapHandler struct {
	createUC   *swap.CreateRequestUseCase
	getUC      *swap.GetRequestUseCase
	listUC     *swap.ListRequestsUseCase
	respondUC  *swap.RespondUseCase
	cancelUC   *swap.CancelUseCase
	removeUC   *swap.RemoveUseCase
	feedbackUC *feedback.LeaveFeedbackUseCase
}

func NewSwapHandler(
	createUC *swap.CreateRequestUseCase,
	getUC *swap.GetRequestUseCase,
	listUC *swap.ListRequestsUseCase,
	respondUC *swap.RespondUseCase,
	cancelUC *swap.CancelUseCase,
	removeUC *swap.RemoveUseCase,
	feedbackUC *feedback.LeaveFeedbackUseCase,
) *SwapHandler {
	return &SwapHandler{
		createUC:   createUC,
		getUC:      getUC,
		listUC:     listUC,
		respondUC:  respondUC,
		cancelUC:   cancelUC,
		removeUC:   removeUC,
		feedbackUC: feedbackUC,
	}
}

// Create обрабатывает POST /api/requests.
func (h *SwapHandler) Create(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.CreateSwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "некорректные данные запроса")
		return
	}
	providerID, err := uuid.Parse(req.ProviderID)
	if err != nil {
		response.BadRequest(c, "некорректный ID пользователя")
		return
	}

	created, err := h.createUC.Execute(c.Request.Context(), swap.CreateRequestInput{
		RequesterID:  actor.UserID,
		ProviderID:   providerID,
		SkillOffered: req.SkillOffered,
		SkillWanted:  req.SkillWanted,
		Message:      req.Message,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToSwapResponse(created))
}

// List обрабатывает GET /api/requests?direction=&status=.
func (h *SwapHandler) List(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	requests, err := h.listUC.Execute(c.Request.Context(), swap.ListRequestsInput{
		UserID:    actor.UserID,
		Direction: c.DefaultQuery("direction", string(valueobject.SwapDirectionReceived)),
		Status:    c.Query("status"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToSwapResponses(requests))
}

// Get обрабатывает GET /api/requests/:id.
func (h *SwapHandler) Get(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "некорректный ID запроса")
	if !ok {
		return
	}

	request, err := h.getUC.Execute(c.Request.Context(), id, actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToSwapResponse(request))
}

// Respond обрабатывает PATCH /api/requests/:id/respond.
func (h *SwapHandler) Respond(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "некорректный ID запроса")
	if !ok {
		return
	}

	var req dto.RespondSwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "decision должен быть accept или reject")
		return
	}
	decision, err := swap.ParseDecision(req.Decision)
	if err != nil {
		response.Error(c, err)
		return
	}

	request, err := h.respondUC.Execute(c.Request.Context(), id, actor.UserID, decision)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToSwapResponse(request))
}

// Cancel обрабатывает PATCH /api/requests/:id/cancel.
func (h *SwapHandler) Cancel(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "некорректный ID запроса")
	if !ok {
		return
	}

	request, err := h.cancelUC.Execute(c.Request.Context(), id, actor.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToSwapResponse(request))
}

// Remove обрабатывает DELETE /api/requests/:id.
func (h *SwapHandler) Remove(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "некорректный ID запроса")
	if !ok {
		return
	}

	if err := h.removeUC.Execute(c.Request.Context(), id, actor.UserID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// LeaveFeedback обрабатывает POST /api/requests/:id/feedback.
func (h *SwapHandler) LeaveFeedback(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "некорректный ID запроса")
	if !ok {
		return
	}

	var req dto.LeaveFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "оценка должна быть от 1 до 5")
		return
	}

	created, err := h.feedbackUC.Execute(c.Request.Context(), feedback.LeaveFeedbackInput{
		SwapRequestID: id,
		AuthorID:      actor.UserID,
		Rating:        req.Rating,
		Comment:       req.Comment,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToFeedbackResponse(created))
}
