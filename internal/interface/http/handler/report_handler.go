package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/skillswap-backend/internal/interface/http/dto"
	"github.com/ignatzorin/skillswap-backend/internal/interface/http/response"
	"github.com/ignatzorin/skillswap-backend/internal/usecase/moderation"
)

type ReportHandler struct {
	createUC *moderation.CreateReportUseCase
}

func NewReportHandler(createUC *moderation.CreateReportUseCase) *ReportHandler {
	return &ReportHandler{createUC: createUC}
}

// Create обрабатывает POST /api/reports.
func (h *ReportHandler) Create(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "некорректные данные жалобы")
		return
	}
	reportedID, err := uuid.Parse(req.ReportedUserID)
	if err != nil {
		response.BadRequest(c, "некорректный ID пользователя")
		return
	}

	report, err := h.createUC.Execute(c.Request.Context(), moderation.CreateReportInput{
		ReporterID:     actor.UserID,
		ReportedUserID: reportedID,
		Type:           req.Type,
		Description:    req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToReportResponse(report))
}
