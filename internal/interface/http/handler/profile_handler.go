package handler

import (
	"bytes"
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/h2non/filetype"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/domain/valueobject"
	"github.com/ignatzorin/skillswap-backend/internal/http/middleware"
	"github.com/ignatzorin/skillswap-backend/internal/interface/http/dto"
	"github.com/ignatzorin/skillswap-backend/internal/interface/http/response"
	"github.com/ignatzorin/skillswap-backend/internal/logger"
	"github.com/ignatzorin/skillswap-backend/internal/storage"
	"github.com/ignatzorin/skillswap-backend/internal/usecase/feedback"
	"github.com/ignatzorin/skillswap-backend/internal/usecase/profile"
)

// Разрешённые типы аватаров, определяются по магическим байтам.
var allowedAvatarTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// ProfileHandler обслуживает каталог профилей и личный кабинет.
type ProfileHandler struct {
	listUsersUC    *profile.ListUsersUseCase
	viewProfileUC  *profile.ViewProfileUseCase
	getUserUC      *profile.GetUserUseCase
	updateUserUC   *profile.UpdateUserUseCase
	addSkillUC     *profile.AddSkillUseCase
	removeSkillUC  *profile.RemoveSkillUseCase
	setAvatarUC    *profile.SetAvatarUseCase
	listFeedbackUC *feedback.ListFeedbackUseCase
	avatars        storage.AvatarStorage
}

func NewProfileHandler(
	listUsersUC *profile.ListUsersUseCase,
	viewProfileUC *profile.ViewProfileUseCase,
	getUserUC *profile.GetUserUseCase,
	updateUserUC *profile.UpdateUserUseCase,
	addSkillUC *profile.AddSkillUseCase,
	removeSkillUC *profile.RemoveSkillUseCase,
	setAvatarUC *profile.SetAvatarUseCase,
	listFeedbackUC *feedback.ListFeedbackUseCase,
	avatars storage.AvatarStorage,
) *ProfileHandler {
	return &ProfileHandler{
		listUsersUC:    listUsersUC,
		viewProfileUC:  viewProfileUC,
		getUserUC:      getUserUC,
		updateUserUC:   updateUserUC,
		addSkillUC:     addSkillUC,
		removeSkillUC:  removeSkillUC,
		setAvatarUC:    setAvatarUC,
		listFeedbackUC: listFeedbackUC,
		avatars:        avatars,
	}
}

// ListProfiles обрабатывает GET /api/profiles?q=&availability=&limit=&offset=.
func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	result, err := h.listUsersUC.Execute(c.Request.Context(), profile.ListUsersInput{
		Query:        c.Query("q"),
		Availability: c.Query("availability"),
		PublicOnly:   true,
		Limit:        parseIntQuery(c, "limit", profile.DefaultPageSize),
		Offset:       parseIntQuery(c, "offset", 0),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, dto.ToPublicProfiles(result.Users), result.Total, result.Limit, result.Offset)
}

// GetProfile обрабатывает GET /api/profiles/:id.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "некорректный ID профиля")
	if !ok {
		return
	}

	var viewer *entity.Actor
	if actor, ok := middleware.CurrentActor(c); ok {
		viewer = &actor
	}

	user, err := h.viewProfileUC.Execute(c.Request.Context(), id, viewer)
	if err != nil {
		response.Error(c, err)
		return
	}

	if viewer != nil && (viewer.UserID == user.ID || viewer.IsAdmin()) {
		response.Success(c, dto.ToFullProfile(user))
		return
	}
	response.Success(c, dto.ToPublicProfile(user))
}

// ListFeedback обрабатывает GET /api/profiles/:id/feedback.
func (h *ProfileHandler) ListFeedback(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "некорректный ID профиля")
	if !ok {
		return
	}

	items, err := h.listFeedbackUC.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToFeedbackResponses(items))
}

// GetMe обрабатывает GET /api/profile.
func (h *ProfileHandler) GetMe(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	user, err := h.getUserUC.Execute(c.Request.Context(), actor.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToFullProfile(user))
}

// UpdateMe обрабатывает PATCH /api/profile.
func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "некорректные данные запроса")
		return
	}

	user, err := h.updateUserUC.Execute(c.Request.Context(), actor.UserID, req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToFullProfile(user))
}

// AddSkill обрабатывает POST /api/profile/skills.
func (h *ProfileHandler) AddSkill(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.AddSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "нужно указать тип и название навыка")
		return
	}
	kind, err := valueobject.NewSkillKind(req.Kind)
	if err != nil {
		response.Error(c, err)
		return
	}

	user, err := h.addSkillUC.Execute(c.Request.Context(), actor.UserID, kind, req.Skill)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToFullProfile(user))
}

// RemoveSkill обрабатывает DELETE /api/profile/skills/:kind/:skill.
func (h *ProfileHandler) RemoveSkill(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	kind, err := valueobject.NewSkillKind(c.Param("kind"))
	if err != nil {
		response.Error(c, err)
		return
	}

	user, err := h.removeSkillUC.Execute(c.Request.Context(), actor.UserID, kind, c.Param("skill"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToFullProfile(user))
}

// UploadAvatar обрабатывает POST /api/profile/avatar (multipart, поле file).
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "файл обязателен")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "не удалось открыть файл")
		return
	}
	defer file.Close()

	// Для определения типа достаточно первых 261 байт.
	head := make([]byte, 261)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		response.BadRequest(c, "не удалось прочитать файл")
		return
	}
	head = head[:n]

	kind, err := filetype.Match(head)
	if err != nil || kind == filetype.Unknown || !allowedAvatarTypes[kind.MIME.Value] {
		response.BadRequest(c, "разрешены только изображения JPEG, PNG, GIF или WebP")
		return
	}

	ctx := c.Request.Context()
	url, err := h.avatars.Save(ctx, actor.UserID, kind.Extension, io.MultiReader(bytes.NewReader(head), file))
	if errors.Is(err, storage.ErrTooLarge) {
		response.BadRequest(c, "файл слишком большой")
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	previous, err := h.getUserUC.Execute(ctx, actor.UserID)
	if err != nil {
		_ = h.avatars.Delete(ctx, url)
		response.Error(c, err)
		return
	}

	user, err := h.setAvatarUC.Execute(ctx, actor.UserID, url)
	if err != nil {
		_ = h.avatars.Delete(ctx, url)
		response.Error(c, err)
		return
	}

	if previous.AvatarURL != "" && previous.AvatarURL != url {
		if err := h.avatars.Delete(ctx, previous.AvatarURL); err != nil {
			logger.Log.WithFields(logrus.Fields{"user_id": actor.UserID}).WithError(err).Warn("profile: не удалось удалить старый аватар")
		}
	}

	response.Success(c, dto.ToFullProfile(user))
}
