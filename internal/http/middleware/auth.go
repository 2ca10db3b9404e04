package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/domain/valueobject"
	"github.com/ignatzorin/skillswap-backend/internal/interface/http/response"
	"github.com/ignatzorin/skillswap-backend/internal/service"
)

// Context ключи для gin.Context.
const (
	ContextUserIDKey = "userID"
	ContextRoleKey   = "role"
)

// AuthMiddleware проверяет JWT access токен.
func AuthMiddleware(tokens *service.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			response.Unauthorized(c, "требуется авторизация")
			c.Abort()
			return
		}

		if !setActor(c, tokens, raw) {
			response.Unauthorized(c, "токен невалиден")
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalAuthMiddleware заполняет контекст, если передан валидный токен, и пропускает анонимные запросы.
func OptionalAuthMiddleware(tokens *service.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw, ok := bearerToken(c); ok {
			setActor(c, tokens, raw)
		}
		c.Next()
	}
}

// AdminMiddleware пропускает только администраторов. Ставится после AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := CurrentActor(c)
		if !ok {
			response.Unauthorized(c, "требуется авторизация")
			c.Abort()
			return
		}
		if !actor.IsAdmin() {
			response.Forbidden(c, "доступно только администратору")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentActor возвращает пользователя из контекста запроса.
func CurrentActor(c *gin.Context) (entity.Actor, bool) {
	value, ok := c.Get(ContextUserIDKey)
	if !ok {
		return entity.Actor{}, false
	}
	userID, ok := value.(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return entity.Actor{}, false
	}
	return entity.Actor{
		UserID: userID,
		Role:   valueobject.Role(c.GetString(ContextRoleKey)),
	}, true
}

func bearerToken(c *gin.Context) (string, bool) {
	auth := c.GetHeader("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return "", false
	}
	raw := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	return raw, raw != ""
}

func setActor(c *gin.Context, tokens *service.TokenManager, raw string) bool {
	userID, role, err := tokens.ParseAccess(raw)
	if err != nil || userID == uuid.Nil {
		return false
	}
	c.Set(ContextUserIDKey, userID)
	c.Set(ContextRoleKey, role)
	return true
}
