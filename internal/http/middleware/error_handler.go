package middleware

import (
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/skillswap-backend/internal/interface/http/response"
	"github.com/ignatzorin/skillswap-backend/internal/logger"
)

// RequestLogger пишет в журнал каждый запрос с кодом ответа и длительностью.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.FullPath(),
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
			"ip":       c.ClientIP(),
		}
		if actor, ok := CurrentActor(c); ok {
			fields["user_id"] = actor.UserID
		}

		entry := logger.Log.WithFields(fields)
		switch status := c.Writer.Status(); {
		case status >= 500:
			entry.Error("http: запрос завершился ошибкой")
		case status >= 400:
			entry.Warn("http: запрос отклонён")
		default:
			entry.Debug("http: запрос обработан")
		}
	}
}

// Recovery перехватывает panic в обработчиках и отвечает 500 без деталей.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Log.WithFields(logrus.Fields{
					"path":   c.Request.URL.Path,
					"method": c.Request.Method,
					"panic":  r,
				}).Errorf("http: panic в обработчике\n%s", debug.Stack())

				if !c.Writer.Written() {
					response.Error(c, nil)
				}
				c.Abort()
			}
		}()
		c.Next()
	}
}
