package ws

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/skillswap-backend/internal/goroutine"
	"github.com/ignatzorin/skillswap-backend/internal/logger"
)

// Publisher доставляет доменные события через хаб в фоновых горутинах,
// вызывающий код никогда не ждёт доставки.
type Publisher struct {
	hub *Hub
}

func NewPublisher(hub *Hub) *Publisher {
	return &Publisher{hub: hub}
}

func (p *Publisher) PublishToUser(userID uuid.UUID, event string, data any) {
	goroutine.SafeGo(func() {
		if err := p.hub.BroadcastToUser(userID, event, data); err != nil {
			logger.Log.WithFields(logrus.Fields{"user_id": userID, "event": event}).WithError(err).Warn("ws: событие не отправлено")
		}
	})
}

func (p *Publisher) PublishToAll(event string, data any) {
	goroutine.SafeGo(func() {
		if err := p.hub.BroadcastToAll(event, data); err != nil {
			logger.Log.WithField("event", event).WithError(err).Warn("ws: рассылка не отправлена")
		}
	})
}
