// Package event описывает события, которые сервер отправляет подключённым клиентам.
package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
)

const (
	SwapRequestCreated   = "swap_request.created"
	SwapRequestAccepted  = "swap_request.accepted"
	SwapRequestRejected  = "swap_request.rejected"
	SwapRequestCancelled = "swap_request.cancelled"
	Broadcast            = "broadcast"
)

// Publisher доставляет события без гарантий: вызов не блокируется и не
// возвращает ошибку доставки.
type Publisher interface {
	PublishToUser(userID uuid.UUID, event string, data any)
	PublishToAll(event string, data any)
}

// NopPublisher отбрасывает все события.
type NopPublisher struct{}

func (NopPublisher) PublishToUser(uuid.UUID, string, any) {}
func (NopPublisher) PublishToAll(string, any)             {}

type SwapRequestPayload struct {
	ID           uuid.UUID `json:"id"`
	RequesterID  uuid.UUID `json:"requester_id"`
	ProviderID   uuid.UUID `json:"provider_id"`
	SkillOffered string    `json:"skill_offered"`
	SkillWanted  string    `json:"skill_wanted"`
	Status       string    `json:"status"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewSwapRequestPayload(r *entity.SwapRequest) SwapRequestPayload {
	return SwapRequestPayload{
		ID:           r.ID,
		RequesterID:  r.RequesterID,
		ProviderID:   r.ProviderID,
		SkillOffered: r.SkillOffered,
		SkillWanted:  r.SkillWanted,
		Status:       string(r.Status),
		UpdatedAt:    r.UpdatedAt,
	}
}

type BroadcastPayload struct {
	Message string    `json:"message"`
	SentAt  time.Time `json:"sent_at"`
}

// NotifyCancelled сообщает второй стороне об отменённых запросах.
func NotifyCancelled(p Publisher, requests []*entity.SwapRequest, actorID uuid.UUID) {
	for _, r := range requests {
		p.PublishToUser(r.Counterpart(actorID), SwapRequestCancelled, NewSwapRequestPayload(r))
	}
}
