package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
)

type CreateSwapRequest struct {
	ProviderID   string `json:"provider_id" binding:"required,uuid"`
	SkillOffered string `json:"skill_offered" binding:"required"`
	SkillWanted  string `json:"skill_wanted" binding:"required"`
	Message      string `json:"message"`
}

type RespondSwapRequest struct {
	Decision string `json:"decision" binding:"required,oneof=accept reject"`
}

type SwapResponse struct {
	ID           uuid.UUID `json:"id"`
	RequesterID  uuid.UUID `json:"requester_id"`
	ProviderID   uuid.UUID `json:"provider_id"`
	SkillOffered string    `json:"skill_offered"`
	SkillWanted  string    `json:"skill_wanted"`
	Message      string    `json:"message"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func ToSwapResponse(r *entity.SwapRequest) SwapResponse {
	return SwapResponse{
		ID:           r.ID,
		RequesterID:  r.RequesterID,
		ProviderID:   r.ProviderID,
		SkillOffered: r.SkillOffered,
		SkillWanted:  r.SkillWanted,
		Message:      r.Message,
		Status:       string(r.Status),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func ToSwapResponses(requests []*entity.SwapRequest) []SwapResponse {
	out := make([]SwapResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, ToSwapResponse(r))
	}
	return out
}

type LeaveFeedbackRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

type FeedbackResponse struct {
	ID            uuid.UUID `json:"id"`
	SwapRequestID uuid.UUID `json:"swap_request_id"`
	FromUserID    uuid.UUID `json:"from_user_id"`
	ToUserID      uuid.UUID `json:"to_user_id"`
	Rating        int       `json:"rating"`
	Comment       string    `json:"comment"`
	CreatedAt     time.Time `json:"created_at"`
}

func ToFeedbackResponse(f *entity.Feedback) FeedbackResponse {
	return FeedbackResponse{
		ID:            f.ID,
		SwapRequestID: f.SwapRequestID,
		FromUserID:    f.FromUserID,
		ToUserID:      f.ToUserID,
		Rating:        f.Rating,
		Comment:       f.Comment,
		CreatedAt:     f.CreatedAt,
	}
}

func ToFeedbackResponses(items []*entity.Feedback) []FeedbackResponse {
	out := make([]FeedbackResponse, 0, len(items))
	for _, f := range items {
		out = append(out, ToFeedbackResponse(f))
	}
	return out
}
