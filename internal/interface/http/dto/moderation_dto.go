package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/usecase/moderation"
)

type CreateReportRequest struct {
	ReportedUserID string `json:"reported_user_id" binding:"required,uuid"`
	Type           string `json:"type" binding:"required"`
	Description    string `json:"description"`
}

type ReportResponse struct {
	ID             uuid.UUID  `json:"id"`
	ReporterID     uuid.UUID  `json:"reporter_id"`
	ReportedUserID uuid.UUID  `json:"reported_user_id"`
	Type           string     `json:"type"`
	Description    string     `json:"description"`
	Status         string     `json:"status"`
	Resolution     string     `json:"resolution,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty"`
}

func ToReportResponse(r *entity.Report) ReportResponse {
	return ReportResponse{
		ID:             r.ID,
		ReporterID:     r.ReporterID,
		ReportedUserID: r.ReportedUserID,
		Type:           r.Type,
		Description:    r.Description,
		Status:         string(r.Status),
		Resolution:     r.Resolution,
		CreatedAt:      r.CreatedAt,
		ResolvedAt:     r.ResolvedAt,
	}
}

func ToReportResponses(reports []*entity.Report) []ReportResponse {
	out := make([]ReportResponse, 0, len(reports))
	for _, r := range reports {
		out = append(out, ToReportResponse(r))
	}
	return out
}

// AdminUpdateUserRequest - форма редактирования пользователя: поля профиля и статус.
type AdminUpdateUserRequest struct {
	UpdateProfileRequest
	Status string `json:"status"`
}

func (r AdminUpdateUserRequest) ToInput() moderation.UpdateUserInput {
	return moderation.UpdateUserInput{
		Profile: r.UpdateProfileRequest.ToInput(),
		Status:  r.Status,
	}
}

type BroadcastRequest struct {
	Message string `json:"message" binding:"required"`
}

type BroadcastResponse struct {
	Message        string    `json:"message"`
	RecipientCount int       `json:"recipient_count"`
	SentAt         time.Time `json:"sent_at"`
}

func ToBroadcastResponse(r *moderation.BroadcastResult) BroadcastResponse {
	return BroadcastResponse{
		Message:        r.Message,
		RecipientCount: r.RecipientCount,
		SentAt:         r.SentAt,
	}
}

type ExportRequest struct {
	Kind string `json:"kind" binding:"required"`
}

type ExportResponse struct {
	ID          uuid.UUID `json:"id"`
	Kind        string    `json:"kind"`
	Status      string    `json:"status"`
	RequestedBy uuid.UUID `json:"requested_by"`
	RequestedAt time.Time `json:"requested_at"`
}

func ToExportResponse(h *moderation.ExportHandle) ExportResponse {
	return ExportResponse{
		ID:          h.ID,
		Kind:        string(h.Kind),
		Status:      h.Status,
		RequestedBy: h.RequestedBy,
		RequestedAt: h.RequestedAt,
	}
}

type StatsResponse struct {
	TotalUsers     int            `json:"total_users"`
	ActiveUsers    int            `json:"active_users"`
	SuspendedUsers int            `json:"suspended_users"`
	BannedUsers    int            `json:"banned_users"`
	PendingReports int            `json:"pending_reports"`
	SwapsByStatus  map[string]int `json:"swaps_by_status"`
}

func ToStatsResponse(s *moderation.Stats) StatsResponse {
	swaps := make(map[string]int, len(s.SwapsByStatus))
	for status, count := range s.SwapsByStatus {
		swaps[string(status)] = count
	}
	return StatsResponse{
		TotalUsers:     s.TotalUsers,
		ActiveUsers:    s.ActiveUsers,
		SuspendedUsers: s.SuspendedUsers,
		BannedUsers:    s.BannedUsers,
		PendingReports: s.PendingReports,
		SwapsByStatus:  swaps,
	}
}
