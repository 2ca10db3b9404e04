package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/skillswap-backend/internal/domain/valueobject"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
)

const (
	ResolutionReportedUserRemoved = "reported user removed"
	ResolutionReporterRemoved     = "reporter removed"
)

type Report struct {
	ID             uuid.UUID
	ReporterID     uuid.UUID
	ReportedUserID uuid.UUID
	Type           string
	Description    string
	Status         valueobject.ReportStatus
	Resolution     string
	CreatedAt      time.Time
	ResolvedAt     *time.Time
}

func NewReport(reporterID, reportedUserID uuid.UUID, reportType, description string) (*Report, error) {
	if reporterID == reportedUserID {
		return nil, apperror.InvalidArgument("нельзя пожаловаться на самого себя")
	}
	reportType = strings.TrimSpace(reportType)
	if reportType == "" {
		return nil, apperror.InvalidArgument("тип жалобы обязателен")
	}
	return &Report{
		ID:             uuid.New(),
		ReporterID:     reporterID,
		ReportedUserID: reportedUserID,
		Type:           reportType,
		Description:    strings.TrimSpace(description),
		Status:         valueobject.ReportStatusPending,
		CreatedAt:      time.Now(),
	}, nil
}

// Resolve закрывает жалобу. Повторное закрытие ничего не меняет.
func (r *Report) Resolve(resolution string) {
	if r.Status == valueobject.ReportStatusResolved {
		return
	}
	now := time.Now()
	r.Status = valueobject.ReportStatusResolved
	r.Resolution = resolution
	r.ResolvedAt = &now
}

func (r *Report) IsPending() bool {
	return r.Status == valueobject.ReportStatusPending
}

// Annotate добавляет пометку, не меняя статус жалобы.
func (r *Report) Annotate(note string) {
	if r.Resolution == "" {
		r.Resolution = note
		return
	}
	if !strings.Contains(r.Resolution, note) {
		r.Resolution += "; " + note
	}
}

func (r *Report) Involves(userID uuid.UUID) bool {
	return r.ReporterID == userID || r.ReportedUserID == userID
}
