package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/skillswap-backend/internal/domain/valueobject"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
)

type SwapRequest struct {
	ID                 uuid.UUID
	RequesterID        uuid.UUID
	ProviderID         uuid.UUID
	SkillOffered       string
	SkillWanted        string
	Message            string
	Status             valueobject.SwapStatus
	HiddenForRequester bool
	HiddenForProvider  bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func NewSwapRequest(requesterID, providerID uuid.UUID, skillOffered, skillWanted, message string) (*SwapRequest, error) {
	if requesterID == providerID {
		return nil, apperror.InvalidArgument("нельзя отправить запрос на обмен самому себе")
	}
	skillOffered = strings.TrimSpace(skillOffered)
	skillWanted = strings.TrimSpace(skillWanted)
	if skillOffered == "" || skillWanted == "" {
		return nil, apperror.InvalidArgument("нужно выбрать предлагаемый и желаемый навык")
	}

	now := time.Now()
	return &SwapRequest{
		ID:           uuid.New(),
		RequesterID:  requesterID,
		ProviderID:   providerID,
		SkillOffered: skillOffered,
		SkillWanted:  skillWanted,
		Message:      strings.TrimSpace(message),
		Status:       valueobject.SwapStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (r *SwapRequest) transition(to valueobject.SwapStatus, message string) error {
	if !r.Status.CanTransitionTo(to) {
		return apperror.InvalidTransition(message)
	}
	r.Status = to
	r.UpdatedAt = time.Now()
	return nil
}

func (r *SwapRequest) Accept() error {
	return r.transition(valueobject.SwapStatusAccepted, "можно принять только ожидающий запрос")
}

func (r *SwapRequest) Reject() error {
	return r.transition(valueobject.SwapStatusRejected, "можно отклонить только ожидающий запрос")
}

func (r *SwapRequest) Cancel() error {
	return r.transition(valueobject.SwapStatusCancelled, "можно отменить только ожидающий запрос")
}

func (r *SwapRequest) IsRequester(userID uuid.UUID) bool {
	return r.RequesterID == userID
}

func (r *SwapRequest) IsProvider(userID uuid.UUID) bool {
	return r.ProviderID == userID
}

func (r *SwapRequest) IsParticipant(userID uuid.UUID) bool {
	return r.IsRequester(userID) || r.IsProvider(userID)
}

func (r *SwapRequest) IsPending() bool {
	return r.Status == valueobject.SwapStatusPending
}

func (r *SwapRequest) IsAccepted() bool {
	return r.Status == valueobject.SwapStatusAccepted
}

// Counterpart возвращает второго участника обмена.
func (r *SwapRequest) Counterpart(userID uuid.UUID) uuid.UUID {
	if r.IsRequester(userID) {
		return r.ProviderID
	}
	return r.RequesterID
}

// HideFor скрывает завершённый запрос из списка участника.
func (r *SwapRequest) HideFor(userID uuid.UUID) error {
	if !r.Status.IsTerminal() {
		return apperror.InvalidTransition("ожидающий запрос нужно сначала отменить или обработать")
	}
	if r.IsRequester(userID) {
		r.HiddenForRequester = true
	}
	if r.IsProvider(userID) {
		r.HiddenForProvider = true
	}
	r.UpdatedAt = time.Now()
	return nil
}

func (r *SwapRequest) HiddenFor(userID uuid.UUID) bool {
	return (r.IsRequester(userID) && r.HiddenForRequester) || (r.IsProvider(userID) && r.HiddenForProvider)
}

// HiddenForBoth - обе стороны убрали запрос, запись можно удалить.
func (r *SwapRequest) HiddenForBoth() bool {
	return r.HiddenForRequester && r.HiddenForProvider
}
