package valueobject

import "github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusBanned    UserStatus = "banned"
)

func (s UserStatus) IsValid() bool {
	switch s {
	case UserStatusActive, UserStatusSuspended, UserStatusBanned:
		return true
	}
	return false
}

// CanTransitionTo описывает жизненный цикл статуса пользователя.
// Бан терминален, повторный бан и повторная установка того же статуса допустимы.
func (s UserStatus) CanTransitionTo(newStatus UserStatus) bool {
	transitions := map[UserStatus][]UserStatus{
		UserStatusActive:    {UserStatusActive, UserStatusSuspended, UserStatusBanned},
		UserStatusSuspended: {UserStatusSuspended, UserStatusActive, UserStatusBanned},
		UserStatusBanned:    {UserStatusBanned},
	}
	return contains(transitions[s], newStatus)
}

func NewUserStatus(status string) (UserStatus, error) {
	s := UserStatus(status)
	if !s.IsValid() {
		return "", apperror.InvalidArgument("некорректный статус пользователя")
	}
	return s, nil
}

type SwapStatus string

const (
	SwapStatusPending   SwapStatus = "pending"
	SwapStatusAccepted  SwapStatus = "accepted"
	SwapStatusRejected  SwapStatus = "rejected"
	SwapStatusCancelled SwapStatus = "cancelled"
)

func (s SwapStatus) IsValid() bool {
	switch s {
	case SwapStatusPending, SwapStatusAccepted, SwapStatusRejected, SwapStatusCancelled:
		return true
	}
	return false
}

func (s SwapStatus) IsTerminal() bool {
	return s == SwapStatusAccepted || s == SwapStatusRejected || s == SwapStatusCancelled
}

func (s SwapStatus) CanTransitionTo(newStatus SwapStatus) bool {
	transitions := map[SwapStatus][]SwapStatus{
		SwapStatusPending:   {SwapStatusAccepted, SwapStatusRejected, SwapStatusCancelled},
		SwapStatusAccepted:  {},
		SwapStatusRejected:  {},
		SwapStatusCancelled: {},
	}
	return contains(transitions[s], newStatus)
}

func NewSwapStatus(status string) (SwapStatus, error) {
	s := SwapStatus(status)
	if !s.IsValid() {
		return "", apperror.InvalidArgument("некорректный статус запроса на обмен")
	}
	return s, nil
}

type ReportStatus string

const (
	ReportStatusPending  ReportStatus = "pending"
	ReportStatusResolved ReportStatus = "resolved"
)

func (s ReportStatus) IsValid() bool {
	return s == ReportStatusPending || s == ReportStatusResolved
}

func NewReportStatus(status string) (ReportStatus, error) {
	s := ReportStatus(status)
	if !s.IsValid() {
		return "", apperror.InvalidArgument("некорректный статус жалобы")
	}
	return s, nil
}

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

func contains[T comparable](values []T, v T) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
