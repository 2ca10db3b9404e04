// Package moderation содержит операции администратора. Каждая операция
// проверяет, что её выполняет администратор.
package moderation

import (
	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
)

func requireAdmin(actor entity.Actor) error {
	if !actor.IsAdmin() {
		return apperror.New(apperror.ErrCodeForbidden, "действие доступно только администратору")
	}
	return nil
}
