package entity

import (
	"github.com/google/uuid"
	"github.com/ignatzorin/skillswap-backend/internal/domain/valueobject"
)

// Actor - пользователь, от имени которого выполняется операция.
type Actor struct {
	UserID uuid.UUID
	Role   valueobject.Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == valueobject.RoleAdmin
}
