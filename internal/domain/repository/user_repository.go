package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/domain/valueobject"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	// LockByIDs блокирует существующих пользователей в порядке LockOrder.
	// Отсутствующие ID пропускаются.
	LockByIDs(ctx context.Context, ids ...uuid.UUID) error
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context, filter UserFilter) ([]*entity.User, int, error)
	CountByStatus(ctx context.Context) (map[valueobject.UserStatus]int, error)
}

// UserFilter - пустые поля означают "без ограничения". Limit <= 0 снимает пагинацию.
type UserFilter struct {
	Query        string
	Status       valueobject.UserStatus
	Availability valueobject.Availability
	PublicOnly   bool
	Limit        int
	Offset       int
}
