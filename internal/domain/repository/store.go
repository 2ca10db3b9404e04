package repository

import (
	"bytes"
	"context"
	"sort"

	"github.com/google/uuid"
)

// Repositories - набор репозиториев, привязанных к одной единице работы.
type Repositories struct {
	Users    UserRepository
	Swaps    SwapRequestRepository
	Reports  ReportRepository
	Feedback FeedbackRepository
}

// Store выполняет fn атомарно: все изменения применяются целиком или не применяются.
// Конкурентные вызовы над одной сущностью сериализуются.
//
// Порядок блокировок внутри единицы работы: сначала пользователи (по возрастанию ID,
// через Users.LockByIDs), затем запросы на обмен, затем жалобы и отзывы.
type Store interface {
	Atomic(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}

// LockOrder возвращает идентификаторы без повторов в порядке захвата блокировок.
func LockOrder(ids ...uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool {
		return bytes.Compare(out[i][:], out[j][:]) < 0
	})
	return out
}
