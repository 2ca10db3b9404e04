// Package memory хранит данные в памяти процесса. Используется для локальной
// разработки (STORAGE_DRIVER=memory) и в тестах сценариев.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/domain/repository"
)

// Store - хранилище с единственным писателем: каждая единица работы выполняется
// под общим мьютексом над копией состояния и публикуется только при успехе.
type Store struct {
	mu    sync.Mutex
	state *state
}

type state struct {
	users    map[uuid.UUID]*entity.User
	swaps    map[uuid.UUID]*entity.SwapRequest
	reports  map[uuid.UUID]*entity.Report
	feedback map[uuid.UUID]*entity.Feedback
}

func NewStore() *Store {
	return &Store{state: &state{
		users:    make(map[uuid.UUID]*entity.User),
		swaps:    make(map[uuid.UUID]*entity.SwapRequest),
		reports:  make(map[uuid.UUID]*entity.Report),
		feedback: make(map[uuid.UUID]*entity.Feedback),
	}}
}

func (s *Store) Atomic(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.state.clone()
	if err := fn(ctx, work.repositories()); err != nil {
		return err
	}
	s.state = work
	return nil
}

// Записи хранятся как неизменяемые снимки: репозитории отдают копии и
// сохраняют копии, поэтому клонировать достаточно сами карты.
func (st *state) clone() *state {
	return &state{
		users:    cloneMap(st.users),
		swaps:    cloneMap(st.swaps),
		reports:  cloneMap(st.reports),
		feedback: cloneMap(st.feedback),
	}
}

func (st *state) repositories() repository.Repositories {
	return repository.Repositories{
		Users:    &userRepository{st: st},
		Swaps:    &swapRequestRepository{st: st},
		Reports:  &reportRepository{st: st},
		Feedback: &feedbackRepository{st: st},
	}
}

func cloneMap[V any](in map[uuid.UUID]*V) map[uuid.UUID]*V {
	out := make(map[uuid.UUID]*V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func copyUser(u *entity.User) *entity.User {
	c := *u
	c.SkillsOffered = append(u.SkillsOffered[:0:0], u.SkillsOffered...)
	c.SkillsWanted = append(u.SkillsWanted[:0:0], u.SkillsWanted...)
	return &c
}

func copySwap(r *entity.SwapRequest) *entity.SwapRequest {
	c := *r
	return &c
}

func copyReport(r *entity.Report) *entity.Report {
	c := *r
	if r.ResolvedAt != nil {
		t := *r.ResolvedAt
		c.ResolvedAt = &t
	}
	return &c
}

func copyFeedback(f *entity.Feedback) *entity.Feedback {
	c := *f
	return &c
}
