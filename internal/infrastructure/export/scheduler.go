package export

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/skillswap-backend/internal/logger"
	"github.com/ignatzorin/skillswap-backend/internal/usecase/moderation"
)

const defaultHistorySize = 100

// LogScheduler фиксирует заявки на выгрузку в журнале и хранит последние из них.
// Внешний обработчик забирает заявки из журнала.
type LogScheduler struct {
	mu      sync.Mutex
	history []moderation.ExportHandle
	limit   int
}

func NewLogScheduler() *LogScheduler {
	return &LogScheduler{limit: defaultHistorySize}
}

func (s *LogScheduler) Schedule(ctx context.Context, handle moderation.ExportHandle) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.history = append(s.history, handle)
	if len(s.history) > s.limit {
		s.history = s.history[len(s.history)-s.limit:]
	}
	s.mu.Unlock()

	logger.Log.WithFields(logrus.Fields{
		"export_id":    handle.ID,
		"kind":         handle.Kind,
		"requested_by": handle.RequestedBy,
	}).Info("export: заявка на выгрузку поставлена в очередь")
	return nil
}

// Recent возвращает копию последних заявок, старые первыми.
func (s *LogScheduler) Recent() []moderation.ExportHandle {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]moderation.ExportHandle, len(s.history))
	copy(out, s.history)
	return out
}
