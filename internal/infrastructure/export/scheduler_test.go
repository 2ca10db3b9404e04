package export

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/skillswap-backend/internal/logger"
	"github.com/ignatzorin/skillswap-backend/internal/usecase/moderation"
)

func TestLogScheduler_KeepsRecentHandles(t *testing.T) {
	logger.Discard()
	s := NewLogScheduler()
	s.limit = 2

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		h := moderation.ExportHandle{ID: uuid.New(), Status: moderation.ExportStatusQueued, RequestedAt: time.Now()}
		ids = append(ids, h.ID)
		require.NoError(t, s.Schedule(context.Background(), h))
	}

	recent := s.Recent()
	require.Len(t, recent, 2)
	assert.Equal(t, ids[1], recent[0].ID)
	assert.Equal(t, ids[2], recent[1].ID)
}

func TestLogScheduler_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewLogScheduler().Schedule(ctx, moderation.ExportHandle{ID: uuid.New()})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, NewLogScheduler().Recent())
}
