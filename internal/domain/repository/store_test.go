package repository_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/ignatzorin/skillswap-backend/internal/domain/repository"
)

func TestLockOrder_SortsAndDeduplicates(t *testing.T) {
	low := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	mid := uuid.MustParse("7f000000-0000-0000-0000-000000000000")
	high := uuid.MustParse("ff000000-0000-0000-0000-000000000000")

	assert.Equal(t, []uuid.UUID{low, mid, high}, repository.LockOrder(high, low, mid, low))
	assert.Empty(t, repository.LockOrder())
}

func TestLockOrder_IndependentOfArgumentOrder(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	assert.Equal(t, repository.LockOrder(a, b), repository.LockOrder(b, a))
}
