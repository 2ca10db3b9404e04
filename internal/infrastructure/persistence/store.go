package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ignatzorin/skillswap-backend/internal/domain/repository"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
)

// StoreAdapter реализует repository.Store поверх PostgreSQL: одна транзакция
// на единицу работы, строки из FindByID блокируются FOR UPDATE.
type StoreAdapter struct {
	db *sqlx.DB
}

func NewStoreAdapter(db *sqlx.DB) *StoreAdapter {
	return &StoreAdapter{db: db}
}

func (s *StoreAdapter) Atomic(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) error {
	return withTransaction(ctx, s.db, func(tx *sqlx.Tx) error {
		return fn(ctx, repository.Repositories{
			Users:    NewUserRepositoryAdapter(tx),
			Swaps:    NewSwapRequestRepositoryAdapter(tx),
			Reports:  NewReportRepositoryAdapter(tx),
			Feedback: NewFeedbackRepositoryAdapter(tx),
		})
	})
}

// withTransaction выполняет функцию внутри транзакции с откатом при ошибке или панике.
func withTransaction(ctx context.Context, db *sqlx.DB, fn func(*sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось начать транзакцию")
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx error: %w, rollback error: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось зафиксировать транзакцию")
	}
	return nil
}

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// likePattern экранирует спецсимволы LIKE и оборачивает строку в %...%.
func likePattern(query string) string {
	escaper := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + escaper.Replace(query) + "%"
}
