package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/domain/repository"
	"github.com/ignatzorin/skillswap-backend/internal/domain/valueobject"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
)

const swapRequestColumns = `id, requester_id, provider_id, skill_offered, skill_wanted, message, status,
	hidden_for_requester, hidden_for_provider, created_at, updated_at`

type SwapRequestRepositoryAdapter struct {
	db sqlx.ExtContext
}

func NewSwapRequestRepositoryAdapter(db sqlx.ExtContext) *SwapRequestRepositoryAdapter {
	return &SwapRequestRepositoryAdapter{db: db}
}

func (r *SwapRequestRepositoryAdapter) Create(ctx context.Context, request *entity.SwapRequest) error {
	query := `
		INSERT INTO swap_requests (` + swapRequestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.ExecContext(ctx, query,
		request.ID, request.RequesterID, request.ProviderID, request.SkillOffered, request.SkillWanted,
		request.Message, string(request.Status), request.HiddenForRequester, request.HiddenForProvider,
		request.CreatedAt, request.UpdatedAt,
	)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось создать запрос на обмен")
	}
	return nil
}

func (r *SwapRequestRepositoryAdapter) Update(ctx context.Context, request *entity.SwapRequest) error {
	query := `
		UPDATE swap_requests SET status = $2, message = $3, hidden_for_requester = $4,
		hidden_for_provider = $5, updated_at = $6
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		request.ID, string(request.Status), request.Message, request.HiddenForRequester,
		request.HiddenForProvider, request.UpdatedAt,
	)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить запрос на обмен")
	}
	return requireAffected(res, apperror.ErrSwapRequestNotFound)
}

func (r *SwapRequestRepositoryAdapter) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM swap_requests WHERE id = $1`, id)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось удалить запрос на обмен")
	}
	return requireAffected(res, apperror.ErrSwapRequestNotFound)
}

func (r *SwapRequestRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.SwapRequest, error) {
	var row swapRequestRow
	query := `SELECT ` + swapRequestColumns + ` FROM swap_requests WHERE id = $1 FOR UPDATE`
	if err := sqlx.GetContext(ctx, r.db, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrSwapRequestNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить запрос на обмен")
	}
	return row.toEntity(), nil
}

func (r *SwapRequestRepositoryAdapter) FindParticipants(ctx context.Context, id uuid.UUID) (uuid.UUID, uuid.UUID, error) {
	var row struct {
		RequesterID uuid.UUID `db:"requester_id"`
		ProviderID  uuid.UUID `db:"provider_id"`
	}
	query := `SELECT requester_id, provider_id FROM swap_requests WHERE id = $1`
	if err := sqlx.GetContext(ctx, r.db, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, uuid.Nil, apperror.ErrSwapRequestNotFound
		}
		return uuid.Nil, uuid.Nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить запрос на обмен")
	}
	return row.RequesterID, row.ProviderID, nil
}

func (r *SwapRequestRepositoryAdapter) List(ctx context.Context, filter repository.SwapRequestFilter) ([]*entity.SwapRequest, error) {
	var (
		conditions []string
		args       []interface{}
	)
	if filter.RequesterID != nil {
		args = append(args, *filter.RequesterID)
		conditions = append(conditions, fmt.Sprintf("requester_id = $%d", len(args)))
	}
	if filter.ProviderID != nil {
		args = append(args, *filter.ProviderID)
		conditions = append(conditions, fmt.Sprintf("provider_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	query := `SELECT ` + swapRequestColumns + ` FROM swap_requests`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC, id ASC"

	var rows []swapRequestRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить запросы на обмен")
	}
	return toSwapRequestEntities(rows), nil
}

func (r *SwapRequestRepositoryAdapter) FindPendingByUser(ctx context.Context, userID uuid.UUID) ([]*entity.SwapRequest, error) {
	query := `
		SELECT ` + swapRequestColumns + ` FROM swap_requests
		WHERE status = $1 AND (requester_id = $2 OR provider_id = $2)
		ORDER BY created_at DESC, id ASC
		FOR UPDATE
	`
	var rows []swapRequestRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, string(valueobject.SwapStatusPending), userID); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить запросы на обмен")
	}
	return toSwapRequestEntities(rows), nil
}

func (r *SwapRequestRepositoryAdapter) CountByStatus(ctx context.Context) (map[valueobject.SwapStatus]int, error) {
	var rows []statusCountRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, `SELECT status, COUNT(*) AS count FROM swap_requests GROUP BY status`); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось посчитать запросы на обмен")
	}
	counts := make(map[valueobject.SwapStatus]int, len(rows))
	for _, row := range rows {
		counts[valueobject.SwapStatus(row.Status)] = row.Count
	}
	return counts, nil
}

type swapRequestRow struct {
	ID                 uuid.UUID `db:"id"`
	RequesterID        uuid.UUID `db:"requester_id"`
	ProviderID         uuid.UUID `db:"provider_id"`
	SkillOffered       string    `db:"skill_offered"`
	SkillWanted        string    `db:"skill_wanted"`
	Message            string    `db:"message"`
	Status             string    `db:"status"`
	HiddenForRequester bool      `db:"hidden_for_requester"`
	HiddenForProvider  bool      `db:"hidden_for_provider"`
	CreatedAt          time.Time `db:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"`
}

func (s *swapRequestRow) toEntity() *entity.SwapRequest {
	status, _ := valueobject.NewSwapStatus(s.Status)
	return &entity.SwapRequest{
		ID:                 s.ID,
		RequesterID:        s.RequesterID,
		ProviderID:         s.ProviderID,
		SkillOffered:       s.SkillOffered,
		SkillWanted:        s.SkillWanted,
		Message:            s.Message,
		Status:             status,
		HiddenForRequester: s.HiddenForRequester,
		HiddenForProvider:  s.HiddenForProvider,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}

func toSwapRequestEntities(rows []swapRequestRow) []*entity.SwapRequest {
	result := make([]*entity.SwapRequest, len(rows))
	for i := range rows {
		result[i] = rows[i].toEntity()
	}
	return result
}
