package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
)

const feedbackColumns = `id, swap_request_id, from_user_id, to_user_id, rating, comment, created_at`

type FeedbackRepositoryAdapter struct {
	db sqlx.ExtContext
}

func NewFeedbackRepositoryAdapter(db sqlx.ExtContext) *FeedbackRepositoryAdapter {
	return &FeedbackRepositoryAdapter{db: db}
}

func (r *FeedbackRepositoryAdapter) Create(ctx context.Context, feedback *entity.Feedback) error {
	query := `INSERT INTO feedback (` + feedbackColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query,
		feedback.ID, feedback.SwapRequestID, feedback.FromUserID, feedback.ToUserID,
		feedback.Rating, feedback.Comment, feedback.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.New(apperror.ErrCodeConflict, "отзыв по этому обмену уже оставлен")
		}
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось сохранить отзыв")
	}
	return nil
}

func (r *FeedbackRepositoryAdapter) FindBySwapAndAuthor(ctx context.Context, swapRequestID, fromUserID uuid.UUID) (*entity.Feedback, error) {
	var row feedbackRow
	query := `SELECT ` + feedbackColumns + ` FROM feedback WHERE swap_request_id = $1 AND from_user_id = $2`
	if err := sqlx.GetContext(ctx, r.db, &row, query, swapRequestID, fromUserID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить отзыв")
	}
	return row.toEntity(), nil
}

func (r *FeedbackRepositoryAdapter) ListByRecipient(ctx context.Context, toUserID uuid.UUID) ([]*entity.Feedback, error) {
	var rows []feedbackRow
	query := `SELECT ` + feedbackColumns + ` FROM feedback WHERE to_user_id = $1 ORDER BY created_at DESC`
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, toUserID); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить отзывы")
	}
	result := make([]*entity.Feedback, len(rows))
	for i := range rows {
		result[i] = rows[i].toEntity()
	}
	return result, nil
}

func (r *FeedbackRepositoryAdapter) RatingsForUser(ctx context.Context, toUserID uuid.UUID) ([]int, error) {
	var ratings []int
	if err := sqlx.SelectContext(ctx, r.db, &ratings, `SELECT rating FROM feedback WHERE to_user_id = $1`, toUserID); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить оценки")
	}
	return ratings, nil
}

type feedbackRow struct {
	ID            uuid.UUID `db:"id"`
	SwapRequestID uuid.UUID `db:"swap_request_id"`
	FromUserID    uuid.UUID `db:"from_user_id"`
	ToUserID      uuid.UUID `db:"to_user_id"`
	Rating        int       `db:"rating"`
	Comment       string    `db:"comment"`
	CreatedAt     time.Time `db:"created_at"`
}

func (f *feedbackRow) toEntity() *entity.Feedback {
	return &entity.Feedback{
		ID:            f.ID,
		SwapRequestID: f.SwapRequestID,
		FromUserID:    f.FromUserID,
		ToUserID:      f.ToUserID,
		Rating:        f.Rating,
		Comment:       f.Comment,
		CreatedAt:     f.CreatedAt,
	}
}
