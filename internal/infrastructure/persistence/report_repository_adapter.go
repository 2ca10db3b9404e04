package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/domain/valueobject"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
)

const reportColumns = `id, reporter_id, reported_user_id, type, description, status, resolution, created_at, resolved_at`

type ReportRepositoryAdapter struct {
	db sqlx.ExtContext
}

func NewReportRepositoryAdapter(db sqlx.ExtContext) *ReportRepositoryAdapter {
	return &ReportRepositoryAdapter{db: db}
}

func (r *ReportRepositoryAdapter) Create(ctx context.Context, report *entity.Report) error {
	query := `INSERT INTO reports (` + reportColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(ctx, query,
		report.ID, report.ReporterID, report.ReportedUserID, report.Type, report.Description,
		string(report.Status), report.Resolution, report.CreatedAt, report.ResolvedAt,
	)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось создать жалобу")
	}
	return nil
}

func (r *ReportRepositoryAdapter) Update(ctx context.Context, report *entity.Report) error {
	query := `UPDATE reports SET status = $2, resolution = $3, resolved_at = $4 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, report.ID, string(report.Status), report.Resolution, report.ResolvedAt)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить жалобу")
	}
	return requireAffected(res, apperror.ErrReportNotFound)
}

func (r *ReportRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.Report, error) {
	var row reportRow
	query := `SELECT ` + reportColumns + ` FROM reports WHERE id = $1 FOR UPDATE`
	if err := sqlx.GetContext(ctx, r.db, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrReportNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить жалобу")
	}
	return row.toEntity(), nil
}

func (r *ReportRepositoryAdapter) List(ctx context.Context, status valueobject.ReportStatus) ([]*entity.Report, error) {
	var (
		rows []reportRow
		err  error
	)
	if status == "" {
		err = sqlx.SelectContext(ctx, r.db, &rows, `SELECT `+reportColumns+` FROM reports ORDER BY created_at DESC`)
	} else {
		err = sqlx.SelectContext(ctx, r.db, &rows, `SELECT `+reportColumns+` FROM reports WHERE status = $1 ORDER BY created_at DESC`, string(status))
	}
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить жалобы")
	}
	return toReportEntities(rows), nil
}

func (r *ReportRepositoryAdapter) FindPendingByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Report, error) {
	query := `
		SELECT ` + reportColumns + ` FROM reports
		WHERE status = $1 AND (reporter_id = $2 OR reported_user_id = $2)
		ORDER BY created_at DESC, id ASC
		FOR UPDATE
	`
	var rows []reportRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, string(valueobject.ReportStatusPending), userID); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить жалобы")
	}
	return toReportEntities(rows), nil
}

type reportRow struct {
	ID             uuid.UUID  `db:"id"`
	ReporterID     uuid.UUID  `db:"reporter_id"`
	ReportedUserID uuid.UUID  `db:"reported_user_id"`
	Type           string     `db:"type"`
	Description    string     `db:"description"`
	Status         string     `db:"status"`
	Resolution     string     `db:"resolution"`
	CreatedAt      time.Time  `db:"created_at"`
	ResolvedAt     *time.Time `db:"resolved_at"`
}

func (r *reportRow) toEntity() *entity.Report {
	status, _ := valueobject.NewReportStatus(r.Status)
	return &entity.Report{
		ID:             r.ID,
		ReporterID:     r.ReporterID,
		ReportedUserID: r.ReportedUserID,
		Type:           r.Type,
		Description:    r.Description,
		Status:         status,
		Resolution:     r.Resolution,
		CreatedAt:      r.CreatedAt,
		ResolvedAt:     r.ResolvedAt,
	}
}

func toReportEntities(rows []reportRow) []*entity.Report {
	result := make([]*entity.Report, len(rows))
	for i := range rows {
		result[i] = rows[i].toEntity()
	}
	return result
}
