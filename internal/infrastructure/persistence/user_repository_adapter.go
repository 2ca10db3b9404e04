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
	"github.com/lib/pq"

	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/domain/repository"
	"github.com/ignatzorin/skillswap-backend/internal/domain/valueobject"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
)

const userColumns = `id, name, email, password_hash, role, location, bio, avatar_url,
	skills_offered, skills_wanted, rating, total_swaps, status, is_public, availability,
	created_at, updated_at`

type UserRepositoryAdapter struct {
	db sqlx.ExtContext
}

func NewUserRepositoryAdapter(db sqlx.ExtContext) *UserRepositoryAdapter {
	return &UserRepositoryAdapter{db: db}
}

func (r *UserRepositoryAdapter) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, string(user.Role), user.Location, user.Bio,
		user.AvatarURL, pq.Array([]string(user.SkillsOffered)), pq.Array([]string(user.SkillsWanted)),
		user.Rating, user.TotalSwaps, string(user.Status), user.IsPublic, string(user.Availability),
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.ErrEmailTaken
		}
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось создать пользователя")
	}
	return nil
}

func (r *UserRepositoryAdapter) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users SET name = $2, email = $3, password_hash = $4, role = $5, location = $6, bio = $7,
		avatar_url = $8, skills_offered = $9, skills_wanted = $10, rating = $11, total_swaps = $12,
		status = $13, is_public = $14, availability = $15, updated_at = $16
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, string(user.Role), user.Location, user.Bio,
		user.AvatarURL, pq.Array([]string(user.SkillsOffered)), pq.Array([]string(user.SkillsWanted)),
		user.Rating, user.TotalSwaps, string(user.Status), user.IsPublic, string(user.Availability),
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.ErrEmailTaken
		}
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить пользователя")
	}
	return requireAffected(res, apperror.ErrUserNotFound)
}

func (r *UserRepositoryAdapter) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось удалить пользователя")
	}
	return requireAffected(res, apperror.ErrUserNotFound)
}

func (r *UserRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var u userRow
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 FOR UPDATE`
	if err := sqlx.GetContext(ctx, r.db, &u, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrUserNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить пользователя")
	}
	return u.toEntity(), nil
}

func (r *UserRepositoryAdapter) LockByIDs(ctx context.Context, ids ...uuid.UUID) error {
	for _, id := range repository.LockOrder(ids...) {
		var locked []uuid.UUID
		if err := sqlx.SelectContext(ctx, r.db, &locked, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, id); err != nil {
			return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось заблокировать пользователей")
		}
	}
	return nil
}

func (r *UserRepositoryAdapter) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u userRow
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	if err := sqlx.GetContext(ctx, r.db, &u, query, entity.NormalizeEmail(email)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrUserNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить пользователя")
	}
	return u.toEntity(), nil
}

func (r *UserRepositoryAdapter) List(ctx context.Context, filter repository.UserFilter) ([]*entity.User, int, error) {
	var (
		conditions []string
		args       []interface{}
	)
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.PublicOnly {
		conditions = append(conditions, "is_public = TRUE AND status = "+arg(string(valueobject.UserStatusActive)))
	}
	if filter.Status != "" {
		conditions = append(conditions, "status = "+arg(string(filter.Status)))
	}
	if filter.Availability != "" {
		conditions = append(conditions, "availability = "+arg(string(filter.Availability)))
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		p := arg(likePattern(q))
		conditions = append(conditions, fmt.Sprintf(`(name ILIKE %[1]s OR email ILIKE %[1]s OR location ILIKE %[1]s
			OR EXISTS (SELECT 1 FROM unnest(skills_offered || skills_wanted) AS s WHERE s ILIKE %[1]s))`, p))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := sqlx.GetContext(ctx, r.db, &total, `SELECT COUNT(*) FROM users`+where, args...); err != nil {
		return nil, 0, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось посчитать пользователей")
	}

	query := `SELECT ` + userColumns + ` FROM users` + where + ` ORDER BY created_at ASC, id ASC`
	if filter.Limit > 0 {
		query += " LIMIT " + arg(filter.Limit)
	}
	if filter.Offset > 0 {
		query += " OFFSET " + arg(filter.Offset)
	}

	var rows []userRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, 0, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить пользователей")
	}

	users := make([]*entity.User, len(rows))
	for i := range rows {
		users[i] = rows[i].toEntity()
	}
	return users, total, nil
}

func (r *UserRepositoryAdapter) CountByStatus(ctx context.Context) (map[valueobject.UserStatus]int, error) {
	var rows []statusCountRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, `SELECT status, COUNT(*) AS count FROM users GROUP BY status`); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось посчитать пользователей")
	}
	counts := make(map[valueobject.UserStatus]int, len(rows))
	for _, row := range rows {
		counts[valueobject.UserStatus(row.Status)] = row.Count
	}
	return counts, nil
}

type userRow struct {
	ID            uuid.UUID      `db:"id"`
	Name          string         `db:"name"`
	Email         string         `db:"email"`
	PasswordHash  string         `db:"password_hash"`
	Role          string         `db:"role"`
	Location      string         `db:"location"`
	Bio           string         `db:"bio"`
	AvatarURL     string         `db:"avatar_url"`
	SkillsOffered pq.StringArray `db:"skills_offered"`
	SkillsWanted  pq.StringArray `db:"skills_wanted"`
	Rating        float64        `db:"rating"`
	TotalSwaps    int            `db:"total_swaps"`
	Status        string         `db:"status"`
	IsPublic      bool           `db:"is_public"`
	Availability  string         `db:"availability"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

func (u *userRow) toEntity() *entity.User {
	status, _ := valueobject.NewUserStatus(u.Status)
	availability, _ := valueobject.NewAvailability(u.Availability)
	return &entity.User{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		PasswordHash:  u.PasswordHash,
		Role:          valueobject.Role(u.Role),
		Location:      u.Location,
		Bio:           u.Bio,
		AvatarURL:     u.AvatarURL,
		SkillsOffered: valueobject.NewSkillSet(u.SkillsOffered),
		SkillsWanted:  valueobject.NewSkillSet(u.SkillsWanted),
		Rating:        u.Rating,
		TotalSwaps:    u.TotalSwaps,
		Status:        status,
		IsPublic:      u.IsPublic,
		Availability:  availability,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

type statusCountRow struct {
	Status string `db:"status"`
	Count  int    `db:"count"`
}

func requireAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось проверить результат запроса")
	}
	if n == 0 {
		return notFound
	}
	return nil
}
