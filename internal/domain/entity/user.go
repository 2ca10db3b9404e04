package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/skillswap-backend/internal/domain/valueobject"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
)

type User struct {
	ID            uuid.UUID
	Name          string
	Email         string
	PasswordHash  string
	Role          valueobject.Role
	Location      string
	Bio           string
	AvatarURL     string
	SkillsOffered valueobject.SkillSet
	SkillsWanted  valueobject.SkillSet
	Rating        float64
	TotalSwaps    int
	Status        valueobject.UserStatus
	IsPublic      bool
	Availability  valueobject.Availability
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func NewUser(name, email, passwordHash string) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.InvalidArgument("имя обязательно")
	}
	email = NormalizeEmail(email)
	if email == "" {
		return nil, apperror.InvalidArgument("email обязателен")
	}

	now := time.Now()
	return &User{
		ID:            uuid.New(),
		Name:          name,
		Email:         email,
		PasswordHash:  passwordHash,
		Role:          valueobject.RoleUser,
		SkillsOffered: valueobject.NewSkillSet(nil),
		SkillsWanted:  valueobject.NewSkillSet(nil),
		Status:        valueobject.UserStatusActive,
		IsPublic:      true,
		Availability:  valueobject.AvailabilityFlexible,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SetStatus применяет переход статуса. Возвращает true, если статус реально изменился.
func (u *User) SetStatus(status valueobject.UserStatus) (bool, error) {
	if !status.IsValid() {
		return false, apperror.InvalidArgument("некорректный статус пользователя")
	}
	if !u.Status.CanTransitionTo(status) {
		return false, apperror.InvalidTransition("заблокированного пользователя нельзя перевести в статус " + string(status))
	}
	if u.Status == status {
		return false, nil
	}
	u.Status = status
	u.UpdatedAt = time.Now()
	return true, nil
}

func (u *User) Skills(kind valueobject.SkillKind) valueobject.SkillSet {
	if kind == valueobject.SkillKindWanted {
		return u.SkillsWanted
	}
	return u.SkillsOffered
}

func (u *User) AddSkill(kind valueobject.SkillKind, skill string) error {
	if strings.TrimSpace(skill) == "" {
		return apperror.InvalidArgument("название навыка не может быть пустым")
	}
	updated, changed := u.Skills(kind).Add(skill)
	if changed {
		u.setSkills(kind, updated)
	}
	return nil
}

func (u *User) RemoveSkill(kind valueobject.SkillKind, skill string) {
	updated, changed := u.Skills(kind).Remove(skill)
	if changed {
		u.setSkills(kind, updated)
	}
}

func (u *User) setSkills(kind valueobject.SkillKind, skills valueobject.SkillSet) {
	if kind == valueobject.SkillKindWanted {
		u.SkillsWanted = skills
	} else {
		u.SkillsOffered = skills
	}
	u.UpdatedAt = time.Now()
}

// RecordSwap увеличивает счётчик завершённых обменов.
func (u *User) RecordSwap() {
	u.TotalSwaps++
	u.UpdatedAt = time.Now()
}

// ApplyRating пересчитывает рейтинг по списку оценок, округляя до десятых.
func (u *User) ApplyRating(ratings []int) {
	if len(ratings) == 0 {
		u.Rating = 0
		return
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	avg := float64(sum) / float64(len(ratings))
	u.Rating = float64(int(avg*10+0.5)) / 10
	u.UpdatedAt = time.Now()
}

func (u *User) IsActive() bool {
	return u.Status == valueobject.UserStatusActive
}

func (u *User) IsAdmin() bool {
	return u.Role == valueobject.RoleAdmin
}

// VisibleInDirectory - профиль показывается в публичном каталоге.
func (u *User) VisibleInDirectory() bool {
	return u.IsPublic && u.IsActive()
}

// MatchesQuery ищет подстроку без учёта регистра в имени, email, локации и навыках.
func (u *User) MatchesQuery(query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	for _, field := range []string{u.Name, u.Email, u.Location} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return u.SkillsOffered.MatchesFold(query) || u.SkillsWanted.MatchesFold(query)
}
