package service

import (
	"context"
	"strings"

	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/domain/repository"
	"github.com/ignatzorin/skillswap-backend/internal/domain/valueobject"
	"github.com/ignatzorin/skillswap-backend/internal/logger"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
	"github.com/ignatzorin/skillswap-backend/internal/usecase/profile"
)

// SeedService создаёт администратора и демонстрационные профили при старте.
type SeedService struct {
	store      repository.Store
	createUser *profile.CreateUserUseCase
}

func NewSeedService(store repository.Store) *SeedService {
	return &SeedService{store: store, createUser: profile.NewCreateUserUseCase(store)}
}

// EnsureAdmin создаёт администратора, если пользователя с таким email ещё нет.
// Существующему пользователю выдаётся роль admin.
func (s *SeedService) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	var existing *entity.User
	err := s.store.Atomic(ctx, func(ctx context.Context, repos repository.Repositories) error {
		user, err := repos.Users.FindByEmail(ctx, email)
		if err != nil {
			return err
		}
		existing = user
		if user.IsAdmin() {
			return nil
		}
		user.Role = valueobject.RoleAdmin
		return repos.Users.Update(ctx, user)
	})
	if err == nil {
		logger.Log.WithField("user_id", existing.ID).Info("seed: администратор уже существует")
		return nil
	}
	if !apperror.IsNotFound(err) {
		return err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	public := false
	admin, err := s.createUser.Execute(ctx, profile.CreateUserInput{
		Name:         "Administrator",
		Email:        email,
		PasswordHash: hash,
		Role:         valueobject.RoleAdmin,
		IsPublic:     &public,
	})
	if err != nil {
		return err
	}
	logger.Log.WithField("user_id", admin.ID).Info("seed: создан администратор")
	return nil
}

type demoProfile struct {
	name         string
	location     string
	availability valueobject.Availability
	offered      []string
	wanted       []string
}

var demoProfiles = []demoProfile{
	{"Sarah Chen", "San Francisco, CA", valueobject.AvailabilityWeekends, []string{"React", "TypeScript", "Node.js"}, []string{"Python", "Machine Learning"}},
	{"Marcus Johnson", "Austin, TX", valueobject.AvailabilityEvenings, []string{"Python", "Data Science", "SQL"}, []string{"React", "Frontend Development"}},
	{"Elena Rodriguez", "Madrid, Spain", valueobject.AvailabilityFlexible, []string{"UI/UX Design", "Figma", "Prototyping"}, []string{"JavaScript", "Web Development"}},
	{"David Kim", "Seoul, South Korea", valueobject.AvailabilityWeekends, []string{"Machine Learning", "TensorFlow", "Python"}, []string{"Cloud Computing", "AWS"}},
	{"Lisa Thompson", "London, UK", valueobject.AvailabilityEvenings, []string{"Digital Marketing", "SEO", "Content Strategy"}, []string{"Analytics", "Data Visualization"}},
	{"Ahmed Hassan", "Cairo, Egypt", valueobject.AvailabilityFlexible, []string{"DevOps", "Docker", "Kubernetes"}, []string{"Mobile Development", "React Native"}},
}

// SeedDemoData добавляет демонстрационные профили. Повторный запуск пропускает уже созданные.
func (s *SeedService) SeedDemoData(ctx context.Context) (int, error) {
	created := 0
	for _, p := range demoProfiles {
		email := strings.ToLower(strings.ReplaceAll(p.name, " ", ".")) + "@demo.skillswap.dev"
		_, err := s.createUser.Execute(ctx, profile.CreateUserInput{
			Name:          p.name,
			Email:         email,
			Location:      p.location,
			Availability:  string(p.availability),
			SkillsOffered: p.offered,
			SkillsWanted:  p.wanted,
		})
		if apperror.IsConflict(err) {
			continue
		}
		if err != nil {
			return created, err
		}
		created++
	}
	logger.Log.WithField("created", created).Info("seed: демонстрационные профили")
	return created, nil
}
