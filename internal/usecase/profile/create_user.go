package profile

import (
	"context"

	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/domain/repository"
	"github.com/ignatzorin/skillswap-backend/internal/domain/valueobject"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
	"github.com/ignatzorin/skillswap-backend/internal/validation"
)

type CreateUserInput struct {
	Name          string
	Email         string
	PasswordHash  string
	Role          valueobject.Role
	Location      string
	Bio           string
	AvatarURL     string
	Availability  string
	IsPublic      *bool
	SkillsOffered []string
	SkillsWanted  []string
}

// CreateUserUseCase регистрирует новый профиль. Используется регистрацией и начальным наполнением.
type CreateUserUseCase struct {
	store repository.Store
}

func NewCreateUserUseCase(store repository.Store) *CreateUserUseCase {
	return &CreateUserUseCase{store: store}
}

func (uc *CreateUserUseCase) Execute(ctx context.Context, input CreateUserInput) (*entity.User, error) {
	if err := validation.ValidateDisplayName(input.Name); err != nil {
		return nil, apperror.InvalidArgument(err.Error())
	}
	if err := validation.ValidateEmail(input.Email); err != nil {
		return nil, apperror.InvalidArgument(err.Error())
	}

	user, err := entity.NewUser(input.Name, input.Email, input.PasswordHash)
	if err != nil {
		return nil, err
	}
	if input.Role.IsValid() {
		user.Role = input.Role
	}

	patch := UpdateUserInput{
		SkillsOffered: &input.SkillsOffered,
		SkillsWanted:  &input.SkillsWanted,
		IsPublic:      input.IsPublic,
	}
	if input.Location != "" {
		patch.Location = &input.Location
	}
	if input.Bio != "" {
		patch.Bio = &input.Bio
	}
	if input.Availability != "" {
		patch.Availability = &input.Availability
	}
	if err := patch.applyTo(user); err != nil {
		return nil, err
	}
	user.AvatarURL = input.AvatarURL
	user.UpdatedAt = user.CreatedAt

	err = uc.store.Atomic(ctx, func(ctx context.Context, repos repository.Repositories) error {
		return repos.Users.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}
