package profile

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/domain/repository"
	"github.com/ignatzorin/skillswap-backend/internal/domain/valueobject"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
	"github.com/ignatzorin/skillswap-backend/internal/validation"
)

// UpdateUserInput - частичное обновление профиля, nil означает "не менять".
// Рейтинг, счётчик обменов, статус и роль здесь не меняются.
type UpdateUserInput struct {
	Name          *string
	Email         *string
	Location      *string
	Bio           *string
	Availability  *string
	IsPublic      *bool
	SkillsOffered *[]string
	SkillsWanted  *[]string
}

func (in UpdateUserInput) validate() error {
	if in.Name != nil {
		if err := validation.ValidateDisplayName(*in.Name); err != nil {
			return apperror.InvalidArgument(err.Error())
		}
	}
	if in.Email != nil {
		if err := validation.ValidateEmail(*in.Email); err != nil {
			return apperror.InvalidArgument(err.Error())
		}
	}
	if err := validation.ValidateLocation(in.Location); err != nil {
		return apperror.InvalidArgument(err.Error())
	}
	if err := validation.ValidateBio(in.Bio); err != nil {
		return apperror.InvalidArgument(err.Error())
	}
	for _, skills := range []*[]string{in.SkillsOffered, in.SkillsWanted} {
		if skills == nil {
			continue
		}
		if err := validation.ValidateSkills(*skills); err != nil {
			return apperror.InvalidArgument(err.Error())
		}
	}
	return nil
}

func (in UpdateUserInput) applyTo(user *entity.User) error {
	if err := in.validate(); err != nil {
		return err
	}

	if in.Name != nil {
		user.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		user.Email = entity.NormalizeEmail(*in.Email)
	}
	if in.Location != nil {
		user.Location = strings.TrimSpace(*in.Location)
	}
	if in.Bio != nil {
		user.Bio = strings.TrimSpace(*in.Bio)
	}
	if in.Availability != nil {
		availability, err := valueobject.NewAvailability(*in.Availability)
		if err != nil {
			return err
		}
		user.Availability = availability
	}
	if in.IsPublic != nil {
		user.IsPublic = *in.IsPublic
	}
	if in.SkillsOffered != nil {
		user.SkillsOffered = valueobject.NewSkillSet(*in.SkillsOffered)
	}
	if in.SkillsWanted != nil {
		user.SkillsWanted = valueobject.NewSkillSet(*in.SkillsWanted)
	}
	user.UpdatedAt = time.Now()
	return nil
}

// ApplyUpdate применяет изменения профиля внутри уже открытой единицы работы.
func ApplyUpdate(ctx context.Context, repos repository.Repositories, id uuid.UUID, input UpdateUserInput) (*entity.User, error) {
	user, err := repos.Users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := input.applyTo(user); err != nil {
		return nil, err
	}

	if input.Email != nil {
		existing, err := repos.Users.FindByEmail(ctx, user.Email)
		if err != nil && !apperror.IsNotFound(err) {
			return nil, err
		}
		if existing != nil && existing.ID != user.ID {
			return nil, apperror.ErrEmailTaken
		}
	}

	if err := repos.Users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

type UpdateUserUseCase struct {
	store repository.Store
}

func NewUpdateUserUseCase(store repository.Store) *UpdateUserUseCase {
	return &UpdateUserUseCase{store: store}
}

func (uc *UpdateUserUseCase) Execute(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*entity.User, error) {
	var user *entity.User
	err := uc.store.Atomic(ctx, func(ctx context.Context, repos repository.Repositories) error {
		var err error
		user, err = ApplyUpdate(ctx, repos, id, input)
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

type AddSkillUseCase struct {
	store repository.Store
}

func NewAddSkillUseCase(store repository.Store) *AddSkillUseCase {
	return &AddSkillUseCase{store: store}
}

func (uc *AddSkillUseCase) Execute(ctx context.Context, id uuid.UUID, kind valueobject.SkillKind, skill string) (*entity.User, error) {
	if err := validation.ValidateSkill(skill); err != nil {
		return nil, apperror.InvalidArgument(err.Error())
	}

	var user *entity.User
	err := uc.store.Atomic(ctx, func(ctx context.Context, repos repository.Repositories) error {
		var err error
		if user, err = repos.Users.FindByID(ctx, id); err != nil {
			return err
		}
		if len(user.Skills(kind)) >= validation.MaxSkillsCount && !user.Skills(kind).Contains(skill) {
			return apperror.InvalidArgument("слишком много навыков в профиле")
		}
		if err := user.AddSkill(kind, skill); err != nil {
			return err
		}
		return repos.Users.Update(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

type RemoveSkillUseCase struct {
	store repository.Store
}

func NewRemoveSkillUseCase(store repository.Store) *RemoveSkillUseCase {
	return &RemoveSkillUseCase{store: store}
}

func (uc *RemoveSkillUseCase) Execute(ctx context.Context, id uuid.UUID, kind valueobject.SkillKind, skill string) (*entity.User, error) {
	var user *entity.User
	err := uc.store.Atomic(ctx, func(ctx context.Context, repos repository.Repositories) error {
		var err error
		if user, err = repos.Users.FindByID(ctx, id); err != nil {
			return err
		}
		user.RemoveSkill(kind, skill)
		return repos.Users.Update(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

type SetAvatarUseCase struct {
	store repository.Store
}

func NewSetAvatarUseCase(store repository.Store) *SetAvatarUseCase {
	return &SetAvatarUseCase{store: store}
}

func (uc *SetAvatarUseCase) Execute(ctx context.Context, id uuid.UUID, avatarURL string) (*entity.User, error) {
	var user *entity.User
	err := uc.store.Atomic(ctx, func(ctx context.Context, repos repository.Repositories) error {
		var err error
		if user, err = repos.Users.FindByID(ctx, id); err != nil {
			return err
		}
		user.AvatarURL = avatarURL
		user.UpdatedAt = time.Now()
		return repos.Users.Update(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}
