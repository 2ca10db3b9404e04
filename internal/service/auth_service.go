package service

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/domain/repository"
	"github.com/ignatzorin/skillswap-backend/internal/domain/valueobject"
	"github.com/ignatzorin/skillswap-backend/internal/logger"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
	"github.com/ignatzorin/skillswap-backend/internal/usecase/profile"
	"github.com/ignatzorin/skillswap-backend/internal/validation"
)

// AuthService инкапсулирует регистрацию и аутентификацию.
// Сессии не хранятся: refresh токен проверяется только по подписи и статусу пользователя.
type AuthService struct {
	store        repository.Store
	createUser   *profile.CreateUserUseCase
	tokenManager *TokenManager
}

// RegisterInput содержит данные пользователя при регистрации.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Location string
}

// LoginInput содержит данные для входа.
type LoginInput struct {
	Email    string
	Password string
}

// AuthResult возвращает итог регистрации или авторизации.
type AuthResult struct {
	User      *entity.User
	TokenPair *TokenPair
}

// NewAuthService создаёт сервис аутентификации.
func NewAuthService(store repository.Store, tokenManager *TokenManager) *AuthService {
	return &AuthService{
		store:        store,
		createUser:   profile.NewCreateUserUseCase(store),
		tokenManager: tokenManager,
	}
}

// Register создаёт активный публичный профиль с ролью user.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, apperror.InvalidArgument(err.Error())
	}

	passHash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.createUser.Execute(ctx, profile.CreateUserInput{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: passHash,
		Role:         valueobject.RoleUser,
		Location:     in.Location,
	})
	if err != nil {
		return nil, err
	}

	return s.issue(user)
}

// Login проверяет учётные данные и возвращает токены. Забаненный пользователь войти не может.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	var user *entity.User
	err := s.store.Atomic(ctx, func(ctx context.Context, repos repository.Repositories) error {
		var err error
		user, err = repos.Users.FindByEmail(ctx, in.Email)
		return err
	})
	if apperror.IsNotFound(err) {
		return nil, apperror.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if user.PasswordHash == "" {
		return nil, apperror.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, apperror.ErrInvalidCredentials
	}

	if user.Status == valueobject.UserStatusBanned {
		logger.Log.WithField("user_id", user.ID).Warn("auth service: попытка входа заблокированного пользователя")
		return nil, apperror.New(apperror.ErrCodeForbidden, "аккаунт заблокирован")
	}

	return s.issue(user)
}

// Refresh выпускает новую пару токенов с актуальной ролью пользователя.
func (s *AuthService) Refresh(ctx context.Context, oldToken string) (*TokenPair, error) {
	claims, err := s.tokenManager.ParseRefresh(oldToken)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeUnauthorized, "refresh токен невалиден")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeUnauthorized, "некорректный subject")
	}

	var user *entity.User
	err = s.store.Atomic(ctx, func(ctx context.Context, repos repository.Repositories) error {
		var err error
		user, err = repos.Users.FindByID(ctx, userID)
		return err
	})
	if apperror.IsNotFound(err) {
		return nil, apperror.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	if user.Status == valueobject.UserStatusBanned {
		return nil, apperror.New(apperror.ErrCodeForbidden, "аккаунт заблокирован")
	}

	return s.tokenManager.GeneratePair(user)
}

func (s *AuthService) issue(user *entity.User) (*AuthResult, error) {
	pair, err := s.tokenManager.GeneratePair(user)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось выпустить токены")
	}
	return &AuthResult{User: user, TokenPair: pair}, nil
}

// HashPassword хеширует пароль bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось захешировать пароль")
	}
	return string(hash), nil
}
