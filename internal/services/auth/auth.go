// Package auth содержит логику регистрации, входа и проверки сессий пользователей.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/magabrotheeeer/primetrade/internal/lib/jwt"
	"github.com/magabrotheeeer/primetrade/internal/lib/sl"
	"github.com/magabrotheeeer/primetrade/internal/models"
	"github.com/magabrotheeeer/primetrade/internal/storage"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, userUID, name, email string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, userUID string, at time.Time) error
	SetActive(ctx context.Context, userUID string, active bool) (*models.User, error)
}

// PasswordHasher хэширует и проверяет пароли.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) (bool, error)
}

// TokenRevoker хранит список отозванных токенов.
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// EventPublisher публикует события учётных записей.
type EventPublisher interface {
	PublishUserRegistered(ctx context.Context, event models.UserRegisteredEvent) error
}

// Recorder учитывает исходы операций аутентификации.
type Recorder interface {
	AuthEvent(event, outcome string)
}

// Deps зависимости AuthService.
type Deps struct {
	Users     UserRepository
	Hasher    PasswordHasher
	JWTMaker  jwt.Maker
	Revoker   TokenRevoker
	Publisher EventPublisher
	Recorder  Recorder
	Log       *slog.Logger
	Now       func() time.Time
}

// AuthService отвечает за регистрацию, вход, проверку и отзыв токенов.
type AuthService struct {
	users     UserRepository
	hasher    PasswordHasher
	jwtMaker  jwt.Maker
	revoker   TokenRevoker
	publisher EventPublisher
	recorder  Recorder
	log       *slog.Logger
	now       func() time.Time
}

// NewAuthService создает новый экземпляр AuthService.
// Users, Hasher и JWTMaker обязательны, для остальных зависимостей есть заглушки.
func NewAuthService(d Deps) *AuthService {
	s := &AuthService{
		users:     d.Users,
		hasher:    d.Hasher,
		jwtMaker:  d.JWTMaker,
		revoker:   d.Revoker,
		publisher: d.Publisher,
		recorder:  d.Recorder,
		log:       d.Log,
		now:       d.Now,
	}
	if s.revoker == nil {
		s.revoker = noopRevoker{}
	}
	if s.publisher == nil {
		s.publisher = noopPublisher{}
	}
	if s.recorder == nil {
		s.recorder = noopRecorder{}
	}
	if s.log == nil {
		s.log = slog.New(slog.DiscardHandler)
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// RegisterInput данные для регистрации.
type RegisterInput struct {
	Username string
	Name     string
	Email    string
	Password string
}

// Session выпущенный токен и пользователь, которому он принадлежит.
type Session struct {
	Token string
	User  *models.User
}

// Register создает пользователя с ролью "user" и сразу выпускает для него токен.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	const op = "auth.Register"

	hashed, err := s.hasher.Hash(in.Password)
	if err != nil {
		s.recorder.AuthEvent("register", "error")
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	username := strings.TrimSpace(in.Username)
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = username
	}
	user, err := s.users.CreateUser(ctx, models.User{
		Username:     username,
		Name:         name,
		Email:        NormalizeEmail(in.Email),
		PasswordHash: hashed,
		Role:         models.RoleUser,
		IsActive:     true,
	})
	if err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			s.recorder.AuthEvent("register", "duplicate")
			return nil, fmt.Errorf("%s: %w", op, ErrDuplicateIdentity)
		}
		s.recorder.AuthEvent("register", "error")
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.jwtMaker.GenerateToken(user.UUID, user.Username)
	if err != nil {
		s.recorder.AuthEvent("register", "error")
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	event := models.UserRegisteredEvent{
		UserUID:      user.UUID,
		Username:     user.Username,
		Name:         user.Name,
		Email:        user.Email,
		RegisteredAt: user.CreatedAt,
	}
	if err := s.publisher.PublishUserRegistered(ctx, event); err != nil {
		s.log.Warn("failed to publish user registered event",
			slog.String("op", op), slog.String("user_uid", user.UUID), sl.Err(err))
	}

	s.recorder.AuthEvent("register", "success")
	return &Session{Token: token, User: user}, nil
}

// Login проверяет email и пароль, обновляет время последнего входа и выпускает токен.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (*Session, error) {
	const op = "auth.Login"

	user, err := s.users.GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			s.recorder.AuthEvent("login", "invalid_credentials")
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		s.recorder.AuthEvent("login", "error")
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ok, err := s.hasher.Verify(rawPassword, user.PasswordHash)
	if err != nil {
		s.recorder.AuthEvent("login", "error")
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		s.recorder.AuthEvent("login", "invalid_credentials")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}
	if !user.IsActive {
		s.recorder.AuthEvent("login", "deactivated")
		return nil, fmt.Errorf("%s: %w", op, ErrUserDeactivated)
	}

	now := s.now().UTC()
	if err := s.users.UpdateLastLogin(ctx, user.UUID, now); err != nil {
		s.log.Warn("failed to update last login",
			slog.String("op", op), slog.String("user_uid", user.UUID), sl.Err(err))
	} else {
		user.LastLogin = &now
	}

	token, err := s.jwtMaker.GenerateToken(user.UUID, user.Username)
	if err != nil {
		s.recorder.AuthEvent("login", "error")
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.recorder.AuthEvent("login", "success")
	return &Session{Token: token, User: user}, nil
}

// Authenticate проверяет токен и возвращает актуальную запись пользователя.
// Хранилище при этом не изменяется.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, *jwt.CustomClaims, error) {
	const op = "auth.Authenticate"

	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	revoked, err := s.revoker.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	if revoked {
		return nil, nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	user, err := s.users.GetUser(ctx, claims.UserUID())
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	if !user.IsActive {
		return nil, nil, fmt.Errorf("%s: %w", op, ErrUserDeactivated)
	}
	return user, claims, nil
}

// UpdateProfile меняет имя и email пользователя.
func (s *AuthService) UpdateProfile(ctx context.Context, userUID, name, email string) (*models.User, error) {
	const op = "auth.UpdateProfile"

	user, err := s.users.UpdateProfile(ctx, userUID, strings.TrimSpace(name), NormalizeEmail(email))
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrUserExists):
			return nil, fmt.Errorf("%s: %w", op, ErrDuplicateIdentity)
		case errors.Is(err, storage.ErrUserNotFound):
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// Logout отзывает токен до окончания срока его действия.
func (s *AuthService) Logout(ctx context.Context, claims *jwt.CustomClaims) error {
	const op = "auth.Logout"
	if claims == nil || claims.ExpiresAt == nil {
		return fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}
	if err := s.revoker.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		s.recorder.AuthEvent("logout", "error")
		return fmt.Errorf("%s: %w", op, err)
	}
	s.recorder.AuthEvent("logout", "success")
	return nil
}

// SetActive включает или отключает учётную запись. Доступно администратору.
func (s *AuthService) SetActive(ctx context.Context, userUID string, active bool) (*models.User, error) {
	const op = "auth.SetActive"
	user, err := s.users.SetActive(ctx, userUID, active)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// RequireAdmin возвращает ErrForbidden, если user не администратор или не задан.
func RequireAdmin(user *models.User) error {
	if user == nil || !user.IsAdmin() {
		return ErrForbidden
	}
	return nil
}

// NormalizeEmail приводит email к виду, в котором он хранится.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type noopRevoker struct{}

func (noopRevoker) Revoke(context.Context, string, time.Time) error { return nil }
func (noopRevoker) IsRevoked(context.Context, string) (bool, error)  { return false, nil }

type noopPublisher struct{}

func (noopPublisher) PublishUserRegistered(context.Context, models.UserRegisteredEvent) error {
	return nil
}

type noopRecorder struct{}

func (noopRecorder) AuthEvent(string, string) {}
