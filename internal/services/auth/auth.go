// Package services содержит логику бизнес-уровня для регистрации, входа,
// подтверждения почты и определения текущего пользователя по токену доступа.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	jwtlib "github.com/andrusoleg/contacts-api/internal/lib/jwt"
	"github.com/andrusoleg/contacts-api/internal/lib/password"
	"github.com/andrusoleg/contacts-api/internal/lib/sl"
	"github.com/andrusoleg/contacts-api/internal/models"
	"github.com/andrusoleg/contacts-api/internal/storage"
)

var (
	// ErrEmailTaken возвращается при регистрации на уже занятый email.
	ErrEmailTaken = errors.New("account already exists")
	// ErrInvalidCredentials возвращается при неверном email или пароле.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailNotConfirmed возвращается при входе с неподтверждённой почтой.
	ErrEmailNotConfirmed = errors.New("email is not verified")
	// ErrInvalidToken возвращается, когда токен не прошёл проверку
	// подписи, срока действия или назначения.
	ErrInvalidToken = errors.New("could not validate credentials")
	// ErrVerification возвращается, когда токен подтверждения указывает
	// на несуществующего пользователя.
	ErrVerification = errors.New("verification error")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает сохранённую строку.
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	// GetUserByEmail возвращает пользователя по email или storage.ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// ConfirmUserEmail выставляет флаг подтверждения почты.
	ConfirmUserEmail(ctx context.Context, email string) error
}

// Cache описывает методы кэша личности (email -> пользователь).
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// AuthService отвечает за регистрацию, авторизацию и определение
// текущего пользователя с кэшированием личности.
type AuthService struct {
	users    UserRepository
	cache    Cache
	jwtMaker jwtlib.Maker
	cacheTTL time.Duration
	log      *slog.Logger
}

// NewAuthService создает новый экземпляр AuthService. cacheTTL задаёт время
// жизни записи кэша личности.
func NewAuthService(users UserRepository, cache Cache, jwtMaker jwtlib.Maker,
	cacheTTL time.Duration, log *slog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		cache:    cache,
		jwtMaker: jwtMaker,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

func identityKey(email string) string {
	return fmt.Sprintf("email:%s", email)
}

// Register создает нового неподтверждённого пользователя с хэшированием пароля.
// Возвращает ErrEmailTaken, если email уже занят.
func (s *AuthService) Register(ctx context.Context, req models.DummyUser) (*models.User, error) {
	if _, err := s.users.GetUserByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	hashed, err := password.GetHash(req.Password)
	if err != nil {
		return nil, err
	}
	user, err := s.users.CreateUser(ctx, models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashed,
	})
	if err != nil {
		// Гонка двух одновременных регистраций упирается в уникальный индекс.
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	s.log.Info("registered new user", slog.Int("id", user.ID))
	return user, nil
}

// Login проверяет учётные данные и выдаёт токен доступа.
// Неизвестный email, неверный пароль и неподтверждённая почта — 401 у вызывающего.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (string, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if !user.Confirmed {
		return "", ErrEmailNotConfirmed
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.jwtMaker.GenerateAccessToken(user.Email)
}

// UserByEmail возвращает пользователя по email или storage.ErrNotFound.
func (s *AuthService) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.users.GetUserByEmail(ctx, email)
}

// ConfirmEmail проверяет токен подтверждения и выставляет флаг почты.
// Возвращает true, если почта уже была подтверждена ранее.
func (s *AuthService) ConfirmEmail(ctx context.Context, token string) (bool, error) {
	claims, err := s.jwtMaker.ParseToken(token, jwtlib.ScopeVerification)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	user, err := s.users.GetUserByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, ErrVerification
		}
		return false, err
	}
	if user.Confirmed {
		return true, nil
	}

	if err := s.users.ConfirmUserEmail(ctx, claims.Email); err != nil {
		return false, err
	}
	if err := s.cache.Invalidate(ctx, identityKey(claims.Email)); err != nil {
		s.log.Warn("failed to invalidate identity cache", sl.Err(err))
	}
	s.log.Info("email confirmed", slog.String("email", claims.Email))
	return false, nil
}

// CurrentUser определяет пользователя по токену доступа: сначала кэш
// личности, при промахе — база данных с повторным заполнением кэша.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.jwtMaker.ParseToken(token, jwtlib.ScopeAccess)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	cacheKey := identityKey(claims.Email)
	var cached models.User
	found, err := s.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read identity cache", sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	user, err := s.users.GetUserByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if err := s.cache.Set(ctx, cacheKey, user, s.cacheTTL); err != nil {
		s.log.Warn("failed to cache identity", slog.String("key", cacheKey), sl.Err(err))
	}
	return user, nil
}
