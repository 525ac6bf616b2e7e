// Package services содержит бизнес-логику работы с пользователями:
// листинг, чтение и обновление аватара.
package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/andrusoleg/contacts-api/internal/lib/sl"
	"github.com/andrusoleg/contacts-api/internal/models"
)

// UserRepository определяет методы для работы с пользователями в хранилище.
type UserRepository interface {
	ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error)
	GetUserByID(ctx context.Context, id int) (*models.User, error)
	UpdateUserAvatar(ctx context.Context, id int, avatarURL string) (*models.User, error)
}

// Uploader загружает файл во внешнее хранилище и возвращает URL доставки.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, name string) (string, error)
}

// Cache описывает методы кэша личности, который нужно инвалидировать
// после изменения пользователя.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// UserService реализует бизнес-логику работы с пользователями.
type UserService struct {
	repo     UserRepository
	uploader Uploader
	cache    Cache
	log      *slog.Logger
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(repo UserRepository, uploader Uploader, cache Cache, log *slog.Logger) *UserService {
	return &UserService{
		repo:     repo,
		uploader: uploader,
		cache:    cache,
		log:      log,
	}
}

// List возвращает список пользователей с пагинацией.
func (s *UserService) List(ctx context.Context, limit, offset int) ([]*models.User, error) {
	return s.repo.ListUsers(ctx, limit, offset)
}

// Get возвращает пользователя по его ID.
func (s *UserService) Get(ctx context.Context, id int) (*models.User, error) {
	return s.repo.GetUserByID(ctx, id)
}

// UpdateAvatar загружает аватар во внешнее хранилище, сохраняет URL доставки
// и инвалидирует запись кэша личности пользователя.
func (s *UserService) UpdateAvatar(ctx context.Context, user *models.User, file io.Reader) (*models.User, error) {
	avatarURL, err := s.uploader.Upload(ctx, file, user.Username)
	if err != nil {
		return nil, fmt.Errorf("upload avatar: %w", err)
	}

	updated, err := s.repo.UpdateUserAvatar(ctx, user.ID, avatarURL)
	if err != nil {
		return nil, err
	}
	s.log.Info("updated user avatar", slog.Int("id", user.ID))

	cacheKey := fmt.Sprintf("email:%s", user.Email)
	if err := s.cache.Invalidate(ctx, cacheKey); err != nil {
		s.log.Warn("failed to invalidate identity cache", slog.String("key", cacheKey), sl.Err(err))
	}
	return updated, nil
}
