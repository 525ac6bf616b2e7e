// Package services содержит бизнес-логику для управления контактами и их кешированием.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/andrusoleg/contacts-api/internal/models"
)

// ContactRepository определяет методы для работы с контактами в хранилище.
type ContactRepository interface {
	// CreateContact добавляет новый контакт и возвращает сохранённую строку.
	CreateContact(ctx context.Context, contact models.Contact) (*models.Contact, error)
	// ListContacts возвращает контакты пользователя с пагинацией.
	ListContacts(ctx context.Context, userID, limit, offset int) ([]*models.Contact, error)
	// GetContactByID возвращает контакт пользователя по ID.
	GetContactByID(ctx context.Context, id, userID int) (*models.Contact, error)
	// UpdateContact применяет частичное обновление и возвращает обновлённую строку.
	UpdateContact(ctx context.Context, id, userID int, upd models.ContactUpdate) (*models.Contact, error)
	// RemoveContact удаляет контакт и возвращает удалённую строку.
	RemoveContact(ctx context.Context, id, userID int) (*models.Contact, error)
	// SearchContacts ищет контакты по подстрокам без учёта регистра.
	SearchContacts(ctx context.Context, userID int, filters map[string]string) ([]*models.Contact, error)
	// UpcomingBirthdays возвращает контакты с днями рождения в окне days дней.
	UpcomingBirthdays(ctx context.Context, userID int, today time.Time, days int) ([]*models.Contact, error)
}

// Cache описывает методы для кэширования контактов.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// ContactService реализует бизнес-логику работы с контактами, включая кеширование.
type ContactService struct {
	repo  ContactRepository
	cache Cache
	log   *slog.Logger
}

// NewContactService создает новый экземпляр ContactService.
func NewContactService(repo ContactRepository, cache Cache, log *slog.Logger) *ContactService {
	return &ContactService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Ключ кэша включает владельца, чтобы контакты разных пользователей не пересекались.
func contactKey(userID, id int) string {
	return fmt.Sprintf("contact:%d:%d", userID, id)
}

// Create создает новый контакт для пользователя и кеширует его.
func (s *ContactService) Create(ctx context.Context, userID int, req models.DummyContact) (*models.Contact, error) {
	birthday, err := time.Parse("2006-01-02", req.Birthday)
	if err != nil {
		return nil, fmt.Errorf("invalid birthday: %w", err)
	}

	contact := models.Contact{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Birthday:    birthday,
		UserID:      userID,
	}
	if req.OtherInfo != "" {
		contact.OtherInfo = &req.OtherInfo
	}

	created, err := s.repo.CreateContact(ctx, contact)
	if err != nil {
		return nil, err
	}
	s.log.Info("created new contact", slog.Int("id", created.ID))

	cacheKey := contactKey(userID, created.ID)
	if err := s.cache.Set(ctx, cacheKey, created, time.Hour); err != nil {
		s.log.Warn("failed to cache contact", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return created, nil
}

// Read возвращает контакт по ID, используя кеш или репозиторий.
func (s *ContactService) Read(ctx context.Context, id, userID int) (*models.Contact, error) {
	cacheKey := contactKey(userID, id)
	var cached models.Contact
	found, err := s.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read contact cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return &cached, nil
	}

	result, err := s.repo.GetContactByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to cache contact", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// Update применяет частичное обновление контакта и обновляет кеш.
// Поля, отсутствующие в запросе, не изменяются.
func (s *ContactService) Update(ctx context.Context, id, userID int, req models.DummyContactUpdate) (*models.Contact, error) {
	upd := models.ContactUpdate{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		OtherInfo:   req.OtherInfo,
	}
	if req.Birthday != nil {
		birthday, err := time.Parse("2006-01-02", *req.Birthday)
		if err != nil {
			return nil, fmt.Errorf("invalid birthday: %w", err)
		}
		upd.Birthday = &birthday
	}

	updated, err := s.repo.UpdateContact(ctx, id, userID, upd)
	if err != nil {
		return nil, err
	}
	s.log.Info("updated contact", slog.Int("id", id))

	cacheKey := contactKey(userID, id)
	if err := s.cache.Set(ctx, cacheKey, updated, time.Hour); err != nil {
		s.log.Warn("failed to cache contact", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return updated, nil
}

// Remove удаляет контакт, инвалидирует кеш и возвращает удалённую строку.
func (s *ContactService) Remove(ctx context.Context, id, userID int) (*models.Contact, error) {
	cacheKey := contactKey(userID, id)
	if err := s.cache.Invalidate(ctx, cacheKey); err != nil {
		s.log.Warn("failed to remove contact from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return s.repo.RemoveContact(ctx, id, userID)
}

// List возвращает контакты пользователя с пагинацией.
func (s *ContactService) List(ctx context.Context, userID, limit, offset int) ([]*models.Contact, error) {
	return s.repo.ListContacts(ctx, userID, limit, offset)
}

// Search ищет контакты пользователя по подстрокам. Нераспознанные поля
// фильтра игнорируются; без распознанных фильтров результат пуст.
func (s *ContactService) Search(ctx context.Context, userID int, filters map[string]string) ([]*models.Contact, error) {
	return s.repo.SearchContacts(ctx, userID, filters)
}

// UpcomingBirthdays возвращает контакты с днями рождения в ближайшие days дней.
func (s *ContactService) UpcomingBirthdays(ctx context.Context, userID, days int) ([]*models.Contact, error) {
	return s.repo.UpcomingBirthdays(ctx, userID, time.Now(), days)
}
