// Package storage реализует хранилище данных на основе PostgreSQL
// для управления пользователями и контактами. Предоставляет методы
// создания, чтения, обновления, удаления и поиска записей.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

var (
	// ErrNotFound возвращается, когда запрошенная строка отсутствует.
	ErrNotFound = errors.New("row not found")
	// ErrDuplicate возвращается при нарушении уникального ограничения
	// (email пользователя, email или телефон контакта).
	ErrDuplicate = errors.New("duplicate unique field")
)

// Storage инкапсулирует соединение с базой данных PostgreSQL.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных.
func (s *Storage) CheckDatabaseReady(ctx context.Context) error {
	var exists bool
	err := s.DB.QueryRowContext(ctx, `SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'contacts'
    )`).Scan(&exists)
	if err != nil {
		return fmt.Errorf("readiness query failed: %w", err)
	}
	if !exists {
		return errors.New("required table contacts is missing")
	}
	return nil
}

// translate конвертирует низкоуровневые ошибки драйвера в ошибки хранилища:
// sql.ErrNoRows -> ErrNotFound, unique_violation -> ErrDuplicate.
func translate(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return fmt.Errorf("%s: %w", op, ErrDuplicate)
	}
	return fmt.Errorf("%s: %w", op, err)
}
