package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/andrusoleg/contacts-api/internal/models"
)

// CreateUser сохраняет нового пользователя и возвращает сохранённую строку.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (username, email, password_hash)
			  VALUES ($1, $2, $3)
			  RETURNING id, created_at, confirmed`
	u := user
	if err := s.DB.QueryRowContext(ctx, query,
		user.Username, user.Email, user.PasswordHash).Scan(&u.ID, &u.CreatedAt, &u.Confirmed); err != nil {
		return nil, translate(op, err)
	}
	return &u, nil
}

// GetUserByEmail возвращает пользователя по его email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, username, email, password_hash, created_at, avatar, confirmed
			  FROM users
			  WHERE email = $1`
	return scanUser(s.DB.QueryRowContext(ctx, query, email), op)
}

// GetUserByID возвращает пользователя по его ID.
func (s *Storage) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	const op = "storage.GetUserByID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, username, email, password_hash, created_at, avatar, confirmed
			  FROM users
			  WHERE id = $1`
	return scanUser(s.DB.QueryRowContext(ctx, query, id), op)
}

// ListUsers возвращает список пользователей с пагинацией.
func (s *Storage) ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error) {
	const op = "storage.ListUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, username, email, password_hash, created_at, avatar, confirmed
			  FROM users
			  ORDER BY id
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.User
	for rows.Next() {
		var u models.User
		var avatar sql.NullString
		if err = rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash,
			&u.CreatedAt, &avatar, &u.Confirmed); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if avatar.Valid {
			u.Avatar = &avatar.String
		}
		result = append(result, &u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ConfirmUserEmail выставляет флаг подтверждения почты пользователя.
func (s *Storage) ConfirmUserEmail(ctx context.Context, email string) error {
	const op = "storage.ConfirmUserEmail"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET confirmed = TRUE
			  WHERE email = $1`
	result, err := s.DB.ExecContext(ctx, query, email)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// UpdateUserAvatar сохраняет URL аватара и возвращает обновлённого пользователя.
func (s *Storage) UpdateUserAvatar(ctx context.Context, id int, avatarURL string) (*models.User, error) {
	const op = "storage.UpdateUserAvatar"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET avatar = $1
			  WHERE id = $2
			  RETURNING id, username, email, password_hash, created_at, avatar, confirmed`
	return scanUser(s.DB.QueryRowContext(ctx, query, avatarURL, id), op)
}

func scanUser(row *sql.Row, op string) (*models.User, error) {
	var u models.User
	var avatar sql.NullString
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash,
		&u.CreatedAt, &avatar, &u.Confirmed); err != nil {
		return nil, translate(op, err)
	}
	if avatar.Valid {
		u.Avatar = &avatar.String
	}
	return &u, nil
}
