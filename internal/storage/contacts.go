package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/andrusoleg/contacts-api/internal/lib/bday"
	"github.com/andrusoleg/contacts-api/internal/models"
)

// searchableColumns перечисляет поля контакта, по которым разрешён поиск.
// Неизвестные поля фильтра молча игнорируются.
var searchableColumns = map[string]string{
	"first_name":   "first_name",
	"last_name":    "last_name",
	"email":        "email",
	"phone_number": "phone_number",
	"other_info":   "other_info",
}

// CreateContact вставляет новый контакт и возвращает сохранённую строку.
func (s *Storage) CreateContact(ctx context.Context, contact models.Contact) (*models.Contact, error) {
	const op = "storage.CreateContact"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO contacts (first_name, last_name, email, phone_number, birthday, other_info, user_id)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id`
	c := contact
	if err := s.DB.QueryRowContext(ctx, query,
		contact.FirstName, contact.LastName, contact.Email, contact.PhoneNumber,
		contact.Birthday, contact.OtherInfo, contact.UserID).Scan(&c.ID); err != nil {
		return nil, translate(op, err)
	}
	return &c, nil
}

// ListContacts возвращает контакты пользователя с пагинацией.
func (s *Storage) ListContacts(ctx context.Context, userID, limit, offset int) ([]*models.Contact, error) {
	const op = "storage.ListContacts"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, first_name, last_name, email, phone_number, birthday, other_info, user_id
			  FROM contacts
			  WHERE user_id = $1
			  ORDER BY id
			  LIMIT $2 OFFSET $3`
	return s.queryContacts(ctx, op, query, userID, limit, offset)
}

// GetContactByID возвращает контакт пользователя по его ID.
func (s *Storage) GetContactByID(ctx context.Context, id, userID int) (*models.Contact, error) {
	const op = "storage.GetContactByID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, first_name, last_name, email, phone_number, birthday, other_info, user_id
			  FROM contacts
			  WHERE id = $1 AND user_id = $2`
	return scanContact(s.DB.QueryRowContext(ctx, query, id, userID), op)
}

// UpdateContact применяет частичное обновление: в UPDATE попадают только
// поля, присутствующие в запросе. Отсутствующие поля не изменяются.
// Возвращает обновлённую строку.
func (s *Storage) UpdateContact(ctx context.Context, id, userID int, upd models.ContactUpdate) (*models.Contact, error) {
	const op = "storage.UpdateContact"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var sets []string
	var args []any
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if upd.FirstName != nil {
		add("first_name", *upd.FirstName)
	}
	if upd.LastName != nil {
		add("last_name", *upd.LastName)
	}
	if upd.Email != nil {
		add("email", *upd.Email)
	}
	if upd.PhoneNumber != nil {
		add("phone_number", *upd.PhoneNumber)
	}
	if upd.Birthday != nil {
		add("birthday", *upd.Birthday)
	}
	if upd.OtherInfo != nil {
		add("other_info", *upd.OtherInfo)
	}
	if len(sets) == 0 {
		return s.GetContactByID(ctx, id, userID)
	}

	args = append(args, id, userID)
	query := fmt.Sprintf(`UPDATE contacts
			  SET %s
			  WHERE id = $%d AND user_id = $%d
			  RETURNING id, first_name, last_name, email, phone_number, birthday, other_info, user_id`,
		strings.Join(sets, ", "), len(args)-1, len(args))
	return scanContact(s.DB.QueryRowContext(ctx, query, args...), op)
}

// RemoveContact удаляет контакт пользователя и возвращает удалённую строку.
func (s *Storage) RemoveContact(ctx context.Context, id, userID int) (*models.Contact, error) {
	const op = "storage.RemoveContact"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM contacts
			  WHERE id = $1 AND user_id = $2
			  RETURNING id, first_name, last_name, email, phone_number, birthday, other_info, user_id`
	return scanContact(s.DB.QueryRowContext(ctx, query, id, userID), op)
}

// SearchContacts ищет контакты пользователя по подстрокам без учёта регистра.
// Все распознанные фильтры объединяются через AND; если ни один фильтр
// не распознан, возвращается пустой результат без обращения к базе.
func (s *Storage) SearchContacts(ctx context.Context, userID int, filters map[string]string) ([]*models.Contact, error) {
	const op = "storage.SearchContacts"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	args := []any{userID}
	var conditions []string
	for field, value := range filters {
		column, ok := searchableColumns[field]
		if !ok {
			continue
		}
		args = append(args, "%"+value+"%")
		conditions = append(conditions, fmt.Sprintf("%s ILIKE $%d", column, len(args)))
	}
	if len(conditions) == 0 {
		return []*models.Contact{}, nil
	}

	query := fmt.Sprintf(`SELECT id, first_name, last_name, email, phone_number, birthday, other_info, user_id
			  FROM contacts
			  WHERE user_id = $1 AND %s
			  ORDER BY id`, strings.Join(conditions, " AND "))
	return s.queryContacts(ctx, op, query, args...)
}

// UpcomingBirthdays возвращает контакты пользователя, чьи дни рождения
// (месяц/день) попадают в окно days дней начиная с today включительно.
// Окно, пересекающее границы месяцев или года, разбивается на диапазон
// для каждого затронутого месяца.
func (s *Storage) UpcomingBirthdays(ctx context.Context, userID int, today time.Time, days int) ([]*models.Contact, error) {
	const op = "storage.UpcomingBirthdays"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	args := []any{userID}
	var conditions []string
	for _, r := range bday.Window(today, days) {
		args = append(args, int(r.Month), r.FromDay, r.ToDay)
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(
			"(EXTRACT(MONTH FROM birthday) = $%d AND EXTRACT(DAY FROM birthday) BETWEEN $%d AND $%d)",
			n-2, n-1, n))
	}

	query := fmt.Sprintf(`SELECT id, first_name, last_name, email, phone_number, birthday, other_info, user_id
			  FROM contacts
			  WHERE user_id = $1 AND (%s)
			  ORDER BY id`, strings.Join(conditions, " OR "))
	return s.queryContacts(ctx, op, query, args...)
}

func (s *Storage) queryContacts(ctx context.Context, op, query string, args ...any) ([]*models.Contact, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := []*models.Contact{}
	for rows.Next() {
		var c models.Contact
		var otherInfo sql.NullString
		if err = rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.PhoneNumber,
			&c.Birthday, &otherInfo, &c.UserID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if otherInfo.Valid {
			c.OtherInfo = &otherInfo.String
		}
		result = append(result, &c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

func scanContact(row *sql.Row, op string) (*models.Contact, error) {
	var c models.Contact
	var otherInfo sql.NullString
	if err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.PhoneNumber,
		&c.Birthday, &otherInfo, &c.UserID); err != nil {
		return nil, translate(op, err)
	}
	if otherInfo.Valid {
		c.OtherInfo = &otherInfo.String
	}
	return &c, nil
}
