package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/cirec-website/internal/models"
)

const userColumns = `id, email, username, password_hash, first_name, last_name, company,
	telephone, account_type, monthly_news, search_access, database_access, is_admin,
	subscription_status, subscription_start, subscription_end, created_at, last_login`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var (
		u                            models.User
		firstName, lastName, company sql.NullString
		telephone, accountType       sql.NullString
		subStart, subEnd, lastLogin  sql.NullTime
	)
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &firstName, &lastName,
		&company, &telephone, &accountType, &u.MonthlyNews, &u.SearchAccess, &u.DatabaseAccess,
		&u.IsAdmin, &u.SubscriptionStatus, &subStart, &subEnd, &u.CreatedAt, &lastLogin)
	if err != nil {
		return nil, err
	}
	u.FirstName = nullString(firstName)
	u.LastName = nullString(lastName)
	u.Company = nullString(company)
	u.Telephone = nullString(telephone)
	u.AccountType = nullString(accountType)
	u.SubscriptionStart = nullTimePtr(subStart)
	u.SubscriptionEnd = nullTimePtr(subEnd)
	u.LastLogin = nullTimePtr(lastLogin)
	return &u, nil
}

func (s *Storage) getUser(ctx context.Context, op, where string, arg any) (*models.User, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where + ` = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUserByEmail возвращает пользователя по email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUser(ctx, "storage.GetUserByEmail", "email", email)
}

// GetUserByID возвращает пользователя по идентификатору.
func (s *Storage) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.getUser(ctx, "storage.GetUserByID", "id", id)
}

func (s *Storage) exists(ctx context.Context, op, column string, value string) (bool, error) {
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE ` + column + ` = $1)`
	if err := s.DB.QueryRowContext(ctx, query, value).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// EmailExists проверяет, занят ли email.
func (s *Storage) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.exists(ctx, "storage.EmailExists", "email", email)
}

// UsernameExists проверяет, занят ли username.
func (s *Storage) UsernameExists(ctx context.Context, username string) (bool, error) {
	return s.exists(ctx, "storage.UsernameExists", "username", username)
}

// CreateUser сохраняет нового пользователя и возвращает его ID.
// Нарушение уникальности email или username возвращается как ErrEmailExists / ErrUsernameExists.
func (s *Storage) CreateUser(ctx context.Context, u models.User) (int64, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	status := u.SubscriptionStatus
	if status == "" {
		status = models.SubscriptionPending
	}

	query := `INSERT INTO users (email, username, password_hash, first_name, last_name, company,
			      telephone, account_type, monthly_news, search_access, database_access, is_admin,
			      subscription_status)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			  RETURNING id`
	var id int64
	err := s.DB.QueryRowContext(ctx, query,
		u.Email, u.Username, u.PasswordHash, emptyToNull(u.FirstName), emptyToNull(u.LastName),
		emptyToNull(u.Company), emptyToNull(u.Telephone), emptyToNull(u.AccountType),
		u.MonthlyNews, u.SearchAccess, u.DatabaseAccess, u.IsAdmin, status).Scan(&id)
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok {
			switch constraint {
			case constraintUsersEmail:
				return 0, fmt.Errorf("%s: %w", op, ErrEmailExists)
			case constraintUsersUsername:
				return 0, fmt.Errorf("%s: %w", op, ErrUsernameExists)
			}
		}
		if valueTooLong(err) {
			return 0, fmt.Errorf("%s: %w", op, ErrValueTooLong)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

func (s *Storage) updateUser(ctx context.Context, op, query string, args ...any) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	return nil
}

// UpdateLastLogin записывает время последнего входа.
func (s *Storage) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	return s.updateUser(ctx, "storage.UpdateLastLogin",
		`UPDATE users SET last_login = $1 WHERE id = $2`, at, id)
}

// UpdatePassword заменяет хеш пароля.
func (s *Storage) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	return s.updateUser(ctx, "storage.UpdatePassword",
		`UPDATE users SET password_hash = $1 WHERE id = $2`, passwordHash, id)
}

// UpdateSubscription записывает статус и границы подписки одним запросом.
func (s *Storage) UpdateSubscription(ctx context.Context, id int64, status string, start, end time.Time) error {
	return s.updateUser(ctx, "storage.UpdateSubscription",
		`UPDATE users SET subscription_status = $1, subscription_start = $2, subscription_end = $3
		 WHERE id = $4`, status, start, end, id)
}

// SetAdmin выдает или снимает права администратора.
func (s *Storage) SetAdmin(ctx context.Context, id int64, isAdmin bool) error {
	return s.updateUser(ctx, "storage.SetAdmin",
		`UPDATE users SET is_admin = $1 WHERE id = $2`, isAdmin, id)
}

// CountUsers возвращает общее число пользователей.
func (s *Storage) CountUsers(ctx context.Context) (int64, error) {
	const op = "storage.CountUsers"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var n int64
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// RecentUsers возвращает limit последних зарегистрированных пользователей.
func (s *Storage) RecentUsers(ctx context.Context, limit int) ([]*models.User, error) {
	return s.listUsers(ctx, "storage.RecentUsers",
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC, id DESC LIMIT $1`, limit)
}

// ListUsers возвращает всех пользователей.
func (s *Storage) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.listUsers(ctx, "storage.ListUsers",
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC, id DESC`)
}

func (s *Storage) listUsers(ctx context.Context, op, query string, args ...any) ([]*models.User, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	result := make([]*models.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
