package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/primetrade/internal/models"
	"github.com/magabrotheeeer/primetrade/internal/storage"
)

const userColumns = `uid, username, name, email, password_hash, role, is_active, created_at, last_login`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	u := &models.User{}
	var lastLogin sql.NullTime
	if err := row.Scan(&u.UUID, &u.Username, &u.Name, &u.Email, &u.PasswordHash,
		&u.Role, &u.IsActive, &u.CreatedAt, &lastLogin); err != nil {
		return nil, err
	}
	if lastLogin.Valid {
		u.LastLogin = &lastLogin.Time
	}
	return u, nil
}

// CreateUser сохраняет нового пользователя одной вставкой и возвращает сохранённую запись.
//
// При нарушении уникальности username или email возвращает storage.ErrUserExists,
// при этом в таблицу ничего не записывается.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (username, name, email, password_hash, role, is_active)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING uid, created_at;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Username, user.Name, user.Email, user.PasswordHash, user.Role, user.IsActive,
	).Scan(&user.UUID, &user.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrUserExists)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &user, nil
}

// GetUser возвращает пользователя по его UID.
func (s *Storage) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE uid = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, userUID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidUID(err) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUserByEmail возвращает пользователя по email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE email = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// UpdateProfile обновляет имя и email пользователя и возвращает обновлённую запись.
func (s *Storage) UpdateProfile(ctx context.Context, userUID, name, email string) (*models.User, error) {
	const op = "storage.UpdateProfile"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET name = $1,
			      email = $2
			  WHERE uid = $3
			  RETURNING ` + userColumns
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, name, email, userUID))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
		case isUniqueViolation(err):
			return nil, fmt.Errorf("%s: %w", op, storage.ErrUserExists)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// UpdateLastLogin сохраняет время последнего входа пользователя.
func (s *Storage) UpdateLastLogin(ctx context.Context, userUID string, at time.Time) error {
	const op = "storage.UpdateLastLogin"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET last_login = $1
			  WHERE uid = $2`
	res, err := s.DB.ExecContext(ctx, query, at, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
	}
	return nil
}

// SetActive включает или отключает учётную запись пользователя.
func (s *Storage) SetActive(ctx context.Context, userUID string, active bool) (*models.User, error) {
	const op = "storage.SetActive"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET is_active = $1
			  WHERE uid = $2
			  RETURNING ` + userColumns
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, active, userUID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidUID(err) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}
