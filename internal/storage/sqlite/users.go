package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mmynk/inventory/internal/models"
	"github.com/mmynk/inventory/internal/storage"
)

// CreateUser inserts a new user into the database.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	query := `INSERT INTO users (username, password) VALUES (?, ?)`

	return s.withConn(ctx, func(conn *sqlx.Conn) error {
		res, err := conn.ExecContext(ctx, query, user.Username, user.PasswordHash)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("user %q: %w", user.Username, storage.ErrAlreadyExists)
			}
			return unavailable("failed to create user", err)
		}

		id, err := res.LastInsertId()
		if err != nil {
			return unavailable("failed to read user id", err)
		}
		user.ID = id
		return nil
	})
}

// GetUserByUsername retrieves a user by their username.
func (s *SQLiteStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT id, username, password FROM users WHERE username = ?`

	user := &models.User{}
	err := s.withConn(ctx, func(conn *sqlx.Conn) error {
		if err := conn.GetContext(ctx, user, query, username); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("user %q: %w", username, storage.ErrNotFound)
			}
			return unavailable("failed to get user by username", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}
