package postgres

import (
	"context"
	"fmt"

	"github.com/vocal-hub/vocal-studio-hub/internal/domain/user"
)

// ══════════════════════════════════════════════════════════════════════════════
// USER REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// UserRepository implements user.Repository for PostgreSQL.
type UserRepository struct {
	conn *Connection
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(conn *Connection) *UserRepository {
	return &UserRepository{conn: conn}
}

// Create inserts an account and fills in its generated ID.
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (username, password_hash)
		VALUES ($1, $2)
		RETURNING id
	`

	err := r.conn.QueryRow(ctx, query, u.Username, u.PasswordHash).Scan(&u.ID)
	if err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("username %q: %w", u.Username, err)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByID returns an account by ID.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	row := r.conn.QueryRow(ctx,
		`SELECT id, username, password_hash FROM users WHERE id = $1`, id)

	var u user.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash)
	if IsNoRows(err) {
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	return &u, nil
}

// GetByUsername returns an account by username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	row := r.conn.QueryRow(ctx,
		`SELECT id, username, password_hash FROM users WHERE username = $1`, username)

	var u user.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash)
	if IsNoRows(err) {
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	return &u, nil
}

// UpdatePassword stores a new password hash.
func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	result, err := r.conn.Exec(ctx,
		`UPDATE users SET password_hash = $1 WHERE id = $2`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if result.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}
