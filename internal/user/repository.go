package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"travelagg/pkg/db"
)

// Repository persists users.
type Repository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
}

type SQLRepository struct {
	db db.SQLExecutor
}

func NewSQLRepository(client db.SQLExecutor) *SQLRepository {
	return &SQLRepository{db: client}
}

const userColumns = "id, username, email, password_hash, full_name, provider, created_at"

// Create inserts u. A taken username or email is reported as ErrUserExists.
func (r *SQLRepository) Create(ctx context.Context, u *User) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO users ("+userColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)",
		u.ID, u.Username, u.Email, u.PasswordHash, u.FullName, u.Provider, u.CreatedAt.UTC(),
	)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return fmt.Errorf("%w: %s", ErrUserExists, u.Username)
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (r *SQLRepository) FindByID(ctx context.Context, id string) (*User, error) {
	return r.findOne(ctx, "id", id)
}

func (r *SQLRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	return r.findOne(ctx, "username", username)
}

func (r *SQLRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return r.findOne(ctx, "email", email)
}

// findOne looks a user up by one of the fixed unique columns above.
func (r *SQLRepository) findOne(ctx context.Context, column, value string) (*User, error) {
	var u User
	err := r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE "+column+" = ?", value,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FullName, &u.Provider, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by %s: %w", column, err)
	}
	return &u, nil
}
