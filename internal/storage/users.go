package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/bibekthapa999/thapa-holidays-sub002/internal/model"
)

const userColumns = `id, email, password_hash, name, role, created_at`

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByEmail returns the user with the given email, or nil, nil.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying user %q: %w", email, err)
	}
	return u, nil
}

// GetUser returns the user with the given id, or nil, nil.
func (r *Repository) GetUser(ctx context.Context, id int) (*model.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying user %d: %w", id, err)
	}
	return u, nil
}

// CountAdmins returns how many ADMIN users exist.
func (r *Repository) CountAdmins(ctx context.Context) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE role = $1`, model.RoleAdmin).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting admins: %w", err)
	}
	return n, nil
}

// CreateUser inserts a user. The unique index on email rejects duplicates.
func (r *Repository) CreateUser(ctx context.Context, u *model.User) (*model.User, error) {
	created, err := scanUser(r.q.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, name, role)
		VALUES ($1, $2, $3, $4)
		RETURNING `+userColumns,
		u.Email, u.PasswordHash, u.Name, u.Role))
	if err != nil {
		return nil, fmt.Errorf("inserting user: %w", err)
	}
	return created, nil
}
