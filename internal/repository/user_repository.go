package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/online-bookstore/internal/model"
)

// UserRepo provides account persistence over the `users` table.
type UserRepo struct{ db *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

// ExistsByEmailOrUsername reports whether any account already uses the
// given email or username. Registration runs this pre-check so it can
// answer with a conflict before attempting the insert; the UNIQUE keys
// on both columns close the remaining race (see Create).
func (r *UserRepo) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	var id uint64
	err := r.db.QueryRowContext(ctx,
		"SELECT user_id FROM users WHERE email = ? OR username = ? LIMIT 1",
		email, username).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Create inserts an account and returns its id. A duplicate unique key
// (MySQL error 1062) maps to ErrEmailOrUsernameTaken so two concurrent
// registrations cannot both succeed.
func (r *UserRepo) Create(ctx context.Context, username, email, passwordHash string, role int) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO users (username, email, password, user_role) VALUES (?, ?, ?, ?)",
		username, email, passwordHash, role)
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return 0, ErrEmailOrUsernameTaken
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a full account row, hash included, for login.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	err := r.db.QueryRowContext(ctx,
		"SELECT user_id, username, email, password, user_role, created_at FROM users WHERE email = ? LIMIT 1",
		email).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	return u, err
}

// GetByID fetches an account by id. Returns ErrNotFound when absent.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.db.QueryRowContext(ctx,
		"SELECT user_id, username, email, password, user_role, created_at FROM users WHERE user_id = ? LIMIT 1",
		id).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// List returns every account's public fields.
func (r *UserRepo) List(ctx context.Context) ([]model.PublicUser, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT user_id, username, email, user_role, created_at FROM users")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]model.PublicUser, 0)
	for rows.Next() {
		var u model.PublicUser
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.Role, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Update replaces username, email and role. Returns ErrNotFound when
// the id matched no row.
func (r *UserRepo) Update(ctx context.Context, id uint64, username, email string, role int) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE users SET username = ?, email = ?, user_role = ? WHERE user_id = ?",
		username, email, role, id)
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return ErrEmailOrUsernameTaken
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an account. Returns ErrNotFound when the id matched no row.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE user_id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
