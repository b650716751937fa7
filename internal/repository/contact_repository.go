package repository

import (
	"context"
	"database/sql"
)

// ContactRepo stores free-form inquiry messages. Intake is a single
// insert; nothing downstream consumes the rows from this service.
type ContactRepo struct{ db *sql.DB }

func NewContactRepo(db *sql.DB) *ContactRepo { return &ContactRepo{db: db} }

// Create inserts a message and returns its generated identifier.
func (r *ContactRepo) Create(ctx context.Context, name, email, subject, message string) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO contact_messages (name, email, subject, message) VALUES (?, ?, ?, ?)",
		name, email, subject, message)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}
