package repository

import (
	"context"
	"database/sql"
	"time"
)

// TokenRepo persists refresh tokens. Only the SHA-256 hash of a token
// ever reaches the database; a stolen table dump cannot mint sessions.
type TokenRepo struct{ db *sql.DB }

func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{db: db} }

// Store inserts a refresh token hash for the user.
func (r *TokenRepo) Store(ctx context.Context, userID uint64, tokenHash string, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO refresh_tokens (user_id, token_hash, expires_at) VALUES (?, ?, ?)",
		userID, tokenHash, expiresAt)
	return err
}

// Validate returns the owning user id when a matching token exists and
// is neither revoked nor expired. Any other outcome is sql.ErrNoRows.
func (r *TokenRepo) Validate(ctx context.Context, tokenHash string) (uint64, error) {
	var (
		userID    uint64
		expiresAt time.Time
		revokedAt sql.NullTime
	)
	err := r.db.QueryRowContext(ctx,
		"SELECT user_id, expires_at, revoked_at FROM refresh_tokens WHERE token_hash = ? LIMIT 1",
		tokenHash).Scan(&userID, &expiresAt, &revokedAt)
	if err != nil {
		return 0, err
	}
	if revokedAt.Valid || time.Now().UTC().After(expiresAt) {
		return 0, sql.ErrNoRows
	}
	return userID, nil
}

// Revoke marks one token as revoked.
func (r *TokenRepo) Revoke(ctx context.Context, tokenHash string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE refresh_tokens SET revoked_at = NOW() WHERE token_hash = ? AND revoked_at IS NULL",
		tokenHash)
	return err
}
