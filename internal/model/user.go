package model

import "time"

// Role values stored in users.user_role.
const (
	RoleStandard = 0
	RoleAdmin    = 1
)

// User mirrors the `users` table. PasswordHash is never serialized;
// handlers expose users through PublicUser instead.
type User struct {
	ID           uint64    // users.user_id
	Username     string    // users.username (unique)
	Email        string    // users.email (unique)
	PasswordHash string    // users.password (bcrypt hash)
	Role         int       // users.user_role (0 standard, 1 admin)
	CreatedAt    time.Time // users.created_at
}

// PublicUser is the response shape for account reads. It carries the
// original column names on the wire and deliberately omits the hash.
type PublicUser struct {
	ID        uint64    `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      int       `json:"user_role"`
	CreatedAt time.Time `json:"created_at"`
}

// Public converts a stored user into its exposable form.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// RoleName maps the stored role integer onto the JWT role claim.
func RoleName(role int) string {
	if role == RoleAdmin {
		return "ADMIN"
	}
	return "USER"
}

// RefreshToken models an entry in the `refresh_tokens` table. Only the
// SHA-256 hash of the token value is persisted.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
