package domain

import "time"

// Role is the access label attached to a user at creation time.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is the identity record. Email is the primary key and immutable after
// creation. At most one refresh token is valid per user at any time; it is
// persisted as a SHA-256 fingerprint in RefreshTokenHash, where nil means
// "no active session". The field is mutated only by the session service on
// login, register, refresh, and logout.
type User struct {
	Email        string
	PasswordHash string // argon2id, PHC encoded
	Role         Role

	RefreshTokenHash *string
	RefreshExpiresAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
