package store

import (
	"context"
	"errors"
	"time"

	"github.com/selimellieh72/secure-login-assignment/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface, implemented by concrete drivers
// (sqlite today). It exposes the users repository plus lifecycle hooks.
type Store interface {
	Users() Users

	ApplyMigrations() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error

	// Close releases underlying resources.
	Close() error
}

// Users persists identity records keyed by email. The refresh-token slot
// mutators are deliberately narrow: the session service never writes a
// whole record back, it only transitions the slot.
type Users interface {
	// GetByEmail returns a user by email, or ErrNotFound.
	GetByEmail(ctx context.Context, email string) (domain.User, error)

	// Create inserts a new record. A duplicate email yields
	// ErrAlreadyExists; the first record always wins.
	Create(ctx context.Context, u domain.User) error

	// SetRefreshToken unconditionally overwrites the refresh-token slot,
	// invalidating whatever token occupied it. Used by login.
	SetRefreshToken(ctx context.Context, email, tokenHash string, expiresAt time.Time) error

	// RotateRefreshToken replaces the slot only if it currently holds
	// oldHash (compare-and-swap). A mismatch, an empty slot, or a missing
	// user all yield ErrNotFound, so of two racing rotations exactly one
	// succeeds. Used by refresh.
	RotateRefreshToken(ctx context.Context, email, oldHash, newHash string, expiresAt time.Time) error

	// ClearRefreshToken empties the slot. Clearing an already-empty slot
	// succeeds; only a missing user yields ErrNotFound. Used by logout.
	ClearRefreshToken(ctx context.Context, email string) error

	// ClearExpiredRefreshTokens empties every slot whose token expired
	// before now. Housekeeping only; expired tokens fail validation anyway.
	ClearExpiredRefreshTokens(ctx context.Context, now time.Time) error

	// IsEmpty reports whether any users exist.
	IsEmpty(ctx context.Context) (bool, error)
}
