package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/selimellieh72/secure-login-assignment/internal/auth/domain"
	"github.com/selimellieh72/secure-login-assignment/internal/auth/store"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := fmt.Sprintf(
		"file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)",
		filepath.Join(t.TempDir(), "auth.db"),
	)
	s, err := NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func testUser(email string) domain.User {
	return domain.User{
		Email:        email,
		PasswordHash: "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		Role:         domain.RoleUser,
	}
}

func TestCreateAndGetByEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Users().Create(ctx, testUser("alice@example.com")))

	u, err := s.Users().GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", u.Email)
	require.Equal(t, domain.RoleUser, u.Role)
	require.Nil(t, u.RefreshTokenHash)
	require.Nil(t, u.RefreshExpiresAt)
	require.False(t, u.CreatedAt.IsZero())

	_, err = s.Users().GetByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateDuplicateEmailKeepsFirstRecord(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := testUser("alice@example.com")
	require.NoError(t, s.Users().Create(ctx, first))

	second := testUser("alice@example.com")
	second.PasswordHash = "$argon2id$v=19$m=19456,t=2,p=1$b3RoZXI$b3RoZXI"
	require.ErrorIs(t, s.Users().Create(ctx, second), store.ErrAlreadyExists)

	u, err := s.Users().GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, first.PasswordHash, u.PasswordHash)
}

func TestSetRefreshTokenOverwrites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	expiry := time.Now().Add(time.Hour).UTC()

	require.NoError(t, s.Users().Create(ctx, testUser("alice@example.com")))
	require.NoError(t, s.Users().SetRefreshToken(ctx, "alice@example.com", "hash-one", expiry))
	require.NoError(t, s.Users().SetRefreshToken(ctx, "alice@example.com", "hash-two", expiry))

	u, err := s.Users().GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, u.RefreshTokenHash)
	require.Equal(t, "hash-two", *u.RefreshTokenHash)

	err = s.Users().SetRefreshToken(ctx, "nobody@example.com", "hash", expiry)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestRotateRefreshTokenIsCompareAndSwap(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	expiry := time.Now().Add(time.Hour).UTC()

	require.NoError(t, s.Users().Create(ctx, testUser("alice@example.com")))

	// Empty slot: nothing to swap against.
	err := s.Users().RotateRefreshToken(ctx, "alice@example.com", "hash-one", "hash-two", expiry)
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.Users().SetRefreshToken(ctx, "alice@example.com", "hash-one", expiry))

	// Wrong expected value.
	err = s.Users().RotateRefreshToken(ctx, "alice@example.com", "stale", "hash-two", expiry)
	require.ErrorIs(t, err, store.ErrNotFound)

	// Matching expected value swaps.
	require.NoError(t, s.Users().RotateRefreshToken(ctx, "alice@example.com", "hash-one", "hash-two", expiry))

	u, err := s.Users().GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, "hash-two", *u.RefreshTokenHash)

	// The superseded value no longer matches.
	err = s.Users().RotateRefreshToken(ctx, "alice@example.com", "hash-one", "hash-three", expiry)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestClearRefreshTokenIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Users().Create(ctx, testUser("alice@example.com")))
	require.NoError(t, s.Users().SetRefreshToken(ctx, "alice@example.com", "hash", time.Now().Add(time.Hour)))

	require.NoError(t, s.Users().ClearRefreshToken(ctx, "alice@example.com"))
	require.NoError(t, s.Users().ClearRefreshToken(ctx, "alice@example.com"))

	u, err := s.Users().GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Nil(t, u.RefreshTokenHash)

	err = s.Users().ClearRefreshToken(ctx, "nobody@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestClearExpiredRefreshTokens(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, s.Users().Create(ctx, testUser("stale@example.com")))
	require.NoError(t, s.Users().Create(ctx, testUser("fresh@example.com")))
	require.NoError(t, s.Users().SetRefreshToken(ctx, "stale@example.com", "old", now.Add(-time.Hour)))
	require.NoError(t, s.Users().SetRefreshToken(ctx, "fresh@example.com", "new", now.Add(time.Hour)))

	require.NoError(t, s.Users().ClearExpiredRefreshTokens(ctx, now))

	stale, err := s.Users().GetByEmail(ctx, "stale@example.com")
	require.NoError(t, err)
	require.Nil(t, stale.RefreshTokenHash)

	fresh, err := s.Users().GetByEmail(ctx, "fresh@example.com")
	require.NoError(t, err)
	require.NotNil(t, fresh.RefreshTokenHash)
	require.Equal(t, "new", *fresh.RefreshTokenHash)
}

func TestIsEmpty(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	empty, err := s.Users().IsEmpty(ctx)
	require.NoError(t, err)
	require.True(t, empty)

	require.NoError(t, s.Users().Create(ctx, testUser("alice@example.com")))

	empty, err = s.Users().IsEmpty(ctx)
	require.NoError(t, err)
	require.False(t, empty)
}
