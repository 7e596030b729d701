package service

import (
	"context"
	"testing"

	"github.com/selimellieh72/secure-login-assignment/internal/auth/domain"
	"github.com/stretchr/testify/require"
)

func TestSeedCreatesAdmin(t *testing.T) {
	svc := newSessionService(t)
	ctx := context.Background()

	seed := &SeedService{
		Store:         svc.Store,
		AdminEmail:    "admin@example.com",
		AdminPassword: "correct horse battery staple",
	}
	require.NoError(t, seed.Seed(ctx))

	user, err := svc.Store.Users().GetByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, user.Role)

	_, err = svc.Login(ctx, "admin@example.com", "correct horse battery staple")
	require.NoError(t, err)
}

func TestSeedIsIdempotent(t *testing.T) {
	svc := newSessionService(t)
	ctx := context.Background()

	seed := &SeedService{
		Store:         svc.Store,
		AdminEmail:    "admin@example.com",
		AdminPassword: "original-password",
	}
	require.NoError(t, seed.Seed(ctx))

	// A later boot with a changed password must not rewrite the existing
	// admin record.
	seed.AdminPassword = "rotated-password"
	require.NoError(t, seed.Seed(ctx))

	_, err := svc.Login(ctx, "admin@example.com", "original-password")
	require.NoError(t, err)
}

func TestSeedSkipsWhenUnconfigured(t *testing.T) {
	svc := newSessionService(t)
	ctx := context.Background()

	seed := &SeedService{Store: svc.Store}
	require.NoError(t, seed.Seed(ctx))

	empty, err := svc.Store.Users().IsEmpty(ctx)
	require.NoError(t, err)
	require.True(t, empty)
}
