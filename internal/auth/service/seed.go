package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/selimellieh72/secure-login-assignment/internal/auth/domain"
	"github.com/selimellieh72/secure-login-assignment/internal/auth/store"
	"github.com/selimellieh72/secure-login-assignment/pkg/cryptox"
	"github.com/selimellieh72/secure-login-assignment/pkg/slogx"
)

// SeedService provisions the configured admin account at startup so the
// service is usable without a manual registration step.
type SeedService struct {
	Store store.Store

	AdminEmail    string
	AdminPassword string
}

// Seed creates the admin user if configured and not already present.
// Re-running against an existing admin is a no-op; an admin created by a
// previous boot keeps its credential hash.
func (s *SeedService) Seed(ctx context.Context) error {
	l := slogx.FromContext(ctx)

	if s.AdminEmail == "" || s.AdminPassword == "" {
		l.Debug("admin seeding skipped, no credentials configured")
		return nil
	}

	hash, err := cryptox.HashPassword(s.AdminPassword)
	if err != nil {
		return fmt.Errorf("seed admin: hash password: %w", err)
	}

	user := domain.User{
		Email:        s.AdminEmail,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
	}
	if err := s.Store.Users().Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			l.Debug("admin user already present", slog.String("email", s.AdminEmail))
			return nil
		}
		return fmt.Errorf("seed admin: create user: %w", err)
	}

	l.Info("admin user seeded", slog.String("email", s.AdminEmail))
	return nil
}
