package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/selimellieh72/secure-login-assignment/internal/auth/domain"
	"github.com/selimellieh72/secure-login-assignment/internal/auth/store"
)

// UserService answers profile lookups for authenticated identities.
type UserService struct {
	Store store.Store
}

// Get returns the user record for an email established by access-token
// validation. A missing record maps to ErrNotFound, which the HTTP layer
// renders as 404 rather than 401: the caller proved who they are, the
// account is simply gone.
func (s *UserService) Get(ctx context.Context, email string) (domain.User, error) {
	user, err := s.Store.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrNotFound
		}
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}
