package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/selimellieh72/secure-login-assignment/internal/auth/domain"
	"github.com/selimellieh72/secure-login-assignment/internal/auth/store"
	"github.com/selimellieh72/secure-login-assignment/pkg/cryptox"
	"github.com/selimellieh72/secure-login-assignment/pkg/jwtx"
	"github.com/selimellieh72/secure-login-assignment/pkg/slogx"
)

var (
	// ErrInvalidCredentials covers unknown email and wrong password alike
	// so a login response cannot be used to probe which accounts exist.
	ErrInvalidCredentials = errors.New("invalid_credentials")

	// ErrEmailTaken is returned when registering an already-used email.
	ErrEmailTaken = errors.New("email_taken")

	// ErrInvalidToken unifies every refresh-token failure: malformed,
	// expired, forged, subject mismatch, deleted user, and superseded by
	// rotation. The sub-cause is logged, never returned.
	ErrInvalidToken = errors.New("invalid_token")

	// ErrNotFound is returned for an authenticated caller whose record no
	// longer exists.
	ErrNotFound = errors.New("user_not_found")
)

// SessionService implements the session state machine over the single
// refresh-token slot of a user record: login and register overwrite the
// slot, refresh rotates it with compare-and-swap semantics, logout clears
// it. Each operation is atomic from the caller's perspective; the slot
// transition rides on a single conditional UPDATE in the store.
type SessionService struct {
	Store      store.Store
	Codec      *jwtx.Codec
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Login authenticates email/secret and issues a fresh token pair. The new
// refresh token unconditionally replaces whatever the slot held, so logging
// in invalidates any other live session for the account.
func (s *SessionService) Login(ctx context.Context, email, password string) (domain.TokenPair, error) {
	l := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TokenPair{}, ErrInvalidCredentials
		}
		return domain.TokenPair{}, fmt.Errorf("login: lookup: %w", err)
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		l.Info("login rejected", "email", email)
		return domain.TokenPair{}, ErrInvalidCredentials
	}

	pair, fingerprint, expiresAt, err := s.mintPair(email)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("login: mint: %w", err)
	}

	if err := s.Store.Users().SetRefreshToken(ctx, email, fingerprint, expiresAt); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// The record vanished between the credential check and the
			// slot write. Same answer as an unknown account.
			l.Info("login rejected", "email", email)
			return domain.TokenPair{}, ErrInvalidCredentials
		}
		return domain.TokenPair{}, fmt.Errorf("login: store refresh token: %w", err)
	}

	l.Info("login succeeded", "email", email)
	return pair, nil
}

// Register creates a new USER-role account and issues its first token pair.
// The record is inserted with the refresh fingerprint already set, so a
// racing duplicate registration loses on the unique-email constraint and
// the first record's credential hash is the one kept.
func (s *SessionService) Register(ctx context.Context, email, password string) (domain.TokenPair, error) {
	l := slogx.FromContext(ctx)

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("register: hash password: %w", err)
	}

	pair, fingerprint, expiresAt, err := s.mintPair(email)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("register: mint: %w", err)
	}

	user := domain.User{
		Email:            email,
		PasswordHash:     hash,
		Role:             domain.RoleUser,
		RefreshTokenHash: &fingerprint,
		RefreshExpiresAt: &expiresAt,
	}
	if err := s.Store.Users().Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.TokenPair{}, ErrEmailTaken
		}
		return domain.TokenPair{}, fmt.Errorf("register: create user: %w", err)
	}

	l.Info("user registered", "email", email)
	return pair, nil
}

// Refresh rotates a refresh token: the presented token must be
// cryptographically valid and must still occupy the user's slot. The swap
// of new-for-old happens as one compare-and-swap, so of two concurrent
// refreshes with the same token exactly one wins; the loser gets
// ErrInvalidToken like any other stale presenter. When expectedEmail is
// non-empty it must match the token's subject.
func (s *SessionService) Refresh(ctx context.Context, presented, expectedEmail string) (domain.TokenPair, error) {
	l := slogx.FromContext(ctx)

	subject, err := s.Codec.Validate(presented)
	if err != nil {
		l.Info("refresh rejected", "reason", err)
		return domain.TokenPair{}, ErrInvalidToken
	}

	if expectedEmail != "" && expectedEmail != subject {
		l.Info("refresh rejected", "reason", "subject mismatch")
		return domain.TokenPair{}, ErrInvalidToken
	}

	pair, fingerprint, expiresAt, err := s.mintPair(subject)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("refresh: mint: %w", err)
	}

	// The conditional swap simultaneously covers a deleted user, an empty
	// slot, a superseded token, and a lost race: in every case the stored
	// fingerprint no longer matches the presented one.
	err = s.Store.Users().RotateRefreshToken(
		ctx,
		subject,
		cryptox.FingerprintToken(presented),
		fingerprint,
		expiresAt,
	)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Info("refresh rejected", "reason", "token superseded or unknown subject")
			return domain.TokenPair{}, ErrInvalidToken
		}
		return domain.TokenPair{}, fmt.Errorf("refresh: rotate: %w", err)
	}

	l.Info("refresh succeeded", "email", subject)
	return pair, nil
}

// Logout clears the refresh-token slot for an already-authenticated
// identity. Idempotent: clearing an empty slot succeeds.
func (s *SessionService) Logout(ctx context.Context, email string) error {
	l := slogx.FromContext(ctx)

	if err := s.Store.Users().ClearRefreshToken(ctx, email); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("logout: clear refresh token: %w", err)
	}

	l.Info("logout succeeded", "email", email)
	return nil
}

func (s *SessionService) mintPair(email string) (domain.TokenPair, string, time.Time, error) {
	access, err := s.Codec.Mint(email, s.AccessTTL)
	if err != nil {
		return domain.TokenPair{}, "", time.Time{}, err
	}
	refresh, err := s.Codec.Mint(email, s.RefreshTTL)
	if err != nil {
		return domain.TokenPair{}, "", time.Time{}, err
	}

	pair := domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		Email:        email,
	}
	return pair, cryptox.FingerprintToken(refresh), time.Now().UTC().Add(s.RefreshTTL), nil
}
