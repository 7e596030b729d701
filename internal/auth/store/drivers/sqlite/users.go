package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/selimellieh72/secure-login-assignment/internal/auth/domain"
	"github.com/selimellieh72/secure-login-assignment/internal/auth/store"
)

type usersRepo struct {
	db *sql.DB
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT email, password_hash, role, refresh_token_hash, refresh_expires_at, created_at, updated_at
		FROM users
		WHERE email = ?`, email)

	var (
		u         domain.User
		role      string
		tokenHash sql.NullString
		expiresAt sql.NullTime
	)
	err := row.Scan(&u.Email, &u.PasswordHash, &role, &tokenHash, &expiresAt, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}

	u.Role = domain.Role(role)
	if tokenHash.Valid {
		v := tokenHash.String
		u.RefreshTokenHash = &v
	}
	if expiresAt.Valid {
		v := expiresAt.Time
		u.RefreshExpiresAt = &v
	}
	return u, nil
}

func (r *usersRepo) Create(ctx context.Context, u domain.User) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (email, password_hash, role, refresh_token_hash, refresh_expires_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.Email,
		u.PasswordHash,
		string(u.Role),
		optionalString(u.RefreshTokenHash),
		optionalTime(u.RefreshExpiresAt),
		now,
		now,
	)
	if err != nil {
		return mapConstraint(err)
	}
	return nil
}

func (r *usersRepo) SetRefreshToken(
	ctx context.Context,
	email, tokenHash string,
	expiresAt time.Time,
) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET refresh_token_hash = ?, refresh_expires_at = ?, updated_at = ?
		WHERE email = ?`,
		tokenHash, expiresAt, time.Now().UTC(), email)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *usersRepo) RotateRefreshToken(
	ctx context.Context,
	email, oldHash, newHash string,
	expiresAt time.Time,
) error {
	// Compare-and-swap: the WHERE clause pins the slot to the expected
	// fingerprint, so concurrent rotations of the same token cannot both
	// match. SQLite serializes the writes; the loser sees zero rows.
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET refresh_token_hash = ?, refresh_expires_at = ?, updated_at = ?
		WHERE email = ? AND refresh_token_hash = ?`,
		newHash, expiresAt, time.Now().UTC(), email, oldHash)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *usersRepo) ClearRefreshToken(ctx context.Context, email string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET refresh_token_hash = NULL, refresh_expires_at = NULL, updated_at = ?
		WHERE email = ?`,
		time.Now().UTC(), email)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *usersRepo) ClearExpiredRefreshTokens(ctx context.Context, now time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET refresh_token_hash = NULL, refresh_expires_at = NULL, updated_at = ?
		WHERE refresh_token_hash IS NOT NULL AND refresh_expires_at < ?`,
		now.UTC(), now.UTC())
	return err
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func optionalString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func optionalTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
