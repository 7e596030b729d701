package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default token TTLs. Short access tokens limit the blast radius of a leak;
// the refresh TTL bounds how long an idle session stays resumable.
const (
	DefaultAccessTokenTTL  = 15 * time.Minute
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// Claims are the registered claims carried by every token this service
// mints. Access and refresh tokens are structurally identical; they differ
// only in expiry window and in which server-side check they must pass.
type Claims struct {
	jwt.RegisteredClaims
}

// NewClaims builds minimally-correct claims for a subject.
func NewClaims(subject, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim. The
// randomness also guarantees that two tokens minted for the same subject
// in the same instant still differ.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}
