package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLength is the minimum accepted HMAC key size in bytes. Anything
// shorter than the hash output weakens HS256 below its design strength.
const MinSecretLength = 32

var (
	ErrShortSecret = errors.New("jwtx: signing secret shorter than 32 bytes")

	// Validation failures. Callers that relay token state to clients must
	// collapse these into a single generic failure; the distinctions exist
	// for logging only.
	ErrMalformed    = errors.New("jwtx: malformed token")
	ErrAlgMismatch  = errors.New("jwtx: algorithm mismatch")
	ErrInvalidSig   = errors.New("jwtx: invalid signature")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrNotYetValid  = errors.New("jwtx: token not yet valid")
	ErrIssuer       = errors.New("jwtx: issuer mismatch")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")
)

// Codec mints and validates compact HS256 tokens carrying a subject.
// The signing key is fixed at construction and never rotated; the Codec
// holds no per-token state, so it is safe for concurrent use.
type Codec struct {
	key    []byte
	issuer string
}

// NewHS256 constructs a Codec from a symmetric secret and issuer string.
func NewHS256(secret []byte, issuer string) (*Codec, error) {
	if len(secret) < MinSecretLength {
		return nil, ErrShortSecret
	}
	key := make([]byte, len(secret))
	copy(key, secret)
	return &Codec{key: key, issuer: issuer}, nil
}

// Mint produces a signed token for subject expiring after ttl. A negative
// ttl yields an already-expired token, which is occasionally useful in tests.
func (c *Codec) Mint(subject string, ttl time.Duration) (string, error) {
	claims := NewClaims(subject, c.issuer, ttl, time.Now().UTC())
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.key)
}

// Validate verifies the signature, issuer, and time bounds of a token and
// returns the embedded subject. Every failure maps onto one of this
// package's sentinel errors.
func (c *Codec) Validate(token string) (string, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(
		token,
		&claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrAlgMismatch
			}
			return c.key, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(c.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", mapParseError(err)
	}

	if claims.Subject == "" {
		return "", ErrInvalidClaim
	}
	return claims.Subject, nil
}

func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrInvalidSig
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return ErrNotYetValid
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return ErrIssuer
	case errors.Is(err, ErrAlgMismatch):
		return ErrAlgMismatch
	default:
		return ErrInvalidClaim
	}
}
