package jwtx

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-signing-secret-for-unit-tests-only!")

func newTestCodec(t *testing.T) *Codec {
	t.Helper()
	c, err := NewHS256(testSecret, "secure-login")
	require.NoError(t, err)
	return c
}

func TestNewHS256RejectsShortSecrets(t *testing.T) {
	t.Parallel()

	_, err := NewHS256([]byte("too short"), "secure-login")
	require.ErrorIs(t, err, ErrShortSecret)
}

func TestMintValidateRoundTrip(t *testing.T) {
	t.Parallel()
	c := newTestCodec(t)

	token, err := c.Mint("alice@example.com", time.Minute)
	require.NoError(t, err)
	require.Equal(t, 3, len(strings.Split(token, ".")))

	subject, err := c.Validate(token)
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", subject)
}

func TestMintedTokensAreUnique(t *testing.T) {
	t.Parallel()
	c := newTestCodec(t)

	a, err := c.Mint("alice@example.com", time.Minute)
	require.NoError(t, err)
	b, err := c.Mint("alice@example.com", time.Minute)
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	t.Parallel()
	c := newTestCodec(t)

	token, err := c.Mint("alice@example.com", -1*time.Second)
	require.NoError(t, err)

	_, err = c.Validate(token)
	require.ErrorIs(t, err, ErrExpired)
}

func TestValidateRejectsForeignSignature(t *testing.T) {
	t.Parallel()
	c := newTestCodec(t)

	other, err := NewHS256([]byte("a-completely-different-signing-secret!!!"), "secure-login")
	require.NoError(t, err)

	token, err := other.Mint("alice@example.com", time.Minute)
	require.NoError(t, err)

	_, err = c.Validate(token)
	require.ErrorIs(t, err, ErrInvalidSig)
}

func TestValidateRejectsWrongIssuer(t *testing.T) {
	t.Parallel()
	c := newTestCodec(t)

	other, err := NewHS256(testSecret, "someone-else")
	require.NoError(t, err)

	token, err := other.Mint("alice@example.com", time.Minute)
	require.NoError(t, err)

	_, err = c.Validate(token)
	require.ErrorIs(t, err, ErrIssuer)
}

func TestValidateRejectsGarbage(t *testing.T) {
	t.Parallel()
	c := newTestCodec(t)

	for _, bad := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		_, err := c.Validate(bad)
		require.ErrorIs(t, err, ErrMalformed, "input %q", bad)
	}
}

func TestValidateRejectsTamperedPayload(t *testing.T) {
	t.Parallel()
	c := newTestCodec(t)

	token, err := c.Mint("alice@example.com", time.Minute)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	parts[1] = parts[1][:len(parts[1])-2] + "xx"
	_, err = c.Validate(strings.Join(parts, "."))
	require.Error(t, err)
}
