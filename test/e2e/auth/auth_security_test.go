package auth_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDuplicateRegistrationConflicts(t *testing.T) {
	client := newTestClient(t)
	ctx := t.Context()

	_, err := client.Register(ctx, userEmail, userPassword)
	require.NoError(t, err)

	_, err = client.Register(ctx, userEmail, "a-different-password")
	requireAPIError(t, err, http.StatusConflict)
}

// TestLoginFailuresShareOneShape asserts the anti-enumeration property at
// the wire level: unknown email and wrong password produce byte-identical
// error responses.
func TestLoginFailuresShareOneShape(t *testing.T) {
	client := newTestClient(t)
	ctx := t.Context()

	_, err := client.Register(ctx, userEmail, userPassword)
	require.NoError(t, err)

	_, unknownErr := client.Login(ctx, "nobody@example.com", userPassword)
	_, wrongErr := client.Login(ctx, userEmail, "not-the-password")

	requireAPIError(t, unknownErr, http.StatusUnauthorized)
	requireAPIError(t, wrongErr, http.StatusUnauthorized)
	require.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestRefreshRejectsWrongSubject(t *testing.T) {
	client := newTestClient(t)
	ctx := t.Context()

	session, err := client.Register(ctx, userEmail, userPassword)
	require.NoError(t, err)

	// A live token presented with someone else's email must be refused.
	_, err = client.Refresh(ctx, session.RefreshToken, adminEmail)
	requireAPIError(t, err, http.StatusUnauthorized)
}

func TestProtectedEndpointsRequireBearer(t *testing.T) {
	client := newTestClient(t)
	ctx := t.Context()

	_, err := client.Me(ctx, "")
	requireAPIError(t, err, http.StatusUnauthorized)

	_, err = client.Me(ctx, "not-a-real-token")
	requireAPIError(t, err, http.StatusUnauthorized)

	_, err = client.Logout(ctx, "not-a-real-token")
	requireAPIError(t, err, http.StatusUnauthorized)
}

func TestMalformedBodiesAreRejected(t *testing.T) {
	client := newTestClient(t)
	ctx := t.Context()

	// Empty credentials never reach the credential check.
	_, err := client.Login(ctx, "", "")
	requireAPIError(t, err, http.StatusBadRequest)

	// Registration enforces an email shape and a minimum password length.
	_, err = client.Register(ctx, "not-an-email", userPassword)
	requireAPIError(t, err, http.StatusBadRequest)

	_, err = client.Register(ctx, userEmail, "short")
	requireAPIError(t, err, http.StatusBadRequest)
}
