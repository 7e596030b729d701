package auth_test

import (
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/selimellieh72/secure-login-assignment/internal/auth/app"
	"github.com/selimellieh72/secure-login-assignment/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

/*
 * Helpers for auth service end-to-end tests. Each test gets its own fully
 * wired application (own database, own pepper, own rate limiter state)
 * served in-process via httptest.
 */

const (
	adminEmail    = "admin@example.com"
	adminPassword = "Admin123!secure"

	userEmail    = "alice@example.com"
	userPassword = "hunter2!hunter2"
)

func newTestClient(t *testing.T) *authsdk.Client {
	t.Helper()

	dir := t.TempDir()
	cfg := app.Config{
		JWTSecret:       "e2e-test-secret-that-is-long-enough!",
		Issuer:          "secure-login-test",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,

		AdminEmail:    adminEmail,
		AdminPassword: adminPassword,

		DatabaseFile:         filepath.Join(dir, "auth.db"),
		PepperFile:           filepath.Join(dir, "pepper"),
		Env:                  "test",
		LogLevel:             "error",
		LogFormat:            "text",
		ShutdownGracePeriod:  time.Second,
		HousekeepingInterval: time.Hour,
	}

	application, err := app.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Close() })

	srv := httptest.NewServer(application.Handler())
	t.Cleanup(srv.Close)

	return authsdk.NewClient(srv.URL)
}

func requireAPIError(t *testing.T, err error, wantStatus int) {
	t.Helper()

	var apiErr *authsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, wantStatus, apiErr.StatusCode)
}
