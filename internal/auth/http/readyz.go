package http

import (
	"net/http"
	"time"

	"github.com/selimellieh72/secure-login-assignment/internal/auth/store"
	"github.com/selimellieh72/secure-login-assignment/pkg/authsdk"
	"github.com/selimellieh72/secure-login-assignment/pkg/httpx"
)

// ReadyzHandler is the readiness probe. It degrades to 503 when the
// database stops answering pings.
func ReadyzHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &authsdk.HealthChecks{Database: "ok"}
		status := "ok"
		code := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, code, authsdk.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
