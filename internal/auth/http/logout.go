package http

import (
	"errors"
	"net/http"

	"github.com/selimellieh72/secure-login-assignment/internal/auth/service"
	"github.com/selimellieh72/secure-login-assignment/pkg/authsdk"
	"github.com/selimellieh72/secure-login-assignment/pkg/httpx"
	"github.com/selimellieh72/secure-login-assignment/pkg/slogx"
)

// LogoutHandler clears the caller's refresh-token slot, ending the
// session. The caller is identified by the bearer access token, which the
// authn middleware has already validated.
type LogoutHandler struct {
	SessionService *service.SessionService
}

func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	email := httpx.IdentityFromContext(ctx)
	if email == "" {
		authsdk.ErrInvalidToken.WriteError(w)
		return
	}

	if err := h.SessionService.Logout(ctx, email); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			authsdk.ErrUserNotFound.WriteError(w)
			return
		}
		log.Error("logout failed", "email", email, "err", err)
		authsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, authsdk.MessageResponse{
		Message: "logged out",
	})
}
