package http

import (
	"errors"
	"net/http"

	"github.com/selimellieh72/secure-login-assignment/internal/auth/service"
	"github.com/selimellieh72/secure-login-assignment/pkg/authsdk"
	"github.com/selimellieh72/secure-login-assignment/pkg/httpx"
	"github.com/selimellieh72/secure-login-assignment/pkg/slogx"
)

// MeHandler returns the authenticated caller's profile.
type MeHandler struct {
	UserService *service.UserService
}

func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	email := httpx.IdentityFromContext(ctx)
	if email == "" {
		authsdk.ErrInvalidToken.WriteError(w)
		return
	}

	user, err := h.UserService.Get(ctx, email)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			authsdk.ErrUserNotFound.WriteError(w)
			return
		}
		log.Error("profile lookup failed", "email", email, "err", err)
		authsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, authsdk.UserResponse{
		Email: user.Email,
		Role:  string(user.Role),
	})
}
