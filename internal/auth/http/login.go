package http

import (
	"errors"
	"net/http"

	"github.com/selimellieh72/secure-login-assignment/internal/auth/service"
	"github.com/selimellieh72/secure-login-assignment/pkg/authsdk"
	"github.com/selimellieh72/secure-login-assignment/pkg/httpx"
	"github.com/selimellieh72/secure-login-assignment/pkg/slogx"
)

// LoginHandler authenticates an email/password pair and returns a fresh
// token pair, displacing any previously active session.
type LoginHandler struct {
	SessionService *service.SessionService
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		authsdk.ErrMalformedRequest.WriteError(w)
		return
	}
	if req.Email == "" || req.Password == "" {
		authsdk.ErrMalformedRequest.WriteError(w)
		return
	}

	pair, err := h.SessionService.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			authsdk.ErrInvalidCredentials.WriteError(w)
			return
		}
		log.Error("login failed", "err", err)
		authsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, authsdk.AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		Email:        pair.Email,
	})
}
