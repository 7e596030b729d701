package http

import (
	"errors"
	"net/http"
	"net/mail"

	"github.com/selimellieh72/secure-login-assignment/internal/auth/service"
	"github.com/selimellieh72/secure-login-assignment/pkg/authsdk"
	"github.com/selimellieh72/secure-login-assignment/pkg/httpx"
	"github.com/selimellieh72/secure-login-assignment/pkg/slogx"
)

const minPasswordLength = 8

// RegisterHandler creates a new account and logs it straight in.
type RegisterHandler struct {
	SessionService *service.SessionService
}

func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		authsdk.ErrMalformedRequest.WriteError(w)
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		authsdk.ErrMalformedRequest.WriteError(w)
		return
	}
	if len(req.Password) < minPasswordLength {
		authsdk.ErrMalformedRequest.WriteError(w)
		return
	}

	pair, err := h.SessionService.Register(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			authsdk.ErrEmailTaken.WriteError(w)
			return
		}
		log.Error("registration failed", "err", err)
		authsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusCreated, authsdk.AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		Email:        pair.Email,
	})
}
