package http

import (
	"errors"
	"net/http"

	"github.com/selimellieh72/secure-login-assignment/internal/auth/service"
	"github.com/selimellieh72/secure-login-assignment/pkg/authsdk"
	"github.com/selimellieh72/secure-login-assignment/pkg/httpx"
	"github.com/selimellieh72/secure-login-assignment/pkg/slogx"
)

// RefreshHandler exchanges a live refresh token for a new token pair,
// consuming the presented token in the process.
type RefreshHandler struct {
	SessionService *service.SessionService
}

func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.RefreshRequest
	if err := decodeJSON(r, &req); err != nil {
		authsdk.ErrMalformedRequest.WriteError(w)
		return
	}
	if req.RefreshToken == "" || req.Email == "" {
		authsdk.ErrMalformedRequest.WriteError(w)
		return
	}

	pair, err := h.SessionService.Refresh(ctx, req.RefreshToken, req.Email)
	if err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			authsdk.ErrInvalidToken.WriteError(w)
			return
		}
		log.Error("refresh failed", "err", err)
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
