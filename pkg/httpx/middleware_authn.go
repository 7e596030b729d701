package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/selimellieh72/secure-login-assignment/pkg/slogx"
)

// TokenValidator verifies a compact token and returns its subject.
// *jwtx.Codec satisfies this.
type TokenValidator interface {
	Validate(token string) (string, error)
}

// AuthnMiddleware requires a valid bearer access token and injects the
// resolved identity into the request context. The response body never
// distinguishes why the token was rejected.
func AuthnMiddleware(v TokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w)
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			subject, err := v.Validate(raw)
			if err != nil {
				log.Warn("bearer token rejected", "err", err)
				writeBearerError(w)
				return
			}

			ctx = context.WithValue(ctx, CtxKeyIdentity, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RFC 6750 bearer challenge with a deliberately generic description.
func writeBearerError(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
	WriteJSON(w, http.StatusUnauthorized, map[string]string{
		"error": "invalid or missing access token",
	})
}
