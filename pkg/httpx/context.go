package httpx

import "context"

type ctxKey string

// CtxKeyIdentity carries the authenticated subject (email) resolved from a
// bearer access token.
const CtxKeyIdentity ctxKey = "identity"

// IdentityFromContext returns the authenticated identity, or "" when the
// request was not authenticated.
func IdentityFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyIdentity).(string); ok {
		return v
	}
	return ""
}
