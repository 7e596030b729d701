package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/selimellieh72/secure-login-assignment/internal/auth/service"
	"github.com/selimellieh72/secure-login-assignment/internal/auth/store"
	"github.com/selimellieh72/secure-login-assignment/pkg/httpx"
	"github.com/selimellieh72/secure-login-assignment/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	validator    httpx.TokenValidator
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store          store.Store
	SessionService *service.SessionService
	UserService    *service.UserService
}

func NewRouter(
	validator httpx.TokenValidator,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		validator:    validator,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUser()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	// Credential and token endpoints take anonymous traffic, so they get
	// the strict per-IP limit to slow brute forcing.
	r.Mux.Handle("POST /api/auth/login",
		httpx.Chain(&LoginHandler{SessionService: r.SessionService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("POST /api/auth/register",
		httpx.Chain(&RegisterHandler{SessionService: r.SessionService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("POST /api/auth/refresh",
		httpx.Chain(&RefreshHandler{SessionService: r.SessionService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// Logout requires a valid access token.
	r.Mux.Handle("POST /api/auth/logout",
		httpx.Chain(&LogoutHandler{SessionService: r.SessionService},
			httpx.AuthnMiddleware(r.validator),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerUser() {
	r.Mux.Handle("GET /api/user/me",
		httpx.Chain(&MeHandler{UserService: r.UserService},
			httpx.AuthnMiddleware(r.validator),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
