package authsdk

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest is the body of POST /api/auth/refresh. Email is required;
// it must match the subject embedded in the presented refresh token.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
	Email        string `json:"email"`
}

// AuthResponse is returned by login, register, and refresh.
type AuthResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	Email        string `json:"email"`
}

// MessageResponse is returned by endpoints with nothing better to say,
// such as logout.
type MessageResponse struct {
	Message string `json:"message"`
}

// UserResponse is returned by GET /api/user/me.
type UserResponse struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is returned by the /livez and /readyz probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports per-dependency readiness.
type HealthChecks struct {
	Database string `json:"database"`
}
