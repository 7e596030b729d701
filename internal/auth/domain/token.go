package domain

// TokenPair is what a successful login, register, or refresh returns: a
// short-lived access token and the single currently-valid refresh token,
// both bound to the same subject. Neither token is persisted verbatim
// anywhere server-side.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	Email        string
}
