package cryptox

import (
	"crypto/sha256"
	"encoding/base64"
)

// FingerprintToken returns a deterministic SHA-256 fingerprint of a token,
// base64url encoded. Stored tokens are persisted as fingerprints so the
// database never holds the raw credential; comparing fingerprints is
// equivalent to comparing the tokens byte for byte.
func FingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
