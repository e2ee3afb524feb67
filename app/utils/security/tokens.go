package security

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// GenerateToken returns a hex-encoded random token of n bytes. Used for the
// OAuth2 state parameter and other unguessable single-use values.
func GenerateToken(n int) (string, error) {
	if n < 16 {
		return "", fmt.Errorf("token length must be at least 16 bytes, got %d", n)
	}
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// SignToken produces the cookie representation of a session identifier:
// the identifier followed by an HMAC-SHA256 signature keyed by the session
// secret. Forged cookie values are rejected before any store lookup.
func SignToken(token, secret string) string {
	return token + "." + sign(token, secret)
}

// VerifySignedToken splits and verifies a signed cookie value, returning the
// embedded token. Comparison is constant-time.
func VerifySignedToken(value, secret string) (string, bool) {
	i := strings.LastIndex(value, ".")
	if i <= 0 || i == len(value)-1 {
		return "", false
	}
	token, signature := value[:i], value[i+1:]
	expected := sign(token, secret)
	if !hmac.Equal([]byte(signature), []byte(expected)) {
		return "", false
	}
	return token, true
}

// ConstantTimeEquals compares two strings without leaking length-prefix timing
func ConstantTimeEquals(a, b string) bool {
	return hmac.Equal([]byte(a), []byte(b))
}

func sign(token, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(token))
	return hex.EncodeToString(mac.Sum(nil))
}
