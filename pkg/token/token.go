package token

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
)

// Size is the number of random bytes behind a generated token (256 bits).
const Size = 32

// Token is a per-session secret value. An empty token generates its value
// on first access and keeps it for the rest of its lifetime.
type Token struct {
	value string
}

// New creates a token with an explicit value. No validation is done:
// an empty value means the token will be generated on first access.
func New(value string) *Token {
	return &Token{value: value}
}

// Value returns the token value, generating it if needed.
func (t *Token) Value() string {
	if t.value == "" {
		t.value = Generate()
	}
	return t.value
}

// String implements fmt.Stringer.
func (t *Token) String() string {
	return t.Value()
}

// Generate returns a new base64url encoded random value read from crypto/rand.
// It panics if the system random source fails: nothing secure can be issued
// without it.
func Generate() string {
	b := make([]byte, Size)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Errorf("token: read random bytes: %w", err))
	}
	return base64.RawURLEncoding.EncodeToString(b)
}

// Equal compares two token values in constant time.
// Empty values never match.
func Equal(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
