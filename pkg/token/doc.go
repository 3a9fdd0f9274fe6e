// Package token provides the CSRF token carried by a session.
//
// A Token is either restored from a stored value or generated lazily from
// crypto/rand the first time its value is requested. Once materialized the
// value never changes, so every form rendered during a request sees the same
// token:
//
//	csrf := token.New("") // nothing stored yet
//	v1 := csrf.Value()    // 32 random bytes, base64url without padding
//	v2 := csrf.Value()    // v1 == v2
//
// Submitted values should be checked with Equal, which compares in constant
// time and rejects empty input.
package token
