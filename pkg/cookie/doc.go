// Package cookie provides the HTTP cookie manager used to carry session
// identifiers.
//
// A Manager is created with one or more secrets and default Options. Each
// secret is expanded with HKDF into an HMAC-SHA256 key and an AES-256-GCM key.
// The first secret writes, all of them are tried on read, which allows
// rotation. Both the signature and the ciphertext cover the cookie name, so a
// value cannot be replayed under a different cookie.
//
//   - Set, Get, Delete: plain cookies
//   - SetSigned, GetSigned: signed cookies (integrity)
//   - SetEncrypted, GetEncrypted: encrypted cookies (integrity and privacy)
//
// Instead of raw secrets a Manager can be built from an application key with
// NewFromKey, which expands the key with HKDF-SHA256
// (golang.org/x/crypto/hkdf) so the key is never used for signing directly.
//
// # Usage
//
//	import "github.com/dmitrymomot/sessionstate/pkg/cookie"
//
//	mgr, err := cookie.NewFromKey(appKey, nil, cookie.WithSecure(true))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	_ = mgr.SetSigned(w, "sid", sessionID, cookie.WithMaxAge(3600))
//	id, err := mgr.GetSigned(r, "sid")
//
// # Errors
//
// Missing cookies return ErrCookieNotFound; tampered values return
// ErrInvalidSignature, ErrDecryptionFailed or ErrInvalidFormat.
package cookie
