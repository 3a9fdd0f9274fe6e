package cookie

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/hkdf"
)

const (
	minSecretLength = 32
	minKeyLength    = 16

	keyInfo  = "sessionstate-cookie-v1"
	signInfo = "sessionstate-cookie-sign"
	sealInfo = "sessionstate-cookie-seal"
)

var enc = base64.RawURLEncoding

// keyring holds the material derived from one secret.
type keyring struct {
	mac  []byte
	aead cipher.AEAD
}

// Manager reads and writes cookies, optionally signed or encrypted.
// The first secret writes; every secret is tried on read so secrets can be
// rotated without logging users out. Signatures and ciphertexts are bound to
// the cookie name.
type Manager struct {
	keys     []keyring
	defaults Options
}

func New(secrets []string, opts ...Option) (*Manager, error) {
	m := &Manager{
		defaults: applyOptions(Options{
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		}, opts),
	}

	for i, s := range secrets {
		if s == "" {
			continue
		}
		if len(s) < minSecretLength {
			return nil, fmt.Errorf("%w: secret %d has %d chars, need at least %d", ErrSecretTooShort, i, len(s), minSecretLength)
		}
		k, err := newKeyring([]byte(s))
		if err != nil {
			return nil, err
		}
		m.keys = append(m.keys, k)
	}
	if len(m.keys) == 0 {
		return nil, ErrNoSecret
	}

	return m, nil
}

// NewFromKey builds a Manager from an application key instead of raw
// secrets. Previous keys keep verifying cookies written before a rotation.
func NewFromKey(key []byte, previous [][]byte, opts ...Option) (*Manager, error) {
	keys := append([][]byte{key}, previous...)
	secrets := make([]string, 0, len(keys))
	for _, k := range keys {
		s, err := DeriveSecret(k)
		if err != nil {
			return nil, err
		}
		secrets = append(secrets, s)
	}
	return New(secrets, opts...)
}

// DeriveSecret expands key into a cookie secret with HKDF-SHA256.
func DeriveSecret(key []byte) (string, error) {
	if len(key) < minKeyLength {
		return "", fmt.Errorf("%w: key has %d bytes, need at least %d", ErrSecretTooShort, len(key), minKeyLength)
	}
	out, err := expand(key, keyInfo, minSecretLength)
	if err != nil {
		return "", err
	}
	return enc.EncodeToString(out), nil
}

func expand(secret []byte, info string, n int) ([]byte, error) {
	out := make([]byte, n)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte(info)), out); err != nil {
		return nil, errors.Join(ErrKeyDerivation, err)
	}
	return out, nil
}

func newKeyring(secret []byte) (keyring, error) {
	mac, err := expand(secret, signInfo, sha256.Size)
	if err != nil {
		return keyring{}, err
	}
	sealKey, err := expand(secret, sealInfo, 32)
	if err != nil {
		return keyring{}, err
	}
	block, err := aes.NewCipher(sealKey)
	if err != nil {
		return keyring{}, errors.Join(ErrKeyDerivation, err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return keyring{}, errors.Join(ErrKeyDerivation, err)
	}
	return keyring{mac: mac, aead: aead}, nil
}

// Defaults returns the options applied to every cookie.
func (m *Manager) Defaults() Options {
	return m.defaults
}

func (m *Manager) Set(w http.ResponseWriter, name, value string, opts ...Option) error {
	o := applyOptions(m.defaults, opts)
	http.SetCookie(w, o.cookie(name, value))
	return nil
}

func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if errors.Is(err, http.ErrNoCookie) {
		return "", ErrCookieNotFound
	}
	if err != nil {
		return "", err
	}
	return c.Value, nil
}

// Delete expires the cookie on the client.
func (m *Manager) Delete(w http.ResponseWriter, name string, opts ...Option) {
	c := applyOptions(m.defaults, opts).cookie(name, "")
	c.MaxAge = -1
	c.Expires = time.Unix(0, 0)
	http.SetCookie(w, c)
}

// SetSigned writes value in the clear followed by an HMAC-SHA256 tag.
func (m *Manager) SetSigned(w http.ResponseWriter, name, value string, opts ...Option) error {
	payload := enc.EncodeToString([]byte(value))
	tag := enc.EncodeToString(m.keys[0].sign(name, payload))
	return m.Set(w, name, payload+"."+tag, opts...)
}

func (m *Manager) GetSigned(r *http.Request, name string) (string, error) {
	raw, err := m.Get(r, name)
	if err != nil {
		return "", err
	}

	payload, encodedTag, ok := strings.Cut(raw, ".")
	if !ok {
		return "", ErrInvalidFormat
	}
	tag, err := enc.DecodeString(encodedTag)
	if err != nil {
		return "", ErrInvalidFormat
	}
	value, err := enc.DecodeString(payload)
	if err != nil {
		return "", ErrInvalidFormat
	}

	for _, k := range m.keys {
		if hmac.Equal(tag, k.sign(name, payload)) {
			return string(value), nil
		}
	}
	return "", ErrInvalidSignature
}

// SetEncrypted writes nonce||ciphertext sealed with AES-256-GCM.
func (m *Manager) SetEncrypted(w http.ResponseWriter, name, value string, opts ...Option) error {
	aead := m.keys[0].aead
	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return err
	}
	sealed := aead.Seal(nonce, nonce, []byte(value), []byte(name))
	return m.Set(w, name, enc.EncodeToString(sealed), opts...)
}

func (m *Manager) GetEncrypted(r *http.Request, name string) (string, error) {
	raw, err := m.Get(r, name)
	if err != nil {
		return "", err
	}
	data, err := enc.DecodeString(raw)
	if err != nil {
		return "", ErrInvalidFormat
	}

	for _, k := range m.keys {
		n := k.aead.NonceSize()
		if len(data) < n {
			return "", ErrInvalidFormat
		}
		if plain, err := k.aead.Open(nil, data[:n], data[n:], []byte(name)); err == nil {
			return string(plain), nil
		}
	}
	return "", ErrDecryptionFailed
}

func (k keyring) sign(name, payload string) []byte {
	mac := hmac.New(sha256.New, k.mac)
	mac.Write([]byte(name))
	mac.Write([]byte{0})
	mac.Write([]byte(payload))
	return mac.Sum(nil)
}
