// internal/form/csrf.go
//
// Contact form subsystem: stateless CSRF tokens.
//
// Context
//   Rendered forms embed a hidden `csrf_token` input.  The server verifies
//   it on POST so only forms it rendered are accepted.  Tokens are
//   stateless:
//
//      base64url( nonce | unixMicro | HMAC_SHA256(key, nonce+unixMicro) )
//
//   •  nonce – 16 random bytes.
//   •  unixMicro – issue time, 8 bytes, big-endian.
//   •  HMAC – keyed with `form.csrf_key`, or a random per-process key.
//
//   Verification checks the signature and that the issue time lies within
//   MaxAge.  No server-side sessions are needed, which keeps the form state
//   entirely in the page.
//
//------------------------------------------------------------------------------

package form

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"time"
)

const (
	nonceBytes = 16
	tokenBytes = nonceBytes + 8 + sha256.Size // nonce + ts + sig

	// DefaultMaxAge bounds how long a rendered form stays submittable.
	DefaultMaxAge = 2 * time.Hour
)

// CSRF issues and verifies tokens with one key.
type CSRF struct {
	key    []byte
	maxAge time.Duration
	now    func() time.Time
}

// NewCSRF builds a CSRF helper.  encodedKey is base64url (raw or padded) of
// at least 32 bytes; when empty a random key is generated and ephemeral is
// true so the caller can warn that tokens die with the process.
func NewCSRF(encodedKey string) (c *CSRF, ephemeral bool, err error) {
	var key []byte
	if encodedKey == "" {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, false, fmt.Errorf("csrf: generate key: %w", err)
		}
		ephemeral = true
	} else {
		key, err = decodeKey(encodedKey)
		if err != nil {
			return nil, false, err
		}
	}
	return &CSRF{key: key, maxAge: DefaultMaxAge, now: time.Now}, ephemeral, nil
}

func decodeKey(s string) ([]byte, error) {
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		b, err = base64.URLEncoding.DecodeString(s)
	}
	if err != nil {
		return nil, fmt.Errorf("csrf: decode key: %w", err)
	}
	if len(b) < 32 {
		return nil, fmt.Errorf("csrf: key must be at least 32 bytes, got %d", len(b))
	}
	return b, nil
}

// Generate creates a new token.  Call once per form render.
func (c *CSRF) Generate() (string, error) {
	nonce := make([]byte, nonceBytes)
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	ts := make([]byte, 8)
	binary.BigEndian.PutUint64(ts, uint64(c.now().UnixMicro()))

	buf := make([]byte, 0, tokenBytes)
	buf = append(buf, nonce...)
	buf = append(buf, ts...)
	buf = append(buf, c.sign(nonce, ts)...)

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Verify returns true if tok passes HMAC and age checks.
func (c *CSRF) Verify(tok string) bool {
	if tok == "" {
		return false
	}
	raw, err := base64.RawURLEncoding.DecodeString(tok)
	if err != nil || len(raw) != tokenBytes {
		return false
	}

	nonce := raw[:nonceBytes]
	tsBytes := raw[nonceBytes : nonceBytes+8]
	sig := raw[nonceBytes+8:]

	issued := time.UnixMicro(int64(binary.BigEndian.Uint64(tsBytes)))
	now := c.now()
	if now.Sub(issued) > c.maxAge || issued.Sub(now) > time.Minute {
		// Older than maxAge, or from the future beyond clock skew.
		return false
	}

	return hmac.Equal(sig, c.sign(nonce, tsBytes))
}

func (c *CSRF) sign(nonce, ts []byte) []byte {
	mac := hmac.New(sha256.New, c.key)
	mac.Write(nonce)
	mac.Write(ts)
	return mac.Sum(nil)
}
