package form

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"
)

func testCSRF(t *testing.T) *CSRF {
	t.Helper()
	key := base64.RawURLEncoding.EncodeToString([]byte(strings.Repeat("k", 32)))
	c, ephemeral, err := NewCSRF(key)
	if err != nil {
		t.Fatal(err)
	}
	if ephemeral {
		t.Fatal("configured key reported as ephemeral")
	}
	return c
}

func TestCSRFRoundTrip(t *testing.T) {
	c := testCSRF(t)
	tok, err := c.Generate()
	if err != nil {
		t.Fatal(err)
	}
	if !c.Verify(tok) {
		t.Fatal("fresh token rejected")
	}
}

func TestCSRFRejectsTampering(t *testing.T) {
	c := testCSRF(t)
	tok, _ := c.Generate()

	raw, _ := base64.RawURLEncoding.DecodeString(tok)
	raw[0] ^= 0xff
	if c.Verify(base64.RawURLEncoding.EncodeToString(raw)) {
		t.Fatal("tampered token accepted")
	}
	for _, bad := range []string{"", "!!!", base64.RawURLEncoding.EncodeToString([]byte("short"))} {
		if c.Verify(bad) {
			t.Fatalf("Verify(%q) = true", bad)
		}
	}
}

func TestCSRFRejectsOtherKey(t *testing.T) {
	a := testCSRF(t)
	b, _, err := NewCSRF("")
	if err != nil {
		t.Fatal(err)
	}
	tok, _ := a.Generate()
	if b.Verify(tok) {
		t.Fatal("token verified under a different key")
	}
}

func TestCSRFExpiry(t *testing.T) {
	c := testCSRF(t)
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }
	tok, _ := c.Generate()

	c.now = func() time.Time { return base.Add(DefaultMaxAge - time.Second) }
	if !c.Verify(tok) {
		t.Fatal("token rejected inside max age")
	}
	c.now = func() time.Time { return base.Add(DefaultMaxAge + time.Second) }
	if c.Verify(tok) {
		t.Fatal("expired token accepted")
	}
	c.now = func() time.Time { return base.Add(-2 * time.Minute) }
	if c.Verify(tok) {
		t.Fatal("token from the future accepted")
	}
}

func TestNewCSRFKeys(t *testing.T) {
	if _, ephemeral, err := NewCSRF(""); err != nil || !ephemeral {
		t.Fatalf("empty key: ephemeral=%v err=%v", ephemeral, err)
	}
	if _, _, err := NewCSRF(base64.RawURLEncoding.EncodeToString([]byte("too short"))); err == nil {
		t.Fatal("short key accepted")
	}
	if _, _, err := NewCSRF("not base64 ***"); err == nil {
		t.Fatal("garbage key accepted")
	}
	padded := base64.URLEncoding.EncodeToString([]byte(strings.Repeat("p", 33)))
	if _, _, err := NewCSRF(padded); err != nil {
		t.Fatalf("padded key rejected: %v", err)
	}
}
