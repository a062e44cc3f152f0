package helpers

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	m := &TokenManager{Secret: []byte("secret-a")}

	tok, err := m.Generate("user-42")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if tok == "" {
		t.Fatal("empty token")
	}

	claims, err := m.Parse(tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != "user-42" {
		t.Fatalf("uid = %q, want user-42", claims.UserID)
	}
	if claims.ExpiresAt != nil {
		t.Fatal("zero TTL must not set an expiry")
	}
}

func TestTokensAreUnique(t *testing.T) {
	m := &TokenManager{Secret: []byte("secret-a")}

	// Issued back-to-back, well inside one second: the jti must still make
	// them distinct, or a re-login could fail to supersede the old session.
	first, err := m.Generate("user-42")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	second, err := m.Generate("user-42")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if first == second {
		t.Fatal("two tokens for the same user must never be identical")
	}
}

func TestTokenWrongSecret(t *testing.T) {
	a := &TokenManager{Secret: []byte("secret-a")}
	b := &TokenManager{Secret: []byte("secret-b")}

	tok, err := a.Generate("user-42")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := b.Parse(tok); err == nil {
		t.Fatal("token signed with another secret must not parse")
	}
}

func TestTokenExpiry(t *testing.T) {
	m := &TokenManager{Secret: []byte("secret-a"), TTL: time.Nanosecond}

	tok, err := m.Generate("user-42")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, err := m.Parse(tok); err == nil {
		t.Fatal("expired token must not parse")
	}
}

func TestTokenGarbage(t *testing.T) {
	m := &TokenManager{Secret: []byte("secret-a")}
	for _, tok := range []string{"", "garbage", "a.b.c"} {
		if _, err := m.Parse(tok); err == nil {
			t.Fatalf("token %q must not parse", tok)
		}
	}
}
