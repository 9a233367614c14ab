package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	h, err := NewHS256("s3cret", "dev")
	if err != nil {
		t.Fatalf("NewHS256: %v", err)
	}
	token, err := h.Sign(Claims{Sub: "user-1", Email: "a@b.co"})
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	claims, err := h.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Sub != "user-1" || claims.Email != "a@b.co" || claims.Exp == 0 {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestVerifyRejects(t *testing.T) {
	h, _ := NewHS256("s3cret", "dev")
	other, _ := NewHS256("other", "dev")
	token, _ := h.Sign(Claims{Sub: "user-1"})

	if _, err := other.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected wrong secret to fail, got %v", err)
	}
	if _, err := h.Verify("a.b"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected malformed token to fail, got %v", err)
	}
	tampered := token[:strings.LastIndex(token, ".")] + ".AAAA"
	if _, err := h.Verify(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected tampered token to fail, got %v", err)
	}

	h.now = func() time.Time { return time.Now().Add(48 * time.Hour) }
	if _, err := h.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected expired token to fail, got %v", err)
	}
}

func TestNewHS256RequiresSecretInProduction(t *testing.T) {
	if _, err := NewHS256("", "production"); !errors.Is(err, ErrMissingSecret) {
		t.Fatalf("expected ErrMissingSecret, got %v", err)
	}
	if _, err := NewHS256("", "dev"); err != nil {
		t.Fatalf("dev should fall back to a default secret: %v", err)
	}
}
