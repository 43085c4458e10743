package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const secret = "0123456789abcdef0123456789abcdef"

func TestVerifier_RoundTrip(t *testing.T) {
	v := NewVerifier(secret, "idp", "api")
	token, err := v.Issue("user-1", time.Minute)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	subject, err := v.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if subject != "user-1" {
		t.Fatalf("expected user-1, got %q", subject)
	}
}

func TestVerifier_Rejects(t *testing.T) {
	v := NewVerifier(secret, "idp", "api")

	expired, err := v.Issue("user-1", -time.Hour)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	otherAudience, err := NewVerifier(secret, "idp", "web").Issue("user-1", time.Minute)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	otherSecret, err := NewVerifier("ffffffffffffffffffffffffffffffff", "idp", "api").Issue("user-1", time.Minute)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    "idp",
		Audience:  jwt.ClaimStrings{"api"},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	tests := map[string]string{
		"garbage":        "not-a-token",
		"expired":        expired,
		"wrong audience": otherAudience,
		"wrong secret":   otherSecret,
		"no subject":     noSubject,
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := v.Verify(token); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestSubjectContext(t *testing.T) {
	if _, ok := SubjectFromContext(context.Background()); ok {
		t.Fatalf("expected anonymous background context")
	}
	if _, ok := SubjectFromContext(WithSubject(context.Background(), "  ")); ok {
		t.Fatalf("expected blank subject to stay anonymous")
	}
	subject, ok := SubjectFromContext(WithSubject(context.Background(), " user-1 "))
	if !ok || subject != "user-1" {
		t.Fatalf("expected user-1, got %q (%v)", subject, ok)
	}
}
