package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"lms/learning/internal/model"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := NewAccessToken("secret", "issuer", time.Hour, Claims{
		Email:     "alice@x.com",
		FirstName: "Alice",
		LastName:  "Moreau",
		Role:      model.RoleInstructor,
		Status:    model.StatusActive,
	})
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	claims, err := ParseToken("secret", token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if claims.Email != "alice@x.com" || claims.Role != model.RoleInstructor || claims.Status != model.StatusActive {
		t.Fatalf("unexpected claims")
	}
	if claims.Subject != "alice@x.com" {
		t.Fatalf("expected subject to mirror email, got %s", claims.Subject)
	}
	if claims.ID == "" {
		t.Fatalf("expected token id")
	}
}

func TestValidateToken(t *testing.T) {
	token, err := NewAccessToken("secret", "issuer", time.Hour, Claims{
		Email: "alice@x.com",
		Role:  model.RoleInstructor,
	})
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	if !ValidateToken("secret", token, "alice@x.com") {
		t.Fatalf("expected fresh token to validate")
	}
	if ValidateToken("secret", token, "mallory@x.com") {
		t.Fatalf("expected subject mismatch to fail")
	}
	if ValidateToken("other-secret", token, "alice@x.com") {
		t.Fatalf("expected wrong secret to fail")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	// Issuing with a lifetime that has already elapsed stands in for a
	// clock advanced past the expiry.
	token, err := NewAccessToken("secret", "issuer", -61*time.Minute, Claims{
		Email: "alice@x.com",
		Role:  model.RoleInstructor,
	})
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	if _, err := ParseToken("secret", token); !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("expected expiry error, got %v", err)
	}
	if ValidateToken("secret", token, "alice@x.com") {
		t.Fatalf("expected expired token to fail validation")
	}
}

func TestParseTokenMalformed(t *testing.T) {
	if _, err := ParseToken("secret", "not-a-token"); err == nil {
		t.Fatalf("expected malformed token to error")
	}
	if claims, err := ParseToken("secret", ""); err == nil || claims != nil {
		t.Fatalf("expected empty token to error without claims")
	}
}

func TestExtractSubject(t *testing.T) {
	token, err := NewAccessToken("secret", "issuer", time.Hour, Claims{Email: "bob@x.com", Role: model.RoleEmployee})
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	subject, ok := ExtractSubject(token)
	if !ok || subject != "bob@x.com" {
		t.Fatalf("expected subject bob@x.com, got %q", subject)
	}
	if _, ok := ExtractSubject("garbage"); ok {
		t.Fatalf("expected garbage token to yield no subject")
	}
}
