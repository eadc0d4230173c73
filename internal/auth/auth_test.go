package auth

import (
	"testing"
	"time"
)

const secret = "test-secret"

func TestTokenRoundTrip(t *testing.T) {
	tok, err := MakeToken("uid-1", "a@x.com", "User A", "admin", secret, time.Hour)
	if err != nil {
		t.Fatalf("make token: %v", err)
	}

	claims, err := ParseToken(tok, secret)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != "uid-1" {
		t.Errorf("uid mismatch: %s", claims.UserID)
	}
	if claims.Email != "a@x.com" || claims.Name != "User A" {
		t.Errorf("identity mismatch: %s %s", claims.Email, claims.Name)
	}
	if claims.Role != "admin" {
		t.Errorf("role mismatch: %s", claims.Role)
	}

	// expiry honors the requested ttl
	diff := time.Until(claims.ExpiresAt.Time)
	if diff < 59*time.Minute || diff > 61*time.Minute {
		t.Errorf("expected ~1h expiry, got %v", diff)
	}
}

func TestParseTokenRejects(t *testing.T) {
	tok, _ := MakeToken("uid", "a@x.com", "A", "user", secret, time.Hour)

	if _, err := ParseToken(tok, "wrong-secret"); err == nil {
		t.Fatal("expected error for wrong secret")
	}
	if _, err := ParseToken("not.a.token", secret); err == nil {
		t.Fatal("expected error for garbage token")
	}

	expired, _ := MakeToken("uid", "a@x.com", "A", "user", secret, -time.Minute)
	if _, err := ParseToken(expired, secret); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cretpass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "s3cretpass" {
		t.Fatal("hash equals plaintext")
	}
	if !CheckPassword(hash, "s3cretpass") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "wrongpass") {
		t.Error("wrong password accepted")
	}
}
