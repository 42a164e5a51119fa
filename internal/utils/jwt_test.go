package utils

import "testing"

func TestJWTRoundtrip(t *testing.T) {
	InitJWT("test-secret")

	token, err := GenerateJWT("64a0c1f2e3b4d5a6f7089b10", "patient")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ValidateJWT(token)
	if err != nil {
		t.Fatalf("ValidateJWT: %v", err)
	}
	if claims.UserID != "64a0c1f2e3b4d5a6f7089b10" {
		t.Errorf("expected user id to survive roundtrip, got %q", claims.UserID)
	}
	if claims.Role != "patient" {
		t.Errorf("expected role patient, got %q", claims.Role)
	}
	if claims.ExpiresAt == nil {
		t.Error("expected expiry to be set")
	}
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	InitJWT("secret-one")
	token, err := GenerateJWT("abc", "admin")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	InitJWT("secret-two")
	if _, err := ValidateJWT(token); err == nil {
		t.Fatal("expected validation to fail with a different secret")
	}
}

func TestJWTRejectsGarbage(t *testing.T) {
	InitJWT("test-secret")
	if _, err := ValidateJWT("not-a-token"); err == nil {
		t.Fatal("expected validation of garbage to fail")
	}
}

func TestJWTRequiresSecret(t *testing.T) {
	InitJWT("")
	if _, err := GenerateJWT("abc", "admin"); err == nil {
		t.Fatal("expected error when secret is unset")
	}
	if _, err := ValidateJWT("whatever"); err == nil {
		t.Fatal("expected error when secret is unset")
	}
}
