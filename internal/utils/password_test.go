package utils

import "testing"

func TestPasswordHashAndCheck(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "hunter22" {
		t.Fatal("password stored in the clear")
	}

	if !CheckPasswordHash("hunter22", hash) {
		t.Error("expected correct password to verify")
	}
	if CheckPasswordHash("hunter23", hash) {
		t.Error("expected wrong password to fail")
	}
	if CheckPasswordHash("hunter22", "not-a-hash") {
		t.Error("expected invalid hash to fail")
	}
}
