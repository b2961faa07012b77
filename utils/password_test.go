package utils

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "hunter22" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !CheckPassword(hash, "hunter22") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "hunter23") {
		t.Error("wrong password accepted")
	}
}

func TestCheckPasswordInvalidHash(t *testing.T) {
	if CheckPassword("not-a-bcrypt-hash", "whatever") {
		t.Error("invalid hash accepted")
	}
}
