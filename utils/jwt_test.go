package utils

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGenerateAndParseToken(t *testing.T) {
	secret := "test-secret"
	userID := primitive.NewObjectID().Hex()

	token, err := GenerateToken(userID, "organizer", secret)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ParseToken(token, secret)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("UserID = %q, want %q", claims.UserID, userID)
	}
	if claims.Role != "organizer" {
		t.Errorf("Role = %q, want organizer", claims.Role)
	}
	if claims.ExpiresAt == nil {
		t.Error("expected expiry to be set")
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(primitive.NewObjectID().Hex(), "user", "secret-a")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := ParseToken(token, "secret-b"); err == nil {
		t.Error("expected error for token signed with a different secret")
	}
}

func TestParseTokenGarbage(t *testing.T) {
	if _, err := ParseToken("not.a.token", "secret"); err == nil {
		t.Error("expected error for malformed token")
	}
}
