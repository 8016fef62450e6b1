package auth

import (
	"testing"
	"time"
)

func TestPasswordHashing(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword() unexpected error: %v", err)
	}
	if !CheckPasswordHash("correct horse battery staple", hash) {
		t.Error("CheckPasswordHash() rejected the correct password")
	}
	if CheckPasswordHash("wrong password", hash) {
		t.Error("CheckPasswordHash() accepted a wrong password")
	}
}

func TestJWTRoundTrip(t *testing.T) {
	SetJWTKeyForTesting([]byte("test-signing-key"))

	token, err := GenerateJWT("user-1", "alice@example.org", "Alice", "user", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT() unexpected error: %v", err)
	}

	claims, err := ValidateJWT(token)
	if err != nil {
		t.Fatalf("ValidateJWT() unexpected error: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "alice@example.org" || claims.Role != "user" {
		t.Errorf("claims = %+v, want user-1/alice@example.org/user", claims)
	}
}

func TestJWTRejectsExpiredToken(t *testing.T) {
	SetJWTKeyForTesting([]byte("test-signing-key"))

	token, err := GenerateJWT("user-1", "alice@example.org", "Alice", "user", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWT() unexpected error: %v", err)
	}
	if _, err := ValidateJWT(token); err == nil {
		t.Error("ValidateJWT() accepted an expired token")
	}
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		email string
		valid bool
	}{
		{email: "alice@example.org", valid: true},
		{email: "alice", valid: false},
		{email: "@example.org", valid: false},
		{email: "alice@", valid: false},
		{email: "alice@nodot", valid: false},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			t.Parallel()

			err := validateEmail(tt.email)
			if tt.valid && err != nil {
				t.Errorf("validateEmail(%q) unexpected error: %v", tt.email, err)
			}
			if !tt.valid && err == nil {
				t.Errorf("validateEmail(%q) accepted an invalid address", tt.email)
			}
		})
	}
}
