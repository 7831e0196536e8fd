package auth

import (
	"testing"
	"time"
)

func TestJWTManager_GenerateAndValidate(t *testing.T) {
	config := JWTConfig{
		SecretKey:     "test-secret-key",
		TokenDuration: 1 * time.Hour,
		Issuer:        "test-issuer",
	}
	manager := NewJWTManager(config)

	userID := "user-123"
	username := "a1"

	token, err := manager.Generate(userID, username)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if token == "" {
		t.Error("Generate() returned empty token")
	}

	claims, err := manager.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if claims.Subject != userID {
		t.Errorf("claims.Subject = %v, want %v", claims.Subject, userID)
	}
	if claims.Username != username {
		t.Errorf("claims.Username = %v, want %v", claims.Username, username)
	}
	if claims.Issuer != config.Issuer {
		t.Errorf("claims.Issuer = %v, want %v", claims.Issuer, config.Issuer)
	}
}

func TestJWTManager_InvalidToken(t *testing.T) {
	config := DefaultJWTConfig()
	manager := NewJWTManager(config)

	tests := []struct {
		name  string
		token string
	}{
		{
			name:  "empty token",
			token: "",
		},
		{
			name:  "random string",
			token: "not.a.valid.token",
		},
		{
			name:  "malformed jwt",
			token: "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.invalid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := manager.Validate(tt.token)
			if err == nil {
				t.Error("Validate() should return error for invalid token")
			}
		})
	}
}

func TestJWTManager_WrongSecretKey(t *testing.T) {
	config1 := JWTConfig{
		SecretKey:     "secret-key-1",
		TokenDuration: 1 * time.Hour,
		Issuer:        "test-issuer",
	}
	config2 := JWTConfig{
		SecretKey:     "secret-key-2",
		TokenDuration: 1 * time.Hour,
		Issuer:        "test-issuer",
	}

	manager1 := NewJWTManager(config1)
	manager2 := NewJWTManager(config2)

	// Generate token with manager1
	token, err := manager1.Generate("user-123", "a1")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	// Try to validate with manager2 (different secret)
	_, err = manager2.Validate(token)
	if err == nil {
		t.Error("Validate() should fail with different secret key")
	}
}

func TestJWTManager_ExpiredToken(t *testing.T) {
	config := JWTConfig{
		SecretKey:     "test-secret-key",
		TokenDuration: 1 * time.Millisecond, // Very short duration
		Issuer:        "test-issuer",
	}
	manager := NewJWTManager(config)

	token, err := manager.Generate("user-123", "a1")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	// Wait for token to expire
	time.Sleep(10 * time.Millisecond)

	_, err = manager.Validate(token)
	if err == nil {
		t.Error("Validate() should fail for expired token")
	}
	if err != ErrExpiredToken {
		t.Errorf("expected ErrExpiredToken, got %v", err)
	}
}

func TestJWTManager_TokenDuration(t *testing.T) {
	config := JWTConfig{
		SecretKey:     "test-secret-key",
		TokenDuration: 30 * time.Minute,
		Issuer:        "test-issuer",
	}
	manager := NewJWTManager(config)

	expected := int64(30 * 60) // 30 minutes in seconds
	got := manager.TokenDuration()

	if got != expected {
		t.Errorf("TokenDuration() = %v, want %v", got, expected)
	}
}
