package utils

import (
	"testing"
	"time"

	"agenda-api/core/constants"
	"agenda-api/core/errors"

	"github.com/google/uuid"
	"github.com/spf13/viper"
)

func setTestSecret(t *testing.T) {
	t.Helper()
	viper.AutomaticEnv()
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestGenerateAndValidateToken(t *testing.T) {
	setTestSecret(t)

	userID := uuid.New()
	token, err := GenerateToken(userID, "ana@example.com", true, constants.ScopeTokenAccess, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, appErr := ValidateAndParseToken(token)
	if appErr != nil {
		t.Fatalf("ValidateAndParseToken failed: %v", appErr)
	}
	if claims.UserID != userID {
		t.Errorf("UserID = %s, want %s", claims.UserID, userID)
	}
	if claims.Email != "ana@example.com" {
		t.Errorf("Email = %s", claims.Email)
	}
	if !claims.IsAdmin {
		t.Error("expected IsAdmin")
	}
	if claims.Scope != constants.ScopeTokenAccess {
		t.Errorf("Scope = %s", claims.Scope)
	}
}

func TestValidateExpiredToken(t *testing.T) {
	setTestSecret(t)

	token, err := GenerateToken(uuid.New(), "a@example.com", false, constants.ScopeTokenAccess, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	_, appErr := ValidateAndParseToken(token)
	if appErr == nil {
		t.Fatal("expected error for expired token")
	}
	if appErr.Code != errors.ErrTokenExpired {
		t.Errorf("expected %s, got %s", errors.ErrTokenExpired, appErr.Code)
	}
}

func TestValidateGarbageToken(t *testing.T) {
	setTestSecret(t)

	_, appErr := ValidateAndParseToken("not.a.token")
	if appErr == nil || appErr.Code != errors.ErrUnauthorized {
		t.Fatalf("expected UNAUTHORIZED, got %v", appErr)
	}
}

func TestValidateTamperedToken(t *testing.T) {
	setTestSecret(t)

	token, err := GenerateToken(uuid.New(), "a@example.com", false, constants.ScopeTokenAccess, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	t.Setenv("JWT_SECRET", "another-secret")
	if _, appErr := ValidateAndParseToken(token); appErr == nil {
		t.Fatal("expected signature verification to fail")
	}
}
