package jwtutil

import (
	"testing"

	"inventory-service/pkg/config"
)

func TestGenerateAndValidateToken(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "test-secret", ExpirationHours: 1})

	token, err := GenerateToken("owner@demo.local", 1, 42, "Demo Tenant", "OWNER")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.Email != "owner@demo.local" {
		t.Errorf("expected email owner@demo.local, got %s", claims.Email)
	}
	if claims.UserID != 1 {
		t.Errorf("expected user id 1, got %d", claims.UserID)
	}
	if claims.TenantID != 42 {
		t.Errorf("expected tenant id 42, got %d", claims.TenantID)
	}
	if claims.TenantName != "Demo Tenant" {
		t.Errorf("expected tenant name Demo Tenant, got %s", claims.TenantName)
	}
	if claims.Role != "OWNER" {
		t.Errorf("expected role OWNER, got %s", claims.Role)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "first-secret", ExpirationHours: 1})
	token, err := GenerateToken("user@demo.local", 2, 7, "", "STAFF")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	Initialize(&config.JWTConfig{SigningKey: "second-secret", ExpirationHours: 1})
	if _, err := ValidateToken(token); err == nil {
		t.Fatal("expected validation to fail with a different signing key")
	}
}

func TestValidateToken_Garbage(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "test-secret", ExpirationHours: 1})
	if _, err := ValidateToken("not.a.token"); err == nil {
		t.Fatal("expected validation to fail for malformed token")
	}
}
