package service

import (
	"errors"
	"testing"

	"github.com/pizzaorder-next/internal/config"
	"github.com/pizzaorder-next/internal/constants"
	"github.com/pizzaorder-next/internal/repository"
)

func newAuthServiceForTest(t *testing.T, name string) *AuthService {
	t.Helper()
	db := openMenuTestDB(t, name)
	cfg := &config.Config{}
	cfg.JWT.SecretKey = "test-secret"
	cfg.JWT.ExpireHours = 1
	cfg.Security.PasswordPolicy = config.PasswordPolicyConfig{
		MinLength:     8,
		RequireLower:  true,
		RequireNumber: true,
	}
	return NewAuthService(cfg, repository.NewUserRepository(db))
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthServiceForTest(t, "auth_register_login")

	user, token, _, err := svc.Register("dana@example.com", "sufficient1", "", "he")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token after register")
	}
	if user.Role != constants.UserRoleUser {
		t.Fatalf("expected user role, got %s", user.Role)
	}
	if user.DisplayName != "dana" {
		t.Fatalf("expected nickname derived from email, got %s", user.DisplayName)
	}

	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("ParseJWT error: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != user.Email {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if _, _, _, err := svc.Login("dana@example.com", "sufficient1"); err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if _, _, _, err := svc.Login("dana@example.com", "wrong-pass1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, _, err := svc.Login("nobody@example.com", "sufficient1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc := newAuthServiceForTest(t, "auth_duplicate")

	if _, _, _, err := svc.Register("dana@example.com", "sufficient1", "", ""); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if _, _, _, err := svc.Register("dana@example.com", "sufficient1", "", ""); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestRegisterEnforcesPasswordPolicy(t *testing.T) {
	svc := newAuthServiceForTest(t, "auth_policy")

	if _, _, _, err := svc.Register("dana@example.com", "short1", "", ""); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
	if _, _, _, err := svc.Register("dana@example.com", "nonumbers", "", ""); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword for missing digit, got %v", err)
	}
}

func TestChangePasswordInvalidatesOldTokens(t *testing.T) {
	svc := newAuthServiceForTest(t, "auth_change_password")

	user, token, _, err := svc.Register("dana@example.com", "sufficient1", "", "")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	oldClaims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("ParseJWT error: %v", err)
	}

	if err := svc.ChangePassword(user.ID, "wrong", "replacement2"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
	if err := svc.ChangePassword(user.ID, "sufficient1", "replacement2"); err != nil {
		t.Fatalf("ChangePassword error: %v", err)
	}

	updated, err := svc.GetProfile(user.ID)
	if err != nil {
		t.Fatalf("GetProfile error: %v", err)
	}
	if updated.TokenVersion != oldClaims.TokenVersion+1 {
		t.Fatalf("expected token version bump, got %d", updated.TokenVersion)
	}
	if _, _, _, err := svc.Login("dana@example.com", "replacement2"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}
