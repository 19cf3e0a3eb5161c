package config

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", "development")
	t.Setenv("ADMIN_TOKEN", "token")
	t.Setenv("ADMIN_PASSWORD", "")
	t.Setenv("ADMIN_PASSWORD_HASH", "")
}

func TestLoadPrefersAdminPasswordHash(t *testing.T) {
	setBaseEnv(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	t.Setenv("ADMIN_PASSWORD_HASH", string(hash))
	// A plaintext value must be ignored once a hash is provided.
	t.Setenv("ADMIN_PASSWORD", "something-else")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.AdminPasswordHash != string(hash) {
		t.Fatalf("expected configured hash to win, got %q", cfg.AdminPasswordHash)
	}
}

func TestLoadHashesPlaintextFallback(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("ADMIN_PASSWORD", "hunter2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.AdminPasswordHash == "hunter2" {
		t.Fatal("plaintext password must not be stored as-is")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cfg.AdminPasswordHash), []byte("hunter2")); err != nil {
		t.Fatalf("stored hash must verify the password: %v", err)
	}
}

func TestLoadRejectsMissingAdminCredentials(t *testing.T) {
	setBaseEnv(t)

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "ADMIN_PASSWORD") {
		t.Fatalf("expected missing-credential error, got %v", err)
	}
}

func TestLoadRejectsMalformedHash(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("ADMIN_PASSWORD_HASH", "not-a-bcrypt-hash")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "ADMIN_PASSWORD_HASH") {
		t.Fatalf("expected invalid-hash error, got %v", err)
	}
}
