package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

const strongSecret = "0123456789abcdef0123456789abcdef"

// unsetEnv clears a variable for the test while still restoring the original
// value afterwards.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "shop-secret")
	t.Setenv("AUTH_SECRET", strongSecret)
	unsetEnv(t, "PORT")
	unsetEnv(t, "ACCESS_TOKEN_TTL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.TokenTTL != 12*time.Hour {
		t.Fatalf("expected default ttl 12h, got %v", cfg.TokenTTL)
	}
	if cfg.Address() != ":8080" {
		t.Fatalf("unexpected address %q", cfg.Address())
	}
}

func TestLoadRequiresAdminPassword(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "")
	t.Setenv("AUTH_SECRET", strongSecret)

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "ADMIN_PASSWORD") {
		t.Fatalf("expected ADMIN_PASSWORD error, got %v", err)
	}
}

func TestLoadRejectsShortSecret(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "shop-secret")
	t.Setenv("AUTH_SECRET", "too-short")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "AUTH_SECRET") {
		t.Fatalf("expected AUTH_SECRET error, got %v", err)
	}
}
