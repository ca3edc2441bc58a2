// cliparse/cliparse_test.go
package cliparse

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	for _, name := range []string{
		"PORT", "DATABASE_URL", "DATABASE_TYPE", "CONFIRMATION_THRESHOLD",
		"RETRY_AFTER_SECONDS", "RATE_LIMIT_MAX", "RATE_LIMIT_WINDOW_MS",
		"RATE_LIMIT_CAPACITY", "CORS_ORIGINS", "TRUST_PROXY", "IDENTITY_SALT",
	} {
		t.Setenv(name, "")
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("IDENTITY_SALT", "salt")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != DefaultPort {
		t.Errorf("expected port %d, got %d", DefaultPort, cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" || cfg.DatabaseURL != DefaultDatabaseURL {
		t.Errorf("expected default sqlite database, got %s %s", cfg.DatabaseType, cfg.DatabaseURL)
	}
	if cfg.ConfirmationThreshold != 2 {
		t.Errorf("expected threshold 2, got %d", cfg.ConfirmationThreshold)
	}
	if cfg.RetryAfter != 50*time.Second {
		t.Errorf("expected retry-after 50s, got %s", cfg.RetryAfter)
	}
	if cfg.RateLimitMax != 100 || cfg.RateLimitWindow != 15*time.Minute {
		t.Errorf("unexpected rate limit %d per %s", cfg.RateLimitMax, cfg.RateLimitWindow)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Errorf("expected 2 default origins, got %v", cfg.CORSOrigins)
	}
	if cfg.TrustProxy {
		t.Error("forwarding headers should not be trusted by default")
	}
}

func TestParseFlags_EnvVars(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("CONFIRMATION_THRESHOLD", "3")
	t.Setenv("RETRY_AFTER_SECONDS", "10")
	t.Setenv("RATE_LIMIT_WINDOW_MS", "60000")
	t.Setenv("CORS_ORIGINS", "https://vote.example.com, https://admin.example.com")
	t.Setenv("TRUST_PROXY", "true")
	t.Setenv("IDENTITY_SALT", "test-salt")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.ConfirmationThreshold != 3 {
		t.Errorf("expected threshold 3, got %d", cfg.ConfirmationThreshold)
	}
	if cfg.RetryAfter != 10*time.Second {
		t.Errorf("expected retry-after 10s, got %s", cfg.RetryAfter)
	}
	if cfg.RateLimitWindow != time.Minute {
		t.Errorf("expected 1m window, got %s", cfg.RateLimitWindow)
	}
	if len(cfg.CORSOrigins) != 4 || cfg.CORSOrigins[3] != "https://admin.example.com" {
		t.Errorf("unexpected origins %v", cfg.CORSOrigins)
	}
	if !cfg.TrustProxy {
		t.Error("expected TRUST_PROXY to be read")
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("CONFIRMATION_THRESHOLD", "5")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-threshold", "1", "-identity-salt", "s1"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.ConfirmationThreshold != 1 {
		t.Errorf("CLI should override env: expected threshold 1, got %d", cfg.ConfirmationThreshold)
	}
	if cfg.IdentitySalt != "s1" {
		t.Errorf("expected salt from flag, got %q", cfg.IdentitySalt)
	}

	cfg, err = ParseFlags([]string{"-trust-proxy", "-identity-salt", "s1"})
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.TrustProxy {
		t.Error("expected -trust-proxy to be set")
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"missing salt", nil, nil},
		{"invalid port", map[string]string{"PORT": "abc", "IDENTITY_SALT": "s"}, nil},
		{"zero threshold", map[string]string{"CONFIRMATION_THRESHOLD": "-1", "IDENTITY_SALT": "s"}, nil},
		{"postgres without url", map[string]string{"DATABASE_TYPE": "postgres", "IDENTITY_SALT": "s"}, nil},
		{"unknown database", map[string]string{"DATABASE_TYPE": "mongo", "IDENTITY_SALT": "s"}, nil},
		{"bad rate limit", map[string]string{"RATE_LIMIT_MAX": "0", "IDENTITY_SALT": "s"}, nil},
		{"bad trust proxy", map[string]string{"TRUST_PROXY": "maybe", "IDENTITY_SALT": "s"}, nil},
		{"unknown flag", map[string]string{"IDENTITY_SALT": "s"}, []string{"-nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			if _, err := ParseFlags(tt.args); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
