package config

import (
	"os"
	"testing"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ADMIN_BOT_TOKEN", "123456789:test-token")
	t.Setenv("ADMIN_IDS", "10, 20,30")
}

func TestLoad(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Telegram.AdminBotToken != "123456789:test-token" {
		t.Errorf("admin token = %q", cfg.Telegram.AdminBotToken)
	}
	if len(cfg.Telegram.AdminIDs) != 3 {
		t.Fatalf("expected 3 admin ids, got %d", len(cfg.Telegram.AdminIDs))
	}
	if cfg.Telegram.AdminIDs[1] != 20 {
		t.Errorf("admin id = %d, want 20 despite surrounding spaces", cfg.Telegram.AdminIDs[1])
	}
	if cfg.Database.Host != "localhost" {
		t.Errorf("database host = %q, want default", cfg.Database.Host)
	}
	if cfg.Service.Name != "gate-service" {
		t.Errorf("service name = %q, want default", cfg.Service.Name)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	tests := []struct {
		name  string
		unset string
	}{
		{"missing token", "ADMIN_BOT_TOKEN"},
		{"missing operator allowlist", "ADMIN_IDS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.unset, "")
			if _, err := Load(); err == nil {
				t.Errorf("expected an error with %s unset", tt.unset)
			}
		})
	}
}

func TestLoad_InvalidAdminID(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ADMIN_IDS", "10,nope")

	if _, err := Load(); err == nil {
		t.Error("expected an error for a non-numeric admin id")
	}
}

func TestIsAdmin(t *testing.T) {
	cfg := &TelegramConfig{AdminIDs: []int64{10, 20}}

	if !cfg.IsAdmin(10) {
		t.Error("expected 10 to be an operator")
	}
	if cfg.IsAdmin(30) {
		t.Error("expected 30 to be rejected")
	}
}

func TestGetDSN(t *testing.T) {
	cfg := &DatabaseConfig{
		Host:     "db",
		Port:     "5432",
		User:     "u",
		Password: "p",
		DBName:   "d",
		SSLMode:  "disable",
	}

	want := "host=db port=5432 user=u password=p dbname=d sslmode=disable"
	if got := cfg.GetDSN(); got != want {
		t.Errorf("dsn = %q, want %q", got, want)
	}
}

func TestIsAdmin_EmptyAllowlist(t *testing.T) {
	cfg := &TelegramConfig{}
	if cfg.IsAdmin(0) {
		t.Error("an empty allowlist must reject everyone")
	}
}

// os.Getenv defaults are exercised indirectly by TestLoad; keep the
// direct check for the empty-value path
func TestGetEnv(t *testing.T) {
	os.Unsetenv("MEDIAFLOW_TEST_KEY")
	if got := getEnv("MEDIAFLOW_TEST_KEY", "fallback"); got != "fallback" {
		t.Errorf("getEnv = %q, want fallback", got)
	}
}
