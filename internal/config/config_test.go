package config

import "testing"

func TestLoadConfig(t *testing.T) {
	t.Setenv("BOT_TOKEN", "token")
	t.Setenv("WEATHER_API", "weather-key")
	t.Setenv("ADMIN_ID", "42")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if cfg.TelegramConfig.Token != "token" {
		t.Fatalf("Token = %q", cfg.TelegramConfig.Token)
	}
	if cfg.TelegramConfig.AdminID != 42 {
		t.Fatalf("AdminID = %d, want 42", cfg.TelegramConfig.AdminID)
	}
	if cfg.PostgresConfig.Host != "localhost" {
		t.Fatalf("expected default postgres host, got %q", cfg.PostgresConfig.Host)
	}
}

func TestLoadConfigMissingToken(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")
	t.Setenv("WEATHER_API", "weather-key")
	t.Setenv("ADMIN_ID", "42")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error when BOT_TOKEN is missing")
	}
}

func TestLoadConfigBadAdminID(t *testing.T) {
	t.Setenv("BOT_TOKEN", "token")
	t.Setenv("WEATHER_API", "weather-key")
	t.Setenv("ADMIN_ID", "not-a-number")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error when ADMIN_ID is not numeric")
	}
}

func TestPostgresURL(t *testing.T) {
	p := PostgresConfig{
		Host: "db", Port: "5432", User: "u", Password: "p", DBName: "valera", SSLMode: "disable",
	}
	want := "postgres://u:p@db:5432/valera?sslmode=disable"
	if got := p.URL(); got != want {
		t.Fatalf("URL() = %q, want %q", got, want)
	}
}
