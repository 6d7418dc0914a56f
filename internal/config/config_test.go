package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Expected default driver sqlite, got %s", cfg.Database.Driver)
	}
	if cfg.Auth.AccessTokenTTL != time.Hour {
		t.Errorf("Expected default token TTL 1h, got %v", cfg.Auth.AccessTokenTTL)
	}
	if cfg.Upload.MaxSizeBytes != 10*1024*1024 {
		t.Errorf("Expected default upload cap 10MiB, got %d", cfg.Upload.MaxSizeBytes)
	}
	if !cfg.RateLimit.Enabled {
		t.Error("Expected rate limiting enabled by default")
	}
	if cfg.Redis.Enabled {
		t.Error("Expected redis disabled by default")
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	os.Setenv("PORT", "9090")
	os.Setenv("DB_DRIVER", "postgres")
	os.Setenv("DB_PASSWORD", "pw")
	os.Setenv("ACCESS_TOKEN_TTL", "15m")
	defer func() {
		os.Unsetenv("PORT")
		os.Unsetenv("DB_DRIVER")
		os.Unsetenv("DB_PASSWORD")
		os.Unsetenv("ACCESS_TOKEN_TTL")
	}()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Expected port 9090, got %s", cfg.Server.Port)
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("Expected driver postgres, got %s", cfg.Database.Driver)
	}
	if cfg.Auth.AccessTokenTTL != 15*time.Minute {
		t.Errorf("Expected token TTL 15m, got %v", cfg.Auth.AccessTokenTTL)
	}
}

func TestLoadConfigProductionGuards(t *testing.T) {
	os.Setenv("ENVIRONMENT", "production")
	defer os.Unsetenv("ENVIRONMENT")

	if _, err := LoadConfig(); err == nil {
		t.Error("Expected error for default JWT secret in production")
	}

	os.Setenv("JWT_SECRET", "real-secret")
	os.Setenv("DB_DRIVER", "postgres")
	defer func() {
		os.Unsetenv("JWT_SECRET")
		os.Unsetenv("DB_DRIVER")
	}()

	if _, err := LoadConfig(); err == nil {
		t.Error("Expected error for missing postgres password in production")
	}

	os.Setenv("DB_PASSWORD", "pw")
	defer os.Unsetenv("DB_PASSWORD")

	if _, err := LoadConfig(); err != nil {
		t.Errorf("Expected production config to load, got %v", err)
	}
}

func TestDSNHelpers(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host: "db", Port: "5432", User: "svc", Password: "pw", Name: "taskhub", SSLMode: "disable",
		},
		Redis:  RedisConfig{Host: "cache", Port: "6379"},
		Server: ServerConfig{Host: "0.0.0.0", Port: "8080"},
	}

	want := "host=db port=5432 user=svc password=pw dbname=taskhub sslmode=disable"
	if got := cfg.GetDatabaseDSN(); got != want {
		t.Errorf("GetDatabaseDSN: got %q", got)
	}
	if got := cfg.GetRedisAddr(); got != "cache:6379" {
		t.Errorf("GetRedisAddr: got %q", got)
	}
	if got := cfg.GetServerAddr(); got != "0.0.0.0:8080" {
		t.Errorf("GetServerAddr: got %q", got)
	}
}
