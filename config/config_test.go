package config

import (
	"os"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	os.Unsetenv("SERVER_PORT")
	os.Unsetenv("DB_HOST")
	os.Unsetenv("DB_PORT")
	os.Unsetenv("DB_USE_SSL")
	os.Unsetenv("JWT_SECRET")
	os.Unsetenv("WEB_DIST")

	cfg := LoadConfig()
	if cfg.ServerPort != 8080 {
		t.Fatalf("unexpected port: %d", cfg.ServerPort)
	}
	if cfg.Database.Host != "localhost" || cfg.Database.Port != 5432 {
		t.Fatalf("unexpected database defaults: %+v", cfg.Database)
	}
	if cfg.Database.UseSSL {
		t.Fatalf("ssl should default to off")
	}
	if cfg.JWTSecret != "" {
		t.Fatalf("jwt secret should have no default")
	}
	if cfg.WebDist == "" {
		t.Fatalf("web dist should have a default")
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USE_SSL", "true")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg := LoadConfig()
	if cfg.ServerPort != 9090 {
		t.Fatalf("unexpected port: %d", cfg.ServerPort)
	}
	if cfg.Database.Host != "db.internal" || cfg.Database.Port != 5433 {
		t.Fatalf("unexpected database config: %+v", cfg.Database)
	}
	if !cfg.Database.UseSSL {
		t.Fatalf("ssl should be on")
	}
	if cfg.JWTSecret != "s3cret" {
		t.Fatalf("unexpected jwt secret: %q", cfg.JWTSecret)
	}
}
