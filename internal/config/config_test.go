package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "3000" {
		t.Errorf("Port = %q, want 3000", cfg.Port)
	}
	if cfg.DBTimeout != 5*time.Second {
		t.Errorf("DBTimeout = %v, want 5s", cfg.DBTimeout)
	}
	if cfg.SessionExpiry != 720*time.Hour {
		t.Errorf("SessionExpiry = %v, want 720h", cfg.SessionExpiry)
	}
	if cfg.IsProduction() {
		t.Error("default environment must not be production")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PASSWORD", "hunter2")
	t.Setenv("SESSION_EXPIRY", "1h")
	t.Setenv("APP_ENV", "production")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.DBHost != "db.internal" {
		t.Errorf("DBHost = %q", cfg.DBHost)
	}
	if cfg.SessionExpiry != time.Hour {
		t.Errorf("SessionExpiry = %v, want 1h", cfg.SessionExpiry)
	}
	if !cfg.IsProduction() {
		t.Error("expected production environment")
	}
}

func TestDSNContainsConnectionFields(t *testing.T) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "shop")
	t.Setenv("DB_PASSWORD", "hunter2")
	t.Setenv("DB_NAME", "shopdb")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	dsn := cfg.DSN()
	for _, want := range []string{"host=localhost", "user=shop", "password=hunter2", "dbname=shopdb"} {
		if !strings.Contains(dsn, want) {
			t.Errorf("DSN missing %q: %s", want, dsn)
		}
	}
}
