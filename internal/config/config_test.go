package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoad_Defaults(t *testing.T) {
	p := writeConfig(t, "storage:\n  dsn: postgres://localhost/tl\n")
	c, err := Load(p)
	if err != nil {
		t.Fatal(err)
	}
	if c.App.Env != "dev" || c.Log.Level != "info" {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.Cache.Kind != "memory" || c.Uploads.Root != "data" {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.MemoryTTL().Minutes() != 2 {
		t.Fatalf("unexpected ttl: %v", c.MemoryTTL())
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("TL_STORAGE_DSN", "postgres://override/db")
	t.Setenv("TL_CACHE_KIND", "redis")
	p := writeConfig(t, "storage:\n  dsn: postgres://file/db\n")
	c, err := Load(p)
	if err != nil {
		t.Fatal(err)
	}
	if c.Storage.DSN != "postgres://override/db" {
		t.Fatalf("env override lost: %s", c.Storage.DSN)
	}
	if c.Cache.Kind != "redis" {
		t.Fatalf("env override lost: %s", c.Cache.Kind)
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	p := writeConfig(t, "cache:\n  memory:\n    default_ttl: nonsense\n")
	if _, err := Load(p); err == nil {
		t.Fatal("expected error for invalid duration")
	}
}
