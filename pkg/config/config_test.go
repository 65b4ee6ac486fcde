package config

import (
	"os"
	"path/filepath"
	"testing"
)

const sample = `
environment: test
server:
  port: 8080
  read_timeout: 10s
  write_timeout: 10s
  shutdown_timeout: 5s
backend:
  base_url: http://backend:9000
  timeout: 3s
  bulk_page_size: 500
cache:
  mode: memory
  snapshot_ttl: 30s
chart:
  width: 640
  height: 280
  padding_frac: 0.05
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	c, err := Load(writeConfig(t, sample))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Server.Port != 8080 {
		t.Fatalf("unexpected port %d", c.Server.Port)
	}
	if c.Backend.BulkPageSize != 500 {
		t.Fatalf("unexpected bulk page size %d", c.Backend.BulkPageSize)
	}
	if c.Chart.PaddingFrac != 0.05 {
		t.Fatalf("unexpected padding frac %v", c.Chart.PaddingFrac)
	}
}

func TestLoadMissingBackend(t *testing.T) {
	if _, err := Load(writeConfig(t, "environment: test\n")); err == nil {
		t.Fatalf("expected validation error for missing backend.base_url")
	}
}

func TestLoadBadCacheMode(t *testing.T) {
	c := `
environment: test
backend:
  base_url: http://backend:9000
cache:
  mode: memcached
`
	if _, err := Load(writeConfig(t, c)); err == nil {
		t.Fatalf("expected validation error for unknown cache mode")
	}
}

func TestLoadWithEnvOverride(t *testing.T) {
	t.Setenv("BACKEND_BASE_URL", "http://other:9999")
	c, err := LoadWithEnv(writeConfig(t, sample))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Backend.BaseURL != "http://other:9999" {
		t.Fatalf("env override not applied: %s", c.Backend.BaseURL)
	}
}

func TestBulkPageSizeDefault(t *testing.T) {
	c := `
environment: test
backend:
  base_url: http://backend:9000
`
	cfg, err := Load(writeConfig(t, c))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Backend.BulkPageSize != 1000 {
		t.Fatalf("expected default bulk page size 1000, got %d", cfg.Backend.BulkPageSize)
	}
}
