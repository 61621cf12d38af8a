package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "READ_TIMEOUT", "DESIGNS_DB_PATH", "RENDERER_URL", "CORS_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "3000" || cfg.Environment != "development" || cfg.ReadTimeout != 10 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.DesignsDBPath != "data/db/designs.db" || cfg.RendererURL != "http://localhost:3001" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Fatalf("origins = %v", cfg.CORSOrigins)
	}
	if got := cfg.PortOr("3002"); got != "3002" {
		t.Fatalf("PortOr = %s", got)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("READ_TIMEOUT", "not-a-number")
	t.Setenv("CORS_ORIGINS", "http://a.test, ,http://b.test")

	cfg := Load()
	if cfg.PortOr("3002") != "8080" {
		t.Fatalf("explicit PORT must win, got %s", cfg.Port)
	}
	if cfg.ReadTimeout != 10 {
		t.Fatalf("bad int must fall back to default, got %d", cfg.ReadTimeout)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b.test" {
		t.Fatalf("origins = %v", cfg.CORSOrigins)
	}
}
